package edgestream_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

// seqOf builds a rewindable edge stream from a slice.
func seqOf(edges ...edgestream.Edge) *edgestream.EdgeSequence {
	s := edgestream.NewEdgeSequence()
	for _, e := range edges {
		s.Push(e)
	}
	s.Rewind()
	return s
}

func collect[T any](in edgestream.Stream[T]) []T {
	var out []T
	for !in.Empty() {
		out = append(out, in.Peek())
		in.Next()
	}
	return out
}

func TestUniqueFilter(t *testing.T) {
	require := require.New(t)
	in := seqOf(
		edgestream.Edge{1, 2}, edgestream.Edge{1, 2}, edgestream.Edge{1, 3},
		edgestream.Edge{2, 4}, edgestream.Edge{2, 4}, edgestream.Edge{2, 4},
	)
	defer in.Close()
	uq := edgestream.NewUnique[edgestream.Edge](in)
	require.Equal(
		[]edgestream.Edge{{1, 2}, {1, 3}, {2, 4}},
		collect[edgestream.Edge](uq),
	)

	uq.Rewind()
	require.Equal(
		[]edgestream.Edge{{1, 2}, {1, 3}, {2, 4}},
		collect[edgestream.Edge](uq),
	)
}

func TestUniqueFilterEmpty(t *testing.T) {
	in := seqOf()
	defer in.Close()
	uq := edgestream.NewUnique[edgestream.Edge](in)
	require.True(t, uq.Empty())
}

func TestConsecutiveFilter(t *testing.T) {
	require := require.New(t)
	in := seqOf(
		edgestream.Edge{1, 2}, edgestream.Edge{2, 1}, edgestream.Edge{1, 3},
		edgestream.Edge{3, 1}, edgestream.Edge{3, 1},
	)
	defer in.Close()
	unorderedEq := func(a, b edgestream.Edge) bool { return a.Normalized() == b.Normalized() }
	cf := edgestream.NewConsecutiveFilter[edgestream.Edge](in, unorderedEq)
	require.Equal(
		[]edgestream.Edge{{1, 2}, {1, 3}},
		collect[edgestream.Edge](cf),
		"first of each unordered run survives",
	)
}

func TestMerge2KeepsDuplicates(t *testing.T) {
	require := require.New(t)
	a := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{3, 4})
	b := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{2, 3})
	defer a.Close()
	defer b.Close()
	m := edgestream.NewMerge2[edgestream.Edge](a, b, edgestream.Lex{})
	require.Equal(
		[]edgestream.Edge{{1, 2}, {1, 2}, {2, 3}, {3, 4}},
		collect[edgestream.Edge](m),
	)
}

func TestMergeUnique2DropsCrossDuplicates(t *testing.T) {
	require := require.New(t)
	a := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{2, 3}, edgestream.Edge{5, 6})
	b := seqOf(edgestream.Edge{2, 3}, edgestream.Edge{4, 5})
	defer a.Close()
	defer b.Close()
	m := edgestream.NewMergeUnique2[edgestream.Edge](a, b, edgestream.Lex{})
	require.Equal(
		[]edgestream.Edge{{1, 2}, {2, 3}, {4, 5}, {5, 6}},
		collect[edgestream.Edge](m),
	)
}

func TestSplitPushesProjectionOncePerItem(t *testing.T) {
	require := require.New(t)
	in := seqOf(edgestream.Edge{1, 5}, edgestream.Edge{2, 6}, edgestream.Edge{3, 7})
	defer in.Close()
	targets := extsort.NewSorter[edgestream.Node](edgestream.NodeAsc{}, edgestream.NodeCodec{}, extsort.TestingLimits())
	defer targets.Reset()

	split := edgestream.NewSplit[edgestream.Edge, edgestream.Node](in, targets, func(e edgestream.Edge) edgestream.Node { return e.V })
	require.Equal(
		[]edgestream.Edge{{1, 5}, {2, 6}, {3, 7}},
		collect[edgestream.Edge](split),
	)
	targets.Sort()
	require.Equal(3, targets.Size())

	// replay passes through without pushing again
	split.Rewind()
	require.Equal(
		[]edgestream.Edge{{1, 5}, {2, 6}, {3, 7}},
		collect[edgestream.Edge](split),
	)
	require.Equal(3, targets.Size())
}

func TestHitFilter(t *testing.T) {
	require := require.New(t)
	in := seqOf(edgestream.Edge{1, 5}, edgestream.Edge{3, 6}, edgestream.Edge{5, 7}, edgestream.Edge{8, 9})
	hits := seqOf(edgestream.Edge{3, 0}, edgestream.Edge{8, 0})
	defer in.Close()
	defer hits.Close()

	f := edgestream.NewHitFilter[edgestream.Edge, edgestream.Edge](
		in, hits,
		func(e, h edgestream.Edge) bool { return e.U <= h.U },
		func(e, h edgestream.Edge) bool { return e.U == h.U },
	)
	require.Equal(
		[]edgestream.Edge{{1, 5}, {5, 7}},
		collect[edgestream.Edge](f),
		"sources 3 and 8 are hit and dropped",
	)
}

func TestOrientAdapters(t *testing.T) {
	require := require.New(t)
	in := seqOf(edgestream.Edge{1, 5}, edgestream.Edge{4, 2})
	defer in.Close()
	rev := edgestream.NewOrientReverse(in)
	require.Equal(
		[]edgestream.Edge{{5, 1}, {4, 2}},
		collect[edgestream.Edge](rev),
	)

	in2 := seqOf(edgestream.Edge{5, 1}, edgestream.Edge{2, 4})
	defer in2.Close()
	norm := edgestream.NewOrientNormal(in2)
	require.Equal(
		[]edgestream.Edge{{1, 5}, {2, 4}},
		collect[edgestream.Edge](norm),
	)
}

func TestFlush(t *testing.T) {
	require := require.New(t)
	in := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{3, 4})
	defer in.Close()
	out := edgestream.NewEdgeSequence()
	defer out.Close()
	edgestream.Flush[edgestream.Edge](in, out)
	out.Rewind()
	require.Equal(
		[]edgestream.Edge{{1, 2}, {3, 4}},
		collect[edgestream.Edge](out),
	)
}
