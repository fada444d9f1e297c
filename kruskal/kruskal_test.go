package kruskal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
)

func edgeSeq(edges ...edgestream.Edge) *edgestream.EdgeSequence {
	s := edgestream.NewEdgeSequence()
	for _, e := range edges {
		s.Push(e)
	}
	s.Rewind()
	return s
}

// collectLabels drains a sorter into a map for easy assertions.
func collectLabels(s *extsort.Sorter[edgestream.Label]) map[edgestream.Node]edgestream.Node {
	out := map[edgestream.Node]edgestream.Node{}
	for !s.Empty() {
		l := s.Peek()
		out[l.Node] = l.Comp
		s.Next()
	}
	return out
}

func requireStarShape(t *testing.T, m map[edgestream.Node]edgestream.Node) {
	t.Helper()
	for node, rep := range m {
		require.Contains(t, m, rep, "representative of %d must be a key", node)
		require.Equal(t, rep, m[rep], "representative %d must map to itself", rep)
	}
}

func TestStreamTwoTriangles(t *testing.T) {
	require := require.New(t)
	in := edgeSeq(
		edgestream.Edge{1, 2}, edgestream.Edge{1, 3}, edgestream.Edge{2, 3},
		edgestream.Edge{4, 5}, edgestream.Edge{4, 6}, edgestream.Edge{5, 6},
	)
	defer in.Close()

	base := kruskal.NewStream(0)
	ccs := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, extsort.TestingLimits())
	defer ccs.Reset()
	base.Process(ccs, in)
	ccs.Sort()

	require.Equal(edgestream.Node(6), base.NumNodes())
	require.Equal(edgestream.Node(2), base.NumCCs())
	require.Equal(edgestream.Node(4), base.NumUnions())

	m := collectLabels(ccs)
	require.Len(m, 6)
	requireStarShape(t, m)
	require.Equal(m[1], m[2])
	require.Equal(m[2], m[3])
	require.Equal(m[4], m[5])
	require.Equal(m[5], m[6])
	require.NotEqual(m[1], m[4])
}

func TestStreamToleratesDuplicatesAndLoops(t *testing.T) {
	require := require.New(t)
	in := edgeSeq(
		edgestream.Edge{1, 2}, edgestream.Edge{1, 2},
		edgestream.Edge{2, 2}, edgestream.Edge{2, 3},
	)
	defer in.Close()

	base := kruskal.NewStream(0)
	ccs := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, extsort.TestingLimits())
	defer ccs.Reset()
	base.Process(ccs, in)
	ccs.Sort()

	require.Equal(edgestream.Node(1), base.NumCCs())
	requireStarShape(t, collectLabels(ccs))
}

func TestStreamMultipleInputs(t *testing.T) {
	require := require.New(t)
	a := edgeSeq(edgestream.Edge{1, 2})
	b := edgeSeq(edgestream.Edge{2, 3})
	defer a.Close()
	defer b.Close()

	base := kruskal.NewStream(0)
	ccs := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, extsort.TestingLimits())
	defer ccs.Reset()
	base.Process(ccs, a, b)
	ccs.Sort()
	require.Equal(edgestream.Node(1), base.NumCCs())
	m := collectLabels(ccs)
	require.Equal(m[1], m[3])
}

func TestPipelined(t *testing.T) {
	require := require.New(t)
	base := kruskal.NewPipelined(0)
	base.Push(edgestream.Edge{1, 2})
	base.Push(edgestream.Edge{3, 4})
	base.Push(edgestream.Edge{5, 6})

	ccs := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, extsort.TestingLimits())
	defer ccs.Reset()
	base.Process(ccs)
	ccs.Sort()

	require.Equal(edgestream.Node(3), base.NumCCs())
	m := collectLabels(ccs)
	require.Len(m, 6)
	requireStarShape(t, m)
	require.Equal(m[1], m[2])
	require.Equal(m[3], m[4])
	require.Equal(m[5], m[6])
	require.NotEqual(m[1], m[3])
}

func TestCapacityPanics(t *testing.T) {
	base := kruskal.NewPipelined(2)
	base.Push(edgestream.Edge{1, 2})
	require.Panics(t, func() { base.Push(edgestream.Edge{3, 4}) })
}
