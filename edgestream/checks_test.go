package edgestream_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

func labelSeq(labels ...edgestream.Label) *extsort.Sequence[edgestream.Label] {
	s := extsort.NewSequence[edgestream.Label](edgestream.LabelCodec{})
	for _, l := range labels {
		s.Push(l)
	}
	s.Rewind()
	return s
}

func TestIsSorted(t *testing.T) {
	require := require.New(t)
	sorted := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{1, 3}, edgestream.Edge{2, 1})
	defer sorted.Close()
	require.True(edgestream.IsSorted[edgestream.Edge](sorted, edgestream.Lex{}))
	// the predicate rewinds its input
	require.False(sorted.Empty())

	unsorted := seqOf(edgestream.Edge{2, 1}, edgestream.Edge{1, 2})
	defer unsorted.Close()
	require.False(edgestream.IsSorted[edgestream.Edge](unsorted, edgestream.Lex{}))
}

func TestDisjointSources(t *testing.T) {
	require := require.New(t)
	a := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{3, 4})
	b := seqOf(edgestream.Edge{2, 3}, edgestream.Edge{4, 5})
	defer a.Close()
	defer b.Close()
	require.True(edgestream.DisjointSources(a, b))

	c := seqOf(edgestream.Edge{3, 9})
	defer c.Close()
	require.False(edgestream.DisjointSources(a, c))
}

func TestOnlyStars(t *testing.T) {
	require := require.New(t)
	lim := extsort.TestingLimits()

	stars := seqOf(edgestream.Edge{1, 5}, edgestream.Edge{2, 5}, edgestream.Edge{5, 5})
	defer stars.Close()
	require.True(edgestream.OnlyStars(stars, lim))

	repeatedSource := seqOf(edgestream.Edge{1, 5}, edgestream.Edge{1, 6})
	defer repeatedSource.Close()
	require.False(edgestream.OnlyStars(repeatedSource, lim))

	chain := seqOf(edgestream.Edge{1, 2}, edgestream.Edge{2, 3})
	defer chain.Close()
	require.False(edgestream.OnlyStars(chain, lim), "2 is both a source and a target")
}

func TestLabelStarsOnly(t *testing.T) {
	require := require.New(t)
	lim := extsort.TestingLimits()

	good := labelSeq(
		edgestream.Label{Node: 1, Comp: 3},
		edgestream.Label{Node: 2, Comp: 3},
		edgestream.Label{Node: 3, Comp: 3},
	)
	defer good.Close()
	require.True(edgestream.LabelStarsOnly(good, lim))

	missingRoot := labelSeq(
		edgestream.Label{Node: 1, Comp: 3},
		edgestream.Label{Node: 2, Comp: 3},
	)
	defer missingRoot.Close()
	require.False(edgestream.LabelStarsOnly(missingRoot, lim), "3 never maps to itself")

	notAFixedPoint := labelSeq(
		edgestream.Label{Node: 1, Comp: 2},
		edgestream.Label{Node: 2, Comp: 1},
	)
	defer notAFixedPoint.Close()
	require.False(edgestream.LabelStarsOnly(notAFixedPoint, lim))

	duplicateKey := labelSeq(
		edgestream.Label{Node: 1, Comp: 1},
		edgestream.Label{Node: 1, Comp: 1},
	)
	defer duplicateKey.Close()
	require.False(edgestream.LabelStarsOnly(duplicateKey, lim))
}
