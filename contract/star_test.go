package contract_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/contract"
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

func runStarPhase(t *testing.T, edges []edgestream.Edge, seed int64) ([]edgestream.Edge, map[edgestream.Node]edgestream.Node) {
	t.Helper()
	in := sortedStream(edges...)
	defer in.Close()

	contracted := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, lim)
	defer contracted.Reset()
	stars := labelSorterByNode()
	defer stars.Reset()

	s := contract.NewStar(lim, rand.New(rand.NewSource(seed)))
	s.FullyExternal(in, contracted, stars, 0)
	contracted.Sort()
	stars.Sort()

	var out []edgestream.Edge
	for !contracted.Empty() {
		out = append(out, contracted.Peek())
		contracted.Next()
	}
	return out, collectMap(t, stars)
}

func TestStarContractionInvariant(t *testing.T) {
	edges := []edgestream.Edge{
		{1, 2}, {1, 3}, {2, 3},
		{3, 7},
		{4, 5}, {4, 6}, {5, 6},
		{8, 9},
	}
	original := newOracle()
	original.addEdges(edges)

	for seed := int64(1); seed <= 8; seed++ {
		contracted, m := runStarPhase(t, edges, seed)
		requireStarMap(t, m)

		// contraction invariant: CC(contracted ∪ stars) lifted through
		// the star map equals CC(original)
		lifted := newOracle()
		for _, e := range contracted {
			require.LessOrEqual(t, e.U, e.V, "contracted edges are normalized")
			require.False(t, e.SelfLoop())
			lifted.union(e.U, e.V)
		}
		for node, rep := range m {
			lifted.union(node, rep)
		}
		for _, e := range edges {
			require.Equal(t,
				original.find(e.U) == original.find(e.V),
				lifted.find(e.U) == lifted.find(e.V),
				"seed %d: edge (%d,%d)", seed, e.U, e.V)
		}
	}
}

func TestStarStarsAreOneHop(t *testing.T) {
	require := require.New(t)
	edges := pathEdges(64)
	for seed := int64(1); seed <= 4; seed++ {
		_, m := runStarPhase(t, edges, seed)
		// path breaking guarantees no chains: every mapped-to center is
		// a fixed point, verified by requireStarMap; additionally no
		// center may itself be relabelled away
		for node, rep := range m {
			if node != rep {
				require.Equal(rep, m[rep], "leaf %d points at a surviving center", node)
			}
		}
	}
}

func TestStarDeterministicUnderSeed(t *testing.T) {
	require := require.New(t)
	edges := pathEdges(128)
	c1, m1 := runStarPhase(t, edges, 42)
	c2, m2 := runStarPhase(t, edges, 42)
	require.Equal(c1, c2)
	require.Equal(m1, m2)
}

func TestStarCapabilities(t *testing.T) {
	require := require.New(t)
	s := contract.NewStar(lim, rand.New(rand.NewSource(1)))
	require.True(s.SupportsMapOnlyReturn())
	require.InDelta(0.75, s.ExpectedContractionRatio(), 1e-9)
	require.Panics(func() { contract.NewStar(lim, nil) })
}
