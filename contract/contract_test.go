package contract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/contract"
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

var lim = extsort.TestingLimits()

// sortedStream builds a consumed EdgeStream from lexicographically
// sorted edges.
func sortedStream(edges ...edgestream.Edge) *edgestream.EdgeStream {
	s := edgestream.NewEdgeStream()
	for _, e := range edges {
		s.Push(e)
	}
	s.Consume()
	return s
}

func labelSorterByNode() *extsort.Sorter[edgestream.Label] {
	return extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, lim)
}

func labelSorterByComp() *extsort.Sorter[edgestream.Label] {
	return extsort.NewSorter[edgestream.Label](edgestream.LabelByComp{}, edgestream.LabelCodec{}, lim)
}

// oracle is the in-memory union-find the streaming results are checked
// against.
type oracle struct {
	parent map[edgestream.Node]edgestream.Node
}

func newOracle() *oracle {
	return &oracle{parent: map[edgestream.Node]edgestream.Node{}}
}

func (o *oracle) find(u edgestream.Node) edgestream.Node {
	if _, ok := o.parent[u]; !ok {
		o.parent[u] = u
	}
	for o.parent[u] != u {
		o.parent[u] = o.parent[o.parent[u]]
		u = o.parent[u]
	}
	return u
}

func (o *oracle) union(u, v edgestream.Node) {
	ru, rv := o.find(u), o.find(v)
	if ru != rv {
		o.parent[ru] = rv
	}
}

func (o *oracle) addEdges(edges []edgestream.Edge) {
	for _, e := range edges {
		o.union(e.U, e.V)
	}
}

// samePartition verifies that the star map induces exactly the
// equivalence relation of the oracle over the map's key set.
func samePartition(t *testing.T, m map[edgestream.Node]edgestream.Node, o *oracle) {
	t.Helper()
	for a, ra := range m {
		for b, rb := range m {
			require.Equal(t, o.find(a) == o.find(b), ra == rb,
				"nodes %d and %d disagree with the oracle", a, b)
		}
	}
}

func collectMap(t *testing.T, s *extsort.Sorter[edgestream.Label]) map[edgestream.Node]edgestream.Node {
	t.Helper()
	out := map[edgestream.Node]edgestream.Node{}
	for !s.Empty() {
		l := s.Peek()
		if prev, seen := out[l.Node]; seen {
			require.Equal(t, prev, l.Comp, "node %d labelled twice differently", l.Node)
		}
		out[l.Node] = l.Comp
		s.Next()
	}
	return out
}

func requireStarMap(t *testing.T, m map[edgestream.Node]edgestream.Node) {
	t.Helper()
	for node, rep := range m {
		require.Contains(t, m, rep, "representative of %d missing", node)
		require.Equal(t, rep, m[rep], "representative %d not a fixed point", rep)
	}
}

func pathEdges(n edgestream.Node) []edgestream.Edge {
	out := make([]edgestream.Edge, 0, n-1)
	for u := edgestream.Node(1); u < n; u++ {
		out = append(out, edgestream.Edge{U: u, V: u + 1})
	}
	return out
}

func TestSibeynContractsWholePath(t *testing.T) {
	require := require.New(t)
	edges := pathEdges(5)
	in := sortedStream(edges...)
	defer in.Close()

	contracted := edgestream.NewEdgeSequence()
	defer contracted.Close()
	stars := labelSorterByNode()
	defer stars.Reset()

	s := contract.NewSibeyn(lim)
	s.FullyExternal(in, contracted, stars, 1<<20)
	stars.Sort()

	contracted.Rewind()
	require.True(contracted.Empty(), "a fully contracted path leaves no edges")

	m := collectMap(t, stars)
	require.Len(m, 5)
	requireStarMap(t, m)
	for u := edgestream.Node(1); u <= 5; u++ {
		require.Equal(edgestream.Node(5), m[u], "the path contracts toward its largest node")
	}
}

func TestSibeynContractionInvariant(t *testing.T) {
	require := require.New(t)
	// two triangles plus a bridge into a larger component
	edges := []edgestream.Edge{
		{1, 2}, {1, 3}, {2, 3},
		{3, 7},
		{4, 5}, {4, 6}, {5, 6},
	}
	in := sortedStream(edges...)
	defer in.Close()

	contracted := edgestream.NewEdgeSequence()
	defer contracted.Close()
	stars := labelSorterByNode()
	defer stars.Reset()

	s := contract.NewSibeyn(lim)
	s.FullyExternal(in, contracted, stars, 3)
	stars.Sort()
	m := collectMap(t, stars)
	requireStarMap(t, m)

	// contraction invariant: components of (contracted ∪ stars) lifted
	// through the star map equal components of the original edge set
	lifted := newOracle()
	contracted.Rewind()
	for !contracted.Empty() {
		e := contracted.Peek()
		lifted.union(e.U, e.V)
		contracted.Next()
	}
	for node, rep := range m {
		lifted.union(node, rep)
	}
	original := newOracle()
	original.addEdges(edges)
	for _, e := range edges {
		require.Equal(
			original.find(e.U) == original.find(e.V),
			lifted.find(e.U) == lifted.find(e.V),
		)
	}
	for _, a := range []edgestream.Node{1, 2, 3, 7} {
		require.Equal(lifted.find(a), lifted.find(3))
	}
	require.NotEqual(lifted.find(1), lifted.find(4))
}

func TestSibeynLeftoverToleratesParallels(t *testing.T) {
	require := require.New(t)
	// a clique pushes multiple signals between the same survivors
	edges := []edgestream.Edge{
		{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
	}
	in := sortedStream(edges...)
	defer in.Close()

	contracted := edgestream.NewEdgeSequence()
	defer contracted.Close()
	stars := labelSorterByNode()
	defer stars.Reset()

	s := contract.NewSibeyn(lim)
	s.FullyExternal(in, contracted, stars, 2)
	stars.Sort()

	// leftover edges may repeat non-consecutively; they must still be
	// sorted by source groups valid for union-find consumption
	contracted.Rewind()
	count := 0
	for !contracted.Empty() {
		e := contracted.Peek()
		require.LessOrEqual(e.U, e.V)
		count++
		contracted.Next()
	}
	require.Greater(count, 0)
}

func TestTFPCoverage(t *testing.T) {
	require := require.New(t)
	// contraction tree: 1→5, 2→5, 3→4, oriented larger-to-smaller on
	// input as TFP expects
	tree := edgestream.NewEdgeSequence()
	defer tree.Close()
	tree.Push(edgestream.Edge{5, 1})
	tree.Push(edgestream.Edge{5, 2})
	tree.Push(edgestream.Edge{4, 3})
	tree.Rewind()

	stars := labelSorterByNode()
	defer stars.Reset()
	contract.TFP(tree, stars, lim)
	stars.Sort()

	m := collectMap(t, stars)
	require.Len(m, 5, "every tree node labelled exactly once")
	requireStarMap(t, m)
	require.Equal(edgestream.Node(5), m[1])
	require.Equal(edgestream.Node(5), m[2])
	require.Equal(edgestream.Node(5), m[5])
	require.Equal(edgestream.Node(4), m[3])
	require.Equal(edgestream.Node(4), m[4])
}

func TestTFPChainPropagation(t *testing.T) {
	require := require.New(t)
	// chain 1→2→3: the root of 3 must reach 1 through the scan
	tree := edgestream.NewEdgeSequence()
	defer tree.Close()
	tree.Push(edgestream.Edge{3, 2})
	tree.Push(edgestream.Edge{2, 1})
	tree.Rewind()

	stars := labelSorterByNode()
	defer stars.Reset()
	contract.TFP(tree, stars, lim)
	stars.Sort()

	m := collectMap(t, stars)
	require.Equal(edgestream.Node(3), m[1])
	require.Equal(edgestream.Node(3), m[2])
	require.Equal(edgestream.Node(3), m[3])
}

func TestTFPAfterBasecaseSeeding(t *testing.T) {
	require := require.New(t)
	tree := edgestream.NewEdgeSequence()
	defer tree.Close()
	tree.Push(edgestream.Edge{4, 2})
	tree.Rewind()

	// the base case already resolved 4 into component 9
	baseStars := extsort.NewSequence[edgestream.Label](edgestream.LabelCodec{})
	defer baseStars.Close()
	baseStars.Push(edgestream.Label{Node: 4, Comp: 9})
	baseStars.Rewind()

	stars := labelSorterByNode()
	defer stars.Reset()
	contract.TFPAfterBasecase(tree, baseStars, stars, lim)
	stars.Sort()

	m := collectMap(t, stars)
	require.Equal(edgestream.Node(9), m[4])
	require.Equal(edgestream.Node(9), m[2], "the child inherits the base-case root")
}
