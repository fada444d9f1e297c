package kruskal

import (
	"github.com/katalvlaran/emcc/edgestream"
)

// MemoryOverheadFactor is the budgeted number of words per mapped node:
// parent, height, the id remap and its hash overhead, and per-slot
// padding. A subproblem on n nodes is semi-externally handleable iff
// n · 8 · MemoryOverheadFactor bytes fit the internal-memory budget.
const MemoryOverheadFactor = 8

// unionFind is the shared core of Stream and Pipelined: a dense
// parent/height forest over compact indices, plus the remap from
// external node IDs.
type unionFind struct {
	maxNodes int
	next     edgestream.Node
	unions   edgestream.Node
	idMap    map[edgestream.Node]edgestream.Node
	reverse  []edgestream.Node
	parent   []edgestream.Node
	height   []uint8
}

func newUnionFind(maxNodes int) unionFind {
	return unionFind{
		maxNodes: maxNodes,
		idMap:    make(map[edgestream.Node]edgestream.Node),
	}
}

// NumNodes reports the number of distinct nodes mapped so far.
func (u *unionFind) NumNodes() edgestream.Node { return u.next }

// NumUnions reports the number of successful (non-cycle) unions.
func (u *unionFind) NumUnions() edgestream.Node { return u.unions }

// NumCCs reports the number of components among the mapped nodes.
func (u *unionFind) NumCCs() edgestream.Node { return u.next - u.unions }

// useMap returns the compact index of n, inserting it if unseen.
func (u *unionFind) useMap(n edgestream.Node) edgestream.Node {
	if i, ok := u.idMap[n]; ok {
		return i
	}
	if u.maxNodes > 0 && int(u.next) >= u.maxNodes {
		panic("kruskal: node capacity exceeded in semi-external base case")
	}
	i := u.next
	u.idMap[n] = i
	u.reverse = append(u.reverse, n)
	u.parent = append(u.parent, i)
	u.height = append(u.height, 0)
	u.next++
	return i
}

// find climbs to the root, then path-compresses every visited node.
func (u *unionFind) find(i edgestream.Node) edgestream.Node {
	root := i
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[i] != i {
		i, u.parent[i] = u.parent[i], root
	}
	return root
}

// union links the trees of i and j, smaller height under larger.
// Returns false when the edge closes a cycle.
func (u *unionFind) union(i, j edgestream.Node) bool {
	ri, rj := u.find(i), u.find(j)
	if ri == rj {
		return false
	}
	if u.height[ri] < u.height[rj] {
		u.parent[ri] = rj
	} else {
		u.parent[rj] = ri
	}
	if u.height[ri] == u.height[rj] {
		u.height[ri]++
	}
	return true
}

// processEdge maps both endpoints and unions them.
func (u *unionFind) processEdge(e edgestream.Edge) {
	i := u.useMap(e.U)
	j := u.useMap(e.V)
	if u.union(i, j) {
		u.unions++
	}
}

// emit pushes (original(i), original(find(i))) for every mapped node.
func (u *unionFind) emit(out edgestream.Pusher[edgestream.Label]) {
	for i := edgestream.Node(0); i < u.next; i++ {
		out.Push(edgestream.Label{
			Node: u.reverse[i],
			Comp: u.reverse[u.find(i)],
		})
	}
}
