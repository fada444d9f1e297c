package kruskal

import "github.com/katalvlaran/emcc/edgestream"

// BoundedIntervalMemoryOverheadFactor is the budgeted number of words
// per node of a BoundedInterval run: parent and height entries plus the
// two presence flag slices.
const BoundedIntervalMemoryOverheadFactor = 4

// BoundedInterval is union-find over one contiguous node interval. The
// parent table is supplied by the caller (the bundled contraction reads
// the final roots out of it); the height table is private. Sources must
// lie inside the interval; targets of pushed edges must as well — the
// bundle partition guarantees both.
type BoundedInterval struct {
	min, max edgestream.Node
	parent   *ShiftMap[edgestream.Node, edgestream.Node]
	height   *ShiftMap[edgestream.Node, uint32]
}

// NewBoundedInterval returns a run over [min, max] writing roots into
// parent, which must span at least that interval.
func NewBoundedInterval(parent *ShiftMap[edgestream.Node, edgestream.Node], min, max edgestream.Node) *BoundedInterval {
	if !parent.ValidKey(min) || !parent.ValidKey(max) {
		panic("kruskal: BoundedInterval parent map narrower than interval")
	}
	return &BoundedInterval{
		min:    min,
		max:    max,
		parent: parent,
		height: NewShiftMap[edgestream.Node, uint32](min, max),
	}
}

// Push unions one edge.
func (k *BoundedInterval) Push(e edgestream.Edge) {
	k.union(e.U, e.V)
}

// Finalize path-compresses every present node straight to its root, so
// the parent table reads as a star mapping afterwards.
func (k *BoundedInterval) Finalize() {
	for u := k.min; ; u++ {
		if k.parent.Contains(u) {
			k.parent.Insert(u, k.find(u))
		}
		if u == k.max {
			break
		}
	}
}

// find resolves the root of u, inserting u as its own singleton when
// unseen, and path-compresses the walk.
func (k *BoundedInterval) find(u edgestream.Node) edgestream.Node {
	if !k.parent.Contains(u) {
		k.parent.Insert(u, u)
		k.height.Insert(u, 0)
		return u
	}
	root := u
	for k.parent.At(root) != root {
		root = k.parent.At(root)
	}
	for k.parent.At(u) != u {
		next := k.parent.At(u)
		k.parent.Insert(u, root)
		u = next
	}
	return root
}

func (k *BoundedInterval) union(u, v edgestream.Node) bool {
	ru, rv := k.find(u), k.find(v)
	if ru == rv {
		return false
	}
	if k.height.At(ru) < k.height.At(rv) {
		k.parent.Insert(ru, rv)
	} else {
		k.parent.Insert(rv, ru)
	}
	if k.height.At(ru) == k.height.At(rv) {
		k.height.Insert(ru, k.height.At(ru)+1)
	}
	return true
}
