package contract

import (
	"encoding/binary"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
)

// Boruvka is one fully external Borůvka phase: every node points at its
// minimum neighbor, mutual choices root a pseudo-tree at the larger
// endpoint, representatives propagate from the roots along the pointer
// forest, and the original edges are relabelled through the resulting
// map. At most half the nodes survive a phase.
type Boruvka struct {
	limits         extsort.Limits
	nodeUpperBound edgestream.Node
}

// NewBoruvka returns the strategy with the given container budgets.
func NewBoruvka(limits extsort.Limits) *Boruvka {
	return &Boruvka{limits: limits}
}

// NodeUpperBound reports the pseudo-tree count of the last phase — the
// exact number of surviving nodes.
func (b *Boruvka) NodeUpperBound() edgestream.Node { return b.nodeUpperBound }

// SupportsMapOnlyReturn reports false: a phase always materializes the
// contracted edge set.
func (b *Boruvka) SupportsMapOnlyReturn() bool { return false }

// ExpectedContractionRatio bounds the surviving node fraction.
func (b *Boruvka) ExpectedContractionRatio() float64 { return 0.5 }

// SemiExternal is not part of Boruvka's capability set and panics.
func (b *Boruvka) SemiExternal(edgestream.Rewindable[edgestream.Edge], edgestream.Pusher[edgestream.Label], *kruskal.Pipelined, int) {
	panic("contract: Boruvka has no semi-external contraction")
}

// FullyExternal runs one phase. The contraction goal is ignored — a
// phase contracts every pseudo-tree it finds. The input must be sorted
// lexicographically and is re-read once for the relabelling.
func (b *Boruvka) FullyExternal(in edgestream.Rewindable[edgestream.Edge], contracted edgestream.Pusher[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], _ int) {
	lim := b.limits
	unorderedEq := func(a, c edgestream.Edge) bool { return a.Normalized() == c.Normalized() }

	// symmetrize and sort: both directions of every edge
	bidir := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, lim)
	for !in.Empty() {
		e := in.Peek()
		bidir.Push(e)
		bidir.Push(e.Reversed())
		in.Next()
	}
	bidir.Sort()

	// minimum neighbor per source; a pointer edge is stored as
	// (chosen, chooser)
	phase := extsort.NewSorter[edgestream.Edge](edgestream.UnorderedLex{}, edgestream.EdgeCodec{}, lim)
	lastSrc := edgestream.MaxNode
	for !bidir.Empty() {
		e := bidir.Peek()
		if e.U != lastSrc {
			phase.Push(edgestream.Edge{U: e.V, V: e.U})
			lastSrc = e.U
		}
		bidir.Next()
	}
	bidir.Reset()
	phase.Sort()

	// a pointer pair seen twice is a mutual choice: the pseudo-tree
	// roots at the larger endpoint (the stable sort puts the smaller
	// chooser first, so the duplicate's chooser is the larger)
	cyclelessLex := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, lim)
	roots := extsort.NewSorter[edgestream.Node](edgestream.NodeAsc{}, edgestream.NodeCodec{}, lim)
	lastEdge := edgestream.MaxEdge
	for !phase.Empty() {
		e := phase.Peek()
		if e.Normalized() == lastEdge.Normalized() && lastEdge != edgestream.MaxEdge {
			roots.Push(e.V)
		} else {
			cyclelessLex.Push(e)
		}
		lastEdge = e
		phase.Next()
	}
	roots.Sort()
	cyclelessLex.Sort()
	b.nodeUpperBound = edgestream.Node(roots.Size())

	// ship each node's child edges to the position where the node's own
	// representative becomes known: node c's pointer edge is the unique
	// cycleless edge with chooser c, and pos is its rank in the
	// unordered scan order
	incPos := extsort.NewSorter[nodePos](nodePosAsc{}, nodePosCodec{}, lim)
	phase.Rewind()
	cf := edgestream.NewConsecutiveFilter[edgestream.Edge](phase, unorderedEq)
	pos := uint64(0)
	for !cf.Empty() {
		incPos.Push(nodePos{node: cf.Peek().V, pos: pos})
		pos++
		cf.Next()
	}
	incPos.Sort()

	shipped := extsort.NewSorter[rankedEdge](rankedEdgeAsc{}, rankedEdgeCodec{}, lim)
	for !incPos.Empty() && !cyclelessLex.Empty() {
		t := incPos.Peek()
		for !cyclelessLex.Empty() && cyclelessLex.Peek().U < t.node {
			cyclelessLex.Next()
		}
		if cyclelessLex.Empty() {
			break
		}
		if cyclelessLex.Peek().U > t.node {
			incPos.Next()
			continue
		}
		for !cyclelessLex.Empty() && cyclelessLex.Peek().U == t.node {
			e := cyclelessLex.Peek()
			shipped.Push(rankedEdge{u: e.U, v: e.V, rank: t.pos})
			cyclelessLex.Next()
		}
		incPos.Next()
	}
	incPos.Reset()
	shipped.Sort()

	// seed the representative queue with the roots' immediate children;
	// labels feed both the caller's map and the relabelling pass
	labels := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, lim)
	reprPQ := extsort.NewPriorityQueue[reprMsg](reprMsgAsc{}, reprMsgCodec{}, lim)
	cyclelessLex.Rewind()
	for !roots.Empty() {
		r := roots.Peek()
		stars.Push(edgestream.Label{Node: r, Comp: r})
		labels.Push(edgestream.Label{Node: r, Comp: r})
		for !cyclelessLex.Empty() && cyclelessLex.Peek().U < r {
			cyclelessLex.Next()
		}
		for !cyclelessLex.Empty() && cyclelessLex.Peek().U == r {
			e := cyclelessLex.Peek()
			reprPQ.Push(reprMsg{target: e.V, repr: r, prio: e})
			cyclelessLex.Next()
		}
		roots.Next()
	}
	roots.Reset()
	cyclelessLex.Reset()

	// rank-and-ship scan: positions arrive in increasing pointer-edge
	// order; a node's parent always resolves before the node because a
	// parent's pointer edge precedes every edge incident to it
	phase.Rewind()
	scan := edgestream.NewConsecutiveFilter[edgestream.Edge](phase, unorderedEq)
	pos = 0
	for !scan.Empty() {
		msg := reprPQ.Pop()
		stars.Push(edgestream.Label{Node: msg.target, Comp: msg.repr})
		labels.Push(edgestream.Label{Node: msg.target, Comp: msg.repr})
		for !shipped.Empty() && shipped.Peek().rank == pos {
			se := shipped.Peek()
			reprPQ.Push(reprMsg{target: se.v, repr: msg.repr, prio: edgestream.Edge{U: se.u, V: se.v}})
			shipped.Next()
		}
		pos++
		scan.Next()
	}
	phase.Reset()
	shipped.Reset()
	reprPQ.Reset()

	// relabel the original edges: sources first, then targets
	labels.Sort()
	srcUpdated := extsort.NewSorter[edgestream.Edge](edgestream.ReverseLex{}, edgestream.EdgeCodec{}, lim)
	in.Rewind()
	RelabelSource(labels, in, srcUpdated, nil, true)
	srcUpdated.Sort()

	labels.Rewind()
	srcUnique := edgestream.NewUnique[edgestream.Edge](srcUpdated)
	RelabelTarget(labels, srcUnique, contracted, true)

	srcUpdated.Reset()
	labels.Reset()
}

// nodePos attaches a scan position to a node.
type nodePos struct {
	node edgestream.Node
	pos  uint64
}

type nodePosAsc struct{}

func (nodePosAsc) Less(a, b nodePos) bool {
	return a.node < b.node || (a.node == b.node && a.pos < b.pos)
}
func (nodePosAsc) MinValue() nodePos { return nodePos{edgestream.MinNode, 0} }
func (nodePosAsc) MaxValue() nodePos { return nodePos{edgestream.MaxNode, ^uint64(0)} }

type nodePosCodec struct{}

func (nodePosCodec) EncodedSize() int { return 16 }

func (nodePosCodec) Encode(dst []byte, v nodePos) {
	binary.LittleEndian.PutUint64(dst, uint64(v.node))
	binary.LittleEndian.PutUint64(dst[8:], v.pos)
}

func (nodePosCodec) Decode(src []byte) nodePos {
	return nodePos{
		node: edgestream.Node(binary.LittleEndian.Uint64(src)),
		pos:  binary.LittleEndian.Uint64(src[8:]),
	}
}

// rankedEdge is an edge shipped to a scan position.
type rankedEdge struct {
	u, v edgestream.Node
	rank uint64
}

type rankedEdgeAsc struct{}

func (rankedEdgeAsc) Less(a, b rankedEdge) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.u < b.u || (a.u == b.u && a.v < b.v)
}
func (rankedEdgeAsc) MinValue() rankedEdge {
	return rankedEdge{edgestream.MinNode, edgestream.MinNode, 0}
}
func (rankedEdgeAsc) MaxValue() rankedEdge {
	return rankedEdge{edgestream.MaxNode, edgestream.MaxNode, ^uint64(0)}
}

type rankedEdgeCodec struct{}

func (rankedEdgeCodec) EncodedSize() int { return 24 }

func (rankedEdgeCodec) Encode(dst []byte, v rankedEdge) {
	binary.LittleEndian.PutUint64(dst, uint64(v.u))
	binary.LittleEndian.PutUint64(dst[8:], uint64(v.v))
	binary.LittleEndian.PutUint64(dst[16:], v.rank)
}

func (rankedEdgeCodec) Decode(src []byte) rankedEdge {
	return rankedEdge{
		u:    edgestream.Node(binary.LittleEndian.Uint64(src)),
		v:    edgestream.Node(binary.LittleEndian.Uint64(src[8:])),
		rank: binary.LittleEndian.Uint64(src[16:]),
	}
}

// reprMsg tells target its representative, prioritized by the pointer
// edge that will be scanned when the message is due.
type reprMsg struct {
	target edgestream.Node
	repr   edgestream.Node
	prio   edgestream.Edge
}

type reprMsgAsc struct{}

func (reprMsgAsc) Less(a, b reprMsg) bool {
	return (edgestream.UnorderedLex{}).Less(a.prio, b.prio)
}
func (reprMsgAsc) MinValue() reprMsg {
	return reprMsg{edgestream.MinNode, edgestream.MinNode, edgestream.MinEdge}
}
func (reprMsgAsc) MaxValue() reprMsg {
	return reprMsg{edgestream.MaxNode, edgestream.MaxNode, edgestream.MaxEdge}
}

type reprMsgCodec struct{}

func (reprMsgCodec) EncodedSize() int { return 32 }

func (reprMsgCodec) Encode(dst []byte, v reprMsg) {
	binary.LittleEndian.PutUint64(dst, uint64(v.target))
	binary.LittleEndian.PutUint64(dst[8:], uint64(v.repr))
	binary.LittleEndian.PutUint64(dst[16:], uint64(v.prio.U))
	binary.LittleEndian.PutUint64(dst[24:], uint64(v.prio.V))
}

func (reprMsgCodec) Decode(src []byte) reprMsg {
	return reprMsg{
		target: edgestream.Node(binary.LittleEndian.Uint64(src)),
		repr:   edgestream.Node(binary.LittleEndian.Uint64(src[8:])),
		prio: edgestream.Edge{
			U: edgestream.Node(binary.LittleEndian.Uint64(src[16:])),
			V: edgestream.Node(binary.LittleEndian.Uint64(src[24:])),
		},
	}
}
