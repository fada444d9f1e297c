package edgestream

import (
	"encoding/binary"

	"github.com/katalvlaran/emcc/extsort"
)

// Node is an unsigned node identifier. MinNode and MaxNode are reserved
// sentinels; the top bit is reserved by the EdgeStream encoding. Valid
// IDs therefore satisfy MinNode < id < OutNodeSwitch.
type Node uint64

const (
	// MinNode is the reserved lower sentinel; no valid node carries it.
	MinNode Node = 0
	// MaxNode is the reserved upper sentinel; no valid node carries it.
	MaxNode Node = ^Node(0)
	// OutNodeSwitch is the reserved top bit tagging a source change in
	// the EdgeStream word encoding.
	OutNodeSwitch Node = 1 << 63
)

// BytesPerEdge is the size of one edge in the binary edge-file layout.
const BytesPerEdge = 16

// Edge is an edge (U, V). It is normalized when U ≤ V.
type Edge struct {
	U, V Node
}

var (
	// MinEdge is the least edge under every lexicographic order.
	MinEdge = Edge{MinNode, MinNode}
	// MaxEdge is the greatest edge under every lexicographic order.
	MaxEdge = Edge{MaxNode, MaxNode}
)

// SelfLoop reports whether both endpoints coincide.
func (e Edge) SelfLoop() bool { return e.U == e.V }

// Normalized returns the edge oriented smaller-to-larger.
func (e Edge) Normalized() Edge {
	if e.U > e.V {
		return Edge{e.V, e.U}
	}
	return e
}

// Reversed returns the edge with endpoints swapped.
func (e Edge) Reversed() Edge { return Edge{e.V, e.U} }

// Label maps a node to its component representative. Representatives are
// the fixed points of a label set: Comp == Node.
type Label struct {
	Node Node
	Comp Node
}

// assertValidEdge panics when an endpoint touches a reserved sentinel.
func assertValidEdge(e Edge) {
	if e.U == MinNode || e.V == MinNode || e.U >= OutNodeSwitch || e.V >= OutNodeSwitch {
		panic("edgestream: edge endpoint uses a reserved node ID")
	}
}

// NodeCodec encodes a Node in 8 little-endian bytes.
type NodeCodec struct{}

func (NodeCodec) EncodedSize() int          { return 8 }
func (NodeCodec) Encode(dst []byte, v Node) { binary.LittleEndian.PutUint64(dst, uint64(v)) }
func (NodeCodec) Decode(src []byte) Node    { return Node(binary.LittleEndian.Uint64(src)) }

// EdgeCodec encodes an Edge in 16 little-endian bytes, U then V — the
// same layout as the binary edge-file format.
type EdgeCodec struct{}

func (EdgeCodec) EncodedSize() int { return BytesPerEdge }

func (EdgeCodec) Encode(dst []byte, e Edge) {
	binary.LittleEndian.PutUint64(dst, uint64(e.U))
	binary.LittleEndian.PutUint64(dst[8:], uint64(e.V))
}

func (EdgeCodec) Decode(src []byte) Edge {
	return Edge{
		U: Node(binary.LittleEndian.Uint64(src)),
		V: Node(binary.LittleEndian.Uint64(src[8:])),
	}
}

// LabelCodec encodes a Label in 16 little-endian bytes, Node then Comp.
type LabelCodec struct{}

func (LabelCodec) EncodedSize() int { return 16 }

func (LabelCodec) Encode(dst []byte, l Label) {
	binary.LittleEndian.PutUint64(dst, uint64(l.Node))
	binary.LittleEndian.PutUint64(dst[8:], uint64(l.Comp))
}

func (LabelCodec) Decode(src []byte) Label {
	return Label{
		Node: Node(binary.LittleEndian.Uint64(src)),
		Comp: Node(binary.LittleEndian.Uint64(src[8:])),
	}
}

// EdgeSequence is an arbitrary-order blocked edge sequence.
type EdgeSequence = extsort.Sequence[Edge]

// NewEdgeSequence returns an empty edge sequence with the default block
// size.
func NewEdgeSequence() *EdgeSequence {
	return extsort.NewSequence[Edge](EdgeCodec{})
}

// NewEdgeSequenceBlock returns an empty edge sequence with the given
// spill-block size in bytes.
func NewEdgeSequenceBlock(blockBytes int) *EdgeSequence {
	return extsort.NewSequenceBlock[Edge](EdgeCodec{}, blockBytes)
}
