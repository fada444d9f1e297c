package edgestream

import "github.com/katalvlaran/emcc/extsort"

// NodeAsc is the natural ascending node order.
type NodeAsc = extsort.OrderedAsc[Node]

// Lex orders edges by (U, V) ascending.
type Lex struct{}

func (Lex) Less(a, b Edge) bool {
	return a.U < b.U || (a.U == b.U && a.V < b.V)
}
func (Lex) MinValue() Edge { return MinEdge }
func (Lex) MaxValue() Edge { return MaxEdge }

// LexDesc orders edges by (U, V) descending; it drives the reverse scan
// of time-forward processing.
type LexDesc struct{}

func (LexDesc) Less(a, b Edge) bool {
	return a.U > b.U || (a.U == b.U && a.V > b.V)
}
func (LexDesc) MinValue() Edge { return MaxEdge }
func (LexDesc) MaxValue() Edge { return MinEdge }

// ReverseLex orders edges by (V, U) ascending — "sorted by target".
type ReverseLex struct{}

func (ReverseLex) Less(a, b Edge) bool {
	return a.V < b.V || (a.V == b.V && a.U < b.U)
}
func (ReverseLex) MinValue() Edge { return MinEdge }
func (ReverseLex) MaxValue() Edge { return MaxEdge }

// UnorderedLex orders edges by (min, max) of their endpoints ascending,
// ignoring orientation.
type UnorderedLex struct{}

func (UnorderedLex) Less(a, b Edge) bool {
	an, bn := a.Normalized(), b.Normalized()
	if an.U != bn.U {
		return an.U < bn.U
	}
	return an.V < bn.V
}
func (UnorderedLex) MinValue() Edge { return MinEdge }
func (UnorderedLex) MaxValue() Edge { return MaxEdge }

// UnorderedLexDesc is UnorderedLex reversed.
type UnorderedLexDesc struct{}

func (UnorderedLexDesc) Less(a, b Edge) bool {
	an, bn := a.Normalized(), b.Normalized()
	if an.U != bn.U {
		return an.U > bn.U
	}
	return an.V > bn.V
}
func (UnorderedLexDesc) MinValue() Edge { return MaxEdge }
func (UnorderedLexDesc) MaxValue() Edge { return MinEdge }

// PQContract orders edges by (U ascending, V descending). A min-queue
// under this order pops, for the smallest live source, its farthest
// target first — the invariant the Sibeyn contraction is built on.
type PQContract struct{}

func (PQContract) Less(a, b Edge) bool {
	return a.U < b.U || (a.U == b.U && a.V > b.V)
}
func (PQContract) MinValue() Edge { return Edge{MinNode, MaxNode} }
func (PQContract) MaxValue() Edge { return Edge{MaxNode, MinNode} }

// LabelByNode orders labels by (Node, Comp) ascending — the layout used
// for relabelling edges by source or target.
type LabelByNode struct{}

func (LabelByNode) Less(a, b Label) bool {
	return a.Node < b.Node || (a.Node == b.Node && a.Comp < b.Comp)
}
func (LabelByNode) MinValue() Label { return Label{MinNode, MinNode} }
func (LabelByNode) MaxValue() Label { return Label{MaxNode, MaxNode} }

// LabelByComp orders labels by (Comp, Node) ascending — the layout used
// when two component maps meet over a shared intermediate universe.
type LabelByComp struct{}

func (LabelByComp) Less(a, b Label) bool {
	return a.Comp < b.Comp || (a.Comp == b.Comp && a.Node < b.Node)
}
func (LabelByComp) MinValue() Label { return Label{MinNode, MinNode} }
func (LabelByComp) MaxValue() Label { return Label{MaxNode, MaxNode} }
