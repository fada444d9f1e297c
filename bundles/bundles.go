package bundles

import (
	"github.com/katalvlaran/emcc/edgestream"
)

// BundleBlockBytes is the spill-block size of the per-bundle sequences;
// many small sequences exist at once, so blocks stay small.
const BundleBlockBytes = 512 * 1024

// EquiRanged partitions [1, maxID] into equal-width bundles. Bundle b
// spans [b·width+1, (b+1)·width]; each bundle owns two append
// sequences, one for edges with both endpoints inside (intrabundle) and
// one for edges whose target lies in a later bundle (interbundle).
type EquiRanged struct {
	width edgestream.Node
	seqs  []*edgestream.EdgeSequence
}

// NewEquiRanged builds the partition. Panics when numBundles is not
// positive or exceeds maxID.
func NewEquiRanged(maxID edgestream.Node, numBundles int) *EquiRanged {
	if numBundles < 1 || edgestream.Node(numBundles) > maxID {
		panic("bundles: NewEquiRanged(numBundles outside [1, maxID])")
	}
	width := maxID / edgestream.Node(numBundles)
	count := int((maxID + width - 1) / width)
	seqs := make([]*edgestream.EdgeSequence, 2*count)
	for i := range seqs {
		seqs[i] = edgestream.NewEdgeSequenceBlock(BundleBlockBytes)
	}
	return &EquiRanged{width: width, seqs: seqs}
}

// NumBundles reports the number of intervals.
func (b *EquiRanged) NumBundles() int { return len(b.seqs) / 2 }

// Width reports the interval width in node IDs.
func (b *EquiRanged) Width() edgestream.Node { return b.width }

// Lower returns the first node ID of bundle id.
func (b *EquiRanged) Lower(id int) edgestream.Node {
	return edgestream.Node(id)*b.width + 1
}

// Upper returns the last node ID of bundle id.
func (b *EquiRanged) Upper(id int) edgestream.Node {
	return edgestream.Node(id+1) * b.width
}

// BundleOf returns the bundle holding node u.
func (b *EquiRanged) BundleOf(u edgestream.Node) int {
	return int((u - 1) / b.width)
}

// Intra returns bundle id's intrabundle sequence.
func (b *EquiRanged) Intra(id int) *edgestream.EdgeSequence { return b.seqs[2*id] }

// Inter returns bundle id's interbundle sequence.
func (b *EquiRanged) Inter(id int) *edgestream.EdgeSequence { return b.seqs[2*id+1] }

// Push routes a normalized edge to its source bundle, intrabundle when
// the target shares it and interbundle otherwise.
func (b *EquiRanged) Push(e edgestream.Edge) {
	src := b.BundleOf(e.U)
	if src == b.BundleOf(e.V) {
		b.seqs[2*src].Push(e)
	} else {
		b.seqs[2*src+1].Push(e)
	}
}

// PushInto drains bundle id's intrabundle edges into the base case.
func (b *EquiRanged) PushInto(base edgestream.Pusher[edgestream.Edge], id int) {
	intra := b.Intra(id)
	intra.Rewind()
	for !intra.Empty() {
		base.Push(intra.Peek())
		intra.Next()
	}
}

// Close releases every sequence.
func (b *EquiRanged) Close() {
	for _, s := range b.seqs {
		s.Close()
	}
}
