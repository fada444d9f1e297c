package kruskal

import "github.com/katalvlaran/emcc/edgestream"

// Stream is the whole-stream base case: Process consumes one or more
// edge streams, unioning every edge, then emits the component labels of
// all mapped nodes. Duplicate and self-loop edges are tolerated (a
// duplicate union is a no-op), so producers need not fully deduplicate.
type Stream struct {
	unionFind
}

// NewStream returns an empty base case. maxNodes > 0 caps the number of
// distinct nodes; exceeding it panics (the routing layer guarantees the
// cap). maxNodes == 0 means uncapped.
func NewStream(maxNodes int) *Stream {
	return &Stream{unionFind: newUnionFind(maxNodes)}
}

// Process consumes every stream in ins, then pushes one label per
// mapped node into out.
func (k *Stream) Process(out edgestream.Pusher[edgestream.Label], ins ...edgestream.Stream[edgestream.Edge]) {
	for _, in := range ins {
		for !in.Empty() {
			k.processEdge(in.Peek())
			in.Next()
		}
	}
	k.emit(out)
}

// Pipelined is the push-fed base case: upstream stages push edges one at
// a time as they produce them, and Process emits the labels once the
// pipeline has drained.
type Pipelined struct {
	unionFind
}

// NewPipelined returns an empty pipelined base case; maxNodes as in
// NewStream.
func NewPipelined(maxNodes int) *Pipelined {
	return &Pipelined{unionFind: newUnionFind(maxNodes)}
}

// Push unions one edge.
func (k *Pipelined) Push(e edgestream.Edge) {
	k.processEdge(e)
}

// Process pushes one label per mapped node into out.
func (k *Pipelined) Process(out edgestream.Pusher[edgestream.Label]) {
	k.emit(out)
}
