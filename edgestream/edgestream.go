package edgestream

import (
	"github.com/katalvlaran/emcc/extsort"
)

type streamMode int

const (
	modeWriting streamMode = iota
	modeReading
)

// EdgeStreamOptions selects the write-state policies of an EdgeStream.
type EdgeStreamOptions struct {
	// AllowSelfLoops permits edges with U == V. When false, pushing a
	// self-loop panics.
	AllowSelfLoops bool
	// AllowParallel permits consecutive duplicate edges. When false,
	// pushing a duplicate of the previous edge panics.
	AllowParallel bool
}

// DefaultEdgeStreamOptions permits both self-loops and parallel edges;
// they are counted either way.
func DefaultEdgeStreamOptions() EdgeStreamOptions {
	return EdgeStreamOptions{AllowSelfLoops: true, AllowParallel: true}
}

// EdgeStream is the append-only, rewindable, lexicographically sorted
// edge container. In the write state Push accepts edges in non-decreasing
// (U, V) order; Consume seals the stream and opens the read cursor.
//
// The encoding is a single word stream: a source change is written once
// as U with the reserved top bit set, followed by one word per target.
// Sorted inputs make source runs long, so this roughly halves the I/O of
// a plain pair encoding.
type EdgeStream struct {
	words *extsort.Sequence[Node]
	opts  EdgeStreamOptions

	mode       streamMode
	currentOut Node
	last       Edge
	size       int
	selfLoops  int
	multiEdges int

	cur       Edge
	exhausted bool
}

// NewEdgeStream returns an empty stream in the write state with the
// default policies.
func NewEdgeStream() *EdgeStream {
	return NewEdgeStreamWith(DefaultEdgeStreamOptions())
}

// NewEdgeStreamWith returns an empty stream in the write state.
func NewEdgeStreamWith(opts EdgeStreamOptions) *EdgeStream {
	s := &EdgeStream{opts: opts}
	s.Clear()
	return s
}

// Push appends edge. Panics on a sort-order violation, on a reserved
// endpoint, or on a policy violation — these are programming errors of
// the producing stage, not recoverable conditions.
func (s *EdgeStream) Push(e Edge) {
	if s.mode != modeWriting {
		panic("edgestream: Push on a consumed EdgeStream")
	}
	assertValidEdge(e)

	if e.SelfLoop() {
		if !s.opts.AllowSelfLoops {
			panic("edgestream: self-loop pushed against policy")
		}
		s.selfLoops++
	}
	if e == s.last && s.size > 0 {
		if !s.opts.AllowParallel {
			panic("edgestream: parallel edge pushed against policy")
		}
		s.multiEdges++
	}
	if s.size > 0 && (Lex{}).Less(e, s.last) {
		panic("edgestream: push violates (U, V) sort order")
	}

	if s.currentOut != e.U {
		s.words.Push(e.U | OutNodeSwitch)
		s.currentOut = e.U
	}
	s.words.Push(e.V)
	s.size++
	s.last = e
}

// Consume seals the write state and opens the read cursor at the first
// edge. Alias of Rewind kept for call sites that read as a handoff.
func (s *EdgeStream) Consume() { s.Rewind() }

// Rewind (re)opens the read cursor at the first edge.
func (s *EdgeStream) Rewind() {
	s.mode = modeReading
	s.words.Rewind()
	s.cur = Edge{}
	s.exhausted = s.words.Empty()
	if !s.exhausted {
		s.advance()
	}
}

// Clear discards all edges and returns to the write state.
func (s *EdgeStream) Clear() {
	if s.words == nil {
		s.words = extsort.NewSequence[Node](NodeCodec{})
	} else {
		s.words.Reset()
	}
	s.mode = modeWriting
	s.currentOut = 0
	s.last = Edge{}
	s.size = 0
	s.selfLoops = 0
	s.multiEdges = 0
	s.exhausted = false
}

// Size reports the number of edges pushed.
func (s *EdgeStream) Size() int { return s.size }

// SelfLoops reports how many pushed edges were self-loops.
func (s *EdgeStream) SelfLoops() int { return s.selfLoops }

// MultiEdges reports how many pushed edges duplicated their predecessor.
func (s *EdgeStream) MultiEdges() int { return s.multiEdges }

// Err reports the first I/O failure of the backing sequence, if any.
func (s *EdgeStream) Err() error { return s.words.Err() }

// Empty reports whether the read cursor is exhausted (or the stream is
// still being written).
func (s *EdgeStream) Empty() bool {
	if s.mode == modeWriting {
		return true
	}
	return s.exhausted
}

// Peek returns the edge under the cursor. Panics when Empty.
func (s *EdgeStream) Peek() Edge {
	if s.mode != modeReading || s.exhausted {
		panic("edgestream: Peek on empty EdgeStream")
	}
	return s.cur
}

// Next advances the cursor. Panics when Empty.
func (s *EdgeStream) Next() {
	if s.mode != modeReading || s.exhausted {
		panic("edgestream: Next on empty EdgeStream")
	}
	if s.words.Empty() {
		s.exhausted = true
		return
	}
	s.advance()
}

// advance decodes the next edge from the word stream. The cursor carries
// the current source across targets; a tagged word replaces it.
func (s *EdgeStream) advance() {
	w := s.words.Peek()
	if w >= OutNodeSwitch {
		s.cur.U = w &^ OutNodeSwitch
		s.words.Next()
	}
	s.cur.V = s.words.Peek()
	s.words.Next()
}

// Close releases spilled blocks. The stream must not be used afterwards.
func (s *EdgeStream) Close() { s.words.Close() }
