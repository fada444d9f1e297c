package contract

import (
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
)

// Sibeyn is the priority-queue contraction. For the smallest live
// source u it contracts u into its farthest neighbor v*: the tree edge
// (u, v*) is recorded and every other neighbor w of u is re-linked to
// v* by a signal edge (min(w,v*), max(w,v*)). The queue order
// (u ascending, v descending) keeps the farthest candidate on top and
// is an algorithmic invariant, not a tuning knob.
type Sibeyn struct {
	limits extsort.Limits
}

// NewSibeyn returns the strategy with the given container budgets.
func NewSibeyn(limits extsort.Limits) *Sibeyn {
	return &Sibeyn{limits: limits}
}

// FullyExternal contracts goal sources, pushing leftover edges into
// contracted and the star mapping of the contracted nodes into stars.
// Leftover edges are deduplicated only against their consecutive equals;
// downstream consumers tolerate the remaining parallels.
func (s *Sibeyn) FullyExternal(in edgestream.Rewindable[edgestream.Edge], contracted edgestream.Pusher[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], goal int) {
	tree := edgestream.NewEdgeStream()
	s.run(in, goal, tree, contracted)
	tree.Consume()
	reversed := edgestream.NewOrientReverse(tree)
	TFP(reversed, stars, s.limits)
	tree.Close()
}

// SemiExternal contracts goal sources, piping leftover edges straight
// into the pipelined base case.
func (s *Sibeyn) SemiExternal(in edgestream.Rewindable[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], base *kruskal.Pipelined, goal int) {
	tree := edgestream.NewEdgeStream()
	s.run(in, goal, tree, base)
	tree.Consume()
	reversed := edgestream.NewOrientReverse(tree)
	TFP(reversed, stars, s.limits)
	tree.Close()
}

// SupportsMapOnlyReturn reports true: leftover edges can bypass the
// contracted-edge sorter entirely.
func (s *Sibeyn) SupportsMapOnlyReturn() bool { return true }

// ExpectedContractionRatio bounds the surviving node fraction.
func (s *Sibeyn) ExpectedContractionRatio() float64 { return 0.5 }

// run is the contraction loop proper. The input must be sorted
// lexicographically; tree receives one edge per contracted source in
// ascending source order, leftover receives everything that survives.
func (s *Sibeyn) run(in edgestream.Stream[edgestream.Edge], goal int, tree, leftover edgestream.Pusher[edgestream.Edge]) {
	pq := extsort.NewPriorityQueue[edgestream.Edge](edgestream.PQContract{}, edgestream.EdgeCodec{}, s.limits)
	defer pq.Reset()
	neighbors := extsort.NewSequence[edgestream.Node](edgestream.NodeCodec{})
	defer neighbors.Close()

	contracted := 0
	for !pq.Empty() || !in.Empty() {
		uInput := edgestream.MaxNode
		if !in.Empty() {
			uInput = in.Peek().U
		}
		uSignal := edgestream.MaxNode
		if !pq.Empty() {
			uSignal = pq.Top().U
		}
		u := uInput
		if uSignal < u {
			u = uSignal
		}

		// gather the input neighborhood of u; the input is sorted, so
		// the last target gathered is the farthest input candidate
		neighbors.Reset()
		candidateInput := edgestream.MinNode
		for !in.Empty() && in.Peek().U == u {
			candidateInput = in.Peek().V
			neighbors.Push(candidateInput)
			in.Next()
		}

		// the queue order puts the farthest signal for u on top
		signals := edgestream.NewUnique[edgestream.Node](&signalsForSource{pq: pq, source: u})
		candidateSignal := edgestream.MinNode
		if !signals.Empty() {
			candidateSignal = signals.Peek()
		}

		vStar := candidateInput
		if candidateSignal > vStar {
			vStar = candidateSignal
		}
		tree.Push(edgestream.Edge{U: u, V: vStar})

		// re-link every other neighbor of u to vStar
		neighbors.Rewind()
		for !neighbors.Empty() {
			w := neighbors.Peek()
			if w != vStar {
				pq.Push(edgestream.Edge{U: w, V: vStar})
			}
			neighbors.Next()
		}
		for !signals.Empty() {
			w := signals.Peek()
			if w != vStar {
				pq.Push(edgestream.Edge{U: w, V: vStar})
			}
			signals.Next()
		}

		contracted++
		if contracted == goal {
			break
		}
	}

	// leftover: untouched input, then signals deduplicated against
	// their consecutive equals only — parallels across the two parts
	// remain and downstream union-find tolerates them
	for !in.Empty() {
		leftover.Push(in.Peek())
		in.Next()
	}
	prev := edgestream.Edge{U: edgestream.MinNode, V: edgestream.MaxNode}
	for !pq.Empty() {
		e := pq.Pop()
		if e != prev {
			leftover.Push(e)
			prev = e
		}
	}
}

// signalsForSource exposes the queued signal targets of one source as a
// node stream; advancing pops the queue.
type signalsForSource struct {
	pq     *extsort.PriorityQueue[edgestream.Edge]
	source edgestream.Node
}

func (s *signalsForSource) Empty() bool {
	return s.pq.Empty() || s.pq.Top().U != s.source
}

func (s *signalsForSource) Peek() edgestream.Node { return s.pq.Top().V }

func (s *signalsForSource) Next() { s.pq.Pop() }
