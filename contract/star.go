package contract

import (
	"math/rand"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
)

// Star is the randomized star contraction: each source keeps one
// uniformly random out-edge with probability 1/2, sampled edges whose
// source is another sampled edge's target are dropped (path breaking),
// and the survivors form stars (leaf, center) the original edges are
// relabelled through. Roughly a quarter of the nodes disappear per
// application.
type Star struct {
	limits         extsort.Limits
	rng            *rand.Rand
	nodeUpperBound edgestream.Node
}

// NewStar returns the strategy drawing from rng, which must not be nil.
func NewStar(limits extsort.Limits, rng *rand.Rand) *Star {
	if rng == nil {
		panic("contract: NewStar(nil rng)")
	}
	return &Star{limits: limits, rng: rng}
}

// NodeUpperBound reports the surviving-node bound of the last run.
func (s *Star) NodeUpperBound() edgestream.Node { return s.nodeUpperBound }

// SupportsMapOnlyReturn reports true.
func (s *Star) SupportsMapOnlyReturn() bool { return true }

// ExpectedContractionRatio bounds the surviving node fraction.
func (s *Star) ExpectedContractionRatio() float64 { return 0.75 }

// FullyExternal contracts one round, pushing relabelled surviving edges
// into contracted (normalized, self-loops dropped, parallels retained)
// and the star mapping into stars. The goal is ignored — the coin
// drives the contraction amount.
func (s *Star) FullyExternal(in edgestream.Rewindable[edgestream.Edge], contracted edgestream.Pusher[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], _ int) {
	s.run(in, stars, contracted)
}

// SemiExternal contracts one round, piping surviving edges straight
// into the pipelined base case.
func (s *Star) SemiExternal(in edgestream.Rewindable[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], base *kruskal.Pipelined, _ int) {
	s.run(in, stars, base)
}

func (s *Star) run(in edgestream.Rewindable[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], out edgestream.Pusher[edgestream.Edge]) {
	lim := s.limits

	// one random out-edge per kept source, targets split off for the
	// path-breaking filter
	random := edgestream.NewRandomNeighborPerSource(in, 0.5, s.rng)
	defer random.Close()
	targets := extsort.NewSorter[edgestream.Node](edgestream.NodeAsc{}, edgestream.NodeCodec{}, lim)
	defer targets.Reset()
	split := edgestream.NewSplit[edgestream.Edge, edgestream.Node](random, targets, func(e edgestream.Edge) edgestream.Node { return e.V })
	edgestream.Drain[edgestream.Edge](split)
	targets.Sort()
	targetsUnique := edgestream.NewUnique[edgestream.Node](targets)
	split.Rewind()

	// break paths: a sampled edge whose source is itself a sampled
	// target would chain two hops; drop it
	starEdges := edgestream.NewHitFilter[edgestream.Edge, edgestream.Node](
		split, targetsUnique,
		func(e edgestream.Edge, t edgestream.Node) bool { return e.U <= t },
		func(e edgestream.Edge, t edgestream.Node) bool { return e.U == t },
	)

	s.nodeUpperBound = edgestream.Node(random.NumSources())

	// relabel sources through the stars, emitting the star mapping as
	// the scan passes each star edge
	srcUpdated := extsort.NewSorter[edgestream.Edge](edgestream.ReverseLex{}, edgestream.EdgeCodec{}, lim)
	defer srcUpdated.Reset()
	in.Rewind()
	for !in.Empty() {
		e := in.Peek()
		for !starEdges.Empty() && starEdges.Peek().U < e.U {
			se := starEdges.Peek()
			stars.Push(edgestream.Label{Node: se.U, Comp: se.V})
			stars.Push(edgestream.Label{Node: se.V, Comp: se.V})
			starEdges.Next()
		}
		if !starEdges.Empty() && starEdges.Peek().U == e.U {
			newSource := starEdges.Peek().V
			if newSource != e.V {
				srcUpdated.Push(edgestream.Edge{U: newSource, V: e.V})
			}
		} else {
			srcUpdated.Push(e)
		}
		in.Next()
	}
	for !starEdges.Empty() {
		se := starEdges.Peek()
		stars.Push(edgestream.Label{Node: se.U, Comp: se.V})
		stars.Push(edgestream.Label{Node: se.V, Comp: se.V})
		starEdges.Next()
	}
	srcUpdated.Sort()

	// relabel targets on the by-target sorted pass, counting distinct
	// targets into the surviving-node bound
	starEdges.Rewind()
	prevTarget := edgestream.MaxNode
	for !srcUpdated.Empty() {
		e := srcUpdated.Peek()
		if e.V != prevTarget {
			s.nodeUpperBound++
		}
		prevTarget = e.V
		for !starEdges.Empty() && starEdges.Peek().U < e.V {
			starEdges.Next()
		}
		if !starEdges.Empty() && starEdges.Peek().U == e.V {
			newTarget := starEdges.Peek().V
			if newTarget != e.U {
				out.Push(edgestream.Edge{U: e.U, V: newTarget}.Normalized())
			}
		} else {
			out.Push(e.Normalized())
		}
		srcUpdated.Next()
	}
}
