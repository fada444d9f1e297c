package bundles

import (
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
)

// Options configures a SibeynWithBundles run.
type Options struct {
	// NumBundles is the partition arity; pick it so one bundle's
	// BoundedInterval tables fit the memory budget.
	NumBundles int
	// MinimizeInterbundle turns clusters of same-maximum signals from
	// one bundle into a path through the bundle instead of many
	// separate signals.
	MinimizeInterbundle bool
	// Limits budgets the tree queue and the signal sorters; zero values
	// take DefaultLimits.
	Limits extsort.Limits
}

// SibeynWithBundles solves connected components over a bundle
// partition. Construction consumes the input and processes every
// bundle; afterwards the value reads as a stream of (node,
// representative) labels obtained by draining the tree queue.
type SibeynWithBundles struct {
	bundles  *EquiRanged
	treePQ   *extsort.PriorityQueue[edgestream.Edge]
	limits   extsort.Limits
	minimize bool

	cur     edgestream.Edge
	isEmpty bool
}

// New builds the partition, distributes edges and processes all
// bundles. Edges must be normalized with endpoints in [1, maxID].
func New(edges edgestream.Stream[edgestream.Edge], maxID edgestream.Node, opts Options) *SibeynWithBundles {
	if opts.Limits == (extsort.Limits{}) {
		opts.Limits = extsort.DefaultLimits()
	}
	s := &SibeynWithBundles{
		bundles:  NewEquiRanged(maxID, opts.NumBundles),
		treePQ:   extsort.NewPriorityQueue[edgestream.Edge](edgestream.LexDesc{}, edgestream.EdgeCodec{}, opts.Limits),
		limits:   opts.Limits,
		minimize: opts.MinimizeInterbundle,
	}
	for !edges.Empty() {
		s.bundles.Push(edges.Peek())
		edges.Next()
	}
	for id := 0; id < s.bundles.NumBundles(); id++ {
		s.processBundle(id)
	}
	s.advance()
	return s
}

// Empty reports whether the output stream is exhausted.
func (s *SibeynWithBundles) Empty() bool { return s.isEmpty }

// Peek returns the current (node, representative) label.
func (s *SibeynWithBundles) Peek() edgestream.Label {
	return edgestream.Label{Node: s.cur.U, Comp: s.cur.V}
}

// Next advances the output stream.
func (s *SibeynWithBundles) Next() { s.advance() }

// Close releases the partition and the tree queue.
func (s *SibeynWithBundles) Close() {
	s.bundles.Close()
	s.treePQ.Reset()
}

// advance pops the next tree group: the group's first label carries the
// propagated representative, and every downward tree edge of the group
// forwards it to the child.
func (s *SibeynWithBundles) advance() {
	if s.treePQ.Empty() {
		s.isEmpty = true
		return
	}
	s.cur = s.treePQ.Top()
	source, target := s.cur.U, s.cur.V
	for !s.treePQ.Empty() && s.treePQ.Top().U == source {
		top := s.treePQ.Pop()
		if top.U > top.V {
			s.treePQ.Push(edgestream.Edge{U: top.V, V: target})
		}
	}
}

func (s *SibeynWithBundles) processBundle(id int) {
	lower, upper := s.bundles.Lower(id), s.bundles.Upper(id)

	// solve the bundle-local subgraph; components maps each present
	// node to its local star center after Finalize
	components := kruskal.NewShiftMap[edgestream.Node, edgestream.Node](lower, upper)
	local := kruskal.NewBoundedInterval(components, lower, upper)
	s.bundles.PushInto(local, id)
	local.Finalize()

	// maximas maps each local star center to the farthest neighbor of
	// its component seen so far
	maximas := kruskal.NewShiftMap[edgestream.Node, edgestream.Node](lower, upper)

	if id < s.bundles.NumBundles()-1 {
		inter := s.bundles.Inter(id)
		inter.Rewind()
		for !inter.Empty() {
			e := inter.Peek()
			comp := components.Get(e.U, e.U)
			maximas.InsertOrMax(comp, e.V)
			inter.Next()
		}
		inter.Rewind()
		if s.minimize && inter.Size() > 1 {
			s.forwardMinimized(inter, components, maximas)
		} else {
			for !inter.Empty() {
				e := inter.Peek()
				comp := components.Get(e.U, e.U)
				max := maximas.At(comp)
				if e.V != max {
					s.bundles.Push(edgestream.Edge{U: e.V, V: max})
				}
				inter.Next()
			}
		}
	}

	// downward tree edges; component roots push self-loops on purpose,
	// they terminate the propagation in the output drain
	for u := upper; ; u-- {
		if components.Contains(u) || maximas.Contains(u) {
			comp := components.Get(u, u)
			maximas.InsertOrMax(comp, u)
			s.treePQ.Push(edgestream.Edge{U: maximas.At(comp), V: u})
		}
		if u == lower {
			break
		}
	}
}

// forwardMinimized groups the outgoing signals by target; inside a run
// with the same maximum and the same source bundle, consecutive signals
// become a path through that bundle, and only the run's last signal
// jumps to the maximum.
func (s *SibeynWithBundles) forwardMinimized(inter *edgestream.EdgeSequence, components, maximas *kruskal.ShiftMap[edgestream.Node, edgestream.Node]) {
	signals := extsort.NewSorter[edgestream.Edge](edgestream.ReverseLex{}, edgestream.EdgeCodec{}, s.limits)
	defer signals.Reset()
	for !inter.Empty() {
		e := inter.Peek()
		comp := components.Get(e.U, e.U)
		max := maximas.At(comp)
		if e.V != max {
			signals.Push(edgestream.Edge{U: e.V, V: max})
		}
		inter.Next()
	}
	if signals.Size() == 0 {
		return
	}
	signals.Sort()
	unique := edgestream.NewUnique[edgestream.Edge](signals)

	e := unique.Peek()
	prevSource := e.U
	prevBundle := s.bundles.BundleOf(e.U)
	prevMax := e.V
	unique.Next()
	for !unique.Empty() {
		e = unique.Peek()
		srcBundle := s.bundles.BundleOf(e.U)
		if e.V == prevMax && srcBundle == prevBundle {
			s.bundles.Push(edgestream.Edge{U: prevSource, V: e.U})
		} else {
			s.bundles.Push(edgestream.Edge{U: prevSource, V: prevMax})
		}
		prevSource, prevBundle, prevMax = e.U, srcBundle, e.V
		unique.Next()
	}
	s.bundles.Push(edgestream.Edge{U: prevSource, V: prevMax})
}
