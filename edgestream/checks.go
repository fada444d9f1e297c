package edgestream

import "github.com/katalvlaran/emcc/extsort"

// IsSorted reports whether s is non-strictly sorted under ord. The
// stream is rewound before returning, succeed or fail.
func IsSorted[T any](s Rewindable[T], ord extsort.Ordering[T]) bool {
	first := true
	var prev T
	ok := true
	for !s.Empty() {
		v := s.Peek()
		if !first && ord.Less(v, prev) {
			ok = false
			break
		}
		prev = v
		first = false
		s.Next()
	}
	s.Rewind()
	return ok
}

// DisjointSources reports whether no source node appears in both sorted
// edge streams. Both streams are rewound before returning.
func DisjointSources(a, b Rewindable[Edge]) bool {
	ok := true
	for !a.Empty() && !b.Empty() {
		ea, eb := a.Peek(), b.Peek()
		if ea.U == eb.U {
			ok = false
			break
		}
		if (Lex{}).Less(ea, eb) {
			a.Next()
		} else {
			b.Next()
		}
	}
	a.Rewind()
	b.Rewind()
	return ok
}

// OnlyStars reports whether the sorted edge stream is a star set: each
// source appears at most once, and no source also appears as a target of
// another edge (self-loops on roots are permitted). The stream is
// rewound before returning.
func OnlyStars(edges Rewindable[Edge], limits extsort.Limits) bool {
	targets := extsort.NewSorter[Node](NodeAsc{}, NodeCodec{}, limits)
	defer targets.Reset()
	for !edges.Empty() {
		targets.Push(edges.Peek().V)
		edges.Next()
	}
	targets.Sort()
	edges.Rewind()

	ok := true
	prevSource := MinNode
	for !edges.Empty() {
		e := edges.Peek()
		if e.U == prevSource {
			ok = false
			break
		}
		prevSource = e.U
		for !targets.Empty() && targets.Peek() < e.U {
			targets.Next()
		}
		if !targets.Empty() && targets.Peek() == e.U && !e.SelfLoop() {
			ok = false
			break
		}
		edges.Next()
	}
	edges.Rewind()
	return ok
}

// LabelStarsOnly reports whether a by-node sorted label stream is a
// well-formed star mapping: keys strictly increasing (hence unique) and
// every referenced representative present as a fixed point. The stream
// is rewound before returning.
func LabelStarsOnly(labels Rewindable[Label], limits extsort.Limits) bool {
	comps := extsort.NewSorter[Node](NodeAsc{}, NodeCodec{}, limits)
	defer comps.Reset()

	ok := true
	first := true
	var prev Label
	for !labels.Empty() {
		l := labels.Peek()
		if !first && l.Node <= prev.Node {
			ok = false
			break
		}
		comps.Push(l.Comp)
		prev = l
		first = false
		labels.Next()
	}
	labels.Rewind()
	if !ok {
		return false
	}

	comps.Sort()
	uniqueComps := NewUnique[Node](comps)
	// second pass: every representative maps to itself
	for !labels.Empty() && !uniqueComps.Empty() {
		l := labels.Peek()
		c := uniqueComps.Peek()
		if c < l.Node {
			ok = false
			break
		}
		if c == l.Node {
			if l.Comp != l.Node {
				ok = false
				break
			}
			uniqueComps.Next()
		}
		labels.Next()
	}
	if !uniqueComps.Empty() {
		ok = false
	}
	labels.Rewind()
	return ok
}
