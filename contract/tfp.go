package contract

import (
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

// TFP replays a contraction tree in reverse, assigning every node the
// root of its tree. Tree edges must be oriented larger-to-smaller
// (opposite of the contraction output; wrap it in OrientReverse). The
// scan walks sources in decreasing order; a queue that serves the largest
// pending node first (LexDesc) carries each resolved root forward to the
// children still ahead.
//
// Every node of the tree receives exactly one star; roots map to
// themselves. Child stars leave through a sorter, so stars are emitted
// root-labels first, then sorted by node.
func TFP(tree edgestream.Stream[edgestream.Edge], out edgestream.Pusher[edgestream.Label], limits extsort.Limits) {
	pq := extsort.NewPriorityQueue[edgestream.Edge](edgestream.LexDesc{}, edgestream.EdgeCodec{}, limits)
	defer pq.Reset()

	reversed := extsort.NewSorter[edgestream.Edge](edgestream.LexDesc{}, edgestream.EdgeCodec{}, limits)
	defer reversed.Reset()
	edgestream.Flush[edgestream.Edge](tree, reversed)
	reversed.Sort()

	starSorter := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, limits)
	defer starSorter.Reset()

	scan(reversed, pq, starSorter, out, nil)

	starSorter.Sort()
	for !starSorter.Empty() {
		se := starSorter.Peek()
		out.Push(edgestream.Label{Node: se.U, Comp: se.V})
		starSorter.Next()
	}
}

// TFPAfterBasecase is TFP seeded with the star mapping of a base case:
// the stars are copied to the output and into the queue, so tree nodes
// whose root was already resolved by the base case inherit that
// resolution instead of becoming roots of their own.
func TFPAfterBasecase(tree edgestream.Stream[edgestream.Edge], baseStars edgestream.Stream[edgestream.Label], out edgestream.Pusher[edgestream.Label], limits extsort.Limits) {
	pq := extsort.NewPriorityQueue[edgestream.Edge](edgestream.LexDesc{}, edgestream.EdgeCodec{}, limits)
	defer pq.Reset()

	for !baseStars.Empty() {
		l := baseStars.Peek()
		pq.Push(edgestream.Edge{U: l.Node, V: l.Comp})
		out.Push(l)
		baseStars.Next()
	}

	reversed := extsort.NewSorter[edgestream.Edge](edgestream.LexDesc{}, edgestream.EdgeCodec{}, limits)
	defer reversed.Reset()
	edgestream.Flush[edgestream.Edge](tree, reversed)
	reversed.Sort()

	scan(reversed, pq, nil, out, out)
}

// scan is the shared reverse walk. Child assignments go to childSorter
// when non-nil, otherwise directly to childDirect; root self-labels
// always go to out.
func scan(
	reversed *extsort.Sorter[edgestream.Edge],
	pq *extsort.PriorityQueue[edgestream.Edge],
	childSorter *extsort.Sorter[edgestream.Edge],
	out edgestream.Pusher[edgestream.Label],
	childDirect edgestream.Pusher[edgestream.Label],
) {
	currentNode := edgestream.MaxNode
	currentRoot := edgestream.MaxNode
	for !reversed.Empty() {
		e := reversed.Peek()
		if e.U != currentNode {
			currentNode = e.U
			currentRoot = e.U
			// signals addressed past the scan front missed every node;
			// they were sent to roots and are dropped
			for !pq.Empty() && pq.Top().U > e.U {
				pq.Pop()
			}
			if !pq.Empty() && pq.Top().U == e.U {
				currentRoot = pq.Top().V
				pq.Pop()
			}
			if currentNode == currentRoot {
				out.Push(edgestream.Label{Node: currentNode, Comp: currentNode})
			}
		}
		assignment := edgestream.Edge{U: e.V, V: currentRoot}
		if childSorter != nil {
			childSorter.Push(assignment)
		} else {
			childDirect.Push(edgestream.Label{Node: assignment.U, Comp: assignment.V})
		}
		pq.Push(assignment)
		reversed.Next()
	}
}
