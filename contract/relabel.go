package contract

import "github.com/katalvlaran/emcc/edgestream"

// RelabelSource rewrites the source of every edge through the by-node
// sorted star map, streaming both sides once. Edges whose source is not
// a key pass through untouched — orientation preserved, deliberately not
// normalized. A relabel that would produce a self-loop is dropped when
// skipSelfLoops is set. When side is non-nil, every distinct map entry
// is copied into it during the pass (the manager uses this to obtain the
// same map sorted by component without a second scan).
//
// The output arrives grouped for a by-target sort, not sorted; callers
// push into a ReverseLex sorter.
func RelabelSource(
	m edgestream.Stream[edgestream.Label],
	edges edgestream.Stream[edgestream.Edge],
	out edgestream.Pusher[edgestream.Edge],
	side edgestream.Pusher[edgestream.Label],
	skipSelfLoops bool,
) {
	mu := edgestream.NewUnique[edgestream.Label](m)
	for !mu.Empty() {
		entry := mu.Peek()
		if side != nil {
			side.Push(entry)
		}
		for !edges.Empty() {
			e := edges.Peek()
			if e.U > entry.Node {
				break
			}
			if e.U < entry.Node {
				out.Push(e)
			} else if !(skipSelfLoops && entry.Comp == e.V) {
				out.Push(edgestream.Edge{U: entry.Comp, V: e.V})
			}
			edges.Next()
		}
		mu.Next()
	}
	for !edges.Empty() {
		out.Push(edges.Peek())
		edges.Next()
	}
}

// RelabelTarget rewrites the target of every edge through the by-node
// sorted star map; the input must be sorted by target. Unlike
// RelabelSource the output is normalized, which is what downstream
// lexicographic sorters and base cases expect.
func RelabelTarget(
	m edgestream.Stream[edgestream.Label],
	edges edgestream.Stream[edgestream.Edge],
	out edgestream.Pusher[edgestream.Edge],
	skipSelfLoops bool,
) {
	mu := edgestream.NewUnique[edgestream.Label](m)
	for !mu.Empty() {
		entry := mu.Peek()
		for !edges.Empty() {
			e := edges.Peek()
			if e.V > entry.Node {
				break
			}
			if e.V < entry.Node {
				out.Push(e.Normalized())
			} else if !(skipSelfLoops && entry.Comp == e.U) {
				out.Push(edgestream.Edge{U: e.U, V: entry.Comp}.Normalized())
			}
			edges.Next()
		}
		mu.Next()
	}
	for !edges.Empty() {
		out.Push(edges.Peek().Normalized())
		edges.Next()
	}
}
