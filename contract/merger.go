package contract

import "github.com/katalvlaran/emcc/edgestream"

// MergeComponents composes two star maps over a shared intermediate
// universe. left holds (u, v) sorted by v — nodes labelled with an
// intermediate component — and right holds (v, w) sorted by v — the
// final label of each intermediate. Every right label is emitted as-is;
// every left label whose component matches a right key is rewritten to
// (u, w); left labels without a match pass through unchanged (their
// component is already final).
func MergeComponents(
	left edgestream.Stream[edgestream.Label],
	right edgestream.Stream[edgestream.Label],
	out edgestream.Pusher[edgestream.Label],
) {
	lu := edgestream.NewUnique[edgestream.Label](left)
	ru := edgestream.NewUnique[edgestream.Label](right)

	for !ru.Empty() {
		r := ru.Peek()
		out.Push(r)
		for !lu.Empty() {
			l := lu.Peek()
			if l.Comp > r.Node {
				break
			}
			if l.Comp < r.Node {
				out.Push(l)
			} else {
				out.Push(edgestream.Label{Node: l.Node, Comp: r.Comp})
			}
			lu.Next()
		}
		ru.Next()
	}
	edgestream.Flush[edgestream.Label](lu, out)
}
