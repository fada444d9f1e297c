// Package contract implements the node-contraction strategies of the
// connected-components engine and the streaming machinery they share:
// time-forward processing, edge relabelling and component-map merging.
//
// What:
//
//   - Sibeyn: priority-queue contraction toward a contraction goal. The
//     queue is ordered (source ascending, target descending), so for the
//     smallest live source its farthest neighbor is on top; that
//     neighbor becomes the tree parent and every other neighbor is
//     linked to it by a signal edge.
//   - Boruvka: one fully external Borůvka phase — minimum-neighbor
//     forest, pseudo-tree roots, representative propagation by a
//     rank-and-ship scan, then relabelling of the original edges.
//   - Star: randomized star contraction — one random out-neighbor per
//     source, path breaking, then relabelling.
//   - TFP: replays a contraction tree in reverse, assigning every node
//     the root of its tree.
//   - RelabelSource / RelabelTarget, MergeComponents: the pipelined
//     relabel and merge passes used by every strategy and the manager.
//
// Why:
//
//   - Contraction shrinks the node set before the recursive engine
//     samples; each strategy trades passes against expected shrinkage
//     (Sibeyn and Boruvka halve, Star removes about a quarter).
//
// Orientation contract:
//
//   - RelabelSource preserves the orientation of untouched edges while
//     RelabelTarget normalizes its output. This asymmetry is load-bearing:
//     TFP consumes oriented tree edges and must not see them normalized.
//
// Errors:
//
//   - Strategies panic when invoked outside their capabilities (Boruvka
//     has no semi-external form). I/O failures surface through the
//     containers' Err methods.
package contract
