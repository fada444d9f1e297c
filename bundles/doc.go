// Package bundles implements the bundled Sibeyn/Meyer variant: node IDs
// are partitioned into equal-width intervals, each interval is solved by
// a dense-interval Kruskal that fits memory, and roots propagate across
// intervals through signal edges and one external priority queue.
//
// What:
//
//   - EquiRanged: the ordered partition of [1, maxID] into equal-width
//     bundles, each holding an intrabundle and an interbundle append
//     sequence.
//   - SibeynWithBundles: pushes every edge to its bundle, runs
//     BoundedInterval Kruskal per bundle in order, relinks interbundle
//     edges through per-component maxima (optionally minimized into
//     paths through the bundle), and drains the resulting tree queue as
//     a (node, representative) stream.
//
// Why:
//
//   - When the node range is known and dense, the bundle partition
//     replaces the general recursion with one pass of local Kruskal
//     runs; the only global structure left is the tree queue.
//
// Errors:
//
//   - Construction panics on a degenerate partition (zero bundles or a
//     zero-width interval); edges outside [1, maxID] are programming
//     errors of the caller.
package bundles
