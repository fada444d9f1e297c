// Package kruskal implements the semi-external base cases of the
// connected-components engine: union-find over an in-memory node table
// fed by external edge streams.
//
// What:
//
//   - Stream: consumes whole edge streams, then emits one (node, root)
//     label per distinct node seen.
//   - Pipelined: the same structure fed one edge at a time, for stages
//     that relabel and solve in a single pass.
//   - BoundedInterval: union-find over a contiguous node interval backed
//     by a dense ShiftMap, used per bundle by the bundled Sibeyn variant.
//
// Why:
//
//   - The recursion bottoms out the moment the node set fits in memory;
//     from there a single scan with path compression beats any further
//     external machinery.
//
// Complexity:
//
//   - O((n + m)·α(n)) time over n mapped nodes and m edges;
//     8 words per node for Stream/Pipelined (parent, height, id remap
//     and hash overhead), 4 words per node for BoundedInterval.
//
// Errors:
//
//   - Exceeding a configured node capacity is a programming error of the
//     routing layer and panics; the predicate deciding semi-external
//     handleability lives with the caller.
package kruskal
