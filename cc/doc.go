// Package cc is the recursive external-memory connected-components
// engine: the subproblem manager that decides, level by level, whether
// to contract, whether to fall through to the semi-external base case,
// and how to sample, recurse, relabel and merge component maps.
//
// What:
//
//   - Manager: runs the whole computation at construction and then
//     reads out as a stream of (node, representative) labels, sorted by
//     node with duplicates suppressed.
//   - Policy: the three decision functions — should a level contract,
//     how many nodes, and with which sampling probability 2^-k.
//     Variant(0..9) is the fixed policy table: 0 always contracts n/2
//     and samples at 1/2 (the classic KKT setting); 1–5 contract only
//     below the top level with k fixed at the variant number; 6–9 are
//     adaptive on the edge density m/n.
//
// Data flow per level:
//
//	edges → [contract → contracted edges + contraction stars]
//	      → sample(2^-k) → {left, right}
//	      → solve(left) → relabel right by left → solve(right)
//	      → merge maps → [re-integrate contraction stars]
//
// The four short-circuits of the reference flow are preserved by name:
// "pipelined base case", "immediate empty", "immediate semi-external"
// and "after-sampling semi-external".
//
// A subproblem is routed to the semi-external base case as soon as
// n · 8 · 8 ≤ M or 2 · 8 · m ≤ M, which bounds the recursion depth at
// O(log n) and the total cost at O(sort(m · log n)) I/Os.
package cc
