// Package emcc computes connected components of undirected graphs whose
// edge lists do not fit in main memory.
//
// 🚀 What is emcc?
//
//	A streaming external-memory engine for graphs with billions of
//	edges on a single machine with bounded RAM and fast block storage:
//
//	  • Recursive KKT-style engine: contract, sample, solve, relabel, merge
//	  • Sibeyn/Meyer, Borůvka and randomized star contractions
//	  • Semi-external Kruskal base cases with union-find
//	  • A bundled variant that solves contiguous node ranges locally
//
// ✨ Why choose emcc?
//
//   - Near-optimal I/O     — streams, external sorters and external
//     priority queues instead of random access
//   - Deterministic        — every run is a pure function of the seed
//   - Composable           — pull-based stream adapters snap together
//   - Bounded memory       — one Limits record budgets every container
//
// Everything is organized under focused packages:
//
//	extsort/    — external sorter, priority queue and blocked sequence
//	edgestream/ — edge data model, EdgeStream container, stream adapters
//	kruskal/    — semi-external union-find base cases
//	contract/   — Sibeyn, Borůvka and star contractions, TFP, relabelling
//	cc/         — the recursive subproblem manager and policy variants
//	bundles/    — the bundled Sibeyn variant over node-range partitions
//	gen/        — deterministic benchmark graph generators
//	edgefile/   — binary and ASCII edge file readers, writers, converters
//	stats/      — the per-stage CSV log
//	cmd/emcc    — the command-line driver
//
// Quick sketch of the main engine's data flow:
//
//	input edges → contraction → sample(2^-k) → {left, right}
//	            → solve(left) → relabel(right) → solve(right)
//	            → merge component maps → star mapping
//
//	go get github.com/katalvlaran/emcc
package emcc
