// Package gen provides deterministic edge-list generators for the
// benchmark graph families: paths, grids, disjoint cliques, layered
// cubes and Gilbert random graphs.
//
// Every generator emits normalized edges in lexicographic order with
// node IDs starting at 1, so the output feeds an EdgeStream or a binary
// edge file directly, with no sorting pass.
//
// Determinism is explicit: the stochastic generator takes the RNG as a
// parameter — seed it to lock outcomes across runs and tests. Option
// validation panics on meaningless input (a path of one node, a zero
// ratio); generators themselves never fail.
package gen
