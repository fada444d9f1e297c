// Package edgestream defines the edge data model and the streaming
// vocabulary of the connected-components engine: node and edge types with
// their total orders, the compact append-only EdgeStream container, and
// the pull-based adapters every pipeline is composed from.
//
// What:
//
//   - Node, Edge, Label: the wire types. Node IDs live strictly between
//     MinNode and MaxNode; the top bit of a Node is reserved by the
//     EdgeStream encoding, so valid IDs occupy 63 bits.
//   - Orders: Lex (u,v), ReverseLex (v,u), UnorderedLex (min,max),
//     LexDesc (reverse scan), PQContract (u ascending, v descending —
//     the order the Sibeyn contraction is built on), and the two Label
//     orders, ByNode and ByComp.
//   - EdgeStream: append-only, rewindable, sorted edge container with a
//     run-length source encoding (one tagged word per source change, one
//     word per target).
//   - Adapters: Unique, ConsecutiveFilter, Merge2, MergeUnique2, Split,
//     HitFilter, OrientReverse, OrientNormal, Flush, the sampling coins
//     and RandomNeighborPerSource.
//   - Invariant predicates: IsSorted, OnlyStars, DisjointSources,
//     LabelStarsOnly.
//
// Why:
//
//   - Every algorithm in this module is a chain of these cursors; keeping
//     the vocabulary small and strict is what makes the contraction and
//     relabelling passes verifiable.
//
// Errors:
//
//   - Pushing edges out of order, self-loops or parallels against policy,
//     or IDs touching a reserved sentinel is a programming error and
//     panics. I/O failures surface through Err on the backing container.
package edgestream
