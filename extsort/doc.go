// Package extsort provides the memory-bounded external containers that
// back every pipeline in this module: a push-sort-consume sorter, a
// mergeable priority queue and an append-only blocked sequence, all of
// which spill to temporary files once their internal-memory budget is
// exhausted.
//
// What:
//
//   - Sorter[T]: three-phase container (push → Sort → consume/Rewind),
//     producing items in the order of a caller-supplied Ordering.
//   - PriorityQueue[T]: min-queue under an Ordering; Push and Pop may be
//     interleaved freely.
//   - Sequence[T]: append-only spill-backed list with a forward cursor.
//   - Limits: the single memory-budget record threaded through all
//     constructors; there is no process-wide tunable state.
//
// Why:
//
//   - Edge lists with tens of billions of entries cannot live in RAM;
//     sorting, queueing and buffering must degrade to sequential block
//     I/O instead of random access.
//   - The ordering object is first-class: several algorithms in this
//     module (notably the Sibeyn contraction) depend on non-obvious
//     total orders, so the order travels with the container.
//
// Complexity:
//
//   - Sorter: O(n log n) comparisons, O(n/B) I/Os for n items spilled in
//     blocks of B.
//   - PriorityQueue: amortized O(log n) per operation, sequential I/O on
//     spill and refill.
//   - Sequence: O(1) amortized per push, sequential reads.
//
// Errors:
//
//   - I/O failures are sticky: the first failure is retained and reported
//     by Err; subsequent operations are no-ops. Callers check Err at
//     stage boundaries and abort — there are no retries.
//   - Misuse (pushing to a consumed sorter, peeking an empty cursor) is a
//     programming error and panics.
package extsort
