package extsort

import (
	"bufio"
	"container/heap"
	"os"
)

// PriorityQueue is an external-memory min-queue under the given Ordering.
// Push and Pop may be interleaved freely. Items live in an in-memory
// insertion heap bounded by Limits.PQMem; when it fills, its contents are
// drained in order into a spilled run, and the queue serves the minimum
// across the insertion heap and all spilled runs. Limits.PQPoolMem sizes
// the write buffer of each spill (one sixteenth of it, clamped to
// 4 KiB–1 MiB); each spilled run is read through a fixed 64 KiB buffer.
//
// The ordering object is part of the queue's identity: the Sibeyn
// contraction relies on a queue ordered by (source ascending, target
// descending), and that order must be supplied here, not patched around.
type PriorityQueue[T any] struct {
	ord      Ordering[T]
	codec    Codec[T]
	itemSize int
	capItems int
	bufBytes int

	ins     insHeap[T]
	runs    []*runFile
	cursors []*fileCursor[T]
	order   mergeHeap[T]
	size    int
	err     error
}

// NewPriorityQueue returns an empty queue ordered by ord.
func NewPriorityQueue[T any](ord Ordering[T], codec Codec[T], limits Limits) *PriorityQueue[T] {
	itemSize := codec.EncodedSize()
	bufBytes := int(limits.PQPoolMem / 16)
	if bufBytes < 1<<12 {
		bufBytes = 1 << 12
	}
	if bufBytes > 1<<20 {
		bufBytes = 1 << 20
	}
	return &PriorityQueue[T]{
		ord:      ord,
		codec:    codec,
		itemSize: itemSize,
		capItems: itemCapacity(limits.PQMem, itemSize),
		bufBytes: bufBytes,
		ins:      insHeap[T]{ord: ord},
		order:    mergeHeap[T]{ord: ord},
	}
}

// Push inserts v. A no-op after the first I/O failure.
func (q *PriorityQueue[T]) Push(v T) {
	if q.err != nil {
		return
	}
	heap.Push(&q.ins, v)
	q.size++
	if q.ins.Len() >= q.capItems {
		q.spill()
	}
}

// Empty reports whether the queue holds no items.
func (q *PriorityQueue[T]) Empty() bool { return q.size == 0 }

// Size reports the number of items currently queued.
func (q *PriorityQueue[T]) Size() int { return q.size }

// Err reports the first I/O failure, if any.
func (q *PriorityQueue[T]) Err() error { return q.err }

// Top returns the minimum item. Panics when Empty.
func (q *PriorityQueue[T]) Top() T {
	if q.size == 0 {
		panic("extsort: Top on empty PriorityQueue")
	}
	if q.ins.Len() == 0 {
		return q.order.entries[0].head
	}
	if len(q.order.entries) == 0 {
		return q.ins.items[0]
	}
	if q.ord.Less(q.order.entries[0].head, q.ins.items[0]) {
		return q.order.entries[0].head
	}
	return q.ins.items[0]
}

// Pop removes the minimum item. Panics when Empty.
func (q *PriorityQueue[T]) Pop() T {
	if q.size == 0 {
		panic("extsort: Pop on empty PriorityQueue")
	}
	q.size--
	fromRuns := q.ins.Len() == 0 ||
		(len(q.order.entries) > 0 && q.ord.Less(q.order.entries[0].head, q.ins.items[0]))
	if !fromRuns {
		return heap.Pop(&q.ins).(T)
	}
	top := q.order.entries[0]
	c := q.cursors[top.src]
	if err := c.advance(); err != nil {
		q.fail(err)
		q.size = 0
		return top.head
	}
	if c.empty() {
		heap.Pop(&q.order)
	} else {
		q.order.entries[0].head = c.head()
		heap.Fix(&q.order, 0)
	}
	return top.head
}

// Reset discards all items and spilled runs.
func (q *PriorityQueue[T]) Reset() {
	for _, rf := range q.runs {
		if rf.f != nil {
			name := rf.f.Name()
			rf.f.Close()
			os.Remove(name)
		}
	}
	q.runs = nil
	q.cursors = nil
	q.order.entries = nil
	q.ins.items = nil
	q.size = 0
	q.err = nil
}

// spill drains the insertion heap, in order, into a new run.
func (q *PriorityQueue[T]) spill() {
	f, err := os.CreateTemp("", "emcc-pq-*")
	if err != nil {
		q.fail(err)
		return
	}
	w := bufio.NewWriterSize(f, q.bufBytes)
	scratch := make([]byte, q.itemSize)
	items := 0
	for q.ins.Len() > 0 {
		v := heap.Pop(&q.ins).(T)
		q.codec.Encode(scratch, v)
		if _, werr := w.Write(scratch); werr != nil {
			q.fail(werr)
			f.Close()
			os.Remove(f.Name())
			return
		}
		items++
	}
	if err := w.Flush(); err != nil {
		q.fail(err)
		f.Close()
		os.Remove(f.Name())
		return
	}
	rf := &runFile{f: f, items: items}
	q.runs = append(q.runs, rf)
	c := &fileCursor[T]{codec: q.codec, scratch: make([]byte, q.itemSize), rf: rf}
	if err := c.open(); err != nil {
		q.fail(err)
		return
	}
	q.cursors = append(q.cursors, c)
	if !c.empty() {
		heap.Push(&q.order, mergeEntry[T]{head: c.head(), src: len(q.cursors) - 1})
	}
}

func (q *PriorityQueue[T]) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// insHeap is the in-memory insertion buffer, a plain binary min-heap.
type insHeap[T any] struct {
	ord   Ordering[T]
	items []T
}

func (h *insHeap[T]) Len() int            { return len(h.items) }
func (h *insHeap[T]) Less(i, j int) bool  { return h.ord.Less(h.items[i], h.items[j]) }
func (h *insHeap[T]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *insHeap[T]) Push(x any)          { h.items = append(h.items, x.(T)) }
func (h *insHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	v := old[n-1]
	h.items = old[:n-1]
	return v
}
