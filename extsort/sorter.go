package extsort

import (
	"bufio"
	"container/heap"
	"io"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"
)

// spillWorkers bounds how many spilled runs are sorted and written
// concurrently while the caller keeps pushing.
const spillWorkers = 2

type sorterState int

const (
	sorterWriting sorterState = iota
	sorterReading
)

// Sorter is the push → Sort → consume container. Items are pushed in any
// order; once the in-memory buffer exceeds the Limits.SorterMem budget a
// sorted run is spilled to a temporary file; Sort seals the write phase
// and exposes a cursor over the k-way merge of all runs.
//
// The cursor order is exactly the Ordering handed to NewSorter, with ties
// broken by insertion order (the merge is stable).
type Sorter[T any] struct {
	ord      Ordering[T]
	codec    Codec[T]
	itemSize int
	capItems int

	state sorterState
	buf   []T
	runs  []*runFile
	group *errgroup.Group
	size  int
	err   error

	cursors   []sortCursor[T]
	order     mergeHeap[T]
	exhausted bool
}

type runFile struct {
	f     *os.File
	items int
}

// NewSorter returns an empty sorter ordered by ord, budgeted by
// limits.SorterMem.
func NewSorter[T any](ord Ordering[T], codec Codec[T], limits Limits) *Sorter[T] {
	itemSize := codec.EncodedSize()
	return &Sorter[T]{
		ord:      ord,
		codec:    codec,
		itemSize: itemSize,
		capItems: itemCapacity(limits.SorterMem, itemSize),
	}
}

// Push adds v to the unsorted buffer. Panics if the sorter has been
// sorted and not Reset.
func (s *Sorter[T]) Push(v T) {
	if s.state != sorterWriting {
		panic("extsort: Push on sorted Sorter")
	}
	if s.err != nil {
		return
	}
	s.buf = append(s.buf, v)
	s.size++
	if len(s.buf) >= s.capItems {
		s.spillAsync(s.buf)
		s.buf = make([]T, 0, s.capItems)
	}
}

// Size reports the number of items pushed since the last Reset.
func (s *Sorter[T]) Size() int { return s.size }

// Err reports the first I/O failure, if any.
func (s *Sorter[T]) Err() error { return s.err }

// Sort seals the write phase and positions the cursor on the smallest
// item. Calling Sort on an already-sorted sorter just rewinds it.
func (s *Sorter[T]) Sort() {
	if s.state == sorterReading {
		s.Rewind()
		return
	}
	sort.SliceStable(s.buf, func(i, j int) bool { return s.ord.Less(s.buf[i], s.buf[j]) })
	if s.group != nil {
		if err := s.group.Wait(); err != nil {
			s.fail(err)
		}
		s.group = nil
	}
	s.state = sorterReading
	s.Rewind()
}

// SortReuse is Sort for a sorter whose prior read state should be
// consumed and its buffers repartitioned; kept as a distinct name because
// call sites that refill a sorter after Reset read better with it.
func (s *Sorter[T]) SortReuse() { s.Sort() }

// Rewind restarts the cursor at the smallest item. Panics while writing.
func (s *Sorter[T]) Rewind() {
	if s.state != sorterReading {
		panic("extsort: Rewind on unsorted Sorter")
	}
	s.cursors = s.cursors[:0]
	for _, rf := range s.runs {
		c := &fileCursor[T]{codec: s.codec, scratch: make([]byte, s.itemSize), rf: rf}
		if err := c.open(); err != nil {
			s.fail(err)
			s.exhausted = true
			return
		}
		s.cursors = append(s.cursors, c)
	}
	s.cursors = append(s.cursors, &memCursor[T]{items: s.buf})
	s.order = mergeHeap[T]{ord: s.ord}
	for i, c := range s.cursors {
		if !c.empty() {
			s.order.entries = append(s.order.entries, mergeEntry[T]{head: c.head(), src: i})
		}
	}
	heap.Init(&s.order)
	s.exhausted = len(s.order.entries) == 0
}

// Empty reports whether the cursor has run off the end.
func (s *Sorter[T]) Empty() bool { return s.exhausted }

// Peek returns the smallest remaining item. Panics when Empty.
func (s *Sorter[T]) Peek() T {
	if s.exhausted {
		panic("extsort: Peek on empty Sorter")
	}
	return s.order.entries[0].head
}

// Next discards the smallest remaining item. Panics when Empty.
func (s *Sorter[T]) Next() {
	if s.exhausted {
		panic("extsort: Next on empty Sorter")
	}
	src := s.order.entries[0].src
	c := s.cursors[src]
	if err := c.advance(); err != nil {
		s.fail(err)
		s.exhausted = true
		return
	}
	if c.empty() {
		heap.Pop(&s.order)
	} else {
		s.order.entries[0].head = c.head()
		heap.Fix(&s.order, 0)
	}
	s.exhausted = len(s.order.entries) == 0
}

// Reset discards contents and spilled runs and returns to the write phase.
func (s *Sorter[T]) Reset() {
	if s.group != nil {
		_ = s.group.Wait()
		s.group = nil
	}
	for _, rf := range s.runs {
		if rf.f != nil {
			name := rf.f.Name()
			rf.f.Close()
			os.Remove(name)
		}
	}
	s.runs = nil
	s.cursors = nil
	s.buf = s.buf[:0]
	s.size = 0
	s.state = sorterWriting
	s.exhausted = false
	s.err = nil
}

func (s *Sorter[T]) spillAsync(buf []T) {
	if s.group == nil {
		s.group = new(errgroup.Group)
		s.group.SetLimit(spillWorkers)
	}
	rf := &runFile{}
	s.runs = append(s.runs, rf)
	ord := s.ord
	codec := s.codec
	itemSize := s.itemSize
	s.group.Go(func() error {
		sort.SliceStable(buf, func(i, j int) bool { return ord.Less(buf[i], buf[j]) })
		f, err := os.CreateTemp("", "emcc-run-*")
		if err != nil {
			return err
		}
		w := bufio.NewWriterSize(f, 1<<16)
		scratch := make([]byte, itemSize)
		for _, v := range buf {
			codec.Encode(scratch, v)
			if _, err := w.Write(scratch); err != nil {
				f.Close()
				os.Remove(f.Name())
				return err
			}
		}
		if err := w.Flush(); err != nil {
			f.Close()
			os.Remove(f.Name())
			return err
		}
		rf.f = f
		rf.items = len(buf)
		return nil
	})
}

func (s *Sorter[T]) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// sortCursor is one source feeding the k-way merge.
type sortCursor[T any] interface {
	empty() bool
	head() T
	advance() error
}

type memCursor[T any] struct {
	items []T
	pos   int
}

func (c *memCursor[T]) empty() bool    { return c.pos >= len(c.items) }
func (c *memCursor[T]) head() T        { return c.items[c.pos] }
func (c *memCursor[T]) advance() error { c.pos++; return nil }

type fileCursor[T any] struct {
	codec     Codec[T]
	scratch   []byte
	rf        *runFile
	rd        *bufio.Reader
	remaining int
	cur       T
	done      bool
}

func (c *fileCursor[T]) open() error {
	if _, err := c.rf.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	c.rd = bufio.NewReaderSize(c.rf.f, 1<<16)
	c.remaining = c.rf.items
	c.done = false
	return c.advance()
}

func (c *fileCursor[T]) empty() bool { return c.done }
func (c *fileCursor[T]) head() T     { return c.cur }

func (c *fileCursor[T]) advance() error {
	if c.remaining == 0 {
		c.done = true
		return nil
	}
	if _, err := io.ReadFull(c.rd, c.scratch); err != nil {
		return err
	}
	c.cur = c.codec.Decode(c.scratch)
	c.remaining--
	return nil
}

// mergeEntry pairs a source head with its source index; ties on the head
// break toward the lower source so the merge is stable.
type mergeEntry[T any] struct {
	head T
	src  int
}

type mergeHeap[T any] struct {
	ord     Ordering[T]
	entries []mergeEntry[T]
}

func (h *mergeHeap[T]) Len() int { return len(h.entries) }

func (h *mergeHeap[T]) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if h.ord.Less(a.head, b.head) {
		return true
	}
	if h.ord.Less(b.head, a.head) {
		return false
	}
	return a.src < b.src
}

func (h *mergeHeap[T]) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *mergeHeap[T]) Push(x any) { h.entries = append(h.entries, x.(mergeEntry[T])) }

func (h *mergeHeap[T]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}
