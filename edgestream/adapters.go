package edgestream

import "github.com/katalvlaran/emcc/extsort"

// UniqueFilter drops consecutive equal items from a sorted stream,
// keeping the first of each run. Order is preserved.
type UniqueFilter[T comparable] struct {
	in   Stream[T]
	cur  T
	done bool
}

// NewUnique wraps in. The first item, if any, is consumed immediately.
func NewUnique[T comparable](in Stream[T]) *UniqueFilter[T] {
	f := &UniqueFilter[T]{in: in}
	if in.Empty() {
		f.done = true
		return f
	}
	f.cur = in.Peek()
	in.Next()
	return f
}

func (f *UniqueFilter[T]) Empty() bool { return f.done }

func (f *UniqueFilter[T]) Peek() T {
	if f.done {
		panic("edgestream: Peek on empty UniqueFilter")
	}
	return f.cur
}

func (f *UniqueFilter[T]) Next() {
	if f.done {
		panic("edgestream: Next on empty UniqueFilter")
	}
	for !f.in.Empty() {
		v := f.in.Peek()
		f.in.Next()
		if v != f.cur {
			f.cur = v
			return
		}
	}
	f.done = true
}

// Rewind restarts the filter; the wrapped stream must be Rewindable.
func (f *UniqueFilter[T]) Rewind() {
	r, ok := f.in.(Rewindable[T])
	if !ok {
		panic("edgestream: Rewind on UniqueFilter over a one-shot stream")
	}
	r.Rewind()
	f.done = f.in.Empty()
	if !f.done {
		f.cur = f.in.Peek()
		f.in.Next()
	}
}

// ConsecutiveFilter drops items that are eq-equal to the previously kept
// item, keeping the first of each run.
type ConsecutiveFilter[T any] struct {
	in   Stream[T]
	eq   func(a, b T) bool
	cur  T
	done bool
}

// NewConsecutiveFilter wraps in with the run predicate eq.
func NewConsecutiveFilter[T any](in Stream[T], eq func(a, b T) bool) *ConsecutiveFilter[T] {
	f := &ConsecutiveFilter[T]{in: in, eq: eq}
	if in.Empty() {
		f.done = true
		return f
	}
	f.cur = in.Peek()
	in.Next()
	return f
}

func (f *ConsecutiveFilter[T]) Empty() bool { return f.done }

func (f *ConsecutiveFilter[T]) Peek() T {
	if f.done {
		panic("edgestream: Peek on empty ConsecutiveFilter")
	}
	return f.cur
}

func (f *ConsecutiveFilter[T]) Next() {
	if f.done {
		panic("edgestream: Next on empty ConsecutiveFilter")
	}
	prev := f.cur
	for !f.in.Empty() {
		v := f.in.Peek()
		f.in.Next()
		if f.eq(prev, v) {
			prev = v
			continue
		}
		f.cur = v
		return
	}
	f.done = true
}

// Merge2 merges two streams sorted under ord into one; duplicates are
// preserved and ties go to the first stream, keeping the merge stable.
type Merge2[T any] struct {
	a, b Stream[T]
	ord  extsort.Ordering[T]
}

// NewMerge2 merges a and b under ord.
func NewMerge2[T any](a, b Stream[T], ord extsort.Ordering[T]) *Merge2[T] {
	return &Merge2[T]{a: a, b: b, ord: ord}
}

func (m *Merge2[T]) Empty() bool { return m.a.Empty() && m.b.Empty() }

func (m *Merge2[T]) Peek() T {
	if m.a.Empty() {
		return m.b.Peek()
	}
	if m.b.Empty() || !m.ord.Less(m.b.Peek(), m.a.Peek()) {
		return m.a.Peek()
	}
	return m.b.Peek()
}

func (m *Merge2[T]) Next() {
	if m.a.Empty() {
		m.b.Next()
		return
	}
	if m.b.Empty() || !m.ord.Less(m.b.Peek(), m.a.Peek()) {
		m.a.Next()
		return
	}
	m.b.Next()
}

// MergeUnique2 merges two sorted streams, dropping items that appear in
// both: when the heads compare equal, only the second stream's copy is
// emitted. Duplicates within a single stream pass through.
type MergeUnique2[T comparable] struct {
	a, b Stream[T]
	ord  extsort.Ordering[T]
}

// NewMergeUnique2 merges a and b under ord with cross-stream dedup.
func NewMergeUnique2[T comparable](a, b Stream[T], ord extsort.Ordering[T]) *MergeUnique2[T] {
	m := &MergeUnique2[T]{a: a, b: b, ord: ord}
	m.settle()
	return m
}

// settle discards a-heads equal to the current b-head.
func (m *MergeUnique2[T]) settle() {
	for !m.a.Empty() && !m.b.Empty() && m.a.Peek() == m.b.Peek() {
		m.a.Next()
	}
}

func (m *MergeUnique2[T]) Empty() bool { return m.a.Empty() && m.b.Empty() }

func (m *MergeUnique2[T]) Peek() T {
	if m.a.Empty() {
		return m.b.Peek()
	}
	if m.b.Empty() || m.ord.Less(m.a.Peek(), m.b.Peek()) {
		return m.a.Peek()
	}
	return m.b.Peek()
}

func (m *MergeUnique2[T]) Next() {
	if m.a.Empty() {
		m.b.Next()
	} else if m.b.Empty() || m.ord.Less(m.a.Peek(), m.b.Peek()) {
		m.a.Next()
	} else {
		m.b.Next()
	}
	m.settle()
}

// Split passes a stream through unchanged while pushing a projection of
// every item into a side sink, exactly once per item, on the first pass.
// Rewind switches to replay mode: the side sink sees nothing more.
type Split[T any, S any] struct {
	in     Rewindable[T]
	out    Pusher[S]
	proj   func(T) S
	replay bool
	cur    T
	done   bool
}

// NewSplit wraps in, pushing proj(item) into out as items are consumed.
func NewSplit[T any, S any](in Rewindable[T], out Pusher[S], proj func(T) S) *Split[T, S] {
	f := &Split[T, S]{in: in, out: out, proj: proj}
	f.prime()
	return f
}

func (f *Split[T, S]) prime() {
	if f.in.Empty() {
		f.done = true
		return
	}
	f.done = false
	f.cur = f.in.Peek()
	f.in.Next()
}

func (f *Split[T, S]) Empty() bool { return f.done }

func (f *Split[T, S]) Peek() T {
	if f.done {
		panic("edgestream: Peek on empty Split")
	}
	return f.cur
}

func (f *Split[T, S]) Next() {
	if f.done {
		panic("edgestream: Next on empty Split")
	}
	if !f.replay {
		f.out.Push(f.proj(f.cur))
	}
	f.prime()
}

// Rewind restarts the pass-through in replay mode.
func (f *Split[T, S]) Rewind() {
	f.replay = true
	f.in.Rewind()
	f.prime()
}

// HitFilter emits the items of in whose projection has no eq-match in
// hits. Both streams must be sorted so that le(item, hit) is monotone;
// the scan is linear in the sum of both sizes.
type HitFilter[T any, H any] struct {
	in   Stream[T]
	hits Stream[H]
	le   func(T, H) bool
	eq   func(T, H) bool
}

// NewHitFilter wraps in, dropping items matched by hits.
func NewHitFilter[T any, H any](in Stream[T], hits Stream[H], le, eq func(T, H) bool) *HitFilter[T, H] {
	f := &HitFilter[T, H]{in: in, hits: hits, le: le, eq: eq}
	f.settle()
	return f
}

func (f *HitFilter[T, H]) settle() {
	for !f.in.Empty() {
		for !f.hits.Empty() && !f.le(f.in.Peek(), f.hits.Peek()) {
			f.hits.Next()
		}
		if !f.hits.Empty() && f.eq(f.in.Peek(), f.hits.Peek()) {
			f.in.Next()
			continue
		}
		return
	}
}

func (f *HitFilter[T, H]) Empty() bool { return f.in.Empty() }

func (f *HitFilter[T, H]) Peek() T { return f.in.Peek() }

func (f *HitFilter[T, H]) Next() {
	f.in.Next()
	f.settle()
}

// Rewind restarts both sides; each must be Rewindable.
func (f *HitFilter[T, H]) Rewind() {
	f.in.(Rewindable[T]).Rewind()
	f.hits.(Rewindable[H]).Rewind()
	f.settle()
}

// OrientReverse yields every edge oriented larger-to-smaller.
type OrientReverse struct {
	in Stream[Edge]
}

// NewOrientReverse wraps in.
func NewOrientReverse(in Stream[Edge]) *OrientReverse { return &OrientReverse{in: in} }

func (o *OrientReverse) Empty() bool { return o.in.Empty() }

func (o *OrientReverse) Peek() Edge {
	e := o.in.Peek()
	if e.U < e.V {
		return e.Reversed()
	}
	return e
}

func (o *OrientReverse) Next() { o.in.Next() }

// OrientNormal yields every edge oriented smaller-to-larger.
type OrientNormal struct {
	in Stream[Edge]
}

// NewOrientNormal wraps in.
func NewOrientNormal(in Stream[Edge]) *OrientNormal { return &OrientNormal{in: in} }

func (o *OrientNormal) Empty() bool { return o.in.Empty() }
func (o *OrientNormal) Peek() Edge  { return o.in.Peek().Normalized() }
func (o *OrientNormal) Next()       { o.in.Next() }
