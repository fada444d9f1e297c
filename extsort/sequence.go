package extsort

import (
	"bufio"
	"io"
	"os"
)

// DefaultBlockBytes is the spill-block size of a Sequence unless a caller
// picks its own (the bundled contraction uses many small sequences and
// deliberately keeps this value).
const DefaultBlockBytes = 512 * 1024

// Sequence is an append-only, spill-backed list of T with a single
// forward cursor. Pushes accumulate in an in-memory tail block; full
// blocks are appended to a temporary file. Rewind restarts the cursor at
// the first item. Pushing while a cursor is open is allowed; appended
// items become visible to the open cursor.
type Sequence[T any] struct {
	codec      Codec[T]
	itemSize   int
	blockItems int

	tail    []T
	spill   *os.File
	spilled int
	size    int
	err     error

	reading   bool
	rd        *bufio.Reader
	remaining int
	tailPos   int
	scratch   []byte
	cur       T
	exhausted bool
}

// NewSequence returns an empty sequence with the default block size.
func NewSequence[T any](codec Codec[T]) *Sequence[T] {
	return NewSequenceBlock(codec, DefaultBlockBytes)
}

// NewSequenceBlock returns an empty sequence spilling in blocks of
// roughly blockBytes. Panics if blockBytes is not positive.
func NewSequenceBlock[T any](codec Codec[T], blockBytes int) *Sequence[T] {
	if blockBytes <= 0 {
		panic("extsort: NewSequenceBlock(blockBytes<=0)")
	}
	itemSize := codec.EncodedSize()
	blockItems := blockBytes / itemSize
	if blockItems < 1 {
		blockItems = 1
	}
	return &Sequence[T]{
		codec:      codec,
		itemSize:   itemSize,
		blockItems: blockItems,
		scratch:    make([]byte, itemSize),
	}
}

// Push appends v. A no-op after the first I/O failure.
func (s *Sequence[T]) Push(v T) {
	if s.err != nil {
		return
	}
	s.tail = append(s.tail, v)
	s.size++
	if !s.reading && len(s.tail) >= s.blockItems {
		s.flushTail()
	}
}

// Size reports the number of items pushed since the last Reset.
func (s *Sequence[T]) Size() int { return s.size }

// Err reports the first I/O failure, if any.
func (s *Sequence[T]) Err() error { return s.err }

// Rewind opens (or restarts) the forward cursor at the first item.
func (s *Sequence[T]) Rewind() {
	s.reading = true
	s.tailPos = 0
	s.remaining = s.spilled
	s.rd = nil
	if s.spill != nil && s.remaining > 0 {
		if _, err := s.spill.Seek(0, io.SeekStart); err != nil {
			s.fail(err)
			return
		}
		s.rd = bufio.NewReaderSize(s.spill, 1<<16)
	}
	s.exhausted = false
	s.advance()
}

// Empty reports whether the cursor has run off the end.
func (s *Sequence[T]) Empty() bool { return s.exhausted }

// Peek returns the item under the cursor. Panics when Empty.
func (s *Sequence[T]) Peek() T {
	if s.exhausted {
		panic("extsort: Peek on empty Sequence")
	}
	return s.cur
}

// Next moves the cursor one item forward. Panics when Empty.
func (s *Sequence[T]) Next() {
	if s.exhausted {
		panic("extsort: Next on empty Sequence")
	}
	s.advance()
}

// Reset discards all contents and spilled blocks and returns the
// sequence to an empty writable state.
func (s *Sequence[T]) Reset() {
	s.dropSpill()
	s.tail = s.tail[:0]
	s.size = 0
	s.spilled = 0
	s.reading = false
	s.rd = nil
	s.exhausted = false
	s.err = nil
}

// Close releases the spill file. The sequence must not be used afterwards.
func (s *Sequence[T]) Close() {
	s.dropSpill()
}

func (s *Sequence[T]) advance() {
	if s.err != nil {
		s.exhausted = true
		return
	}
	if s.remaining > 0 {
		if _, err := io.ReadFull(s.rd, s.scratch); err != nil {
			s.fail(err)
			s.exhausted = true
			return
		}
		s.cur = s.codec.Decode(s.scratch)
		s.remaining--
		return
	}
	if s.tailPos < len(s.tail) {
		s.cur = s.tail[s.tailPos]
		s.tailPos++
		return
	}
	s.exhausted = true
}

func (s *Sequence[T]) flushTail() {
	if s.spill == nil {
		f, err := os.CreateTemp("", "emcc-seq-*")
		if err != nil {
			s.fail(err)
			return
		}
		s.spill = f
	}
	if _, err := s.spill.Seek(0, io.SeekEnd); err != nil {
		s.fail(err)
		return
	}
	w := bufio.NewWriterSize(s.spill, 1<<16)
	for _, v := range s.tail {
		s.codec.Encode(s.scratch, v)
		if _, err := w.Write(s.scratch); err != nil {
			s.fail(err)
			return
		}
	}
	if err := w.Flush(); err != nil {
		s.fail(err)
		return
	}
	s.spilled += len(s.tail)
	s.tail = s.tail[:0]
}

func (s *Sequence[T]) dropSpill() {
	if s.spill != nil {
		name := s.spill.Name()
		s.spill.Close()
		os.Remove(name)
		s.spill = nil
	}
}

func (s *Sequence[T]) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}
