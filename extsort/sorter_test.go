package extsort_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/extsort"
)

type u64Codec struct{}

func (u64Codec) EncodedSize() int        { return 8 }
func (u64Codec) Encode(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}
func (u64Codec) Decode(src []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(src[i]) << (8 * i)
	}
	return v
}

func drainSorter(s *extsort.Sorter[uint64]) []uint64 {
	var out []uint64
	for !s.Empty() {
		out = append(out, s.Peek())
		s.Next()
	}
	return out
}

func TestSorterSortsAcrossSpilledRuns(t *testing.T) {
	require := require.New(t)
	// TestingLimits forces spills after a handful of items
	s := extsort.NewSorter[uint64](extsort.OrderedAsc[uint64]{}, u64Codec{}, extsort.TestingLimits())
	defer s.Reset()

	rng := rand.New(rand.NewSource(7))
	const n = 10000
	want := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		v := rng.Uint64() % 5000
		want = append(want, v)
		s.Push(v)
	}
	s.Sort()
	require.NoError(s.Err())
	require.Equal(n, s.Size())

	got := drainSorter(s)
	require.Len(got, n)
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(got[i-1], got[i], "output must be non-decreasing at %d", i)
	}

	// rewind replays the identical order
	s.Rewind()
	require.Equal(got, drainSorter(s))
}

func TestSorterInMemoryOnly(t *testing.T) {
	require := require.New(t)
	s := extsort.NewSorter[uint64](extsort.OrderedAsc[uint64]{}, u64Codec{}, extsort.DefaultLimits())
	defer s.Reset()

	for _, v := range []uint64{5, 3, 9, 1} {
		s.Push(v)
	}
	s.Sort()
	require.Equal([]uint64{1, 3, 5, 9}, drainSorter(s))
}

func TestSorterResetReuse(t *testing.T) {
	require := require.New(t)
	s := extsort.NewSorter[uint64](extsort.OrderedAsc[uint64]{}, u64Codec{}, extsort.TestingLimits())
	defer s.Reset()

	for i := uint64(0); i < 500; i++ {
		s.Push(499 - i)
	}
	s.Sort()
	require.Equal(500, s.Size())
	require.Equal(uint64(0), s.Peek())

	s.Reset()
	require.Equal(0, s.Size())
	s.Push(42)
	s.SortReuse()
	require.Equal([]uint64{42}, drainSorter(s))
}

func TestSorterEmpty(t *testing.T) {
	require := require.New(t)
	s := extsort.NewSorter[uint64](extsort.OrderedAsc[uint64]{}, u64Codec{}, extsort.TestingLimits())
	defer s.Reset()
	s.Sort()
	require.True(s.Empty())
	require.Panics(func() { s.Peek() })
}

func TestSorterPushAfterSortPanics(t *testing.T) {
	s := extsort.NewSorter[uint64](extsort.OrderedAsc[uint64]{}, u64Codec{}, extsort.TestingLimits())
	defer s.Reset()
	s.Sort()
	require.Panics(t, func() { s.Push(1) })
}
