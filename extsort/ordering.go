package extsort

import "golang.org/x/exp/constraints"

// Ordering is a total order over T together with its two sentinel values.
// MinValue compares less-or-equal to every valid item and MaxValue
// greater-or-equal; containers use them to seed scans and terminate
// merges, so valid items must never collide with either sentinel.
type Ordering[T any] interface {
	Less(a, b T) bool
	MinValue() T
	MaxValue() T
}

// Codec is a fixed-width binary encoding for T, used when a container
// spills to block storage. EncodedSize must be constant for all values.
type Codec[T any] interface {
	EncodedSize() int
	Encode(dst []byte, v T)
	Decode(src []byte) T
}

// OrderedAsc is the natural ascending order over any ordered primitive
// whose zero and maximum are usable as sentinels.
type OrderedAsc[T constraints.Unsigned] struct{}

func (OrderedAsc[T]) Less(a, b T) bool { return a < b }
func (OrderedAsc[T]) MinValue() T      { var z T; return z }
func (OrderedAsc[T]) MaxValue() T      { var z T; return ^z }
