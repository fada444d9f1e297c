package kruskal

import "golang.org/x/exp/constraints"

// ShiftMap is a dense direct-address map over the inclusive key range
// [minKey, maxKey]: a value slice plus a slice of presence flags. It costs
// one value word and one byte per key in the range, regardless of how many
// keys are present — the right trade for bundle-local tables whose
// ranges are chosen to fit memory.
type ShiftMap[K constraints.Unsigned, V constraints.Ordered] struct {
	minKey, maxKey K
	numKeys        int
	data           []V
	filled         []bool
}

// NewShiftMap returns an empty map over [minKey, maxKey]. Panics when
// the range is inverted.
func NewShiftMap[K constraints.Unsigned, V constraints.Ordered](minKey, maxKey K) *ShiftMap[K, V] {
	if maxKey < minKey {
		panic("kruskal: NewShiftMap(maxKey < minKey)")
	}
	width := uint64(maxKey-minKey) + 1
	return &ShiftMap[K, V]{
		minKey: minKey,
		maxKey: maxKey,
		data:   make([]V, width),
		filled: make([]bool, width),
	}
}

// ValidKey reports whether k lies in the map's range.
func (m *ShiftMap[K, V]) ValidKey(k K) bool { return m.minKey <= k && k <= m.maxKey }

// Contains reports whether k is present.
func (m *ShiftMap[K, V]) Contains(k K) bool {
	if !m.ValidKey(k) {
		return false
	}
	return m.filled[m.index(k)]
}

// Get returns the value at k, or fallback when k is absent.
func (m *ShiftMap[K, V]) Get(k K, fallback V) V {
	if !m.Contains(k) {
		return fallback
	}
	return m.data[m.index(k)]
}

// At returns the value at k. Panics when k is absent; use Get for the
// tolerant lookup.
func (m *ShiftMap[K, V]) At(k K) V {
	if !m.Contains(k) {
		panic("kruskal: ShiftMap.At on absent key")
	}
	return m.data[m.index(k)]
}

// Insert sets k to v, overwriting any prior value. Panics on an
// out-of-range key.
func (m *ShiftMap[K, V]) Insert(k K, v V) {
	if !m.ValidKey(k) {
		panic("kruskal: ShiftMap.Insert out of range")
	}
	i := m.index(k)
	if !m.filled[i] {
		m.numKeys++
		m.filled[i] = true
	}
	m.data[i] = v
}

// InsertOrMax sets k to v when absent, otherwise keeps the larger of
// the stored value and v.
func (m *ShiftMap[K, V]) InsertOrMax(k K, v V) {
	if !m.ValidKey(k) {
		panic("kruskal: ShiftMap.InsertOrMax out of range")
	}
	i := m.index(k)
	if !m.filled[i] {
		m.numKeys++
		m.filled[i] = true
		m.data[i] = v
		return
	}
	if v > m.data[i] {
		m.data[i] = v
	}
}

// Size reports the number of present keys.
func (m *ShiftMap[K, V]) Size() int { return m.numKeys }

func (m *ShiftMap[K, V]) index(k K) uint64 { return uint64(k - m.minKey) }
