package kruskal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/kruskal"
)

func TestShiftMapBasics(t *testing.T) {
	require := require.New(t)
	m := kruskal.NewShiftMap[edgestream.Node, edgestream.Node](10, 20)

	require.False(m.Contains(10))
	require.False(m.Contains(9), "below range")
	require.False(m.Contains(21), "above range")
	require.Equal(edgestream.Node(99), m.Get(15, 99))

	m.Insert(15, 7)
	require.True(m.Contains(15))
	require.Equal(edgestream.Node(7), m.At(15))
	require.Equal(1, m.Size())

	m.Insert(15, 8)
	require.Equal(edgestream.Node(8), m.At(15))
	require.Equal(1, m.Size(), "overwrite keeps the key count")

	m.InsertOrMax(15, 3)
	require.Equal(edgestream.Node(8), m.At(15), "smaller value does not replace")
	m.InsertOrMax(15, 12)
	require.Equal(edgestream.Node(12), m.At(15))
	m.InsertOrMax(20, 1)
	require.Equal(edgestream.Node(1), m.At(20))
	require.Equal(2, m.Size())

	require.Panics(func() { m.Insert(9, 0) })
	require.Panics(func() { m.At(11) })
	require.Panics(func() { kruskal.NewShiftMap[edgestream.Node, edgestream.Node](5, 4) })
}

func TestBoundedIntervalKruskal(t *testing.T) {
	require := require.New(t)
	parent := kruskal.NewShiftMap[edgestream.Node, edgestream.Node](1, 10)
	k := kruskal.NewBoundedInterval(parent, 1, 10)

	// two components inside the interval: {1,2,3} and {7,8}
	k.Push(edgestream.Edge{1, 2})
	k.Push(edgestream.Edge{2, 3})
	k.Push(edgestream.Edge{7, 8})
	k.Finalize()

	root1 := parent.At(1)
	require.Equal(root1, parent.At(2))
	require.Equal(root1, parent.At(3))
	root7 := parent.At(7)
	require.Equal(root7, parent.At(8))
	require.NotEqual(root1, root7)

	// roots are fixed points, untouched nodes stay absent
	require.Equal(parent.At(root1), root1)
	require.False(parent.Contains(5))
}

func TestBoundedIntervalCycleTolerance(t *testing.T) {
	require := require.New(t)
	parent := kruskal.NewShiftMap[edgestream.Node, edgestream.Node](1, 5)
	k := kruskal.NewBoundedInterval(parent, 1, 5)
	k.Push(edgestream.Edge{1, 2})
	k.Push(edgestream.Edge{2, 3})
	k.Push(edgestream.Edge{1, 3}) // closes a cycle
	k.Finalize()

	root := parent.At(1)
	require.Equal(root, parent.At(2))
	require.Equal(root, parent.At(3))
}
