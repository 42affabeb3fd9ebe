package ordmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestBTreeMapInsertInspect(t *testing.T) {
	m := NewBTreeMap[int, string](intLess)

	_, existed := m.Insert(5, "five")
	require.False(t, existed)

	v, ok := m.Inspect(5)
	require.True(t, ok)
	require.Equal(t, "five", v)

	_, ok = m.Inspect(6)
	require.False(t, ok)
}

func TestBTreeMapInspectAboveBelow(t *testing.T) {
	m := NewBTreeMap[int, string](intLess)
	m.Insert(10, "ten")
	m.Insert(20, "twenty")
	m.Insert(30, "thirty")

	k, v, ok := m.InspectAbove(10)
	require.True(t, ok)
	require.Equal(t, 20, k)
	require.Equal(t, "twenty", v)

	k, v, ok = m.InspectBelow(30)
	require.True(t, ok)
	require.Equal(t, 20, k)
	require.Equal(t, "twenty", v)

	_, _, ok = m.InspectAbove(30)
	require.False(t, ok)
}

func TestBTreeMapMinMax(t *testing.T) {
	m := NewBTreeMap[int, string](intLess)
	m.Insert(10, "ten")
	m.Insert(20, "twenty")
	m.Insert(30, "thirty")

	k, _, ok := m.InspectMin()
	require.True(t, ok)
	require.Equal(t, 10, k)

	k, _, ok = m.InspectMax()
	require.True(t, ok)
	require.Equal(t, 30, k)
}

func TestBTreeMapRemove(t *testing.T) {
	m := NewBTreeMap[int, string](intLess)
	m.Insert(1, "one")
	require.Equal(t, 1, m.Len())

	v, ok := m.Remove(1)
	require.True(t, ok)
	require.Equal(t, "one", v)
	require.True(t, m.IsEmpty())

	_, ok = m.Remove(1)
	require.False(t, ok)
}

func TestBTreeMapUpdate(t *testing.T) {
	m := NewBTreeMap[int, int](intLess)
	m.Update(1, func(v int, existed bool) int {
		require.False(t, existed)
		return v + 1
	})
	v, ok := m.Inspect(1)
	require.True(t, ok)
	require.Equal(t, 1, v)

	m.Update(1, func(v int, existed bool) int {
		require.True(t, existed)
		return v + 1
	})
	v, _ = m.Inspect(1)
	require.Equal(t, 2, v)
}
