package ordmap

import "github.com/tidwall/btree"

type entry[K any, V any] struct {
	key K
	val V
}

// BTreeMap is the concrete ordered map backing each fee level's tick-state
// store, built on the pack's own B-tree implementation rather than
// hand-rolling balanced-tree logic.
type BTreeMap[K any, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
	less Less[K]
}

func NewBTreeMap[K any, V any](less Less[K]) *BTreeMap[K, V] {
	return &BTreeMap[K, V]{
		tree: btree.NewBTreeG(func(a, b entry[K, V]) bool { return less(a.key, b.key) }),
		less: less,
	}
}

func (m *BTreeMap[K, V]) equal(a, b K) bool { return !m.less(a, b) && !m.less(b, a) }

func (m *BTreeMap[K, V]) Inspect(k K) (V, bool) {
	it, ok := m.tree.Get(entry[K, V]{key: k})
	return it.val, ok
}

func (m *BTreeMap[K, V]) InspectAbove(k K) (K, V, bool) {
	var resK K
	var resV V
	found := false
	m.tree.Ascend(entry[K, V]{key: k}, func(it entry[K, V]) bool {
		if m.equal(it.key, k) {
			return true
		}
		resK, resV, found = it.key, it.val, true
		return false
	})
	return resK, resV, found
}

func (m *BTreeMap[K, V]) InspectBelow(k K) (K, V, bool) {
	var resK K
	var resV V
	found := false
	m.tree.Descend(entry[K, V]{key: k}, func(it entry[K, V]) bool {
		if m.equal(it.key, k) {
			return true
		}
		resK, resV, found = it.key, it.val, true
		return false
	})
	return resK, resV, found
}

func (m *BTreeMap[K, V]) InspectMin() (K, V, bool) {
	it, ok := m.tree.Min()
	return it.key, it.val, ok
}

func (m *BTreeMap[K, V]) InspectMax() (K, V, bool) {
	it, ok := m.tree.Max()
	return it.key, it.val, ok
}

func (m *BTreeMap[K, V]) Insert(k K, v V) (V, bool) {
	prev, replaced := m.tree.Set(entry[K, V]{key: k, val: v})
	return prev.val, replaced
}

func (m *BTreeMap[K, V]) Update(k K, fn func(V, bool) V) {
	cur, ok := m.tree.Get(entry[K, V]{key: k})
	m.tree.Set(entry[K, V]{key: k, val: fn(cur.val, ok)})
}

func (m *BTreeMap[K, V]) Remove(k K) (V, bool) {
	it, ok := m.tree.Delete(entry[K, V]{key: k})
	return it.val, ok
}

func (m *BTreeMap[K, V]) Len() int      { return m.tree.Len() }
func (m *BTreeMap[K, V]) IsEmpty() bool { return m.tree.Len() == 0 }

// Iterate walks every entry in ascending key order.
func (m *BTreeMap[K, V]) Iterate(fn func(K, V) bool) {
	m.tree.Scan(func(it entry[K, V]) bool { return fn(it.key, it.val) })
}

var _ Map[int, int] = (*BTreeMap[int, int])(nil)
