// Package ordmap defines the ordered key-value map abstraction the pool
// engine depends on, and two implementations: a persistent B-tree-backed
// map, and a copy-on-write overlay used by clamm's Pool.Estimate.
package ordmap

// Map is the small ordered-map trait every tick-state store (and the
// estimation overlay) must satisfy. Any concrete backing container —
// B-tree, AVL tree, copy-on-write overlay — is interchangeable behind it.
type Map[K any, V any] interface {
	// Inspect returns the value at k, if present.
	Inspect(k K) (V, bool)
	// InspectAbove returns the smallest key strictly greater than k.
	InspectAbove(k K) (K, V, bool)
	// InspectBelow returns the largest key strictly less than k.
	InspectBelow(k K) (K, V, bool)
	// InspectMin returns the smallest key in the map.
	InspectMin() (K, V, bool)
	// InspectMax returns the largest key in the map.
	InspectMax() (K, V, bool)
	// Insert sets k to v, returning the previous value if any.
	Insert(k K, v V) (V, bool)
	// Update applies fn to the value at k (default-constructing it via
	// zero if absent) and stores the result.
	Update(k K, fn func(V, bool) V)
	// Remove deletes k, returning the removed value if any.
	Remove(k K) (V, bool)
	// Len returns the number of entries.
	Len() int
	// IsEmpty reports whether the map has no entries.
	IsEmpty() bool
}

// Less is the ordering predicate a Map implementation is built around.
type Less[K any] func(a, b K) bool
