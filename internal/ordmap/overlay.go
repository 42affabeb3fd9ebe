package ordmap

// overlayVal is a transient entry: either a live override (tomb=false) or
// a tombstone recording that the persistent entry at this key has been
// removed.
type overlayVal[V any] struct {
	val  V
	tomb bool
}

// Overlay is a copy-on-write wrapper over a persistent ordered map: reads
// fall through to the persistent map, writes land in a transient delta, and
// Clear drops the persistent reference so every subsequent read sees an
// empty map. Used by clamm's Pool.Estimate to evaluate "what if" swaps and
// position openings without mutating real pool state.
type Overlay[K comparable, V any] struct {
	persistent Map[K, V]
	transient  map[K]overlayVal[V]
	less       Less[K]
	count      int
}

func NewOverlay[K comparable, V any](persistent Map[K, V], less Less[K]) *Overlay[K, V] {
	count := 0
	if persistent != nil {
		count = persistent.Len()
	}
	return &Overlay[K, V]{
		persistent: persistent,
		transient:  make(map[K]overlayVal[V]),
		less:       less,
		count:      count,
	}
}

// Clear drops the persistent handle; subsequent reads see an empty map.
func (o *Overlay[K, V]) Clear() {
	o.persistent = nil
	o.transient = make(map[K]overlayVal[V])
	o.count = 0
}

func (o *Overlay[K, V]) Inspect(k K) (V, bool) {
	if tv, ok := o.transient[k]; ok {
		if tv.tomb {
			var zero V
			return zero, false
		}
		return tv.val, true
	}
	if o.persistent != nil {
		return o.persistent.Inspect(k)
	}
	var zero V
	return zero, false
}

func (o *Overlay[K, V]) Insert(k K, v V) (V, bool) {
	prev, existed := o.Inspect(k)
	if !existed {
		o.count++
	}
	o.transient[k] = overlayVal[V]{val: v}
	return prev, existed
}

func (o *Overlay[K, V]) Update(k K, fn func(V, bool) V) {
	cur, existed := o.Inspect(k)
	o.Insert(k, fn(cur, existed))
}

func (o *Overlay[K, V]) Remove(k K) (V, bool) {
	prev, existed := o.Inspect(k)
	if existed {
		o.count--
	}
	o.transient[k] = overlayVal[V]{tomb: true}
	return prev, existed
}

func (o *Overlay[K, V]) Len() int      { return o.count }
func (o *Overlay[K, V]) IsEmpty() bool { return o.count == 0 }

// persistentFirstUntouched walks the persistent map from its minimum,
// skipping any key that the transient delta has overridden or tombstoned.
func (o *Overlay[K, V]) persistentFirstUntouched() (K, V, bool) {
	var zk K
	var zv V
	if o.persistent == nil {
		return zk, zv, false
	}
	k, v, ok := o.persistent.InspectMin()
	for ok {
		if _, touched := o.transient[k]; !touched {
			return k, v, true
		}
		k, v, ok = o.persistent.InspectAbove(k)
	}
	return zk, zv, false
}

func (o *Overlay[K, V]) persistentLastUntouched() (K, V, bool) {
	var zk K
	var zv V
	if o.persistent == nil {
		return zk, zv, false
	}
	k, v, ok := o.persistent.InspectMax()
	for ok {
		if _, touched := o.transient[k]; !touched {
			return k, v, true
		}
		k, v, ok = o.persistent.InspectBelow(k)
	}
	return zk, zv, false
}

// persistentAboveUntouched walks the persistent map above k, skipping keys
// the transient delta has overridden or tombstoned.
func (o *Overlay[K, V]) persistentAboveUntouched(k K) (K, V, bool) {
	var zk K
	var zv V
	if o.persistent == nil {
		return zk, zv, false
	}
	cur := k
	for {
		pk, pv, ok := o.persistent.InspectAbove(cur)
		if !ok {
			return zk, zv, false
		}
		if _, touched := o.transient[pk]; !touched {
			return pk, pv, true
		}
		cur = pk
	}
}

func (o *Overlay[K, V]) persistentBelowUntouched(k K) (K, V, bool) {
	var zk K
	var zv V
	if o.persistent == nil {
		return zk, zv, false
	}
	cur := k
	for {
		pk, pv, ok := o.persistent.InspectBelow(cur)
		if !ok {
			return zk, zv, false
		}
		if _, touched := o.transient[pk]; !touched {
			return pk, pv, true
		}
		cur = pk
	}
}

func (o *Overlay[K, V]) transientMinAbove(k K, strict bool) (K, V, bool) {
	var bestK K
	var bestV V
	found := false
	for key, tv := range o.transient {
		if tv.tomb {
			continue
		}
		if strict && !o.less(k, key) {
			continue
		}
		if !found || o.less(key, bestK) {
			bestK, bestV, found = key, tv.val, true
		}
	}
	return bestK, bestV, found
}

func (o *Overlay[K, V]) transientMaxBelow(k K, strict bool) (K, V, bool) {
	var bestK K
	var bestV V
	found := false
	for key, tv := range o.transient {
		if tv.tomb {
			continue
		}
		if strict && !o.less(key, k) {
			continue
		}
		if !found || o.less(bestK, key) {
			bestK, bestV, found = key, tv.val, true
		}
	}
	return bestK, bestV, found
}

func (o *Overlay[K, V]) InspectAbove(k K) (K, V, bool) {
	tk, tv, tFound := o.transientMinAbove(k, true)
	pk, pv, pFound := o.persistentAboveUntouched(k)
	switch {
	case tFound && pFound:
		if o.less(pk, tk) {
			return pk, pv, true
		}
		return tk, tv, true
	case tFound:
		return tk, tv, true
	case pFound:
		return pk, pv, true
	default:
		var zk K
		var zv V
		return zk, zv, false
	}
}

func (o *Overlay[K, V]) InspectBelow(k K) (K, V, bool) {
	tk, tv, tFound := o.transientMaxBelow(k, true)
	pk, pv, pFound := o.persistentBelowUntouched(k)
	switch {
	case tFound && pFound:
		if o.less(tk, pk) {
			return pk, pv, true
		}
		return tk, tv, true
	case tFound:
		return tk, tv, true
	case pFound:
		return pk, pv, true
	default:
		var zk K
		var zv V
		return zk, zv, false
	}
}

func (o *Overlay[K, V]) InspectMin() (K, V, bool) {
	var zk K
	tk, tv, tFound := o.transientMinAbove(zk, false)
	pk, pv, pFound := o.persistentFirstUntouched()
	switch {
	case tFound && pFound:
		if o.less(pk, tk) {
			return pk, pv, true
		}
		return tk, tv, true
	case tFound:
		return tk, tv, true
	case pFound:
		return pk, pv, true
	default:
		return zk, tv, false
	}
}

func (o *Overlay[K, V]) InspectMax() (K, V, bool) {
	var zk K
	tk, tv, tFound := o.transientMaxBelow(zk, false)
	pk, pv, pFound := o.persistentLastUntouched()
	switch {
	case tFound && pFound:
		if o.less(tk, pk) {
			return pk, pv, true
		}
		return tk, tv, true
	case tFound:
		return tk, tv, true
	case pFound:
		return pk, pv, true
	default:
		return zk, tv, false
	}
}

var _ Map[int, int] = (*Overlay[int, int])(nil)
