package orderedmap

import (
	"fmt"
	"iter"
	"slices"

	"github.com/karupanerura/ordered-map/internal/iterutil"
)

// OrderedMultiMap is an associative container that keeps every inserted
// value and remembers the order of the insert calls. The order sequence
// holds one entry per stored value, so a key added three times occupies
// three positions.
//
// A position addresses exactly one value slot: the i-th occurrence of a key
// in the order corresponds to the i-th value stored under that key.
// Positional operations such as At, ReplaceAt, and RemoveAt work on these
// slots, and Len counts them.
//
// The zero value is ready to use. An OrderedMultiMap is not safe for
// concurrent use. See the package documentation for details.
type OrderedMultiMap[K KeyConstraint, V ValueConstraint] struct {
	store  map[K][]V
	order  []K
	cloner ValueCloner[V]
}

// NewOrderedMultiMap creates an empty OrderedMultiMap.
func NewOrderedMultiMap[K KeyConstraint, V ValueConstraint](opts ...Option[K, V]) *OrderedMultiMap[K, V] {
	o := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&o)
	}

	return &OrderedMultiMap[K, V]{
		store:  make(map[K][]V, o.capacity),
		order:  make([]K, 0, o.capacity),
		cloner: o.cloner,
	}
}

// OrderedMultiMapFromEntries creates an OrderedMultiMap holding the given
// entries in the given order. Duplicated keys keep every value.
func OrderedMultiMapFromEntries[K KeyConstraint, V ValueConstraint](entries ...Entry[K, V]) *OrderedMultiMap[K, V] {
	om := NewOrderedMultiMap[K, V](WithCapacity[K, V](len(entries)))
	for _, entry := range entries {
		om.Add(entry.Key, entry.Value)
	}
	return om
}

// Add stores the value under the key at the end of the order.
// Unlike OrderedMap.Set it never overwrites: adding an existing key again
// stores one more value and occupies one more position.
func (om *OrderedMultiMap[K, V]) Add(key K, value V) {
	om.addValue(key, om.cloneValue(value), false)
}

// Prepend stores the value under the key at the front of the order.
// The value becomes the key's first slot, so the position-to-slot mapping
// stays aligned for every later occurrence of the key.
func (om *OrderedMultiMap[K, V]) Prepend(key K, value V) {
	om.addValue(key, om.cloneValue(value), true)
}

// With stores the value under the key like Add and returns the map, so
// construction can be chained.
func (om *OrderedMultiMap[K, V]) With(key K, value V) *OrderedMultiMap[K, V] {
	om.Add(key, value)
	return om
}

// AppendEntry stores the entry like Add and returns the map for chaining.
func (om *OrderedMultiMap[K, V]) AppendEntry(entry Entry[K, V]) *OrderedMultiMap[K, V] {
	om.Add(entry.Key, entry.Value)
	return om
}

// PrependEntry stores the entry like Prepend and returns the map for
// chaining.
func (om *OrderedMultiMap[K, V]) PrependEntry(entry Entry[K, V]) *OrderedMultiMap[K, V] {
	om.Prepend(entry.Key, entry.Value)
	return om
}

// Replace replaces the value at the key's last occurrence, leaving the order
// and the slot count unchanged. A key that is not present behaves like Add.
func (om *OrderedMultiMap[K, V]) Replace(key K, value V) {
	values, ok := om.store[key]
	if !ok {
		om.addValue(key, om.cloneValue(value), false)
		return
	}
	values[len(values)-1] = om.cloneValue(value)
}

// ReplaceAt replaces the value slot at the given order position and returns
// the key that holds the position. It returns ErrOutOfRange when the index
// is outside the container.
func (om *OrderedMultiMap[K, V]) ReplaceAt(index int, value V) (K, error) {
	if index < 0 || index >= len(om.order) {
		var zero K
		return zero, fmt.Errorf("%w [%d] with length %d", ErrOutOfRange, index, len(om.order))
	}

	key := om.order[index]
	om.store[key][om.slotIndex(index)] = om.cloneValue(value)
	return key, nil
}

// At returns the value slot at the given order position.
// It returns ErrOutOfRange when the index is outside the container.
func (om *OrderedMultiMap[K, V]) At(index int) (V, error) {
	if index < 0 || index >= len(om.order) {
		var zero V
		return zero, fmt.Errorf("%w [%d] with length %d", ErrOutOfRange, index, len(om.order))
	}

	key := om.order[index]
	return om.cloneValue(om.store[key][om.slotIndex(index)]), nil
}

// ValueAt returns the value slot at the given order position, or the zero
// value when the index is outside the container.
func (om *OrderedMultiMap[K, V]) ValueAt(index int) V {
	value, _ := om.At(index)
	return value
}

// KeyAt returns the key at the given order position, or the zero key when
// the index is outside the container.
func (om *OrderedMultiMap[K, V]) KeyAt(index int) K {
	if index < 0 || index >= len(om.order) {
		var zero K
		return zero
	}
	return om.order[index]
}

// Get returns the value at the key's last occurrence and whether the key is
// present.
func (om *OrderedMultiMap[K, V]) Get(key K) (V, bool) {
	values, ok := om.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	return om.cloneValue(values[len(values)-1]), true
}

// Value returns the value at the key's last occurrence, or the zero value
// when the key is not present.
func (om *OrderedMultiMap[K, V]) Value(key K) V {
	value, _ := om.Get(key)
	return value
}

// ValueOr returns the value at the key's last occurrence, or the fallback
// when the key is not present.
func (om *OrderedMultiMap[K, V]) ValueOr(key K, fallback V) V {
	if values, ok := om.store[key]; ok {
		return om.cloneValue(values[len(values)-1])
	}
	return fallback
}

// GetAll returns all values stored under the key in slot order.
// It returns nil when the key is not present.
func (om *OrderedMultiMap[K, V]) GetAll(key K) []V {
	values, ok := om.store[key]
	if !ok {
		return nil
	}

	all := make([]V, len(values))
	for i, value := range values {
		all[i] = om.cloneValue(value)
	}
	return all
}

// Remove deletes all values stored under the key together with all of the
// key's order entries. It returns the number of values removed, 0 when the
// key is not present.
func (om *OrderedMultiMap[K, V]) Remove(key K) int {
	values, ok := om.store[key]
	if !ok {
		return 0
	}

	removed := len(values)
	delete(om.store, key)
	om.order = slices.DeleteFunc(om.order, func(k K) bool {
		return k == key
	})
	return removed
}

// RemoveAt deletes the value slot at the given order position and returns
// its key. Other slots of the same key are kept. It returns ErrOutOfRange
// when the index is outside the container.
func (om *OrderedMultiMap[K, V]) RemoveAt(index int) (K, error) {
	if index < 0 || index >= len(om.order) {
		var zero K
		return zero, fmt.Errorf("%w [%d] with length %d", ErrOutOfRange, index, len(om.order))
	}
	return om.removeIndex(index), nil
}

// RemoveLast deletes the value slot at the last order position and returns
// its key. It returns ErrEmptyContainer when the container is empty.
func (om *OrderedMultiMap[K, V]) RemoveLast() (K, error) {
	if len(om.order) == 0 {
		var zero K
		return zero, ErrEmptyContainer
	}
	return om.removeIndex(len(om.order) - 1), nil
}

// Last returns the value at the last order position.
// It returns the zero value when the container is empty, so callers that
// need to distinguish an empty container must check IsEmpty first.
func (om *OrderedMultiMap[K, V]) Last() V {
	if len(om.order) == 0 {
		var zero V
		return zero
	}

	values := om.store[om.order[len(om.order)-1]]
	return om.cloneValue(values[len(values)-1])
}

// Contains reports whether at least one value is stored under the key.
func (om *OrderedMultiMap[K, V]) Contains(key K) bool {
	_, ok := om.store[key]
	return ok
}

// Keys returns a copy of the key sequence in insertion order, one entry per
// stored value. Keys with several values appear several times.
func (om *OrderedMultiMap[K, V]) Keys() []K {
	if len(om.order) == 0 {
		return nil
	}
	return slices.Clone(om.order)
}

// UniqueKeys returns the distinct keys in first-appearance order.
func (om *OrderedMultiMap[K, V]) UniqueKeys() []K {
	if len(om.order) == 0 {
		return nil
	}

	keys := make([]K, 0, len(om.store))
	for key := range iterutil.Uniq(slices.Values(om.order)) {
		keys = append(keys, key)
	}
	return keys
}

// Values returns the value slots in order.
func (om *OrderedMultiMap[K, V]) Values() []V {
	if len(om.order) == 0 {
		return nil
	}

	values := make([]V, 0, len(om.order))
	for key, slot := range om.slots() {
		values = append(values, om.cloneValue(om.store[key][slot]))
	}
	return values
}

// Entries returns the entries in order, one per value slot.
func (om *OrderedMultiMap[K, V]) Entries() []Entry[K, V] {
	if len(om.order) == 0 {
		return nil
	}

	entries := make([]Entry[K, V], 0, len(om.order))
	for key, slot := range om.slots() {
		entries = append(entries, Entry[K, V]{Key: key, Value: om.cloneValue(om.store[key][slot])})
	}
	return entries
}

// ValueKeyList returns the value slots as value-first pairs in order.
// When addEmptyPair is true a zero pair is added as well, at the front when
// putEmptyPairFirst is true and at the end otherwise.
func (om *OrderedMultiMap[K, V]) ValueKeyList(addEmptyPair, putEmptyPairFirst bool) []ValueKey[V, K] {
	list := make([]ValueKey[V, K], 0, len(om.order)+1)
	if addEmptyPair && putEmptyPairFirst {
		list = append(list, ValueKey[V, K]{})
	}
	for key, slot := range om.slots() {
		list = append(list, ValueKey[V, K]{Value: om.cloneValue(om.store[key][slot]), Key: key})
	}
	if addEmptyPair && !putEmptyPairFirst {
		list = append(list, ValueKey[V, K]{})
	}
	return list
}

// IndexOf returns the order position of the key's first occurrence, or -1
// when the key is not present. The scan is linear in the number of slots.
func (om *OrderedMultiMap[K, V]) IndexOf(key K) int {
	return slices.Index(om.order, key)
}

// Count returns the number of values stored under the key.
func (om *OrderedMultiMap[K, V]) Count(key K) int {
	return len(om.store[key])
}

// Len returns the number of stored values. Keys with several values count
// once per value.
func (om *OrderedMultiMap[K, V]) Len() int {
	return len(om.order)
}

// IsEmpty reports whether the container has no values.
func (om *OrderedMultiMap[K, V]) IsEmpty() bool {
	return len(om.order) == 0
}

// Clear removes all values. Allocated capacity is kept for reuse.
func (om *OrderedMultiMap[K, V]) Clear() {
	clear(om.store)
	om.order = om.order[:0]
}

// All returns an iterator over the entries in order, one per value slot.
// A key with several values is yielded once per value.
// The container must not be mutated while iterating.
func (om *OrderedMultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, slot := range om.slots() {
			if !yield(key, om.cloneValue(om.store[key][slot])) {
				return
			}
		}
	}
}

// Clone returns a copy of the container with the same order and the same
// cloner. Values pass through the cloner once on the way into the copy.
func (om *OrderedMultiMap[K, V]) Clone() *OrderedMultiMap[K, V] {
	cloned := &OrderedMultiMap[K, V]{
		store:  make(map[K][]V, len(om.store)),
		order:  slices.Clone(om.order),
		cloner: om.cloner,
	}
	for key, values := range om.store {
		copied := make([]V, len(values))
		for i, value := range values {
			copied[i] = om.cloneValue(value)
		}
		cloned.store[key] = copied
	}
	return cloned
}

// ToMap returns the values as a plain map of slices in slot order.
// The interleaving of keys is lost.
func (om *OrderedMultiMap[K, V]) ToMap() map[K][]V {
	m := make(map[K][]V, len(om.store))
	for key, values := range om.store {
		copied := make([]V, len(values))
		for i, value := range values {
			copied[i] = om.cloneValue(value)
		}
		m[key] = copied
	}
	return m
}

// addValue stores a new value slot for the key and records its order entry.
// front places the order entry and the value slot first, keeping the i-th
// occurrence of a key aligned with its i-th slot. All value-adding mutations
// funnel through here so the store and the order cannot go out of step.
func (om *OrderedMultiMap[K, V]) addValue(key K, value V, front bool) {
	if om.store == nil {
		om.store = make(map[K][]V)
	}
	if front {
		om.order = slices.Insert(om.order, 0, key)
		om.store[key] = slices.Insert(om.store[key], 0, value)
	} else {
		om.order = append(om.order, key)
		om.store[key] = append(om.store[key], value)
	}
}

// removeIndex removes the order entry at the position together with its
// value slot. The caller validates the position. All slot removals funnel
// through here so the store and the order cannot go out of step.
func (om *OrderedMultiMap[K, V]) removeIndex(index int) K {
	key := om.order[index]
	slot := om.slotIndex(index)
	om.order = slices.Delete(om.order, index, index+1)

	values := slices.Delete(om.store[key], slot, slot+1)
	if len(values) == 0 {
		delete(om.store, key)
	} else {
		om.store[key] = values
	}
	return key
}

// slotIndex returns the value slot addressed by the order position: the
// number of earlier occurrences of the same key.
func (om *OrderedMultiMap[K, V]) slotIndex(index int) int {
	key := om.order[index]
	slot := 0
	for _, k := range om.order[:index] {
		if k == key {
			slot++
		}
	}
	return slot
}

// slots iterates the order positions as (key, value slot) pairs.
func (om *OrderedMultiMap[K, V]) slots() iter.Seq2[K, int] {
	return func(yield func(K, int) bool) {
		counters := make(map[K]int, len(om.store))
		for _, key := range om.order {
			slot := counters[key]
			counters[key]++
			if !yield(key, slot) {
				return
			}
		}
	}
}

func (om *OrderedMultiMap[K, V]) cloneValue(value V) V {
	if om.cloner == nil {
		return value
	}
	return om.cloner.CloneValue(value)
}
