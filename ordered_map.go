package orderedmap

import (
	"fmt"
	"iter"
	"slices"
)

// OrderedMap is an associative container that remembers the order in which
// keys were first inserted. It pairs a key-value store with a key sequence:
// lookups cost what a map lookup costs, and iteration follows insertion
// order instead of map order.
//
// Each key appears at most once. A write to an existing key replaces its
// value and keeps its position. The zero value is ready to use.
//
// An OrderedMap is not safe for concurrent use. See the package
// documentation for details.
type OrderedMap[K KeyConstraint, V ValueConstraint] struct {
	store  map[K]V
	order  []K
	cloner ValueCloner[V]
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K KeyConstraint, V ValueConstraint](opts ...Option[K, V]) *OrderedMap[K, V] {
	o := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&o)
	}

	return &OrderedMap[K, V]{
		store:  make(map[K]V, o.capacity),
		order:  make([]K, 0, o.capacity),
		cloner: o.cloner,
	}
}

// OrderedMapFromEntries creates an OrderedMap holding the given entries in
// the given order. A duplicated key keeps its first position and its last
// value.
func OrderedMapFromEntries[K KeyConstraint, V ValueConstraint](entries ...Entry[K, V]) *OrderedMap[K, V] {
	om := NewOrderedMap[K, V](WithCapacity[K, V](len(entries)))
	for _, entry := range entries {
		om.Set(entry.Key, entry.Value)
	}
	return om
}

// Set stores the value under the key.
// A new key is appended to the end of the order; an existing key keeps its
// position and gets the new value.
func (om *OrderedMap[K, V]) Set(key K, value V) {
	om.setValue(key, om.cloneValue(value), false)
}

// Prepend stores the value under the key.
// A new key is placed at the front of the order; an existing key keeps its
// position and gets the new value.
func (om *OrderedMap[K, V]) Prepend(key K, value V) {
	om.setValue(key, om.cloneValue(value), true)
}

// With stores the value under the key like Set and returns the map, so
// construction can be chained:
//
//	m := orderedmap.NewOrderedMap[string, int]().With("a", 1).With("b", 2)
func (om *OrderedMap[K, V]) With(key K, value V) *OrderedMap[K, V] {
	om.Set(key, value)
	return om
}

// AppendEntry stores the entry like Set and returns the map for chaining.
func (om *OrderedMap[K, V]) AppendEntry(entry Entry[K, V]) *OrderedMap[K, V] {
	om.Set(entry.Key, entry.Value)
	return om
}

// PrependEntry stores the entry like Prepend and returns the map for
// chaining.
func (om *OrderedMap[K, V]) PrependEntry(entry Entry[K, V]) *OrderedMap[K, V] {
	om.Prepend(entry.Key, entry.Value)
	return om
}

// ReplaceAt replaces the value at the given order position and returns the
// key that holds the position. It returns ErrOutOfRange when the index is
// outside the container.
func (om *OrderedMap[K, V]) ReplaceAt(index int, value V) (K, error) {
	if index < 0 || index >= len(om.order) {
		var zero K
		return zero, fmt.Errorf("%w [%d] with length %d", ErrOutOfRange, index, len(om.order))
	}

	key := om.order[index]
	om.store[key] = om.cloneValue(value)
	return key, nil
}

// At returns the value at the given order position.
// It returns ErrOutOfRange when the index is outside the container.
func (om *OrderedMap[K, V]) At(index int) (V, error) {
	if index < 0 || index >= len(om.order) {
		var zero V
		return zero, fmt.Errorf("%w [%d] with length %d", ErrOutOfRange, index, len(om.order))
	}
	return om.cloneValue(om.store[om.order[index]]), nil
}

// ValueAt returns the value at the given order position, or the zero value
// when the index is outside the container.
func (om *OrderedMap[K, V]) ValueAt(index int) V {
	value, _ := om.At(index)
	return value
}

// KeyAt returns the key at the given order position, or the zero key when
// the index is outside the container.
func (om *OrderedMap[K, V]) KeyAt(index int) K {
	if index < 0 || index >= len(om.order) {
		var zero K
		return zero
	}
	return om.order[index]
}

// Get returns the value stored under the key and whether the key is present.
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := om.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	return om.cloneValue(value), true
}

// Value returns the value stored under the key, or the zero value when the
// key is not present.
func (om *OrderedMap[K, V]) Value(key K) V {
	value, _ := om.Get(key)
	return value
}

// ValueOr returns the value stored under the key, or the fallback when the
// key is not present.
func (om *OrderedMap[K, V]) ValueOr(key K, fallback V) V {
	if value, ok := om.store[key]; ok {
		return om.cloneValue(value)
	}
	return fallback
}

// Remove deletes the entry for the key and returns the order position it
// occupied. It returns -1 when the key is not present.
func (om *OrderedMap[K, V]) Remove(key K) int {
	if _, ok := om.store[key]; !ok {
		return -1
	}

	index := slices.Index(om.order, key)
	om.removeIndex(index)
	return index
}

// RemoveAt deletes the entry at the given order position and returns its
// key. It returns ErrOutOfRange when the index is outside the container.
func (om *OrderedMap[K, V]) RemoveAt(index int) (K, error) {
	if index < 0 || index >= len(om.order) {
		var zero K
		return zero, fmt.Errorf("%w [%d] with length %d", ErrOutOfRange, index, len(om.order))
	}
	return om.removeIndex(index), nil
}

// RemoveLast deletes the entry at the last order position and returns its
// key. It returns ErrEmptyContainer when the container is empty.
func (om *OrderedMap[K, V]) RemoveLast() (K, error) {
	if len(om.order) == 0 {
		var zero K
		return zero, ErrEmptyContainer
	}
	return om.removeIndex(len(om.order) - 1), nil
}

// Last returns the entry at the last order position.
// It returns the zero Entry when the container is empty, so callers that
// need to distinguish an empty container must check IsEmpty first.
func (om *OrderedMap[K, V]) Last() Entry[K, V] {
	if len(om.order) == 0 {
		return Entry[K, V]{}
	}

	key := om.order[len(om.order)-1]
	return Entry[K, V]{Key: key, Value: om.cloneValue(om.store[key])}
}

// Contains reports whether the key is present.
func (om *OrderedMap[K, V]) Contains(key K) bool {
	_, ok := om.store[key]
	return ok
}

// Keys returns a copy of the key sequence in insertion order.
func (om *OrderedMap[K, V]) Keys() []K {
	if len(om.order) == 0 {
		return nil
	}
	return slices.Clone(om.order)
}

// Values returns the values in insertion order of their keys.
func (om *OrderedMap[K, V]) Values() []V {
	if len(om.order) == 0 {
		return nil
	}

	values := make([]V, len(om.order))
	for i, key := range om.order {
		values[i] = om.cloneValue(om.store[key])
	}
	return values
}

// Entries returns the entries in insertion order.
func (om *OrderedMap[K, V]) Entries() []Entry[K, V] {
	if len(om.order) == 0 {
		return nil
	}

	entries := make([]Entry[K, V], len(om.order))
	for i, key := range om.order {
		entries[i] = Entry[K, V]{Key: key, Value: om.cloneValue(om.store[key])}
	}
	return entries
}

// ValueKeyList returns the entries as value-first pairs in insertion order.
// When addEmptyPair is true a zero pair is added as well, at the front when
// putEmptyPairFirst is true and at the end otherwise. Selection widgets use
// the zero pair as an empty choice.
func (om *OrderedMap[K, V]) ValueKeyList(addEmptyPair, putEmptyPairFirst bool) []ValueKey[V, K] {
	list := make([]ValueKey[V, K], 0, len(om.order)+1)
	if addEmptyPair && putEmptyPairFirst {
		list = append(list, ValueKey[V, K]{})
	}
	for _, key := range om.order {
		list = append(list, ValueKey[V, K]{Value: om.cloneValue(om.store[key]), Key: key})
	}
	if addEmptyPair && !putEmptyPairFirst {
		list = append(list, ValueKey[V, K]{})
	}
	return list
}

// IndexOf returns the order position of the key, or -1 when the key is not
// present. The scan is linear in the number of entries.
func (om *OrderedMap[K, V]) IndexOf(key K) int {
	return slices.Index(om.order, key)
}

// Count returns 1 when the key is present and 0 otherwise.
func (om *OrderedMap[K, V]) Count(key K) int {
	if _, ok := om.store[key]; ok {
		return 1
	}
	return 0
}

// Len returns the number of entries.
func (om *OrderedMap[K, V]) Len() int {
	return len(om.order)
}

// IsEmpty reports whether the container has no entries.
func (om *OrderedMap[K, V]) IsEmpty() bool {
	return len(om.order) == 0
}

// Clear removes all entries. Allocated capacity is kept for reuse.
func (om *OrderedMap[K, V]) Clear() {
	clear(om.store)
	om.order = om.order[:0]
}

// All returns an iterator over the entries in insertion order.
// The container must not be mutated while iterating.
func (om *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, key := range om.order {
			if !yield(key, om.cloneValue(om.store[key])) {
				return
			}
		}
	}
}

// Clone returns a copy of the container with the same order and the same
// cloner. Values pass through the cloner once on the way into the copy.
func (om *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	cloned := &OrderedMap[K, V]{
		store:  make(map[K]V, len(om.store)),
		order:  slices.Clone(om.order),
		cloner: om.cloner,
	}
	for key, value := range om.store {
		cloned.store[key] = om.cloneValue(value)
	}
	return cloned
}

// ToMap returns the entries as a plain map. The insertion order is lost.
func (om *OrderedMap[K, V]) ToMap() map[K]V {
	m := make(map[K]V, len(om.store))
	for key, value := range om.store {
		m[key] = om.cloneValue(value)
	}
	return m
}

// setValue stores the value under the key and registers a new key at the
// chosen end of the order. All inserts funnel through here so the store and
// the order cannot go out of step.
func (om *OrderedMap[K, V]) setValue(key K, value V, front bool) {
	if om.store == nil {
		om.store = make(map[K]V)
	}
	if _, ok := om.store[key]; !ok {
		if front {
			om.order = slices.Insert(om.order, 0, key)
		} else {
			om.order = append(om.order, key)
		}
	}
	om.store[key] = value
}

// removeIndex removes the order entry at the position together with its
// store entry. The caller validates the position. All removals funnel
// through here so the store and the order cannot go out of step.
func (om *OrderedMap[K, V]) removeIndex(index int) K {
	key := om.order[index]
	om.order = slices.Delete(om.order, index, index+1)
	delete(om.store, key)
	return key
}

func (om *OrderedMap[K, V]) cloneValue(value V) V {
	if om.cloner == nil {
		return value
	}
	return om.cloner.CloneValue(value)
}
