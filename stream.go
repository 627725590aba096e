package orderedmap

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Encode writes the container to w as a binary stream: the key sequence
// first, then the keyed payload. Both K and V must be encodable by
// encoding/gob.
func (om *OrderedMap[K, V]) Encode(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(om.order); err != nil {
		return fmt.Errorf("encode key sequence: %w", err)
	}
	if err := enc.Encode(om.store); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// Decode reads a binary stream produced by Encode from r, replacing the
// receiver's contents. The stream is read into fresh structures and
// committed only when it decodes completely, so a failed Decode leaves the
// receiver unchanged.
//
// The key sequence drives the rebuild: a sequence key missing from the
// payload decodes as the zero value, and a duplicated sequence key keeps its
// first position and its last value.
func (om *OrderedMap[K, V]) Decode(r io.Reader) error {
	dec := gob.NewDecoder(r)

	var order []K
	if err := dec.Decode(&order); err != nil {
		return fmt.Errorf("decode key sequence: %w", err)
	}
	var payload map[K]V
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	store := make(map[K]V, len(order))
	seq := make([]K, 0, len(order))
	for _, key := range order {
		if _, ok := store[key]; !ok {
			seq = append(seq, key)
		}
		store[key] = payload[key]
	}
	om.store, om.order = store, seq
	return nil
}

// Encode writes the container to w as a binary stream: the key sequence
// first, then the keyed payload with every value slot. Both K and V must be
// encodable by encoding/gob.
func (om *OrderedMultiMap[K, V]) Encode(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(om.order); err != nil {
		return fmt.Errorf("encode key sequence: %w", err)
	}
	if err := enc.Encode(om.store); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// Decode reads a binary stream produced by Encode from r, replacing the
// receiver's contents. The stream is read into fresh structures and
// committed only when it decodes completely, so a failed Decode leaves the
// receiver unchanged.
//
// The key sequence drives the rebuild: each occurrence of a key re-adds that
// key's next payload slot, restoring the interleaving of keys and the order
// of each key's values. An occurrence without a matching payload slot
// decodes as the zero value.
func (om *OrderedMultiMap[K, V]) Decode(r io.Reader) error {
	dec := gob.NewDecoder(r)

	var order []K
	if err := dec.Decode(&order); err != nil {
		return fmt.Errorf("decode key sequence: %w", err)
	}
	var payload map[K][]V
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	store := make(map[K][]V, len(payload))
	seq := make([]K, 0, len(order))
	counters := make(map[K]int, len(payload))
	for _, key := range order {
		slot := counters[key]
		counters[key]++

		var value V
		if values := payload[key]; slot < len(values) {
			value = values[slot]
		}
		seq = append(seq, key)
		store[key] = append(store[key], value)
	}
	om.store, om.order = store, seq
	return nil
}
