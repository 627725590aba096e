package orderedmap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/karupanerura/ordered-map/internal/keycodec"
)

var (
	_ json.Marshaler   = (*OrderedMap[string, any])(nil)
	_ json.Unmarshaler = (*OrderedMap[string, any])(nil)
	_ json.Marshaler   = (*OrderedMultiMap[string, any])(nil)
	_ json.Unmarshaler = (*OrderedMultiMap[string, any])(nil)
)

// MarshalJSON encodes the container as a JSON object whose member order is
// the container order. The key type must have a canonical text form:
// string, bool, integer, and float kinds are supported directly, and other
// types must implement encoding.TextMarshaler. Anything else fails with
// ErrUnsupportedKeyType.
func (om *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	codec, ok := keycodec.For[K]()
	if !ok {
		return nil, fmt.Errorf("marshal json: %w: %T", ErrUnsupportedKeyType, *new(K))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range om.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, codec, key, om.store[key]); err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the container, replacing the
// receiver's contents. Member order becomes the container order. The object
// is read into fresh structures and committed only when it decodes
// completely, so a failed UnmarshalJSON leaves the receiver unchanged.
//
// A duplicated member name keeps its first position and its last value.
// A JSON null leaves the receiver untouched, like the handling of maps in
// encoding/json.
func (om *OrderedMap[K, V]) UnmarshalJSON(data []byte) error {
	codec, ok := keycodec.For[K]()
	if !ok {
		return fmt.Errorf("unmarshal json: %w: %T", ErrUnsupportedKeyType, *new(K))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("unmarshal json: unexpected token %v, want an object", tok)
	}

	store := make(map[K]V)
	var order []K
	for dec.More() {
		key, value, err := readMember[K, V](dec, codec)
		if err != nil {
			return fmt.Errorf("unmarshal json: %w", err)
		}
		if _, exists := store[key]; !exists {
			order = append(order, key)
		}
		store[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	om.store, om.order = store, order
	return nil
}

// MarshalJSON encodes the container as a JSON object with one member per
// value slot, in container order. A key with several values produces
// several members with the same name, which is legal JSON and the only form
// that survives a round trip with the interleaving intact. The key type
// rules match OrderedMap.MarshalJSON.
func (om *OrderedMultiMap[K, V]) MarshalJSON() ([]byte, error) {
	codec, ok := keycodec.For[K]()
	if !ok {
		return nil, fmt.Errorf("marshal json: %w: %T", ErrUnsupportedKeyType, *new(K))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for key, slot := range om.slots() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeMember(&buf, codec, key, om.store[key][slot]); err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the container, replacing the
// receiver's contents. Every member becomes one value slot, so duplicated
// member names stack their values in document order. The object is read
// into fresh structures and committed only when it decodes completely.
//
// A JSON null leaves the receiver untouched.
func (om *OrderedMultiMap[K, V]) UnmarshalJSON(data []byte) error {
	codec, ok := keycodec.For[K]()
	if !ok {
		return fmt.Errorf("unmarshal json: %w: %T", ErrUnsupportedKeyType, *new(K))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("unmarshal json: unexpected token %v, want an object", tok)
	}

	store := make(map[K][]V)
	var order []K
	for dec.More() {
		key, value, err := readMember[K, V](dec, codec)
		if err != nil {
			return fmt.Errorf("unmarshal json: %w", err)
		}
		order = append(order, key)
		store[key] = append(store[key], value)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	om.store, om.order = store, order
	return nil
}

// writeMember appends one `"name":value` member to the buffer.
func writeMember[K KeyConstraint, V ValueConstraint](buf *bytes.Buffer, codec keycodec.Codec[K], key K, value V) error {
	name, err := codec.Encode(key)
	if err != nil {
		return err
	}
	nameJSON, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("member name %q: %w", name, err)
	}
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("member %q: %w", name, err)
	}

	buf.Write(nameJSON)
	buf.WriteByte(':')
	buf.Write(valueJSON)
	return nil
}

// readMember consumes one object member from the decoder, which must be
// positioned at a member name.
func readMember[K KeyConstraint, V ValueConstraint](dec *json.Decoder, codec keycodec.Codec[K]) (K, V, error) {
	var zeroK K
	var zeroV V

	tok, err := dec.Token()
	if err != nil {
		return zeroK, zeroV, err
	}
	name, ok := tok.(string)
	if !ok {
		return zeroK, zeroV, fmt.Errorf("unexpected member name token %v", tok)
	}
	key, err := codec.Decode(name)
	if err != nil {
		return zeroK, zeroV, err
	}

	var value V
	if err := dec.Decode(&value); err != nil {
		return zeroK, zeroV, fmt.Errorf("member %q: %w", name, err)
	}
	return key, value, nil
}
