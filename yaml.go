package orderedmap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	_ yaml.Marshaler   = (*OrderedMap[string, any])(nil)
	_ yaml.Unmarshaler = (*OrderedMap[string, any])(nil)
	_ yaml.Marshaler   = (*OrderedMultiMap[string, any])(nil)
	_ yaml.Unmarshaler = (*OrderedMultiMap[string, any])(nil)
)

// MarshalYAML encodes the container as a YAML mapping whose pair order is
// the container order.
func (om *OrderedMap[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, 2*len(om.order)),
	}
	for _, key := range om.order {
		keyNode, valueNode, err := yamlPair(key, om.store[key])
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping into the container, replacing the
// receiver's contents. Pair order becomes the container order. The mapping
// is read into fresh structures and committed only when it decodes
// completely, so a failed UnmarshalYAML leaves the receiver unchanged.
//
// A duplicated key keeps its first position and its last value. A null node
// leaves the receiver untouched.
func (om *OrderedMap[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if isYAMLNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("unmarshal yaml: line %d: want a mapping node, got a %s node", node.Line, yamlKindName(node.Kind))
	}

	store := make(map[K]V, len(node.Content)/2)
	order := make([]K, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		var key K
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("unmarshal yaml: line %d: key: %w", node.Content[i].Line, err)
		}
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("unmarshal yaml: line %d: value for key %v: %w", node.Content[i+1].Line, key, err)
		}
		if _, exists := store[key]; !exists {
			order = append(order, key)
		}
		store[key] = value
	}

	om.store, om.order = store, order
	return nil
}

// MarshalYAML encodes the container as a YAML mapping with one pair per
// value slot, in container order. A key with several values produces
// several pairs with the same key, preserving the interleaving across a
// round trip.
func (om *OrderedMultiMap[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, 2*len(om.order)),
	}
	for key, slot := range om.slots() {
		keyNode, valueNode, err := yamlPair(key, om.store[key][slot])
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping into the container, replacing the
// receiver's contents. Every pair becomes one value slot, so duplicated keys
// stack their values in document order. A null node leaves the receiver
// untouched.
func (om *OrderedMultiMap[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if isYAMLNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("unmarshal yaml: line %d: want a mapping node, got a %s node", node.Line, yamlKindName(node.Kind))
	}

	store := make(map[K][]V, len(node.Content)/2)
	order := make([]K, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		var key K
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("unmarshal yaml: line %d: key: %w", node.Content[i].Line, err)
		}
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("unmarshal yaml: line %d: value for key %v: %w", node.Content[i+1].Line, key, err)
		}
		order = append(order, key)
		store[key] = append(store[key], value)
	}

	om.store, om.order = store, order
	return nil
}

// yamlPair encodes a key and a value as a mapping pair.
func yamlPair[K KeyConstraint, V ValueConstraint](key K, value V) (*yaml.Node, *yaml.Node, error) {
	keyNode := &yaml.Node{}
	if err := keyNode.Encode(key); err != nil {
		return nil, nil, fmt.Errorf("key %v: %w", key, err)
	}
	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return nil, nil, fmt.Errorf("value for key %v: %w", key, err)
	}
	return keyNode, valueNode, nil
}

func isYAMLNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func yamlKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
