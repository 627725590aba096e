package orderedmap

// KeyConstraint is an interface for key constraints.
// Keys must support equality so that the associative store and the order
// sequence can agree on key identity.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// TextKeyConstraint is an interface for keys with a textual underlying type.
// Operations that compare keys case-insensitively at compile time, such as
// ContainsFold, require it.
type TextKeyConstraint interface {
	~string
}

// Entry is a key-value pair.
type Entry[K KeyConstraint, V ValueConstraint] struct {
	// Key is the key of the entry.
	Key K

	// Value is the value associated with the key.
	Value V
}

// ValueKey is a value-first pair produced by ValueKeyList.
// The value leads because the list is meant for display-oriented
// enumerations that render the value and carry the key along.
type ValueKey[V ValueConstraint, K KeyConstraint] struct {
	// Value is the displayed value.
	Value V

	// Key is the key the value is bound to.
	Key K
}
