package orderedmap

import "errors"

var (
	// ErrOutOfRange reports a positional operation with an index outside [0, Len()).
	ErrOutOfRange = errors.New("index out of range")

	// ErrEmptyContainer reports a mutating operation that needs at least one entry.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrUnsupportedKeyType reports a key type that cannot be represented as a
	// JSON object member name. Supported key types are string kinds, integer
	// and float kinds, bool, and types implementing encoding.TextMarshaler and
	// encoding.TextUnmarshaler.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)
