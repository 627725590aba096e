// Package orderedmap provides generic associative containers that remember
// insertion order.
//
// OrderedMap stores one value per key and OrderedMultiMap stores any number
// of values per key. Both pair a hash-based store with an ordered key
// sequence, so key lookups stay cheap while Keys, Values, Entries, All, and
// the serialized forms follow the order in which entries were inserted
// instead of Go's randomized map order.
//
// Read accessors never fail: Value, ValueOr, ValueAt, KeyAt, and Last
// degrade to the zero value when the key or position is absent. Positional
// mutators and checked reads such as At, ReplaceAt, RemoveAt, and RemoveLast
// return ErrOutOfRange or ErrEmptyContainer instead. Remove of an absent key
// reports the miss through its count result rather than an error.
//
// Containers serialize to JSON objects and YAML mappings whose member order
// is the container order, and to a binary stream via Encode and Decode. All
// decoders replace the receiver's contents and leave the receiver unchanged
// when decoding fails.
//
// The containers do no locking and are not safe for concurrent use. Once a
// container is no longer mutated, any number of goroutines may read it
// concurrently.
package orderedmap
