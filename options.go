package orderedmap

// Option is the interface for container construction options.
// The same options apply to OrderedMap and OrderedMultiMap.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*options[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*options[K, V])

func (f optionFunc[K, V]) apply(o *options[K, V]) {
	f(o)
}

// WithCapacity pre-sizes the container for the expected number of entries.
// The capacity must not be negative.
func WithCapacity[K KeyConstraint, V ValueConstraint](capacity int) Option[K, V] {
	if capacity < 0 {
		panic("capacity must not be negative")
	}
	return optionFunc[K, V](func(o *options[K, V]) {
		o.capacity = capacity
	})
}

// WithValueCloner sets the value cloner of the container.
// The container passes every value through the cloner when storing it and
// when handing it back, so the caller never shares mutable state with the
// container. The default is NopValueCloner.
func WithValueCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.cloner = cloner
	})
}

type options[K KeyConstraint, V ValueConstraint] struct {
	capacity int
	cloner   ValueCloner[V]
}

func defaultOptions[K KeyConstraint, V ValueConstraint]() options[K, V] {
	return options[K, V]{
		capacity: 0,
		cloner:   NopValueCloner[V]{},
	}
}
