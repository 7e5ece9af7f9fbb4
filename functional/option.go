// Package functional provides the small value types the lens engine passes around.
package functional

// Option represents an optional value that may or may not be present.
// Lookups that can miss return an Option instead of a (value, ok) pair.
type Option[T any] struct {
	value   T
	present bool
}

// Some creates an Option containing a value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{present: false}
}

// Get returns the contained value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}
