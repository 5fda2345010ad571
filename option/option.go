// Package option contains utility to use the variadic options pattern
package option

// Option represents a function that modifies options of type T.
type Option[T any] func(opts *T)

// Build applies a series of options to the default options struct and returns the modified result.
//
// Nil options are skipped, so callers can forward optional settings without filtering them first.
func Build[T any](defaultOpts *T, opts ...Option[T]) *T {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(defaultOpts)
	}
	return defaultOpts
}

// Combine merges several options into a single one, applied in order.
func Combine[T any](opts ...Option[T]) Option[T] {
	return func(target *T) {
		Build(target, opts...)
	}
}
