package autopresenter

type (
	// Decorator is anything able to decorate an arbitrary value. The Dispatcher is the Decorator
	// container decorators recurse through.
	Decorator interface {
		Decorate(subject any) (any, error)
	}

	// TypeDecorator decorates exactly one shape of value.
	TypeDecorator interface {
		// CanDecorate tests the shape of subject, never its content.
		CanDecorate(subject any) bool

		Decorator
	}

	typedDecorator[T any] struct {
		decorate func(T) (any, error)
	}
)

// TypeDecoratorOf builds a TypeDecorator claiming every value assignable to T.
func TypeDecoratorOf[T any](decorate func(subject T) (any, error)) TypeDecorator {
	return typedDecorator[T]{decorate: decorate}
}

func (t typedDecorator[T]) CanDecorate(subject any) bool {
	_, ok := subject.(T)
	return ok
}

func (t typedDecorator[T]) Decorate(subject any) (any, error) {
	typed, ok := subject.(T)
	if !ok {
		return subject, nil
	}
	return t.decorate(typed)
}
