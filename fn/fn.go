package fn

import "cmp"

// ComparisonResult represents the result of comparing two values.
type ComparisonResult int

const (
	Equal   ComparisonResult = 0
	Less    ComparisonResult = -1
	Greater ComparisonResult = 1
)

// Comparator represents a function that compares two values of type T.
type Comparator[T any] func(i1 T, i2 T) ComparisonResult

// ReverseComparator returns a comparator that reverses the order of the given comparator.
func ReverseComparator[T any](comparator Comparator[T]) Comparator[T] {
	return func(i1 T, i2 T) ComparisonResult {
		return comparator(i2, i1)
	}
}

// CompareBy builds a comparator ordering elements by the key extracted with the given function.
func CompareBy[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(i1 T, i2 T) ComparisonResult {
		return ComparisonResult(cmp.Compare(key(i1), key(i2)))
	}
}

// Func adapts the comparator to the signature expected by the standard slices package.
func (c Comparator[T]) Func() func(T, T) int {
	return func(i1 T, i2 T) int {
		return int(c(i1, i2))
	}
}
