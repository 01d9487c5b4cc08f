package fn

// ComparisonResult represents the result of comparing two values.
type ComparisonResult int

const (
	Equal   ComparisonResult = 0
	Less    ComparisonResult = -1
	Greater ComparisonResult = 1
)

// Comparator represents a function that compares two values of type T.
type Comparator[T any] func(i1 T, i2 T) ComparisonResult

// CompareInts is a natural order comparator for ints.
func CompareInts(i1 int, i2 int) ComparisonResult {
	switch {
	case i1 < i2:
		return Less
	case i1 > i2:
		return Greater
	default:
		return Equal
	}
}

// Predicate represents a function that tests a value.
type Predicate[T any] func(t T) bool

// And returns a predicate satisfied only when all the given predicates are.
//
// An empty list of predicates accepts everything.
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(t T) bool {
		for _, predicate := range predicates {
			if !predicate(t) {
				return false
			}
		}
		return true
	}
}
