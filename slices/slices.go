package slices

// Map transforms every element of a slice with the given mapper.
func Map[F any, T any](original []F, mapper func(F) T) []T {
	destination := make([]T, len(original))
	for i, item := range original {
		destination[i] = mapper(item)
	}
	return destination
}

// Insert returns a new slice with value placed at index, the original slice is left untouched.
//
// A negative index returns a plain copy of the original slice.
func Insert[T any](original []T, index int, value T) []T {
	if index < 0 {
		return append(make([]T, 0, len(original)), original...)
	}
	destination := make([]T, 0, len(original)+1)
	destination = append(destination, original[:index]...)
	destination = append(destination, value)
	return append(destination, original[index:]...)
}
