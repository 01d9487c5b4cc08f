package slices

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Run("it should map every element", func(t *testing.T) {
		// WHEN
		result := Map([]int{1, 2, 3}, strconv.Itoa)

		// THEN
		assert.Equal(t, []string{"1", "2", "3"}, result)
	})
}

func TestInsert(t *testing.T) {
	t.Run("it should insert at the head", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2}, Insert([]int{1, 2}, 0, 0))
	})

	t.Run("it should insert in the middle", func(t *testing.T) {
		assert.Equal(t, []int{1, 9, 2}, Insert([]int{1, 2}, 1, 9))
	})

	t.Run("it should append at the tail", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, Insert([]int{1, 2}, 2, 3))
	})

	t.Run("it should copy without inserting when index is negative", func(t *testing.T) {
		// GIVEN
		original := []int{1, 2}

		// WHEN
		result := Insert(original, -1, 3)
		result[0] = 42

		// THEN
		assert.Equal(t, []int{42, 2}, result)
		assert.Equal(t, []int{1, 2}, original)
	})

	t.Run("it should leave the original untouched", func(t *testing.T) {
		// GIVEN
		original := make([]int, 2, 8)
		original[0], original[1] = 1, 2

		// WHEN
		_ = Insert(original, 1, 5)

		// THEN
		assert.Equal(t, []int{1, 2}, original)
	})
}
