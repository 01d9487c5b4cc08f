package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("it should report absent values on add", func(t *testing.T) {
		// GIVEN
		s := New[string]()

		// WHEN
		first := s.Add("delegate")
		second := s.Add("delegate")

		// THEN
		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, 1, s.Size())
	})

	t.Run("it should be created from values", func(t *testing.T) {
		// GIVEN
		s := NewWithValues(1, 2, 2, 3)

		// THEN
		assert.Equal(t, 3, s.Size())
		assert.True(t, s.Contains(2))
		assert.False(t, s.Contains(4))
	})
}
