package fn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareInts(t *testing.T) {
	t.Run("it should order ints naturally", func(t *testing.T) {
		assert.Equal(t, Less, CompareInts(1, 2))
		assert.Equal(t, Greater, CompareInts(2, 1))
		assert.Equal(t, Equal, CompareInts(2, 2))
	})
}

func TestAnd(t *testing.T) {
	positive := func(i int) bool { return i > 0 }
	even := func(i int) bool { return i%2 == 0 }

	t.Run("it should require every predicate", func(t *testing.T) {
		// GIVEN
		both := And[int](positive, even)

		// THEN
		assert.True(t, both(4))
		assert.False(t, both(3))
		assert.False(t, both(-2))
	})

	t.Run("it should accept everything without predicates", func(t *testing.T) {
		assert.True(t, And[int]()(-1))
	})
}
