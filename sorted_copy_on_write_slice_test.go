package godeco

import (
	"testing"

	"github.com/a-peyrard/godeco/fn"
	"github.com/stretchr/testify/assert"
)

type ranked struct {
	rank  int
	label string
}

func TestSortedCOWSlice(t *testing.T) {
	byRank := func(a, b ranked) fn.ComparisonResult {
		return fn.CompareInts(a.rank, b.rank)
	}

	t.Run("it should keep items sorted", func(t *testing.T) {
		// GIVEN
		slice := NewSortedCOWSlice[ranked](byRank)

		// WHEN
		slice.Add(ranked{rank: 3})
		slice.Add(ranked{rank: 1})
		slice.Add(ranked{rank: 2})

		// THEN
		assert.Equal(t, []ranked{{rank: 1}, {rank: 2}, {rank: 3}}, slice.All())
		assert.Equal(t, 3, slice.Len())
	})

	t.Run("it should keep the insertion order of equal items", func(t *testing.T) {
		// GIVEN
		slice := NewSortedCOWSlice[ranked](byRank)

		// WHEN
		slice.Add(ranked{rank: 1, label: "first"})
		slice.Add(ranked{rank: 0, label: "zero"})
		slice.Add(ranked{rank: 1, label: "second"})

		// THEN
		assert.Equal(t, []ranked{
			{rank: 0, label: "zero"},
			{rank: 1, label: "first"},
			{rank: 1, label: "second"},
		}, slice.All())
	})

	t.Run("it should not change the snapshots already read", func(t *testing.T) {
		// GIVEN
		slice := NewSortedCOWSlice[ranked](byRank)
		slice.Add(ranked{rank: 1})
		snapshot := slice.All()

		// WHEN
		slice.Add(ranked{rank: 0})

		// THEN
		assert.Len(t, snapshot, 1)
		assert.Equal(t, 2, slice.Len())
	})
}
