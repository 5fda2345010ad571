package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("it should contain initial values only once", func(t *testing.T) {
		// GIVEN
		s := NewWithValues("app", "__env", "app")

		// WHEN / THEN
		assert.Equal(t, 2, s.Size())
		assert.True(t, s.Contains("app"))
		assert.True(t, s.Contains("__env"))
		assert.False(t, s.Contains("user"))
	})

	t.Run("it should not share storage with its clone", func(t *testing.T) {
		// GIVEN
		s := NewWithValues(1, 2)

		// WHEN
		clone := s.Clone()
		clone.Add(3)
		s.Remove(1)

		// THEN
		assert.Equal(t, []int{2}, Sorted(s))
		assert.Equal(t, []int{1, 2, 3}, Sorted(clone))
	})
}
