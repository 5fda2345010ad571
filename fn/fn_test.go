package fn

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type listener struct {
	name     string
	priority int
}

func TestCompareBy(t *testing.T) {
	t.Run("it should compare using the extracted key", func(t *testing.T) {
		// GIVEN
		byPriority := CompareBy(func(l listener) int { return l.priority })

		// WHEN / THEN
		assert.Equal(t, Less, byPriority(listener{priority: 1}, listener{priority: 2}))
		assert.Equal(t, Greater, byPriority(listener{priority: 3}, listener{priority: 2}))
		assert.Equal(t, Equal, byPriority(listener{priority: 2}, listener{priority: 2}))
	})

	t.Run("it should sort stably in reverse order", func(t *testing.T) {
		// GIVEN
		listeners := []listener{
			{name: "a", priority: 0},
			{name: "b", priority: 10},
			{name: "c", priority: 0},
			{name: "d", priority: 10},
		}
		byPriorityDesc := ReverseComparator(CompareBy(func(l listener) int { return l.priority }))

		// WHEN
		slices.SortStableFunc(listeners, byPriorityDesc.Func())

		// THEN
		names := make([]string, len(listeners))
		for i, l := range listeners {
			names[i] = l.name
		}
		assert.Equal(t, []string{"b", "d", "a", "c"}, names)
	})
}
