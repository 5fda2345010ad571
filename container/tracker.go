package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/autopresenter/set"
)

// tracker records the services being built, to report dependency cycles instead of dead locking.
type tracker struct {
	visited set.Set[reflect.Type]
	stack   []reflect.Type
}

func newTracker() *tracker {
	return &tracker{
		visited: set.New[reflect.Type](),
	}
}

func (t *tracker) push(typ reflect.Type) error {
	if t.visited.Contains(typ) {
		cycle := []reflect.Type{typ}
		for i := len(t.stack) - 1; i >= 0; i-- {
			cycle = append(cycle, t.stack[i])
			if t.stack[i] == typ {
				break
			}
		}
		return fmt.Errorf("cycle found:\n%s", formatCycle(cycle))
	}
	t.visited.Add(typ)
	t.stack = append(t.stack, typ)
	return nil
}

func (t *tracker) pop() {
	if len(t.stack) == 0 {
		panic("tracker: pop from empty stack")
	}
	typ := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	t.visited.Remove(typ)
}

func formatCycle(cycle []reflect.Type) string {
	var b strings.Builder
	for i := len(cycle) - 1; i >= 0; i-- {
		b.WriteString(strings.Repeat("\t", len(cycle)-1-i))
		if i != len(cycle)-1 {
			b.WriteString(" -> ")
		}
		b.WriteString(cycle[i].String())
		b.WriteString("\n")
	}
	return b.String()
}
