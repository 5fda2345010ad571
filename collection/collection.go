// Package collection provides the rich containers handed to views: an insertion-ordered keyed
// Collection and a Paginator carrying one page of items plus its pagination metadata.
package collection

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection is an ordered, keyed list of values.
//
// Keys keep their insertion order and may be of any comparable type, so sparse integer keys and
// string keys live side by side. Pushed values get the next integer key after the highest one seen.
type Collection struct {
	items *orderedmap.OrderedMap[any, any]
	next  int
}

// New creates a collection holding the given values under keys 0..n-1.
func New(values ...any) *Collection {
	c := &Collection{
		items: orderedmap.New[any, any](orderedmap.WithCapacity[any, any](len(values))),
	}
	for _, v := range values {
		c.Push(v)
	}
	return c
}

// Push appends a value under the next integer key.
func (c *Collection) Push(value any) *Collection {
	c.items.Set(c.next, value)
	c.next++
	return c
}

// Put stores a value under the given key. Re-using a key replaces the value and keeps its position.
//
// The key must be comparable, Put panics otherwise.
func (c *Collection) Put(key any, value any) *Collection {
	c.items.Set(key, value)
	if idx, ok := key.(int); ok && idx >= c.next {
		c.next = idx + 1
	}
	return c
}

// Get returns the value stored under key.
func (c *Collection) Get(key any) (any, bool) {
	return c.items.Get(key)
}

// Has reports whether a value is stored under key.
func (c *Collection) Has(key any) bool {
	_, found := c.items.Get(key)
	return found
}

// Forget removes the value stored under key, if any.
func (c *Collection) Forget(key any) {
	c.items.Delete(key)
}

// Count returns the number of values.
func (c *Collection) Count() int {
	return c.items.Len()
}

// Keys returns the keys in insertion order.
func (c *Collection) Keys() []any {
	keys := make([]any, 0, c.items.Len())
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// All returns the values in insertion order.
func (c *Collection) All() []any {
	values := make([]any, 0, c.items.Len())
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

// Each calls fn for every entry in insertion order until fn returns false.
func (c *Collection) Each(fn func(key any, value any) bool) {
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Transform replaces, in place and in insertion order, every value with the result of fn.
//
// Values are only replaced once fn succeeded for all of them: an error leaves the collection
// untouched.
func (c *Collection) Transform(fn func(key any, value any) (any, error)) error {
	transformed := make([]any, 0, c.items.Len())
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		value, err := fn(pair.Key, pair.Value)
		if err != nil {
			return fmt.Errorf("failed to transform item %v:\n\t%w", pair.Key, err)
		}
		transformed = append(transformed, value)
	}

	i := 0
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value = transformed[i]
		i++
	}
	return nil
}

// Clone returns a shallow copy holding the same values under the same keys, in the same order.
func (c *Collection) Clone() *Collection {
	clone := &Collection{
		items: orderedmap.New[any, any](orderedmap.WithCapacity[any, any](c.items.Len())),
		next:  c.next,
	}
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		clone.items.Set(pair.Key, pair.Value)
	}
	return clone
}

// Map is Transform applied to a clone, the collection itself is never modified.
func (c *Collection) Map(fn func(key any, value any) (any, error)) (*Collection, error) {
	clone := c.Clone()
	if err := clone.Transform(fn); err != nil {
		return nil, err
	}
	return clone, nil
}

func (c *Collection) String() string {
	return fmt.Sprintf("Collection(%d)", c.Count())
}
