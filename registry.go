package autopresenter

import (
	"sync"
	"sync/atomic"
)

type (
	registryEntry struct {
		key       string
		decorator TypeDecorator
	}

	// registry is an insertion-ordered, copy-on-write list of keyed decorators.
	//
	// Readers get an immutable snapshot without locking, writers serialize on the mutex.
	registry struct {
		entries atomic.Pointer[[]registryEntry]
		mu      sync.Mutex
	}
)

func newRegistry() *registry {
	r := &registry{}
	initial := make([]registryEntry, 0)
	r.entries.Store(&initial)
	return r
}

// put appends the decorator under key, or replaces the decorator already registered under key at
// its current position.
func (r *registry) put(key string, decorator TypeDecorator) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.entries.Load()
	next := make([]registryEntry, len(current), len(current)+1)
	copy(next, current)

	for i := range next {
		if next[i].key == key {
			next[i].decorator = decorator
			r.entries.Store(&next)
			return true
		}
	}

	next = append(next, registryEntry{key: key, decorator: decorator})
	r.entries.Store(&next)
	return false
}

func (r *registry) all() []registryEntry {
	return *r.entries.Load()
}

func (r *registry) len() int {
	return len(*r.entries.Load())
}
