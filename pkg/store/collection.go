package store

import (
	"context"
	"sync"
)

// Snapshotter hands out the current contents of a collection. Invalidate marks the cached
// contents stale after an external mutation.
type Snapshotter[T any] interface {
	Snapshot(ctx context.Context) ([]T, error)
	Invalidate()
}

// Loader reads a whole collection from its source.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Collection caches the last loaded snapshot of a collection until invalidated.
// Each load bumps the version, so callers can tell when derived data must be rebuilt.
type Collection[T any] struct {
	mu      sync.RWMutex
	load    Loader[T]
	items   []T
	valid   bool
	version uint64
}

// NewCollection returns an empty, invalid collection backed by load.
func NewCollection[T any](load Loader[T]) *Collection[T] {
	return &Collection[T]{load: load}
}

// Snapshot returns a private copy of the collection.
func (c *Collection[T]) Snapshot(ctx context.Context) ([]T, error) {
	items, _, err := c.Versioned(ctx)
	return items, err
}

// Versioned is Snapshot plus the version the items belong to.
func (c *Collection[T]) Versioned(ctx context.Context) ([]T, uint64, error) {
	c.mu.RLock()
	if c.valid {
		items, v := clone(c.items), c.version
		c.mu.RUnlock()
		return items, v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		items, err := c.load(ctx)
		if err != nil {
			return nil, 0, err
		}
		c.items = items
		c.valid = true
		c.version++
	}
	return clone(c.items), c.version, nil
}

// Invalidate drops the cached snapshot. The next Snapshot reloads.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
