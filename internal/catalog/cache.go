package catalog

import (
	"slices"
	"sync/atomic"

	"fonoteca/internal/domain"
)

// Cache holds the full fetched asset collection. The collection is only
// ever swapped as a whole, so readers never observe a partial replacement.
type Cache struct {
	items  atomic.Pointer[[]domain.Asset]
	loaded atomic.Bool
}

// NewCache creates an empty cache
func NewCache() *Cache {
	c := &Cache{}
	empty := []domain.Asset{}
	c.items.Store(&empty)
	return c
}

// Replace swaps in a copy of items as the new collection
func (c *Cache) Replace(items []domain.Asset) {
	snapshot := make([]domain.Asset, len(items))
	for i, a := range items {
		snapshot[i] = a.Clone()
	}
	c.items.Store(&snapshot)
	c.loaded.Store(true)
}

// Current returns the held collection. The slice is shared and must be
// treated as read-only.
func (c *Cache) Current() []domain.Asset {
	return *c.items.Load()
}

// Snapshot returns a copy of the held collection
func (c *Cache) Snapshot() []domain.Asset {
	return slices.Clone(c.Current())
}

// Len returns the size of the held collection
func (c *Cache) Len() int {
	return len(c.Current())
}

// Loaded reports whether the cache was populated at least once
func (c *Cache) Loaded() bool {
	return c.loaded.Load()
}
