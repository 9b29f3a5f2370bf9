// Package cache maps durable runtime identifiers to live element handles.
// The cache owns the mapping only: handles are weak references into the
// platform tree and are re-validated on every read, never trusted.
package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/platform"
)

var (
	// ErrNotCached means the identifier was never cached or has been evicted.
	ErrNotCached = errors.New("runtime id not cached")

	// ErrStale means the cached element is no longer live. The entry is
	// removed as a side effect; a repeat lookup reports ErrNotCached.
	ErrStale = errors.New("cached element is stale")
)

// Entry is one cached element: the live handle plus the rectangle observed
// when it was last seen. LastSeen is bookkeeping for logs, not an eviction
// input: entries persist until invalidated or the cache is cleared.
type Entry struct {
	Element  platform.Element
	Rect     model.Rect
	LastSeen time.Time
}

// Cache is a runtime-ID-keyed element cache. The engine funnels all access
// through its worker goroutine; the mutex additionally covers the teardown
// path, which clears the cache from the caller's goroutine.
type Cache struct {
	mu      sync.Mutex
	entries map[model.RuntimeID]Entry
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[model.RuntimeID]Entry)}
}

// Put inserts or overwrites an entry. Racing writers are serialized by the
// engine in arrival order, so the last write wins deterministically.
func (c *Cache) Put(id model.RuntimeID, el platform.Element, rect model.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = Entry{Element: el, Rect: rect, LastSeen: time.Now()}
}

// Get returns the entry for id without re-validation.
func (c *Cache) Get(id model.RuntimeID) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	return e, ok
}

// RefreshAndFetchRect re-validates the cached element through the adapter
// and returns its current rectangle. A dead element is evicted and reported
// as ErrStale: geometry is never served for a dead element.
func (c *Cache) RefreshAndFetchRect(ad platform.Adapter, id model.RuntimeID) (model.Rect, error) {
	c.mu.Lock()
	e, ok := c.entries[id]
	c.mu.Unlock()
	if !ok {
		return model.Rect{}, ErrNotCached
	}

	if !ad.IsAlive(e.Element) {
		c.Remove(id)
		return model.Rect{}, ErrStale
	}
	rect, err := ad.BoundingRect(e.Element)
	if err != nil {
		return model.Rect{}, err
	}

	c.mu.Lock()
	if cur, ok := c.entries[id]; ok {
		cur.Rect = rect
		cur.LastSeen = time.Now()
		c.entries[id] = cur
	}
	c.mu.Unlock()
	return rect, nil
}

// Remove evicts a single entry.
func (c *Cache) Remove(id model.RuntimeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Clear evicts everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[model.RuntimeID]Entry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
