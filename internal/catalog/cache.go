package catalog

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// AllGiftsKey is the snapshot cache key for the unfiltered catalog.
const AllGiftsKey = "all_gifts"

type snapshotEntry struct {
	listings  []Listing
	createdAt time.Time
}

// Cache memoizes normalized catalog snapshots and resolved image
// references, both bounded by the same TTL. The clock is injected so
// staleness is testable; concurrent population is last-writer-wins.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	snapshots map[string]snapshotEntry

	images *expirable.LRU[string, string]
}

// NewCache builds a cache with the given TTL. A nil clock means time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:       ttl,
		now:       now,
		snapshots: make(map[string]snapshotEntry),
		// Size 0 leaves the LRU unbounded; the key space is capped by
		// the number of distinct gift names.
		images: expirable.NewLRU[string, string](0, nil, ttl),
	}
}

// GetSnapshot returns the cached listing sequence for key if it is still
// within its TTL.
func (c *Cache) GetSnapshot(key string) ([]Listing, bool) {
	c.mu.RLock()
	entry, ok := c.snapshots[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) >= c.ttl {
		return nil, false
	}
	return entry.listings, true
}

// SetSnapshot overwrites the entry for key with a fresh timestamp.
func (c *Cache) SetSnapshot(key string, listings []Listing) {
	c.mu.Lock()
	c.snapshots[key] = snapshotEntry{listings: listings, createdAt: c.now()}
	c.mu.Unlock()
}

// ResolveImage returns the cached image reference for a gift name,
// generating and caching a placeholder on miss.
func (c *Cache) ResolveImage(name string) string {
	if ref, ok := c.images.Get(name); ok {
		return ref
	}
	ref := PlaceholderImage(name)
	c.images.Add(name, ref)
	return ref
}
