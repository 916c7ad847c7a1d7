// Package cache provides a small in-process result cache with per-entry
// TTL and coarse invalidation by key fragment. Expiry is logical: an
// entry past its TTL is absent to readers and evicted lazily on read,
// there is no background sweep.
package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Cache memoizes derived computations keyed by hierarchical strings
// (domain:scope:variant, see keys.go). Safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	logger     *slog.Logger

	// now is swappable so tests can advance time deterministically.
	now func() time.Time
}

// New creates a cache. defaultTTL applies when Set is called with a
// non-positive TTL.
func New(defaultTTL time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// DefaultTTL is the "medium" expiry used when callers don't specify one.
const DefaultTTL = 5 * time.Minute

// Get returns the cached value, or ok=false both when the key was never
// set and when its TTL has elapsed. Elapsed entries are evicted on read.
func (c *Cache) Get(key string) (any, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !e.expired(now) {
		return e.value, true
	}

	// Lazy eviction. Re-check under the write lock so a concurrent Set
	// isn't discarded.
	c.mu.Lock()
	if cur, ok := c.entries[key]; ok && cur.expired(now) {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	return nil, false
}

// Set stores a value, overwriting any existing entry. A non-positive
// ttl selects the default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, createdAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Invalidate removes every entry whose key contains the given fragment
// and returns how many were removed. Callers use the structured key
// constants so the blast radius is a domain or scope, not an accident
// of substring collisions.
func (c *Cache) Invalidate(fragment string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		if strings.Contains(k, fragment) {
			delete(c.entries, k)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Debug("invalidated cache entries", "fragment", fragment, "count", removed)
	}
	return removed
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Size returns the number of physically present entries, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// SetClock replaces the cache's time source. Tests only.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
