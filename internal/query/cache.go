package query

import (
	"strings"
	"sync"
	"time"
)

// entry is one cached snapshot.
type entry struct {
	value    any
	fresh    bool
	storedAt time.Time
}

// Cache is the process-wide query cache. It is read by many screens and
// written by the resolver and by mutation side effects; all operations on a
// single key are atomic under the cache lock, so readers never observe a
// half-updated collection.
//
// Entries carry a freshness flag rather than being evicted on expiry: a stale
// entry stays readable so screens can show the last good value while a
// background refetch runs (stale-while-revalidate).
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	gens       map[string]uint64
	epoch      uint64
	ttl        time.Duration
	maxEntries int
}

// NewCache creates a Cache. Entries older than ttl are served as stale; a ttl
// of 0 disables age-based staleness. maxEntries bounds the number of stored
// snapshots (oldest evicted first); 0 means unbounded.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]*entry),
		gens:       make(map[string]uint64),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns the cached value for key, whether it is still fresh, and
// whether an entry exists at all.
func (c *Cache) Get(key string) (value any, fresh bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return e.value, c.isFresh(e), true
}

// Set stores value under key and marks it fresh.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// SetIfGeneration stores value under key only when the key's generation still
// equals gen, i.e. when no invalidation or reset superseded the request that
// produced the value. It reports whether the value was stored.
func (c *Cache) SetIfGeneration(key string, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.gens[key]
	if !ok {
		cur = c.epoch
	}
	if cur != gen {
		return false
	}
	c.store(key, value)
	return true
}

// Generation returns the current generation for key, registering the key
// when unseen so a later invalidation covers it. Capture it before issuing a
// request and pass it to SetIfGeneration on completion.
func (c *Cache) Generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.gens[key]
	if !ok {
		g = c.epoch
		c.gens[key] = g
	}
	return g
}

// Invalidate marks every entry whose key starts with prefix as stale and
// bumps its generation, so in-flight requests issued before the invalidation
// are discarded on arrival. It returns the number of affected keys.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.fresh = false
			c.gens[key]++
			n++
		}
	}
	// Keys without a live entry can still have a request in flight.
	for key := range c.gens {
		if _, live := c.entries[key]; live {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			c.gens[key]++
		}
	}
	c.pruneGens()
	return n
}

// Patch applies a pure transformation to the cached value for key without a
// network round-trip, preserving its freshness. It reports whether an entry
// existed to patch. Use it only when the mutation's effect on the cached data
// is fully known; otherwise invalidate and let the next read refetch.
func (c *Cache) Patch(key string, fn func(value any) any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	e.value = fn(e.value)
	return true
}

// PatchPrefix applies a pure transformation to every cached entry whose key
// starts with prefix, preserving freshness. Used when a single entity changed
// in place and may appear on several cached pages of the same list. It
// returns the number of patched entries.
func (c *Cache) PatchPrefix(prefix string, fn func(value any) any) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.value = fn(e.value)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// store inserts under the current generation and evicts the oldest entry when
// over capacity. Caller must hold the write lock.
func (c *Cache) store(key string, value any) {
	c.entries[key] = &entry{
		value:    value,
		fresh:    true,
		storedAt: time.Now(),
	}
	if _, ok := c.gens[key]; !ok {
		c.gens[key] = c.epoch
	}
	c.pruneGens()

	if c.maxEntries <= 0 || len(c.entries) <= c.maxEntries {
		return
	}
	oldestKey := ""
	var oldest time.Time
	for k, e := range c.entries {
		if k == key {
			continue
		}
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey = k
			oldest = e.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// pruneGens drops generation counters for keys with no live entry once the
// map outgrows its bound. The epoch is raised past every dropped counter so
// an unseen key can never restart at a generation a pruned request was issued
// under; such a request is refused on completion and the next read refetches.
// Caller must hold the write lock.
func (c *Cache) pruneGens() {
	limit := 2 * c.maxEntries
	if c.maxEntries <= 0 {
		limit = 1024
	}
	if len(c.gens) <= limit {
		return
	}
	for key, g := range c.gens {
		if _, live := c.entries[key]; live {
			continue
		}
		delete(c.gens, key)
		if g >= c.epoch {
			c.epoch = g + 1
		}
	}
}

func (c *Cache) isFresh(e *entry) bool {
	if !e.fresh {
		return false
	}
	if c.ttl <= 0 {
		return true
	}
	return time.Since(e.storedAt) < c.ttl
}
