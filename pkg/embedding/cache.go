package embedding

import "sync"

const (
	// cacheKeyLength is the number of leading characters used as the cache
	// key. Two texts sharing a 100-character prefix are assumed to produce
	// the same embedding. This is a heuristic: distinct documents with an
	// identical prefix (boilerplate letterhead, form headers) will collide
	// and share a vector. The cost of a collision is a slightly wrong
	// similarity signal, never a failure.
	cacheKeyLength = 100

	// DefaultCacheSize is the entry count at which eviction triggers.
	DefaultCacheSize = 1000
)

// Cache is a bounded in-memory vector cache keyed by text prefix. When the
// cache grows past its limit it evicts the oldest half in one sweep —
// insertion-order bulk eviction, not LRU. Entries live for the lifetime of
// the cache; there is no TTL or teardown. The mutex guards map integrity
// only: concurrent fills of the same key are allowed to race, since a lost
// write just costs one redundant provider call.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string][]float64
	order   []string
}

// NewCache creates a Cache that evicts once it exceeds max entries.
// A non-positive max falls back to DefaultCacheSize.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{
		max:     max,
		entries: make(map[string][]float64),
	}
}

// Get returns the cached vector for text's prefix key, if present.
func (c *Cache) Get(text string) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vec, ok := c.entries[cacheKey(text)]
	return vec, ok
}

// Put stores the vector under text's prefix key, evicting the oldest half
// of the cache if the insert pushes it past the limit.
func (c *Cache) Put(text string, vec []float64) {
	key := cacheKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = vec

	if len(c.entries) > c.max {
		c.evict()
	}
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evict() {
	drop := len(c.order) / 2
	for _, key := range c.order[:drop] {
		delete(c.entries, key)
	}
	c.order = append([]string(nil), c.order[drop:]...)
}

func cacheKey(text string) string {
	if len(text) <= cacheKeyLength {
		return text
	}
	return text[:cacheKeyLength]
}
