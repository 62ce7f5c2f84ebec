package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/verifykit/outbound/clock"
)

// MemoryCacheConfig configures the in-memory response cache.
type MemoryCacheConfig struct {
	// MaxEntries bounds the cache size; inserting beyond it evicts the
	// least recently accessed entry. Must be >= 1. Default: 1000
	MaxEntries int

	// Clock is the time source for expiry checks. Default: clock.System().
	Clock clock.Clock
}

// MemoryCache is a bounded in-memory cache with per-entry TTL and LRU
// eviction. Expired entries are purged lazily on read; there is no
// background sweep.
type MemoryCache struct {
	config MemoryCacheConfig

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently accessed

	hits      uint64
	misses    uint64
	evictions uint64
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache(config MemoryCacheConfig) (*MemoryCache, error) {
	if config.MaxEntries < 0 {
		return nil, ErrBadConfig
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = 1000
	}
	if config.Clock == nil {
		config.Clock = clock.System()
	}

	return &MemoryCache{
		config:  config,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}, nil
}

// Get retrieves a cached response. A hit moves the entry to the front of the
// recency order; an expired entry is removed and reported as a miss.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}

	entry := elem.Value.(*memoryEntry)
	if !c.config.Clock.Now().Before(entry.expiresAt) {
		c.removeLocked(elem)
		c.misses++
		return nil, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return entry.value, true
}

// Set stores a response under key. An existing entry is overwritten in
// place. When the insert pushes the cache past capacity, the least recently
// accessed entry is evicted.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.config.Clock.Now().Add(ttl)

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return nil
	}

	elem := c.order.PushFront(&memoryEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
	c.entries[key] = elem

	if c.order.Len() > c.config.MaxEntries {
		c.evictLocked()
	}
	return nil
}

// Delete removes a cached response, reporting whether it was present.
func (c *MemoryCache) Delete(_ context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(elem)
	return true
}

// Len returns the number of entries currently stored, including any that
// have expired but not yet been purged.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// evictLocked drops the least recently accessed entry.
func (c *MemoryCache) evictLocked() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.removeLocked(oldest)
	c.evictions++
}

func (c *MemoryCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}

// Stats contains cache effectiveness counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	MaxSize   int
}

// HitRate returns the fraction of lookups served from the cache, in [0, 1].
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the cache counters.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
		MaxSize:   c.config.MaxEntries,
	}
}

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)
