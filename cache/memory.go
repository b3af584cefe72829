package cache

import (
	"sync"
	"time"
)

// InMemoryCache is a thread-safe translation cache for a single
// process. Entries optionally expire a fixed TTL after they are stored;
// the exporter can persist the live entries between runs.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// memoryEntry carries a cached chunk translation and its expiry
// deadline. A zero deadline means the entry never expires.
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewInMemoryCache creates an in-memory cache. A ttlSeconds of 0 or
// less keeps entries for the lifetime of the cache.
func NewInMemoryCache(ttlSeconds int) *InMemoryCache {
	c := &InMemoryCache{entries: make(map[string]memoryEntry)}
	if ttlSeconds > 0 {
		c.ttl = time.Duration(ttlSeconds) * time.Second
	}
	return c
}

// Get returns the cached value for key. Expired entries read as misses
// and are evicted.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if entry.expired(time.Now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}

	return entry.value, true
}

// Set stores value under key, resetting its expiry deadline.
func (c *InMemoryCache) Set(key string, value string) error {
	entry := memoryEntry{value: value}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
}

// Entries returns the live entries as a plain map. The exporter uses it
// to persist the cache to a file between runs.
func (c *InMemoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	result := make(map[string]string, len(c.entries))
	for key, entry := range c.entries {
		if entry.expired(now) {
			continue
		}
		result[key] = entry.value
	}
	return result
}

// Verify InMemoryCache implements TranslationCache
var _ TranslationCache = (*InMemoryCache)(nil)
