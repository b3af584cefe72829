package cache

import (
	"testing"
	"time"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	c := NewInMemoryCache(3600)

	if err := c.Set("key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if val != "value1" {
		t.Errorf("Expected 'value1', got %q", val)
	}
}

func TestInMemoryCache_Miss(t *testing.T) {
	c := NewInMemoryCache(3600)

	if _, ok := c.Get("absent"); ok {
		t.Error("Expected cache miss for absent key")
	}
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache(1)
	_ = c.Set("key1", "value1")

	// Move the deadline into the past.
	c.mu.Lock()
	entry := c.entries["key1"]
	entry.expiresAt = time.Now().Add(-time.Second)
	c.entries["key1"] = entry
	c.mu.Unlock()

	if _, ok := c.Get("key1"); ok {
		t.Error("Expected expired entry to read as a miss")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be evicted, Len = %d", c.Len())
	}
}

func TestInMemoryCache_NoExpiration(t *testing.T) {
	c := NewInMemoryCache(0)
	_ = c.Set("key1", "value1")

	c.mu.RLock()
	deadline := c.entries["key1"].expiresAt
	c.mu.RUnlock()
	if !deadline.IsZero() {
		t.Error("Expected zero-TTL entries to carry no deadline")
	}

	if _, ok := c.Get("key1"); !ok {
		t.Error("Expected zero-TTL cache to never expire entries")
	}
}

func TestInMemoryCache_Overwrite(t *testing.T) {
	c := NewInMemoryCache(3600)
	_ = c.Set("key1", "old")
	_ = c.Set("key1", "new")

	val, _ := c.Get("key1")
	if val != "new" {
		t.Errorf("Expected overwritten value, got %q", val)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	c := NewInMemoryCache(3600)
	_ = c.Set("key1", "value1")
	_ = c.Set("key2", "value2")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d entries", c.Len())
	}
}

func TestInMemoryCache_Entries(t *testing.T) {
	c := NewInMemoryCache(3600)
	_ = c.Set("key1", "value1")
	_ = c.Set("key2", "value2")

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries["key1"] != "value1" || entries["key2"] != "value2" {
		t.Errorf("Unexpected entries: %v", entries)
	}
}

func TestInMemoryCache_EntriesSkipsExpired(t *testing.T) {
	c := NewInMemoryCache(1)
	_ = c.Set("fresh", "a")
	_ = c.Set("stale", "b")

	c.mu.Lock()
	entry := c.entries["stale"]
	entry.expiresAt = time.Now().Add(-time.Second)
	c.entries["stale"] = entry
	c.mu.Unlock()

	entries := c.Entries()
	if _, ok := entries["stale"]; ok {
		t.Error("Expected expired entry excluded from Entries")
	}
	if _, ok := entries["fresh"]; !ok {
		t.Error("Expected fresh entry present in Entries")
	}
}

func TestInMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewInMemoryCache(3600)
	done := make(chan struct{})

	go func() {
		for i := 0; i < 100; i++ {
			_ = c.Set("shared", "value")
		}
		close(done)
	}()

	for i := 0; i < 100; i++ {
		c.Get("shared")
	}
	<-done
}
