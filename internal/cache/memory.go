package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-memory Cache used by tests and local development,
// matching the teacher's pattern of a hand-written mock per capability
// interface rather than a mocking framework (pkg/testutil/mocks.go).
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// SetCount/GetCount let tests assert on call volume the way the
	// teacher's mocks expose CallCount.
	SetCount int
	GetCount int
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCount++

	entry, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCount++

	c.entries[key] = memoryEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}
