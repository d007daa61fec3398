package dao

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is the default time-to-live for cached listings.
const DefaultCacheTTL = 2 * time.Second

type cacheEntry struct {
	objects   []Object
	timestamp time.Time
}

// ResourceCache keeps listed objects per accessor scope. It sits above the
// client response cache and is dropped by the accessor mutations.
type ResourceCache struct {
	data map[string]cacheEntry
	ttl  time.Duration
	mx   sync.RWMutex
}

func NewResourceCache(ttl time.Duration) *ResourceCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResourceCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

// Get returns nil if the key is missing or expired.
func (c *ResourceCache) Get(key string) []Object {
	c.mx.RLock()
	defer c.mx.RUnlock()

	entry, ok := c.data[key]
	if !ok || time.Since(entry.timestamp) > c.ttl {
		return nil
	}

	return entry.objects
}

func (c *ResourceCache) Set(key string, objects []Object) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data[key] = cacheEntry{
		objects:   objects,
		timestamp: time.Now(),
	}
}

// InvalidatePrefix removes all entries whose keys start with prefix.
func (c *ResourceCache) InvalidatePrefix(prefix string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
}

func (c *ResourceCache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data = make(map[string]cacheEntry)
}
