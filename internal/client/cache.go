package client

import (
	"strings"
	"sync"
	"time"
)

type CacheEntry struct {
	Value     any
	Timestamp time.Time
	RefreshAt time.Time
}

type CacheConfig struct {
	DefaultTTL time.Duration
	MaxEntries int
}

// ResponseCache keeps decoded GET responses for a short time, keyed by path.
type ResponseCache struct {
	entries    map[string]*CacheEntry
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
	mx         sync.RWMutex
}

func NewResponseCache(cfg *CacheConfig) *ResponseCache {
	defaultTTL := 5 * time.Second
	maxEntries := 500

	if cfg != nil {
		if cfg.DefaultTTL > 0 {
			defaultTTL = cfg.DefaultTTL
		}
		if cfg.MaxEntries > 0 {
			maxEntries = cfg.MaxEntries
		}
	}

	return &ResponseCache{
		entries:    make(map[string]*CacheEntry),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *ResponseCache) Get(key string) (any, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.RefreshAt) {
		return nil, false
	}

	return entry.Value, true
}

func (c *ResponseCache) Set(key string, value any) {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	now := c.now()
	c.entries[key] = &CacheEntry{
		Value:     value,
		Timestamp: now,
		RefreshAt: now.Add(c.defaultTTL),
	}
}

func (c *ResponseCache) evictOldest() {
	var (
		oldestKey  string
		oldestTime time.Time
	)
	for k, v := range c.entries {
		if oldestKey == "" || v.Timestamp.Before(oldestTime) {
			oldestKey, oldestTime = k, v.Timestamp
		}
	}
	delete(c.entries, oldestKey)
}

func (c *ResponseCache) Delete(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.entries, key)
}

// DeletePrefix drops every entry under prefix and returns how many went.
func (c *ResponseCache) DeletePrefix(prefix string) int {
	c.mx.Lock()
	defer c.mx.Unlock()

	if prefix == "" {
		return 0
	}
	var count int
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			count++
		}
	}

	return count
}

func (c *ResponseCache) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return len(c.entries)
}

func (c *ResponseCache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.entries = make(map[string]*CacheEntry)
}
