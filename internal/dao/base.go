package dao

import (
	"sync"
	"time"
)

// BaseObject implements the Object interface with embedded fields.
type BaseObject struct {
	ID        string
	Name      string
	Status    string
	CreatedAt *time.Time
	Raw       any
}

func (b *BaseObject) GetID() string {
	return b.ID
}

func (b *BaseObject) GetName() string {
	return b.Name
}

func (b *BaseObject) GetStatus() string {
	return b.Status
}

func (b *BaseObject) GetCreatedAt() *time.Time {
	return b.CreatedAt
}

// GetRaw returns the backend object the resource was built from.
func (b *BaseObject) GetRaw() any {
	return b.Raw
}

// Resource is the base struct that all accessors embed.
type Resource struct {
	Factory
	rid   *ResourceID
	cache *ResourceCache
	mx    sync.RWMutex
}

// Init initializes the resource with factory and resource ID.
func (r *Resource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Factory = f
	r.rid = rid
}

func (r *Resource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.rid
}

func (r *Resource) getCache() *ResourceCache {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.cache
}

// SetCache sets the resource cache.
func (r *Resource) SetCache(cache *ResourceCache) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.cache = cache
}

func (r *Resource) cacheKey(scope string) string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.rid == nil {
		return scope
	}
	return r.rid.String() + ":" + scope
}

func (r *Resource) cached(scope string) []Object {
	if c := r.getCache(); c != nil {
		return c.Get(r.cacheKey(scope))
	}
	return nil
}

func (r *Resource) store(scope string, oo []Object) {
	if c := r.getCache(); c != nil {
		c.Set(r.cacheKey(scope), oo)
	}
}

func (r *Resource) invalidate(scope string) {
	if c := r.getCache(); c != nil {
		c.InvalidatePrefix(r.cacheKey(scope))
	}
}
