package dao

import (
	"fmt"
	"sort"
)

// Accessors maps resource ID strings to accessor constructors.
type Accessors map[string]func() Accessor

var accessors = make(Accessors)

// RegisterAccessor adds an accessor constructor to the registry.
func RegisterAccessor(rid *ResourceID, newFn func() Accessor) {
	accessors[rid.String()] = newFn
}

// AccessorFor returns a new initialized accessor for the given resource ID.
func AccessorFor(f Factory, rid *ResourceID) (Accessor, error) {
	newFn, ok := accessors[rid.String()]
	if !ok {
		return nil, fmt.Errorf("no accessor for: %s", rid.String())
	}
	acc := newFn()
	acc.Init(f, rid)
	if c, ok := acc.(interface{ SetCache(*ResourceCache) }); ok {
		if fc, ok := f.(interface{ Cache() *ResourceCache }); ok {
			c.SetCache(fc.Cache())
		}
	}

	return acc, nil
}

// ListAccessors returns all registered resource IDs, sorted.
func ListAccessors() []*ResourceID {
	keys := make([]string, 0, len(accessors))
	for key := range accessors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rids := make([]*ResourceID, 0, len(keys))
	for _, key := range keys {
		rid := &ResourceID{}
		if err := rid.Parse(key); err == nil {
			rids = append(rids, rid)
		}
	}
	return rids
}
