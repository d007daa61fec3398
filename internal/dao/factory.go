// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package dao

import (
	"github.com/aic/aic/internal/client"
)

// APIFactory implements the Factory interface over a backend connection.
type APIFactory struct {
	client client.Connection
	cache  *ResourceCache
}

// NewFactory creates a factory with a shared listing cache.
func NewFactory(conn client.Connection) *APIFactory {
	return &APIFactory{
		client: conn,
		cache:  NewResourceCache(DefaultCacheTTL),
	}
}

func (f *APIFactory) Client() client.Connection {
	return f.client
}

// Cache returns the listing cache shared by the factory accessors.
func (f *APIFactory) Cache() *ResourceCache {
	return f.cache
}

func (f *APIFactory) Endpoint() string {
	if f.client == nil {
		return ""
	}
	return f.client.ActiveEndpoint()
}

// SetEndpoint switches backend and drops every cached listing.
func (f *APIFactory) SetEndpoint(name string) error {
	if f.client == nil {
		return client.ErrNoConnection
	}
	if err := f.client.SwitchEndpoint(name); err != nil {
		return err
	}
	f.cache.Clear()

	return nil
}
