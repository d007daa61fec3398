package data

import "sync"

// Config represents an endpoint-specific configuration loaded from disk.
// This is the data structure for ~/.local/share/aic/endpoints/{endpoint}/config.yaml
type Config struct {
	Context *EndpointContext `yaml:"aic"`
	mx      sync.RWMutex     `yaml:"-"`
}

// NewConfig creates a new Config with the given endpoint context.
func NewConfig(ctx *EndpointContext) *Config {
	return &Config{
		Context: ctx,
	}
}

// GetContext returns the endpoint context, thread-safe.
func (c *Config) GetContext() *EndpointContext {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.Context
}

// SetContext sets the endpoint context, thread-safe.
func (c *Config) SetContext(ctx *EndpointContext) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.Context = ctx
}

// Validate ensures the Config has valid settings.
func (c *Config) Validate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Context != nil {
		c.Context.Validate()
	}
}
