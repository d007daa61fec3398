package data

import "sync"

// EndpointContext holds the settings saved for one backend endpoint. They
// override the global configuration.
type EndpointContext struct {
	Endpoint     string       `yaml:"endpoint"`
	ReadOnly     *bool        `yaml:"readOnly,omitempty"`
	View         *View        `yaml:"view,omitempty"`
	FeatureGates FeatureGates `yaml:"featureGates,omitempty"`
	mx           sync.RWMutex `yaml:"-"`
}

// NewEndpointContext creates a new EndpointContext with default settings.
func NewEndpointContext(endpoint string) *EndpointContext {
	return &EndpointContext{
		Endpoint:     endpoint,
		FeatureGates: NewFeatureGates(),
	}
}

// Validate ensures the EndpointContext has valid settings.
func (c *EndpointContext) Validate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.View != nil {
		c.View.Validate()
	}
}

// GetView returns the current view, creating it if nil.
func (c *EndpointContext) GetView() *View {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.View == nil {
		c.View = NewView()
	}
	return c.View
}

// SetView sets the current view.
func (c *EndpointContext) SetView(v *View) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.View = v
}

// IsReadOnly returns whether this context is in read-only mode.
// Returns false if ReadOnly is nil.
func (c *EndpointContext) IsReadOnly() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.ReadOnly == nil {
		return false
	}
	return *c.ReadOnly
}

// SetReadOnly sets the read-only mode for this context.
func (c *EndpointContext) SetReadOnly(ro bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.ReadOnly = &ro
}

// Gates returns the feature gates of the endpoint.
func (c *EndpointContext) Gates() FeatureGates {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.FeatureGates
}

// ContextName returns the sanitized directory name of the endpoint.
func (c *EndpointContext) ContextName() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return SanitizeFileName(c.Endpoint)
}
