package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Aic      *Aic `yaml:"aic"`
	conn     client.Connection
	settings client.EndpointSettings
	mx       sync.RWMutex
}

// NewConfig creates a new Config with the given endpoint settings.
func NewConfig(settings client.EndpointSettings) *Config {
	return &Config{
		Aic:      NewAic(),
		settings: settings,
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept unless force is set.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}
	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Aic == nil {
		c.Aic = NewAic()
	}
	c.Aic.Validate()

	return nil
}

// Save saves the configuration to path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}
	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags and endpoint settings to determine the final
// configuration. The endpoint is picked by precedence:
// --endpoint > config endpoint > endpoints.ini active section.
// An --api-url pointing at an unknown endpoint registers it.
func (c *Config) Refine(flags *data.Flags, settings client.EndpointSettings) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Aic == nil {
		return fmt.Errorf("config.Aic is nil")
	}
	c.settings = settings
	if flags != nil {
		c.Aic.Override(flags)
	}

	name := c.Aic.Endpoint
	if name == "" {
		current, err := settings.CurrentEndpointName()
		if err != nil {
			return fmt.Errorf("failed to get default endpoint: %w", err)
		}
		name = current
	}

	if _, err := settings.GetEndpoint(name); err != nil {
		adder, ok := settings.(interface{ AddEndpoint(client.Endpoint) })
		if c.Aic.APIURL == "" || !ok {
			return fmt.Errorf("endpoint %q not found: %w", name, err)
		}
		adder.AddEndpoint(client.Endpoint{Name: name, URL: c.Aic.APIURL})
	}
	if err := settings.SetActiveEndpoint(name); err != nil {
		return err
	}
	if _, err := c.Aic.ActivateEndpoint(name); err != nil {
		return fmt.Errorf("failed to activate endpoint %q: %w", name, err)
	}

	return nil
}

// Connection returns the backend connection.
func (c *Config) Connection() client.Connection {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.conn
}

// SetConnection sets the backend connection.
func (c *Config) SetConnection(conn client.Connection) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.conn = conn
}

// Settings returns the endpoint settings.
func (c *Config) Settings() client.EndpointSettings {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.settings
}
