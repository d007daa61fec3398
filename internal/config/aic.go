package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/config/data"
	"github.com/aic/aic/internal/export"
)

// Default values
const (
	DefaultAPITimeout = 30 * time.Second
	DefaultView       = data.DefaultView
)

// Aic represents the aic global configuration.
type Aic struct {
	RefreshRate float32     `yaml:"refreshRate"`
	APITimeout  string      `yaml:"apiTimeout"`
	APIURL      string      `yaml:"apiURL,omitempty"`
	Endpoint    string      `yaml:"endpoint,omitempty"`
	ReadOnly    bool        `yaml:"readOnly"`
	DefaultView string      `yaml:"defaultView"`
	Retry       data.Retry  `yaml:"retry"`
	Table       data.Table  `yaml:"table"`
	Export      data.Export `yaml:"export"`
	UI          data.UI     `yaml:"ui"`
	Logger      data.Logger `yaml:"logger"`

	activeEndpoint string
	activeConfig   *data.Config
	dir            *data.Dir
	mx             sync.RWMutex
}

// NewAic creates an Aic with default settings.
func NewAic() *Aic {
	a := Aic{
		RefreshRate: DefaultRefreshRate,
		APITimeout:  DefaultAPITimeout.String(),
		DefaultView: DefaultView,
		Retry:       data.Retry{Attempts: data.DefaultRetryAttempts, Delay: data.DefaultRetryDelay},
		Logger:      data.Logger{Level: DefaultLogLevel},
		dir:         data.NewDir(),
	}
	a.Table.Validate()

	return &a
}

// Validate ensures Aic has valid settings.
func (a *Aic) Validate() {
	a.mx.Lock()
	defer a.mx.Unlock()

	if a.RefreshRate <= 0 {
		a.RefreshRate = DefaultRefreshRate
	}
	if a.APITimeout == "" {
		a.APITimeout = DefaultAPITimeout.String()
	}
	if a.DefaultView == "" {
		a.DefaultView = DefaultView
	}
	if a.Retry.Attempts == 0 {
		a.Retry.Attempts = data.DefaultRetryAttempts
	}
	if a.Retry.Delay == "" {
		a.Retry.Delay = data.DefaultRetryDelay
	}
	if a.Logger.Level == "" {
		a.Logger.Level = DefaultLogLevel
	}
	a.Table.Validate()
}

// SetDir changes where endpoint configs are stored.
func (a *Aic) SetDir(d *data.Dir) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.dir = d
}

// ActiveEndpoint returns the currently active endpoint.
func (a *Aic) ActiveEndpoint() string {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.activeEndpoint
}

// ActiveConfig returns the current endpoint-specific configuration.
func (a *Aic) ActiveConfig() *data.Config {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.activeConfig
}

// ActivateEndpoint activates an endpoint and loads its config.
func (a *Aic) ActivateEndpoint(name string) (*data.EndpointContext, error) {
	if name == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	cfg, err := a.dir.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for endpoint %q: %w", name, err)
	}
	a.activeEndpoint = name
	a.activeConfig = cfg

	return cfg.GetContext(), nil
}

// SaveActive saves the active endpoint config.
func (a *Aic) SaveActive() error {
	a.mx.RLock()
	cfg, dir := a.activeConfig, a.dir
	a.mx.RUnlock()

	if cfg == nil {
		return nil
	}
	return dir.Save(cfg)
}

// IsReadOnly returns true if the global or the endpoint config is read-only.
func (a *Aic) IsReadOnly() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	if a.ReadOnly {
		return true
	}
	if a.activeConfig != nil && a.activeConfig.GetContext() != nil {
		return a.activeConfig.GetContext().IsReadOnly()
	}
	return false
}

// Override applies CLI flag overrides to the configuration.
func (a *Aic) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		a.RefreshRate = *flags.RefreshRate
	}
	if IsBoolSet(flags.ReadOnly) {
		a.ReadOnly = true
	}
	// Write flag overrides ReadOnly
	if IsBoolSet(flags.Write) {
		a.ReadOnly = false
	}
	if IsStringSet(flags.Endpoint) {
		a.Endpoint = *flags.Endpoint
	}
	if IsStringSet(flags.APIURL) {
		a.APIURL = *flags.APIURL
	}
	if IsStringSet(flags.Command) {
		a.DefaultView = *flags.Command
	}
	if flags.PageSize != nil && *flags.PageSize > 0 {
		a.Table.PageSize = *flags.PageSize
	}
	if IsStringSet(flags.LogLevel) {
		a.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.LogFile) {
		a.Logger.File = *flags.LogFile
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (a *Aic) GetAPITimeout() (time.Duration, error) {
	a.mx.RLock()
	timeoutStr := a.APITimeout
	a.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// GetRefreshRate returns the refresh interval.
func (a *Aic) GetRefreshRate() time.Duration {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return time.Duration(a.RefreshRate * float32(time.Second))
}

// ClientConfig returns the REST client settings of the active endpoint.
func (a *Aic) ClientConfig() (*client.ClientConfig, error) {
	timeout, err := a.GetAPITimeout()
	if err != nil {
		return nil, err
	}

	a.mx.RLock()
	defer a.mx.RUnlock()
	delay, err := time.ParseDuration(a.Retry.Delay)
	if err != nil {
		return nil, fmt.Errorf("invalid retry delay %q: %w", a.Retry.Delay, err)
	}

	return &client.ClientConfig{
		Endpoint:      a.activeEndpoint,
		URL:           a.APIURL,
		Timeout:       timeout,
		RetryAttempts: a.Retry.Attempts,
		RetryDelay:    delay,
	}, nil
}

// ExportConfig returns the log export destination.
func (a *Aic) ExportConfig() export.Config {
	a.mx.RLock()
	defer a.mx.RUnlock()

	timeout, _ := time.ParseDuration(a.APITimeout)
	return export.Config{
		Bucket:  a.Export.Bucket,
		Prefix:  a.Export.Prefix,
		Region:  a.Export.Region,
		Profile: a.Export.Profile,
		Timeout: timeout,
	}
}
