package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// defaultEndpointsDir is set by the config package during initialization.
// This avoids a circular import between data and config packages.
var defaultEndpointsDir string

// SetDefaultEndpointsDir sets the default endpoints directory.
func SetDefaultEndpointsDir(dir string) {
	defaultEndpointsDir = dir
}

// Dir manages the per-endpoint configuration directories.
type Dir struct {
	root string
	mx   sync.RWMutex
}

// NewDir creates a new Dir using the default endpoints directory.
// SetDefaultEndpointsDir must be called before using NewDir.
func NewDir() *Dir {
	return &Dir{
		root: defaultEndpointsDir,
	}
}

// NewDirAt creates a new Dir at the specified root path.
func NewDirAt(root string) *Dir {
	return &Dir{
		root: root,
	}
}

// EndpointPath returns {root}/{endpoint}/.
func (d *Dir) EndpointPath(endpoint string) string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return filepath.Join(d.root, SanitizeFileName(endpoint))
}

// ConfigPath returns {root}/{endpoint}/config.yaml.
func (d *Dir) ConfigPath(endpoint string) string {
	return filepath.Join(d.EndpointPath(endpoint), "config.yaml")
}

// Load loads the configuration of an endpoint. A missing file yields the
// defaults.
func (d *Dir) Load(endpoint string) (*Config, error) {
	ctx := NewEndpointContext(endpoint)
	cfg := NewConfig(ctx)

	if err := LoadYAML(d.ConfigPath(endpoint), ctx); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.Validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load endpoint config: %w", err)
	}
	ctx.Endpoint = endpoint
	ctx.Validate()

	return cfg, nil
}

// Save saves the configuration of an endpoint.
func (d *Dir) Save(cfg *Config) error {
	if cfg == nil || cfg.GetContext() == nil {
		return fmt.Errorf("cannot save nil config or context")
	}
	ctx := cfg.GetContext()

	if _, err := EnsureDirPath(d.EndpointPath(ctx.Endpoint), 0700); err != nil {
		return fmt.Errorf("failed to ensure endpoint directory: %w", err)
	}
	ctx.mx.RLock()
	defer ctx.mx.RUnlock()
	if err := SaveYAML(d.ConfigPath(ctx.Endpoint), ctx); err != nil {
		return fmt.Errorf("failed to save endpoint config: %w", err)
	}

	return nil
}

// ListEndpoints returns the endpoints that have a saved config, sorted.
func (d *Dir) ListEndpoints() ([]string, error) {
	d.mx.RLock()
	root := d.root
	d.mx.RUnlock()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, entry.Name(), "config.yaml")); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}
