package config

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/aic/aic/internal/config/data"
)

// Aliases represents the alias configuration.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex      `yaml:"-"`
}

// DefaultAliases are the built-in view aliases.
var DefaultAliases = map[string]string{
	"clusters": "clusters",
	"cluster":  "clusters",
	"cl":       "clusters",
	"hosts":    "hosts",
	"host":     "hosts",
	"h":        "hosts",
	"storage":  "storage",
	"disks":    "storage",
	"disk":     "storage",
	"st":       "storage",
	"ep":       "endpoints",
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := &Aliases{
		Alias: make(map[string]string, len(DefaultAliases)),
	}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}
	return a
}

// Load loads aliases from the default config file.
// Merges with default aliases, with file aliases taking precedence.
func (a *Aliases) Load() error {
	return a.LoadFrom(AppAliasesFile)
}

// LoadFrom loads aliases from a specific file path.
func (a *Aliases) LoadFrom(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	loaded := Aliases{Alias: make(map[string]string)}
	if err := data.LoadYAML(path, &loaded); err != nil {
		return err
	}
	a.Merge(&loaded)

	return nil
}

// SaveTo saves aliases to a specific file path.
func (a *Aliases) SaveTo(path string) error {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return data.SaveYAML(path, a)
}

// Merge merges another Aliases into this one.
// Keys in other override existing keys.
func (a *Aliases) Merge(other *Aliases) {
	a.mx.Lock()
	defer a.mx.Unlock()

	other.mx.RLock()
	defer other.mx.RUnlock()

	for k, v := range other.Alias {
		a.Alias[strings.ToLower(k)] = v
	}
}

// Get returns the view for an alias, or the original if not found.
func (a *Aliases) Get(alias string) string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	if view, ok := a.Alias[strings.ToLower(alias)]; ok {
		return view
	}
	return alias
}

// Resolve returns the view for an alias and whether it is known.
func (a *Aliases) Resolve(alias string) (string, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	view, ok := a.Alias[strings.ToLower(alias)]
	return view, ok
}

// Set sets an alias.
func (a *Aliases) Set(alias, view string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[strings.ToLower(alias)] = view
}

// Names returns every alias, sorted.
func (a *Aliases) Names() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	names := make([]string, 0, len(a.Alias))
	for k := range a.Alias {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}
