package client

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/ini.v1"
)

// DefaultEndpoint names the endpoint used when none is configured.
const DefaultEndpoint = "default"

// DefaultURL is the backend of a local assisted service.
const DefaultURL = "http://localhost:8090"

type EndpointSettings interface {
	CurrentEndpointName() (string, error)
	EndpointNames() []string
	GetEndpoint(name string) (*Endpoint, error)
	SetActiveEndpoint(name string) error
}

// Endpoint is one assisted installer backend.
type Endpoint struct {
	Name    string
	URL     string
	Timeout time.Duration
}

// EndpointManager loads backends from an ini file holding one section per
// endpoint:
//
//	[staging]
//	url = https://api.example.com
//	timeout = 30s
type EndpointManager struct {
	endpoints map[string]*Endpoint
	active    string
	mx        sync.RWMutex
}

// NewEndpointManager returns a manager holding a single endpoint.
func NewEndpointManager(name, url string) *EndpointManager {
	if name == "" {
		name = DefaultEndpoint
	}
	return &EndpointManager{
		endpoints: map[string]*Endpoint{name: {Name: name, URL: url}},
		active:    name,
	}
}

// LoadEndpoints reads path. A missing file yields the default endpoint.
func LoadEndpoints(path string) (*EndpointManager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewEndpointManager(DefaultEndpoint, DefaultURL), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to access endpoints file: %w", err)
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load endpoints file: %w", err)
	}

	m := &EndpointManager{endpoints: make(map[string]*Endpoint)}
	for _, section := range f.Sections() {
		if !section.HasKey("url") {
			continue
		}
		name := section.Name()
		if name == ini.DefaultSection {
			name = DefaultEndpoint
		}
		ep := Endpoint{Name: name, URL: section.Key("url").String()}
		if section.HasKey("timeout") {
			if ep.Timeout, err = section.Key("timeout").Duration(); err != nil {
				return nil, fmt.Errorf("endpoint %q: invalid timeout: %w", name, err)
			}
		}
		m.endpoints[name] = &ep
	}
	if len(m.endpoints) == 0 {
		return nil, fmt.Errorf("%w: no endpoint found in %s", ErrInvalidEndpoint, path)
	}

	m.active = DefaultEndpoint
	if _, ok := m.endpoints[m.active]; !ok {
		m.active = m.EndpointNames()[0]
	}

	return m, nil
}

// SaveEndpoints writes the endpoints back to path.
func (m *EndpointManager) SaveEndpoints(path string) error {
	m.mx.RLock()
	defer m.mx.RUnlock()

	f := ini.Empty()
	for _, name := range m.names() {
		ep := m.endpoints[name]
		s, err := f.NewSection(name)
		if err != nil {
			return err
		}
		if _, err := s.NewKey("url", ep.URL); err != nil {
			return err
		}
		if ep.Timeout > 0 {
			if _, err := s.NewKey("timeout", ep.Timeout.String()); err != nil {
				return err
			}
		}
	}

	return f.SaveTo(path)
}

func (m *EndpointManager) CurrentEndpointName() (string, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	if m.active == "" {
		return "", fmt.Errorf("%w: no active endpoint set", ErrInvalidEndpoint)
	}
	return m.active, nil
}

// EndpointNames returns the endpoint names sorted.
func (m *EndpointManager) EndpointNames() []string {
	m.mx.RLock()
	defer m.mx.RUnlock()
	return m.names()
}

func (m *EndpointManager) names() []string {
	nn := make([]string, 0, len(m.endpoints))
	for n := range m.endpoints {
		nn = append(nn, n)
	}
	sort.Strings(nn)
	return nn
}

func (m *EndpointManager) GetEndpoint(name string) (*Endpoint, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	ep, ok := m.endpoints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q not found", ErrInvalidEndpoint, name)
	}
	cp := *ep
	return &cp, nil
}

// AddEndpoint registers or replaces an endpoint.
func (m *EndpointManager) AddEndpoint(ep Endpoint) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.endpoints[ep.Name] = &ep
}

func (m *EndpointManager) SetActiveEndpoint(name string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if _, ok := m.endpoints[name]; !ok {
		return fmt.Errorf("%w: %q not found", ErrInvalidEndpoint, name)
	}
	m.active = name
	return nil
}
