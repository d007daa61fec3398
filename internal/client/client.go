package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// APIRoot prefixes every backend path.
const APIRoot = "/api/assisted-install/v1"

type Connection interface {
	Config() *ClientConfig
	ConnectionOK() bool
	CheckConnectivity(ctx context.Context) bool
	ActiveEndpoint() string
	EndpointNames() []string
	SwitchEndpoint(name string) error

	ListClusters(ctx context.Context) ([]Cluster, error)
	GetCluster(ctx context.Context, id string) (*Cluster, error)
	DeleteCluster(ctx context.Context, id string) error
	InstallCluster(ctx context.Context, id string) (*Cluster, error)
	ListHosts(ctx context.Context, clusterID string) ([]Host, error)
	UpdateHostname(ctx context.Context, clusterID, hostID, hostname string) (*Cluster, error)
	DeleteHost(ctx context.Context, clusterID, hostID string) error
	DownloadLogs(ctx context.Context, clusterID string) (io.ReadCloser, error)
}

type ClientConfig struct {
	Endpoint      string
	URL           string
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
	CacheTTL      time.Duration
}

// APIClient talks to the assisted installer REST API. GETs are cached and
// retried; mutations are sent once and drop the cached cluster entries.
type APIClient struct {
	config   *ClientConfig
	settings EndpointSettings
	http     *http.Client
	download *http.Client
	cache    *ResponseCache
	connOK   bool
	mx       sync.RWMutex
}

// NewAPIClient creates a client for the active endpoint of settings. A URL
// set in cfg wins over the endpoint's.
func NewAPIClient(settings EndpointSettings, cfg *ClientConfig) (*APIClient, error) {
	if settings == nil {
		return nil, errors.New("settings cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 1
	}

	c := APIClient{
		config:   cfg,
		settings: settings,
		download: &http.Client{},
		cache:    NewResponseCache(&CacheConfig{DefaultTTL: cfg.CacheTTL}),
	}
	if cfg.Endpoint == "" {
		name, err := settings.CurrentEndpointName()
		if err != nil {
			return nil, err
		}
		cfg.Endpoint = name
	}
	ep, err := settings.GetEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	if cfg.URL == "" {
		cfg.URL = ep.URL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = ep.Timeout
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, err)
	}
	c.http = &http.Client{Timeout: cfg.Timeout}

	return &c, nil
}

// InitConnection creates a client and checks that the backend answers.
func InitConnection(ctx context.Context, settings EndpointSettings, cfg *ClientConfig) (*APIClient, error) {
	c, err := NewAPIClient(settings, cfg)
	if err != nil {
		return nil, err
	}
	if !c.CheckConnectivity(ctx) {
		return c, ErrNoConnection
	}

	return c, nil
}

// Config returns a copy of the client configuration.
func (c *APIClient) Config() *ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()
	cfg := *c.config
	return &cfg
}

func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// CheckConnectivity lists clusters once, bypassing cache and retries.
func (c *APIClient) CheckConnectivity(ctx context.Context) bool {
	var cc []Cluster
	err := c.do(ctx, http.MethodGet, "/clusters", nil, &cc)

	c.mx.Lock()
	c.connOK = err == nil
	c.mx.Unlock()
	if err != nil {
		log.Warnf("connectivity check failed: %v", err)
	}

	return err == nil
}

func (c *APIClient) ActiveEndpoint() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Endpoint
}

func (c *APIClient) EndpointNames() []string {
	return c.settings.EndpointNames()
}

// SwitchEndpoint points the client at another backend and drops the cache.
func (c *APIClient) SwitchEndpoint(name string) error {
	ep, err := c.settings.GetEndpoint(name)
	if err != nil {
		return err
	}
	if err := c.settings.SetActiveEndpoint(name); err != nil {
		return err
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.config.Endpoint, c.config.URL = ep.Name, ep.URL
	if ep.Timeout > 0 {
		c.config.Timeout = ep.Timeout
		c.http = &http.Client{Timeout: ep.Timeout}
	}
	c.connOK = false
	c.cache.Clear()

	return nil
}

func (c *APIClient) ListClusters(ctx context.Context) ([]Cluster, error) {
	var cc []Cluster
	if err := c.get(ctx, "/clusters", &cc); err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	return cc, nil
}

func (c *APIClient) GetCluster(ctx context.Context, id string) (*Cluster, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var cl Cluster
	if err := c.get(ctx, clusterPath(id), &cl); err != nil {
		return nil, fmt.Errorf("get cluster %s: %w", id, err)
	}
	return &cl, nil
}

func (c *APIClient) DeleteCluster(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	defer c.invalidate(id)
	if err := c.do(ctx, http.MethodDelete, clusterPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete cluster %s: %w", id, err)
	}
	return nil
}

func (c *APIClient) InstallCluster(ctx context.Context, id string) (*Cluster, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	defer c.invalidate(id)
	var cl Cluster
	if err := c.do(ctx, http.MethodPost, clusterPath(id)+"/actions/install", nil, &cl); err != nil {
		return nil, fmt.Errorf("install cluster %s: %w", id, err)
	}
	return &cl, nil
}

func (c *APIClient) ListHosts(ctx context.Context, clusterID string) ([]Host, error) {
	if err := ValidateID(clusterID); err != nil {
		return nil, err
	}
	var hh []Host
	if err := c.get(ctx, clusterPath(clusterID)+"/hosts", &hh); err != nil {
		return nil, fmt.Errorf("list hosts of %s: %w", clusterID, err)
	}
	return hh, nil
}

// UpdateHostname renames one host through a cluster patch.
func (c *APIClient) UpdateHostname(ctx context.Context, clusterID, hostID, hostname string) (*Cluster, error) {
	if err := ValidateID(clusterID); err != nil {
		return nil, err
	}
	if err := ValidateID(hostID); err != nil {
		return nil, err
	}
	defer c.invalidate(clusterID)

	params := ClusterUpdateParams{HostsNames: []HostnameUpdate{{ID: hostID, Hostname: hostname}}}
	var cl Cluster
	if err := c.do(ctx, http.MethodPatch, clusterPath(clusterID), params, &cl); err != nil {
		return nil, fmt.Errorf("rename host %s: %w", hostID, err)
	}
	return &cl, nil
}

func (c *APIClient) DeleteHost(ctx context.Context, clusterID, hostID string) error {
	if err := ValidateID(clusterID); err != nil {
		return err
	}
	if err := ValidateID(hostID); err != nil {
		return err
	}
	defer c.invalidate(clusterID)
	if err := c.do(ctx, http.MethodDelete, clusterPath(clusterID)+"/hosts/"+hostID, nil, nil); err != nil {
		return fmt.Errorf("delete host %s: %w", hostID, err)
	}
	return nil
}

// DownloadLogs streams the cluster log bundle. The caller closes it.
func (c *APIClient) DownloadLogs(ctx context.Context, clusterID string) (io.ReadCloser, error) {
	if err := ValidateID(clusterID); err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, c.download, http.MethodGet, clusterPath(clusterID)+"/logs?logs_type=all", nil)
	if err != nil {
		return nil, fmt.Errorf("download logs of %s: %w", clusterID, err)
	}
	return resp.Body, nil
}

func clusterPath(id string) string {
	return "/clusters/" + id
}

// ValidateID checks that id is a UUID before it is put in a path.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func (c *APIClient) invalidate(clusterID string) {
	n := c.cache.DeletePrefix(clusterPath(clusterID))
	c.cache.Delete("/clusters")
	log.Debugf("cache: dropped %d entries of cluster %s", n, clusterID)
}

// get serves path from cache or fetches it, retrying transient failures.
func (c *APIClient) get(ctx context.Context, path string, out any) error {
	if v, ok := c.cache.Get(path); ok {
		return json.Unmarshal(v.([]byte), out)
	}

	cfg := c.Config()
	var raw json.RawMessage
	err := retry.Do(
		func() error {
			return c.do(ctx, http.MethodGet, path, nil, &raw)
		},
		retry.Attempts(cfg.RetryAttempts),
		retry.Delay(cfg.RetryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Debugf("GET %s: retry %d/%d: %v", path, n+1, cfg.RetryAttempts, err)
		}),
	)
	if err != nil {
		return err
	}
	c.cache.Set(path, []byte(raw))

	return json.Unmarshal(raw, out)
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	c.mx.RLock()
	hc := c.http
	c.mx.RUnlock()
	resp, err := c.send(ctx, hc, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// send returns the response of a 2xx request, otherwise an *APIError.
func (c *APIClient) send(ctx context.Context, hc *http.Client, method, path string, body io.Reader) (*http.Response, error) {
	base := c.Config().URL
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(base, "/")+APIRoot+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrNoConnection, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	return nil, decodeAPIError(resp.StatusCode, raw)
}
