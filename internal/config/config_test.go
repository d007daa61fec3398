package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/config"
	"github.com/aic/aic/internal/config/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `aic:
  refreshRate: 10
  apiTimeout: 5s
  endpoint: lab
  retry:
    attempts: 4
    delay: 1s
  table:
    pageSize: 50
  export:
    bucket: install-logs
    prefix: aic
`

func newConfig(t *testing.T) (*config.Config, *client.EndpointManager) {
	t.Helper()
	m := client.NewEndpointManager("default", "http://localhost:8090")
	m.AddEndpoint(client.Endpoint{Name: "lab", URL: "http://lab:8090"})
	cfg := config.NewConfig(m)
	cfg.Aic.SetDir(data.NewDirAt(t.TempDir()))
	return cfg, m
}

func TestConfigLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	cfg, _ := newConfig(t)
	require.NoError(t, cfg.Load(path, true))

	a := cfg.Aic
	assert.Equal(t, float32(10), a.RefreshRate)
	assert.Equal(t, 10*time.Second, a.GetRefreshRate())
	assert.Equal(t, "lab", a.Endpoint)
	assert.Equal(t, 50, a.Table.PageSize)
	assert.Equal(t, data.DefaultPageSizeOptions, a.Table.PageSizeOptions)
	assert.True(t, a.Table.Paged())
	assert.Equal(t, config.DefaultView, a.DefaultView)
	assert.Equal(t, config.DefaultLogLevel, a.Logger.Level)
	assert.Equal(t, "install-logs", a.ExportConfig().Bucket)
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, _ := newConfig(t)
	path := filepath.Join(t.TempDir(), "nope.yaml")
	assert.NoError(t, cfg.Load(path, false))
	assert.Error(t, cfg.Load(path, true))
}

func TestConfigSaveRoundTrip(t *testing.T) {
	cfg, _ := newConfig(t)
	cfg.Aic.Endpoint = "lab"
	path := filepath.Join(t.TempDir(), "aic.yaml")

	require.NoError(t, cfg.Save(path, false))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, cfg.Save(path, true))
	other, _ := newConfig(t)
	require.NoError(t, other.Load(path, true))
	assert.Equal(t, "lab", other.Aic.Endpoint)
}

func TestRefinePrecedence(t *testing.T) {
	uu := map[string]struct {
		flag, config, e string
	}{
		"flag":    {flag: "lab", config: "default", e: "lab"},
		"config":  {config: "lab", e: "lab"},
		"default": {e: "default"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			cfg, m := newConfig(t)
			cfg.Aic.Endpoint = u.config
			flags := config.NewFlags()
			*flags.Endpoint = u.flag

			require.NoError(t, cfg.Refine(flags, m))
			assert.Equal(t, u.e, cfg.Aic.ActiveEndpoint())
			name, err := m.CurrentEndpointName()
			require.NoError(t, err)
			assert.Equal(t, u.e, name)
			assert.NotNil(t, cfg.Aic.ActiveConfig())
		})
	}
}

func TestRefineUnknownEndpoint(t *testing.T) {
	cfg, m := newConfig(t)
	flags := config.NewFlags()
	*flags.Endpoint = "staging"
	assert.Error(t, cfg.Refine(flags, m))

	*flags.APIURL = "https://staging.example.com"
	require.NoError(t, cfg.Refine(flags, m))
	ep, err := m.GetEndpoint("staging")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", ep.URL)
}

func TestOverride(t *testing.T) {
	a := config.NewAic()
	a.ReadOnly = true

	flags := config.NewFlags()
	*flags.Write = true
	*flags.PageSize = 100
	*flags.RefreshRate = 1
	*flags.Command = "hosts"
	a.Override(flags)

	assert.False(t, a.ReadOnly)
	assert.Equal(t, 100, a.Table.PageSize)
	assert.Equal(t, time.Second, a.GetRefreshRate())
	assert.Equal(t, "hosts", a.DefaultView)
}

func TestClientConfig(t *testing.T) {
	a := config.NewAic()
	a.APIURL = "http://x"
	cc, err := a.ClientConfig()
	require.NoError(t, err)
	assert.Equal(t, uint(data.DefaultRetryAttempts), cc.RetryAttempts)
	assert.Equal(t, 500*time.Millisecond, cc.RetryDelay)
	assert.Equal(t, config.DefaultAPITimeout, cc.Timeout)
	assert.Equal(t, "http://x", cc.URL)

	a.APITimeout = "soon"
	_, err = a.ClientConfig()
	assert.Error(t, err)
}

func TestEndpointViewState(t *testing.T) {
	cfg, m := newConfig(t)
	require.NoError(t, cfg.Refine(config.NewFlags(), m))

	ctx := cfg.Aic.ActiveConfig().GetContext()
	v := ctx.GetView()
	v.Active = "hosts"
	v.SetSort("Hosts", data.SortSpec{Column: "CPU", Desc: true})
	require.NoError(t, cfg.Aic.SaveActive())

	_, err := cfg.Aic.ActivateEndpoint("default")
	require.NoError(t, err)
	v = cfg.Aic.ActiveConfig().GetContext().GetView()
	assert.Equal(t, "hosts", v.Active)
	s, ok := v.SortFor("hosts")
	assert.True(t, ok)
	assert.Equal(t, data.SortSpec{Column: "CPU", Desc: true}, s)
}

func TestAliases(t *testing.T) {
	a := config.NewAliases()
	assert.Equal(t, "hosts", a.Get("H"))
	assert.Equal(t, "storage", a.Get("st"))
	assert.Equal(t, "bozo", a.Get("bozo"))

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  nodes: hosts\n"), 0600))
	require.NoError(t, a.LoadFrom(path))
	v, ok := a.Resolve("nodes")
	assert.True(t, ok)
	assert.Equal(t, "hosts", v)
}

func TestHotKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hotKeys:\n  hosts:\n    shortCut: Shift-2\n    command: hosts\n"), 0600))

	h := config.NewHotKeys()
	require.NoError(t, h.LoadFrom(path))
	assert.Equal(t, []string{"hosts"}, h.Names())
	assert.Equal(t, "Shift-2", h.Get("hosts").ShortCut)
	assert.Nil(t, h.Get("nope"))

	require.NoError(t, h.LoadFrom(filepath.Join(t.TempDir(), "none.yaml")))
	assert.Empty(t, h.Names())
}
