package client_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEndpoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[default]
url = http://localhost:8090

[staging]
url = https://staging.example.com
timeout = 45s

[broken]
comment = no url here
`), 0o600))

	m, err := client.LoadEndpoints(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"default", "staging"}, m.EndpointNames())
	name, err := m.CurrentEndpointName()
	require.NoError(t, err)
	assert.Equal(t, "default", name)

	ep, err := m.GetEndpoint("staging")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, ep.Timeout)

	require.NoError(t, m.SetActiveEndpoint("staging"))
	assert.ErrorIs(t, m.SetActiveEndpoint("nope"), client.ErrInvalidEndpoint)
}

func TestLoadEndpointsMissingFile(t *testing.T) {
	m, err := client.LoadEndpoints(filepath.Join(t.TempDir(), "none.ini"))
	require.NoError(t, err)

	ep, err := m.GetEndpoint(client.DefaultEndpoint)
	require.NoError(t, err)
	assert.Equal(t, client.DefaultURL, ep.URL)
}

func TestSaveEndpoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.ini")
	m := client.NewEndpointManager("prod", "https://api.example.com")
	m.AddEndpoint(client.Endpoint{Name: "lab", URL: "http://10.0.0.1:8090", Timeout: time.Minute})

	require.NoError(t, m.SaveEndpoints(path))
	back, err := client.LoadEndpoints(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"lab", "prod"}, back.EndpointNames())
	ep, err := back.GetEndpoint("lab")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ep.Timeout)
}
