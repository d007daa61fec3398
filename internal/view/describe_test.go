package view

import (
	"testing"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCleanMap(t *testing.T) {
	done := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := client.Cluster{
		ID:                 "c1",
		Name:               "prod",
		InstallCompletedAt: &done,
		Hosts:              []client.Host{{ID: "h1", Status: "known"}},
	}

	m, ok := toCleanMap(&c).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "c1", m["id"])
	assert.Equal(t, "prod", m["name"])
	assert.Equal(t, "2024-05-01T10:00:00Z", m["install_completed_at"])
	assert.NotContains(t, m, "created_at")
	assert.NotContains(t, m, "status_info")
	assert.NotContains(t, m, "progress")
	assert.Equal(t, []any{map[string]any{"id": "h1", "status": "known"}}, m["hosts"])
}

func TestToCleanMapEmpty(t *testing.T) {
	assert.Nil(t, toCleanMap(nil))
	assert.Nil(t, toCleanMap((*client.Host)(nil)))
	assert.Nil(t, toCleanMap(client.HostProgress{}))
	assert.Nil(t, toCleanMap([]string{}))
}

func TestColorizeValue(t *testing.T) {
	uu := map[string]struct {
		v, e string
	}{
		"true":    {v: "true", e: "[green::]true[-::]"},
		"false":   {v: "false", e: "[red::]false[-::]"},
		"null":    {v: "null", e: "[gray::]null[-::]"},
		"number":  {v: "42", e: "[fuchsia::]42[-::]"},
		"float":   {v: "1.5", e: "[fuchsia::]1.5[-::]"},
		"prefix":  {v: "42abc", e: "42abc"},
		"good":    {v: "known", e: "[green::]known[-::]"},
		"bad":     {v: "insufficient", e: "[red::]insufficient[-::]"},
		"busy":    {v: "installing", e: "[yellow::]installing[-::]"},
		"quoted":  {v: `"ready"`, e: `[green::]"ready"[-::]`},
		"regular": {v: "node-a", e: "node-a"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, colorizeValue(u.v))
		})
	}
}

func TestHighlightYAML(t *testing.T) {
	out := highlightYAML("name: prod\nhosts:\n  - id: h1\n- plain\n")

	assert.Equal(t, "[aqua::]name:[-::] prod\n"+
		"[aqua::]hosts:[-::]\n"+
		"  - [aqua::]id:[-::] h1\n"+
		"- plain\n", out)
}

func TestGenerateYAML(t *testing.T) {
	out := generateYAML(client.Host{ID: "h1", Status: "known"})

	assert.Contains(t, out, "[aqua::]id:[-::] h1")
	assert.Contains(t, out, "[aqua::]status:[-::] [green::]known[-::]")
}

func TestGenerateJSON(t *testing.T) {
	out := generateJSON(client.Host{ID: "h1"})

	assert.Equal(t, "{\n  \"id\": \"h1\"\n}", out)
}
