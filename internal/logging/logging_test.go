package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aic/aic/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "aic.log")
	c, err := logging.Init("debug", file, nil)
	require.NoError(t, err)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.WithField("host", "h1").Debug("renamed")
	require.NoError(t, c.Close())

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "level=debug")
	assert.Contains(t, string(raw), "host=h1")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer
	c, err := logging.Init("warn", "", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	defer c.Close()

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitBadLevel(t *testing.T) {
	_, err := logging.Init("loud", "", nil)
	assert.Error(t, err)
}
