package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Empty(t, cfg.Bus.Address)
	assert.Equal(t, "/proc", cfg.Runtime.ProcDir)
	assert.Equal(t, "/run/systemd/sessions", cfg.Runtime.SessionsDir)
	assert.Equal(t, 25*time.Second, cfg.Timeout)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seatbroker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  pretty: false
bus:
  address: unix:path=/tmp/test-bus
runtime:
  sessions_dir: /tmp/sessions
timeout: 3s
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, "unix:path=/tmp/test-bus", cfg.Bus.Address)
	assert.Equal(t, "/tmp/sessions", cfg.Runtime.SessionsDir)
	assert.Equal(t, "/proc", cfg.Runtime.ProcDir)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("SEATBROKER_LOG_LEVEL", "error")
	t.Setenv("SEATBROKER_BUS_ADDRESS", "unix:path=/run/other")
	t.Setenv("SEATBROKER_TIMEOUT", "0s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "unix:path=/run/other", cfg.Bus.Address)
	assert.Zero(t, cfg.Timeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigNegativeTimeout(t *testing.T) {
	t.Setenv("SEATBROKER_TIMEOUT", "-1s")
	_, err := LoadConfig("")
	assert.Error(t, err)
}
