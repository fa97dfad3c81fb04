// ABOUTME: Tests for configuration loading and overrides.
// ABOUTME: Verifies defaults, YAML parsing and environment precedence.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", "nowted", "config.yaml"), ConfigPath())
	assert.Equal(t, filepath.Dir(ConfigPath()), ConfigDir())
}

func TestDefaultDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "nowted"), DefaultDataDir())
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NOWTED_BACKEND", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.True(t, cfg.AutoSync)
	assert.Equal(t, "127.0.0.1:7420", cfg.HTTPAddr)
}

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("NOWTED_BACKEND", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\ndata_dir: /var/lib/nowted\nauto_sync: false\n"), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/var/lib/nowted", cfg.DataDir)
	assert.False(t, cfg.AutoSync)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("NOWTED_BACKEND", "memory")
	t.Setenv("NOWTED_HTTP_ADDR", ":9999")
	t.Setenv("NOWTED_AUTO_SYNC", "false")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.False(t, cfg.AutoSync)
}

func TestLoadFromRejectsUnknownBackend(t *testing.T) {
	t.Setenv("NOWTED_BACKEND", "etcd")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromInvalidYAML(t *testing.T) {
	t.Setenv("NOWTED_BACKEND", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unclosed"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NOWTED_BACKEND", "")

	cfg := DefaultConfig()
	cfg.Backend = BackendCharm
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendCharm, loaded.Backend)
}
