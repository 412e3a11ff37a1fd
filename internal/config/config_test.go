package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "theme-default", cfg.Theme)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, "noted", "noted.db"), cfg.Store.Path)
	assert.True(t, cfg.Store.Watch)
	assert.True(t, cfg.Clipboard.OSC52)
	assert.False(t, cfg.Notifications.Desktop)
	assert.Equal(t, 2*time.Second, cfg.Toast.Duration)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
theme: dark
store:
  driver: json
notifications:
  desktop: true
toast:
  duration: 5s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "json", cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, "noted", "noted.json"), cfg.Store.Path)
	assert.True(t, cfg.Notifications.Desktop)
	assert.Equal(t, 5*time.Second, cfg.Toast.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NOTED_THEME", "theme-rose")
	t.Setenv("NOTED_STORE_PATH", filepath.Join(dir, "x.db"))

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "theme-rose", cfg.Theme)
	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.Store.Path)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: redis\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
