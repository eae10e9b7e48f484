package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "shinsi.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(dir, "downloads"), cfg.Downloads.Dir)
	assert.Equal(t, 3, cfg.Downloads.Concurrency)
	assert.Equal(t, DefaultBaseURL, cfg.Source.BaseURL)
	assert.Equal(t, DefaultAPIURL, cfg.Source.APIURL)
	assert.Equal(t, DefaultThumbnailWidth, cfg.Images.ThumbnailWidth)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
database:
  path: /tmp/custom.db
downloads:
  concurrency: 0
source:
  base_url: http://localhost:8080/
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, 1, cfg.Downloads.Concurrency, "concurrency is clamped to at least one")
	assert.Equal(t, "http://localhost:8080", cfg.Source.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("downloads:\n  dir: /from/file\n"), 0644))
	t.Setenv("SHINSI_DOWNLOADS_DIR", "/from/env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Downloads.Dir)
}

func TestLoadInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database: [unclosed"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")

	p, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, p, "missing file gives defaults")

	require.NoError(t, SavePreferences(path, Preferences{HideTag: true}))

	p, err = LoadPreferences(path)
	require.NoError(t, err)
	assert.True(t, p.HideTag)
	assert.False(t, p.HideTitle)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hide_tag: true")
}
