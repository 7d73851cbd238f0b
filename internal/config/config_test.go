package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, StoreFile, cfg.Store.Backend)
	assert.Equal(t, "english", cfg.Language)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chow.yaml")
	yml := `
api:
  base_url: http://recipes.test:8080
  timeout: 5s
  cache_size: 32
store:
  backend: sqlite
  path: /tmp/chow.db
language: spanish
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv(EnvStore, "memory")
	t.Setenv(EnvLogLevel, "VERBOSE")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://recipes.test:8080", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 32, cfg.API.CacheSize)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "verbose", cfg.Logging.Level)
	assert.Equal(t, "spanish", cfg.Language)
}

func TestLoadPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chow.yaml")
	yml := `
preferences:
  diet: vegetarian
  time: under 30 minutes
  style: tex-mex
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv(EnvStyle, "  southern  ")
	t.Setenv(EnvCategory, "dinner")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, PreferencesConfig{
		Diet:     "vegetarian",
		Time:     "under 30 minutes",
		Style:    "southern",
		Category: "dinner",
	}, cfg.Preferences)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"bad backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"file without path", func(c *Config) { c.Store.Path = "" }},
		{"bad language", func(c *Config) { c.Language = "klingon" }},
		{"negative cache", func(c *Config) { c.API.CacheSize = -1 }},
		{"long diet", func(c *Config) { c.Preferences.Diet = strings.Repeat("x", 65) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMemoryBackendNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = StoreMemory
	cfg.Store.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "chow.yaml")
	cfg := Default()
	cfg.API.BaseURL = "http://saved.test"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.test", loaded.API.BaseURL)
}
