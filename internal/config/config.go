// Package config loads Chuckle & Chow settings from a YAML file, an
// optional .env file and CHOW_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvBaseURL     = "CHOW_API_URL"
	EnvStore       = "CHOW_STORE"
	EnvStorePath   = "CHOW_STORE_PATH"
	EnvLogLevel    = "CHOW_LOG_LEVEL"
	EnvLogFile     = "CHOW_LOG_FILE"
	EnvMetricsAddr = "CHOW_METRICS_ADDR"
	EnvAppURL      = "CHOW_APP_URL"
	EnvLanguage    = "CHOW_LANGUAGE"
	EnvDiet        = "CHOW_DIET"
	EnvTime        = "CHOW_TIME"
	EnvStyle       = "CHOW_STYLE"
	EnvCategory    = "CHOW_CATEGORY"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Store       StoreConfig       `yaml:"store"`
	Logging     LoggingConfig     `yaml:"logging"`
	Share       ShareConfig       `yaml:"share"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Preferences PreferencesConfig `yaml:"preferences"`
	// Language sent with every generate request ("english" or "spanish").
	Language string `yaml:"language" validate:"oneof=english spanish"`
}

// APIConfig configures the recipe endpoint client.
type APIConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// Timeout is the HTTP client timeout. Zero means none; callers may
	// still bound individual requests with a context.
	Timeout       time.Duration `yaml:"timeout" validate:"gte=0"`
	CacheSize     int           `yaml:"cache_size" validate:"gte=0"`
	CacheTTL      time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	RemoteCatalog bool          `yaml:"remote_catalog"`
}

// StoreConfig selects where favorites and the theme live.
type StoreConfig struct {
	Backend string `yaml:"backend" validate:"oneof=memory file sqlite"`
	Path    string `yaml:"path" validate:"required_unless=Backend memory"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=off normal verbose quiet debug info"`
	File  string `yaml:"file"`
}

// ShareConfig configures share payloads.
type ShareConfig struct {
	AppURL string `yaml:"app_url" validate:"required,url"`
}

// MetricsConfig configures the optional Prometheus listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// PreferencesConfig holds the optional generation hints sent with every
// request. Empty fields are left out of the request body.
type PreferencesConfig struct {
	Diet     string `yaml:"diet" validate:"max=64"`
	Time     string `yaml:"time" validate:"max=64"`
	Style    string `yaml:"style" validate:"max=64"`
	Category string `yaml:"category" validate:"max=64"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "http://localhost:5000",
			CacheTTL: 10 * time.Minute,
		},
		Store: StoreConfig{
			Backend: StoreFile,
			Path:    filepath.Join(".chow", "favorites.json"),
		},
		Logging: LoggingConfig{
			Level: "normal",
			File:  filepath.Join(".chow", "chow.log"),
		},
		Share: ShareConfig{
			AppURL: "https://chuckle-and-chow.onrender.com/",
		},
		Language: "english",
	}
}

// Load reads the YAML file at path (missing file means defaults), loads
// .env if present, applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv(EnvAppURL); v != "" {
		c.Share.AppURL = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = strings.ToLower(v)
	}
	for env, dst := range map[string]*string{
		EnvDiet:     &c.Preferences.Diet,
		EnvTime:     &c.Preferences.Time,
		EnvStyle:    &c.Preferences.Style,
		EnvCategory: &c.Preferences.Category,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = strings.TrimSpace(v)
		}
	}
}

var validate = validator.New()

// Validate checks the configuration and returns a readable error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
