// ABOUTME: Configuration for nowted storage, surfaces and logging.
// ABOUTME: Reads YAML from XDG config paths with .env and NOWTED_* overrides.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Config holds nowted settings.
type Config struct {
	// Backend selects the key-value store: badger, sqlite, charm or memory.
	Backend string `yaml:"backend"`

	// DataDir holds the badger directory or the sqlite file.
	DataDir string `yaml:"data_dir"`

	// CharmHost is the charm server used by the charm backend.
	CharmHost string `yaml:"charm_host,omitempty"`

	// AutoSync syncs the charm backend after every write.
	AutoSync bool `yaml:"auto_sync"`

	// HTTPAddr is the listen address for `nowted serve`.
	HTTPAddr string `yaml:"http_addr"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:   BackendBadger,
		DataDir:   DefaultDataDir(),
		CharmHost: "charm.2389.dev",
		AutoSync:  true,
		HTTPAddr:  "127.0.0.1:7420",
		LogLevel:  "info",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "nowted")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "nowted")
}

// Load reads the config file (defaults if missing), then a .env file in the
// working directory, then NOWTED_* environment overrides.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Config path is user controlled by design of XDG
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Backend = getenv("NOWTED_BACKEND", c.Backend)
	c.DataDir = getenv("NOWTED_DATA_DIR", c.DataDir)
	c.CharmHost = getenv("NOWTED_CHARM_HOST", c.CharmHost)
	c.AutoSync = getenvBool("NOWTED_AUTO_SYNC", c.AutoSync)
	c.HTTPAddr = getenv("NOWTED_HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getenv("NOWTED_LOG_LEVEL", c.LogLevel)
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBadger, BackendSQLite, BackendCharm, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.DataDir == "" && (c.Backend == BackendBadger || c.Backend == BackendSQLite) {
		return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
	}
	return nil
}

// Save writes configuration to disk.
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
