// Package config loads pyscout's settings. Precedence, lowest to
// highest: built-in defaults, a per-user config file, a project-local
// .pyscout.yaml, then PYSCOUT_* environment variables. A .env file in the
// working directory is loaded first so environment overrides work the
// same in local development and CI.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pyscout/pyscout/pkg/errors"
)

const (
	// ProjectFileName is the project-local config file looked up in the
	// scanned root.
	ProjectFileName = ".pyscout.yaml"

	userConfigDir  = "pyscout"
	userConfigFile = "config.yaml"
)

// Registry configures the package-index client.
type Registry struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Cache configures the persisted lookup store.
type Cache struct {
	// Backend selects the store: "file" (default) or "redis".
	Backend string `yaml:"backend"`

	// Path overrides the cache file location for the file backend.
	Path string `yaml:"path"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `yaml:"redis_addr"`
}

// Scan configures file discovery.
type Scan struct {
	// IgnoreDirs adds directory names to the default prune set.
	IgnoreDirs []string `yaml:"ignore_dirs"`
}

// Config is the full pyscout configuration.
type Config struct {
	Registry Registry `yaml:"registry"`
	Cache    Cache    `yaml:"cache"`
	Scan     Scan     `yaml:"scan"`

	// Aliases maps import names to specifiers, overlaying the built-in
	// alias table (e.g. "internal_sdk: company-sdk==1.2").
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Registry: Registry{
			BaseURL:        "https://pypi.org/pypi",
			TimeoutSeconds: 3,
		},
		Cache: Cache{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
	}
}

// Timeout returns the registry timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Registry.TimeoutSeconds) * time.Second
}

// Load builds the effective configuration for a run rooted at root.
func Load(root string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if dir, err := os.UserConfigDir(); err == nil {
		if err := mergeFile(&cfg, filepath.Join(dir, userConfigDir, userConfigFile)); err != nil {
			return nil, err
		}
	}
	if root != "" {
		if err := mergeFile(&cfg, filepath.Join(root, ProjectFileName)); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile overlays one YAML config file onto cfg. A missing file is
// skipped; a malformed one is an error so typos never silently revert to
// defaults.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "reading config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config file %s", path)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PYSCOUT_REGISTRY_URL"); v != "" {
		cfg.Registry.BaseURL = v
	}
	if v := os.Getenv("PYSCOUT_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("PYSCOUT_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("PYSCOUT_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("PYSCOUT_IGNORE_DIRS"); v != "" {
		for _, dir := range strings.Split(v, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				cfg.Scan.IgnoreDirs = append(cfg.Scan.IgnoreDirs, dir)
			}
		}
	}
}

func validate(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (expected file or redis)", cfg.Cache.Backend)
	}
	if cfg.Registry.TimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "registry timeout must be positive")
	}
	if cfg.Registry.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "registry base_url cannot be empty")
	}
	return nil
}
