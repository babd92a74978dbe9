// Package config loads the offline proxy configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Sternrassler/offline-cache/pkg/assets"
	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultCacheName is the Cache Store identifier. Bump the version suffix to
// invalidate every cached asset; the old store is left behind untouched.
const DefaultCacheName = "isbot-cache-v1"

// Config holds the service configuration.
type Config struct {
	// HTTP listener port
	Port string `env:"PORT" envDefault:"8080"`

	// OriginURL is the site whose assets are cached and whose requests are proxied
	OriginURL string `env:"ORIGIN_URL" envDefault:"http://localhost:5000"`

	// Store backend: "redis" or "memory"
	Store    string `env:"OFFLINE_STORE" envDefault:"redis"`
	RedisURL string `env:"REDIS_URL" envDefault:"localhost:6379"`

	// CacheName identifies the Cache Store. The envDefault must equal
	// DefaultCacheName; TestLoad_Defaults enforces it.
	CacheName string `env:"OFFLINE_CACHE_NAME" envDefault:"isbot-cache-v1"`

	// AssetsFile optionally replaces the built-in Asset List with a YAML manifest
	AssetsFile string `env:"OFFLINE_ASSETS_FILE"`

	InstallConcurrency int           `env:"INSTALL_CONCURRENCY" envDefault:"4"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values env tags cannot express.
func (c Config) Validate() error {
	if c.Store != StoreRedis && c.Store != StoreMemory {
		return fmt.Errorf("store must be %q or %q (got %q)", StoreRedis, StoreMemory, c.Store)
	}
	if c.CacheName == "" {
		return fmt.Errorf("cache name is required")
	}
	if c.OriginURL == "" {
		return fmt.Errorf("origin url is required")
	}
	if c.InstallConcurrency < 1 {
		return fmt.Errorf("install_concurrency must be >= 1 (got %d)", c.InstallConcurrency)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive (got %s)", c.HTTPTimeout)
	}
	return nil
}

// Assets returns the Asset List: the manifest when AssetsFile is set,
// otherwise the built-in default.
func (c Config) Assets() (assets.List, error) {
	if c.AssetsFile == "" {
		return assets.Default(), nil
	}
	return assets.LoadFile(c.AssetsFile)
}
