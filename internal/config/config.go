// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"vembed/internal/media"
)

const appDir = "vembed"

// Config holds all application configuration.
type Config struct {
	Platform string       `toml:"platform"` // Default parse hint: auto | youtube | instagram | tiktok
	Format   string       `toml:"format"`   // Output format: text | json
	Debug    bool         `toml:"debug"`
	History  bool         `toml:"history"` // Record parsed videos
	OEmbed   OEmbedConfig `toml:"oembed"`
	Cache    CacheConfig  `toml:"cache"`
}

// OEmbedConfig controls optional metadata enrichment.
type OEmbedConfig struct {
	Enabled        bool `toml:"enabled"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
}

// CacheConfig controls the local oEmbed cache.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	TTLHours int    `toml:"ttl_hours"`
	Path     string `toml:"path"` // Empty selects the XDG cache location
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Platform: "auto",
		Format:   "text",
		Debug:    false,
		History:  true,
		OEmbed: OEmbedConfig{
			Enabled:        true,
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: 24,
		},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if _, err := media.ParseHint(c.Platform); err != nil {
		return err
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("unsupported format %q (valid: text, json)", c.Format)
	}

	if c.OEmbed.TimeoutSeconds <= 0 {
		return fmt.Errorf("oembed.timeout_seconds must be positive, got %d", c.OEmbed.TimeoutSeconds)
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache.ttl_hours must be positive, got %d", c.Cache.TTLHours)
	}

	return nil
}

// Hint returns the configured default platform hint.
func (c *Config) Hint() media.Platform {
	p, _ := media.ParseHint(c.Platform)
	return p
}

// JSON reports whether output should be JSON.
func (c *Config) JSON() bool {
	return strings.EqualFold(c.Format, "json")
}

// Timeout returns the oEmbed request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.OEmbed.TimeoutSeconds) * time.Second
}

// TTL returns how long cached oEmbed payloads stay fresh.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// CachePath resolves the cache database location, expanding ~.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return expandHome(c.Cache.Path)
	}

	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, appDir, "oembed.db"), nil
}

// HistoryPath returns the path to the parse history file.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appDir, "history.tsv"), nil
}

func expandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
