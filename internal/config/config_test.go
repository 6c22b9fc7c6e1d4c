package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vembed/internal/media"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Platform != "auto" {
		t.Errorf("default platform = %q, want auto", cfg.Platform)
	}
	if cfg.Format != "text" {
		t.Errorf("default format = %q, want text", cfg.Format)
	}
	if !cfg.OEmbed.Enabled {
		t.Error("default oembed should be enabled")
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("default timeout = %v, want 10s", cfg.Timeout())
	}
	if cfg.TTL() != 24*time.Hour {
		t.Errorf("default ttl = %v, want 24h", cfg.TTL())
	}
	if cfg.Hint() != media.Unknown {
		t.Errorf("default hint = %v, want auto-detect", cfg.Hint())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid platform", func(c *Config) { c.Platform = "vimeo" }, true},
		{"invalid format", func(c *Config) { c.Format = "xml" }, true},
		{"zero timeout", func(c *Config) { c.OEmbed.TimeoutSeconds = 0 }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTLHours = -1 }, true},
		{"valid tiktok", func(c *Config) { c.Platform = "tiktok" }, false},
		{"valid json upper", func(c *Config) { c.Format = "JSON" }, false},
		{"empty platform means auto", func(c *Config) { c.Platform = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	appDir := filepath.Join(tmpDir, "vembed")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
platform = "instagram"
format = "json"

[oembed]
enabled = false
timeout_seconds = 3

[cache]
enabled = true
ttl_hours = 2
path = "/tmp/vembed-test.db"
`
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Hint() != media.Instagram {
		t.Errorf("hint = %v, want instagram", cfg.Hint())
	}
	if !cfg.JSON() {
		t.Error("format should be json")
	}
	if cfg.OEmbed.Enabled {
		t.Error("oembed should be disabled")
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", cfg.Timeout())
	}
	if cfg.TTL() != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", cfg.TTL())
	}

	path, err := cfg.CachePath()
	if err != nil {
		t.Fatalf("CachePath() error: %v", err)
	}
	if path != "/tmp/vembed-test.db" {
		t.Errorf("cache path = %q, want /tmp/vembed-test.db", path)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.MkdirAll(filepath.Join(tmpDir, "vembed"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "vembed", "config.toml"), []byte(`platform = "myspace"`), 0644)

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unsupported platform")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Platform != "auto" {
		t.Errorf("missing file should return defaults, got platform = %q", cfg.Platform)
	}
}

func TestCachePathXDG(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmpDir)

	path, err := Default().CachePath()
	if err != nil {
		t.Fatalf("CachePath() error: %v", err)
	}
	want := filepath.Join(tmpDir, "vembed", "oembed.db")
	if path != want {
		t.Errorf("CachePath() = %q, want %q", path, want)
	}
}

func TestHistoryPathXDG(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	path, err := HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath() error: %v", err)
	}
	want := filepath.Join(tmpDir, "vembed", "history.tsv")
	if path != want {
		t.Errorf("HistoryPath() = %q, want %q", path, want)
	}
}
