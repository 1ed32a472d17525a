package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "minipm" {
		t.Errorf("expected Name=minipm, got %s", cfg.Name)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("expected Driver=sqlite3, got %s", cfg.Database.Driver)
	}
	if cfg.Server.Service != "mini-pm-system" {
		t.Errorf("expected Service=mini-pm-system, got %s", cfg.Server.Service)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_LoadRoundTrip(t *testing.T) {
	t.Setenv("MINIPM_DB", "")
	t.Setenv("MINIPM_ADDR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/var/lib/minipm/data.db"
	cfg.Server.Addr = ":9000"
	cfg.Logging.Categories = map[string]bool{"http": false}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Database.Path != "/var/lib/minipm/data.db" {
		t.Errorf("expected Path=/var/lib/minipm/data.db, got %s", loaded.Database.Path)
	}
	if loaded.Server.Addr != ":9000" {
		t.Errorf("expected Addr=:9000, got %s", loaded.Server.Addr)
	}
	if enabled, ok := loaded.Logging.Categories["http"]; !ok || enabled {
		t.Errorf("expected http category disabled, got %v", loaded.Logging.Categories)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != DefaultConfig().Server.Addr {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }},
		{"bad timeout", func(c *Config) { c.Server.ShutdownTimeout = "soon" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestGetShutdownTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ShutdownTimeout = "3s"
	if got := cfg.GetShutdownTimeout(); got != 3*time.Second {
		t.Errorf("expected 3s, got %v", got)
	}
	cfg.Server.ShutdownTimeout = "garbage"
	if got := cfg.GetShutdownTimeout(); got != 10*time.Second {
		t.Errorf("expected fallback 10s, got %v", got)
	}
}
