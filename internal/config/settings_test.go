package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCoreConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadCoreConfigFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DaemonAddress() != "127.0.0.1:7787" {
		t.Fatalf("unexpected default address: %q", cfg.DaemonAddress())
	}
	if cfg.StoreBackend() != StoreBackendBbolt {
		t.Fatalf("unexpected default backend: %q", cfg.StoreBackend())
	}
	if cfg.DefaultScope() != "Revit" {
		t.Fatalf("unexpected default scope: %q", cfg.DefaultScope())
	}
}

func TestLoadCoreConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[daemon]
address = "127.0.0.1:9900"

[store]
backend = "postgres"
postgres_dsn = "postgres://localhost/refdesk?sslmode=disable"

[logging]
level = "debug"

[ui]
default_scope = "SketchUp"
`)
	cfg, err := loadCoreConfigFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DaemonAddress() != "127.0.0.1:9900" {
		t.Fatalf("unexpected address: %q", cfg.DaemonAddress())
	}
	if cfg.StoreBackend() != StoreBackendPostgres {
		t.Fatalf("unexpected backend: %q", cfg.StoreBackend())
	}
	if cfg.PostgresDSN() != "postgres://localhost/refdesk?sslmode=disable" {
		t.Fatalf("unexpected dsn: %q", cfg.PostgresDSN())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected level: %q", cfg.LogLevel())
	}
	if cfg.DefaultScope() != "SketchUp" {
		t.Fatalf("unexpected scope: %q", cfg.DefaultScope())
	}
}

func TestDaemonAddressStripsScheme(t *testing.T) {
	cfg := DefaultCoreConfig()
	cfg.Daemon.Address = "http://127.0.0.1:7787/"
	if cfg.DaemonAddress() != "127.0.0.1:7787" {
		t.Fatalf("unexpected address: %q", cfg.DaemonAddress())
	}
	if cfg.DaemonBaseURL() != "http://127.0.0.1:7787" {
		t.Fatalf("unexpected base url: %q", cfg.DaemonBaseURL())
	}
}

func TestStoreBackendNormalizesUnknown(t *testing.T) {
	cfg := DefaultCoreConfig()
	cfg.Store.Backend = "  POSTGRES "
	if cfg.StoreBackend() != StoreBackendPostgres {
		t.Fatalf("unexpected backend: %q", cfg.StoreBackend())
	}
	cfg.Store.Backend = "redis"
	if cfg.StoreBackend() != StoreBackendBbolt {
		t.Fatalf("unknown backend should fall back to bbolt, got %q", cfg.StoreBackend())
	}
}
