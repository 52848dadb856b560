package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected path %s, got %s", path, resolved)
	}
	if cfg.Addr != Default().Addr || cfg.DataSource != DataSourceMemory {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config written: %v", err)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":9090\"\ndata_source: sqlite\ndatabase_path: /tmp/portal-test.db\ntoken_ttl: 1h\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORTAL_ADDR", ":7070")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("expected env to win, got %s", cfg.Addr)
	}
	if cfg.DataSource != DataSourceSQLite || cfg.DatabasePath != "/tmp/portal-test.db" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected token ttl 1h, got %s", cfg.TokenTTL)
	}
}

func TestLoadRejectsUnknownDataSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_source: mongo\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := Load(nil, path); err == nil {
		t.Fatalf("expected invalid data source error")
	}
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1", DataSource: DataSourceFixtures})

	if cfg.Addr != ":1" || cfg.DataSource != DataSourceFixtures {
		t.Fatalf("expected overrides applied, got %+v", cfg)
	}
	if cfg.JWTSecret != Default().JWTSecret {
		t.Fatalf("expected zero values ignored")
	}
}
