package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, want 5432", cfg.DBPort)
	}
	if cfg.DBMaxOpenConns != 15 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("pool = %d/%d, want 15/5", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Errorf("QueryTimeout = %v, want 30s", cfg.QueryTimeout)
	}
	if cfg.ExportCacheTTL != 15*time.Minute {
		t.Errorf("ExportCacheTTL = %v, want 15m", cfg.ExportCacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_PORT", "5433")
	t.Setenv("QUERY_TIMEOUT", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBPort != 5433 {
		t.Errorf("DBPort = %d, want 5433", cfg.DBPort)
	}
	if cfg.QueryTimeout != 5*time.Second {
		t.Errorf("QueryTimeout = %v, want 5s", cfg.QueryTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid DB_PORT")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBUser: "u", DBPassword: "p",
		DBName: "causas", DBPort: 5432, DBSSLMode: "disable",
	}
	want := "host=db user=u password=p dbname=causas port=5432 sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
