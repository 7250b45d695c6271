package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigWithoutEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "env-only-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig without .env: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q, want value from environment", cfg.App.Port)
	}
	if cfg.DB.Host != "db.internal" {
		t.Errorf("DB.Host = %q, want value from environment", cfg.DB.Host)
	}
	if cfg.JWT.Secret != "env-only-secret" {
		t.Errorf("JWT.Secret = %q, want value from environment", cfg.JWT.Secret)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Env != "development" {
		t.Errorf("App.Env = %q, want development default", cfg.App.Env)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("AccessExpiry = %v, want 15m default", cfg.JWT.AccessExpiry)
	}
	if cfg.JWT.RefreshExpiry != 7*24*time.Hour {
		t.Errorf("RefreshExpiry = %v, want 168h default", cfg.JWT.RefreshExpiry)
	}
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(".env", []byte("APP_ENV=production\nDB_NAME=hospital\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.App.IsProduction() {
		t.Errorf("App.Env = %q, want production from .env", cfg.App.Env)
	}
	if cfg.DB.Name != "hospital" {
		t.Errorf("DB.Name = %q, want hospital from .env", cfg.DB.Name)
	}
}
