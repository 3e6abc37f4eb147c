package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Fatalf("expected default session TTL 720h, got %v", cfg.SessionTTL)
	}
	if cfg.SecureCookie {
		t.Fatalf("expected secure cookie off by default")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected default log level info, got %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %s", cfg.Addr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected session TTL 24h, got %v", cfg.SessionTTL)
	}
	if !cfg.SecureCookie {
		t.Fatalf("expected secure cookie on")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.SQLiteDBPath = t.TempDir() + "/finlog.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid defaults, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, "listen address"},
		{"addr without port", func(c *Config) { c.Addr = "localhost" }, "must contain a port"},
		{"empty db path", func(c *Config) { c.SQLiteDBPath = "" }, "database path"},
		{"tiny session ttl", func(c *Config) { c.SessionTTL = time.Second }, "session TTL"},
		{"huge sweep interval", func(c *Config) { c.SweepInterval = 48 * time.Hour }, "sweep interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Load()
			c.SQLiteDBPath = t.TempDir() + "/finlog.db"
			tc.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}
