package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Port:            "8082",
		SQLiteDBPath:    "./data/monedero.db",
		DataBackend:     "memory",
		DefaultCurrency: "EUR",
		AMQPExchange:    "monedero",
		AMQPQueue:       "mutation_events",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("backend = %q", cfg.DataBackend)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Fatalf("currency = %q", cfg.DefaultCurrency)
	}
	if cfg.AMQPURL != "" {
		t.Fatalf("amqp must be disabled by default, got %q", cfg.AMQPURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("DEFAULT_CURRENCY", "PEN")
	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "sqlite" || cfg.DefaultCurrency != "PEN" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"bad backend", func(c *Config) { c.DataBackend = "redis" }, "invalid data backend"},
		{"bad currency", func(c *Config) { c.DefaultCurrency = "XXX" }, "invalid default currency"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue name cannot be empty"},
		{"sqlite without path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "path cannot be empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.problem == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.problem) {
				t.Fatalf("expected problem %q, got %v", tc.problem, err)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DataBackend = "redis"
	cfg.DefaultCurrency = "XXX"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "invalid default currency"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error missing %q: %v", want, err)
		}
	}
}

func TestValidateCreatesSQLiteDir(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "sqlite"
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "nested", "monedero.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
