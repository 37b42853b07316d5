package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"auth": map[string]any{
			"tokenTTL": "1h",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "AUTH_TOKENTTL", want: "auth.tokenTTL"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestLoadWithEnv_OverridesYAMLWithEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  serviceName: bookshelf
http:
  port: 8080
database:
  driver: sqlite
  sqlite:
    path: /tmp/bookshelf.db
secretKey:
  access: from-file
auth:
  tokenTTL: 30m
`)
	if err := os.WriteFile(filepath.Join(dir, "unit.yaml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("HTTP_PORT", "9090")

	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("unit")
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}

	if cfg.SecretKey.Access != "from-env" {
		t.Fatalf("secretKey.access = %q, want from-env", cfg.SecretKey.Access)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("http.port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Auth == nil || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("auth.tokenTTL not decoded: %+v", cfg.Auth)
	}
	if cfg.Database.SQLite.Path != "/tmp/bookshelf.db" {
		t.Fatalf("database.sqlite.path = %q", cfg.Database.SQLite.Path)
	}
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := LoadWithEnv[Config]("absent"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("sqlite requires a path", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = DriverSQLite
		if err := cfg.applyDefaults(); err == nil {
			t.Fatal("expected error for empty sqlite path")
		}
	})

	t.Run("postgres requires a connection block", func(t *testing.T) {
		cfg := &Config{}
		if err := cfg.applyDefaults(); err == nil {
			t.Fatal("expected error for missing postgres config")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = "oracle"
		if err := cfg.applyDefaults(); err == nil {
			t.Fatal("expected error for unknown driver")
		}
	})

	t.Run("fills token ttl and body size", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = "SQLite"
		cfg.Database.SQLite.Path = "data/bookshelf.db"
		if err := cfg.applyDefaults(); err != nil {
			t.Fatalf("applyDefaults: %v", err)
		}
		if cfg.Database.Driver != DriverSQLite {
			t.Fatalf("driver = %q", cfg.Database.Driver)
		}
		if cfg.Auth.TokenTTL != defaultTokenTTL {
			t.Fatalf("tokenTTL = %v", cfg.Auth.TokenTTL)
		}
		if cfg.HTTP.MaxRequestBodySize != defaultMaxRequestBodySize {
			t.Fatalf("maxRequestBodySize = %q", cfg.HTTP.MaxRequestBodySize)
		}
	})
}
