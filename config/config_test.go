package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata-does-not-exist.env")
	t.Setenv("PORT", "8080")

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StorefrontIdleTTL != 30*time.Minute {
		t.Errorf("StorefrontIdleTTL = %v, want 30m", cfg.StorefrontIdleTTL)
	}
	if cfg.MockAuthDelay != time.Second {
		t.Errorf("MockAuthDelay = %v, want 1s", cfg.MockAuthDelay)
	}
	if cfg.IdentityProvider != IdentityMock {
		t.Errorf("IdentityProvider = %q, want mock", cfg.IdentityProvider)
	}
}

func TestLoadConfig_TypedOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata-does-not-exist.env")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("MOCK_AUTH_DELAY", "250ms")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := LoadConfig()

	if cfg.StorageDriver != StorageRedis {
		t.Errorf("StorageDriver = %q, want redis", cfg.StorageDriver)
	}
	if cfg.MockAuthDelay != 250*time.Millisecond {
		t.Errorf("MockAuthDelay = %v", cfg.MockAuthDelay)
	}
	if cfg.DBMaxConns != 7 {
		t.Errorf("DBMaxConns = %d, want 7", cfg.DBMaxConns)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 40 {
		t.Errorf("RateLimitBurst = %d, want fallback 40", cfg.RateLimitBurst)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory and mock", func(c *Config) {}, ""},
		{"redis without url", func(c *Config) { c.StorageDriver = StorageRedis }, "REDIS_URL"},
		{"postgres with dsn", func(c *Config) { c.StorageDriver = StoragePostgres; c.DBUrl = "postgres://x" }, ""},
		{"postgres without dsn", func(c *Config) { c.StorageDriver = StoragePostgres }, "DB_DSN"},
		{"r2 partial", func(c *Config) { c.StorageDriver = StorageR2; c.R2BucketName = "b" }, "R2_ACCOUNT_ID"},
		{"unknown driver", func(c *Config) { c.StorageDriver = "sqlite" }, "unknown STORAGE_DRIVER"},
		{"http identity without url", func(c *Config) { c.IdentityProvider = IdentityHTTP }, "IDENTITY_URL"},
		{"unknown identity", func(c *Config) { c.IdentityProvider = "ldap" }, "unknown IDENTITY_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				StorageDriver:     StorageMemory,
				IdentityProvider:  IdentityMock,
				DeviceTokenSecret: "test-secret",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
