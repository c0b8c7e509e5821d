package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// TestLoad_Defaults verifies an empty environment yields development defaults.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != EnvDevelopment || cfg.Storage != StorageSQLite || cfg.Addr != ":8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

// TestLoad_EnvOverridesFile verifies env values win over YAML.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitclub.yaml")
	yml := "addr: \":9000\"\napi_base_url: http://backend:8000\napi_timeout: 3s\nstorage: memory\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("FITCLUB_ADDR", ":9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Errorf("Addr = %q, want env value", cfg.Addr)
	}
	if cfg.APIBaseURL != "http://backend:8000" {
		t.Errorf("APIBaseURL = %q, want file value", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Errorf("APITimeout = %v, want 3s", cfg.APITimeout)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("Storage = %q, want memory", cfg.Storage)
	}
}

// TestLoad_InvalidValues verifies bad settings are rejected.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad env", "FITCLUB_ENV", "staging"},
		{"bad storage", "FITCLUB_STORAGE", "postgres"},
		{"bad timeout", "FITCLUB_API_TIMEOUT", "soon"},
		{"bad rate", "FITCLUB_RATE_LIMIT", "many"},
		{"short secret", "FITCLUB_SECRET_KEY", "abcd"},
		{"bad debug flag", "FITCLUB_DEBUG_PERF", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigFileEnv, "")
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

// TestValidate_ProductionNeedsSecret verifies production refuses a random key.
func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := Default()
	cfg.Env = EnvProduction
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "FITCLUB_SECRET_KEY") {
		t.Errorf("Validate = %v, want secret key error", err)
	}
	cfg.SecretKey = testSecret
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with secret = %v", err)
	}
}

// TestValidate_RedisNeedsAddr verifies the redis backend requires an address.
func TestValidate_RedisNeedsAddr(t *testing.T) {
	cfg := Default()
	cfg.Storage = StorageRedis
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without redis_addr")
	}
	cfg.RedisAddr = "127.0.0.1:6379"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}

// TestDeriveKeys_Deterministic verifies the same secret gives the same distinct keys.
func TestDeriveKeys_Deterministic(t *testing.T) {
	cfg := Default()
	cfg.SecretKey = testSecret

	a, err := cfg.DeriveKeys()
	if err != nil {
		t.Fatalf("DeriveKeys: %v", err)
	}
	b, err := cfg.DeriveKeys()
	if err != nil {
		t.Fatalf("DeriveKeys: %v", err)
	}
	if !bytes.Equal(a.CSRF, b.CSRF) || !bytes.Equal(a.CookieHash, b.CookieHash) || !bytes.Equal(a.CookieBlock, b.CookieBlock) {
		t.Error("derived keys differ between calls")
	}
	if bytes.Equal(a.CSRF, a.CookieHash) || bytes.Equal(a.CookieHash, a.CookieBlock) {
		t.Error("derived keys must be distinct")
	}
	if len(a.CSRF) != 32 || len(a.CookieHash) != 32 || len(a.CookieBlock) != 32 {
		t.Error("derived keys must be 32 bytes")
	}
}

// TestDeriveKeys_RandomWithoutSecret verifies development keys change per call.
func TestDeriveKeys_RandomWithoutSecret(t *testing.T) {
	cfg := Default()
	a, err := cfg.DeriveKeys()
	if err != nil {
		t.Fatalf("DeriveKeys: %v", err)
	}
	b, _ := cfg.DeriveKeys()
	if bytes.Equal(a.CSRF, b.CSRF) {
		t.Error("expected random keys without a secret")
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	for in, want := range map[string]string{"debug": "DEBUG", "WARN": "WARN", "error": "ERROR", "": "INFO"} {
		cfg.LogLevel = in
		if got := cfg.SlogLevel().String(); got != want {
			t.Errorf("SlogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
