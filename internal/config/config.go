// Package config loads runtime settings from an optional YAML file and
// FITCLUB_* environment variables. Environment values win over the file.
package config

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
	"gopkg.in/yaml.v3"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends for the per-browser local storage.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// ConfigFileEnv names the variable that points at the optional YAML file.
const ConfigFileEnv = "FITCLUB_CONFIG_FILE"

// Config holds every runtime setting of the web client.
type Config struct {
	Env      string `yaml:"env"`
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`

	// APIBaseURL is the gym backend, e.g. http://127.0.0.1:8000.
	APIBaseURL string        `yaml:"api_base_url"`
	APITimeout time.Duration `yaml:"api_timeout"`

	// SecretKey is 64 hex characters; CSRF and cookie keys are derived from it.
	SecretKey string `yaml:"secret_key"`

	Storage       string        `yaml:"storage"`
	SQLitePath    string        `yaml:"sqlite_path"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	StorageTTL    time.Duration `yaml:"storage_ttl"`

	RateLimitPerSecond int      `yaml:"rate_limit_per_second"`
	TrustedOrigins     []string `yaml:"trusted_origins"`
	SlowRequestMs      int      `yaml:"slow_request_ms"`
	SlowQueryMs        int      `yaml:"slow_query_ms"`

	// WelcomeFile is an optional markdown file shown on the home page.
	WelcomeFile string `yaml:"welcome_file"`
	// DebugPerf exposes GET /debug/perf.
	DebugPerf bool `yaml:"debug_perf"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Env:                EnvDevelopment,
		Addr:               ":8080",
		LogLevel:           "info",
		APIBaseURL:         "http://127.0.0.1:8000",
		APITimeout:         10 * time.Second,
		Storage:            StorageSQLite,
		SQLitePath:         "fitclub.db",
		StorageTTL:         30 * 24 * time.Hour,
		RateLimitPerSecond: 10,
		TrustedOrigins:     []string{"localhost:8080", "127.0.0.1:8080"},
		SlowRequestMs:      200,
		SlowQueryMs:        50,
	}
}

// IsProduction reports whether the production environment is selected.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load builds a Config from defaults, the optional YAML file and the environment.
// PRE: none
// POST: Returns a validated Config or an error naming the bad setting
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode yaml: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "FITCLUB_ENV")
	setString(&cfg.Addr, "FITCLUB_ADDR")
	setString(&cfg.LogLevel, "FITCLUB_LOG_LEVEL")
	setString(&cfg.APIBaseURL, "FITCLUB_API_URL")
	setString(&cfg.SecretKey, "FITCLUB_SECRET_KEY")
	setString(&cfg.Storage, "FITCLUB_STORAGE")
	setString(&cfg.SQLitePath, "FITCLUB_SQLITE_PATH")
	setString(&cfg.RedisAddr, "FITCLUB_REDIS_ADDR")
	setString(&cfg.RedisPassword, "FITCLUB_REDIS_PASSWORD")
	setString(&cfg.WelcomeFile, "FITCLUB_WELCOME_FILE")

	if v := os.Getenv("FITCLUB_TRUSTED_ORIGINS"); v != "" {
		cfg.TrustedOrigins = splitList(v)
	}
	if err := setDuration(&cfg.APITimeout, "FITCLUB_API_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.StorageTTL, "FITCLUB_STORAGE_TTL"); err != nil {
		return err
	}
	if err := setInt(&cfg.RateLimitPerSecond, "FITCLUB_RATE_LIMIT"); err != nil {
		return err
	}
	if err := setInt(&cfg.SlowRequestMs, "FITCLUB_SLOW_REQUEST_MS"); err != nil {
		return err
	}
	if err := setInt(&cfg.SlowQueryMs, "FITCLUB_SLOW_QUERY_MS"); err != nil {
		return err
	}
	if v := os.Getenv("FITCLUB_DEBUG_PERF"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: FITCLUB_DEBUG_PERF: %w", err)
		}
		cfg.DebugPerf = b
	}
	return nil
}

// Validate checks the settings that have no safe fallback.
func (c Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("config: env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("config: api_base_url is required")
	}
	switch c.Storage {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return errors.New("config: sqlite_path is required for sqlite storage")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return errors.New("config: redis_addr is required for redis storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	if c.SecretKey != "" {
		if _, err := decodeSecret(c.SecretKey); err != nil {
			return err
		}
	} else if c.IsProduction() {
		return errors.New("config: FITCLUB_SECRET_KEY is required in production")
	}
	if c.RateLimitPerSecond <= 0 {
		return errors.New("config: rate_limit_per_second must be positive")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Keys are the secrets used by the HTTP layer.
type Keys struct {
	CSRF        []byte // 32 bytes
	CookieHash  []byte // 32 bytes, HMAC for the browser cookie
	CookieBlock []byte // 32 bytes, AES-256 for the browser cookie
}

// DeriveKeys expands SecretKey into independent keys with HKDF-SHA256.
// Without a SecretKey a random one is generated, so cookies and CSRF tokens
// do not survive a restart.
// PRE: Validate has passed
// POST: Returns three distinct 32-byte keys
func (c Config) DeriveKeys() (Keys, error) {
	var secret []byte
	if c.SecretKey != "" {
		s, err := decodeSecret(c.SecretKey)
		if err != nil {
			return Keys{}, err
		}
		secret = s
	} else {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Keys{}, fmt.Errorf("config: generate secret: %w", err)
		}
		slog.Warn("random_secret_key", "detail", "sessions won't survive restart; set FITCLUB_SECRET_KEY")
	}

	derive := func(info string) ([]byte, error) {
		key := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
			return nil, fmt.Errorf("config: derive %s key: %w", info, err)
		}
		return key, nil
	}

	var keys Keys
	var err error
	if keys.CSRF, err = derive("fitclub csrf"); err != nil {
		return Keys{}, err
	}
	if keys.CookieHash, err = derive("fitclub cookie hash"); err != nil {
		return Keys{}, err
	}
	if keys.CookieBlock, err = derive("fitclub cookie block"); err != nil {
		return Keys{}, err
	}
	return keys, nil
}

func decodeSecret(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil || len(key) != 32 {
		return nil, errors.New("config: FITCLUB_SECRET_KEY must be 64 hex characters (32 bytes)")
	}
	return key, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
