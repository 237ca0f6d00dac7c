package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in the `backend` key.
const (
	BackendUpstream = "upstream"
	BackendDemo     = "demo"
)

// APIKeyEnv names the environment variable read when server.api_key is empty.
const APIKeyEnv = "API_KEY"

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Backend    string           `yaml:"backend"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Cache      CacheConfig      `yaml:"cache"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Log        LogConfig        `yaml:"log"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are present.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                int     `yaml:"port"`
	RateLimitPerSec     float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst      int     `yaml:"rate_limit_burst"`
	CommandLimitPerMin  float64 `yaml:"command_limit_per_min"`
	ShutdownTimeoutSecs int     `yaml:"shutdown_timeout_seconds"`
	// APIKey protects /api with a bearer token. Falls back to $API_KEY.
	APIKey string `yaml:"api_key"`
}

// UpstreamConfig describes how to reach the vendor telematics backend.
type UpstreamConfig struct {
	URL               string            `yaml:"url"`
	Headers           map[string]string `yaml:"headers"`
	HTTPProxy         string            `yaml:"http_proxy"`
	TimeoutSeconds    int               `yaml:"timeout_seconds"`
	Timeout           time.Duration     `yaml:"-"`
	PageSize          int               `yaml:"page_size"`
	RequestsPerSecond float64           `yaml:"requests_per_second"`
}

// CacheConfig controls the vehicle snapshot cache.
type CacheConfig struct {
	TTLSeconds int           `yaml:"ttl_seconds"`
	TTL        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
// An empty DSN disables the command journal and push subscriptions.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Development bool   `yaml:"development"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration that runs the demo backend without a database.
func Default() *Config {
	cfg := &Config{Backend: BackendDemo}
	_ = cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CommandLimitPerMin <= 0 {
		cfg.Server.CommandLimitPerMin = 6
	}
	if cfg.Server.ShutdownTimeoutSecs <= 0 {
		cfg.Server.ShutdownTimeoutSecs = 5
	}
	if cfg.Server.APIKey == "" {
		cfg.Server.APIKey = os.Getenv(APIKeyEnv)
	}

	switch cfg.Backend {
	case "":
		cfg.Backend = BackendUpstream
	case BackendUpstream, BackendDemo:
	default:
		return fmt.Errorf("unknown backend %q, expected %q or %q", cfg.Backend, BackendUpstream, BackendDemo)
	}
	if cfg.Backend == BackendUpstream && cfg.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required for the %q backend", BackendUpstream)
	}

	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}
	cfg.Upstream.Timeout = time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	if cfg.Upstream.PageSize <= 0 {
		cfg.Upstream.PageSize = 50
	}
	if cfg.Upstream.RequestsPerSecond <= 0 {
		cfg.Upstream.RequestsPerSecond = 1
	}

	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 300
	}
	cfg.Cache.TTL = time.Duration(cfg.Cache.TTLSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}
	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	return nil
}
