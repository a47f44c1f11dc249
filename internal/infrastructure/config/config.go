package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config application configuration. Read once at startup and passed down explicitly.
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Vision      VisionConfig     `mapstructure:"vision"`
	Search      SearchConfig     `mapstructure:"search"`
	Generative  GenerativeConfig `mapstructure:"generative"`
	Pipeline    PipelineConfig   `mapstructure:"pipeline"`
	Cache       CacheConfig      `mapstructure:"cache"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	Image       ImageConfig      `mapstructure:"image"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
	LogFile     string           `mapstructure:"log_file"`
}

type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// VisionConfig image labeling provider
type VisionConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxLabels       int           `mapstructure:"max_labels"`
	MinScore        float64       `mapstructure:"min_score"`
}

// Enabled reports whether any credential is configured.
func (c VisionConfig) Enabled() bool {
	return c.APIKey != "" || c.CredentialsFile != ""
}

// SearchConfig recipe search provider
type SearchConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Number  int           `mapstructure:"number"`
}

// GenerativeConfig OpenAI-compatible text generation provider
type GenerativeConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens"`
}

// PipelineConfig request-level budgets
type PipelineConfig struct {
	Watchdog      time.Duration `mapstructure:"watchdog"`
	PlatformLimit time.Duration `mapstructure:"platform_limit"`
	MaxRecipes    int           `mapstructure:"max_recipes"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// envBindings maps config keys to the plain environment variable names operators use.
var envBindings = map[string]string{
	"server.port":             "PORT",
	"log_level":               "LOG_LEVEL",
	"log_file":                "LOG_FILE",
	"vision.api_key":          "VISION_API_KEY",
	"vision.credentials_file": "GOOGLE_APPLICATION_CREDENTIALS",
	"search.api_key":          "SPOONACULAR_API_KEY",
	"search.base_url":         "SPOONACULAR_BASE_URL",
	"generative.api_key":      "OPENROUTER_API_KEY",
	"generative.base_url":     "OPENROUTER_BASE_URL",
	"generative.model":        "OPENROUTER_MODEL",
	"pipeline.watchdog":       "WATCHDOG_TIMEOUT",
	"cache.enabled":           "CACHE_ENABLED",
	"cache.backend":           "CACHE_BACKEND",
	"cache.redis_addr":        "REDIS_ADDR",
	"rate_limit.enabled":      "RATE_LIMIT_ENABLED",
	"rate_limit.requests":     "RATE_LIMIT_REQUESTS",
	"rate_limit.window":       "RATE_LIMIT_WINDOW",
	"dedup_window":            "DEDUP_WINDOW",
}

// LoadConfig loads .env (when present), then defaults, environment and an optional
// config file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Load(viper.New())
}

// Load reads configuration through v. Exposed so tests can use an isolated instance.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// MaskAPIKey shows only the first and last four characters of key.
func MaskAPIKey(key string) string {
	if key == "" {
		return "<unset>"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "pantry-chef")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "35s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.credentials_file", "")
	v.SetDefault("vision.timeout", "6s")
	v.SetDefault("vision.max_labels", 30)
	v.SetDefault("vision.min_score", 0.6)

	v.SetDefault("search.api_key", "")
	v.SetDefault("search.base_url", "https://api.spoonacular.com")
	v.SetDefault("search.timeout", "8s")
	v.SetDefault("search.number", 10)

	v.SetDefault("generative.api_key", "")
	v.SetDefault("generative.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("generative.model", "openai/gpt-4o-mini")
	v.SetDefault("generative.timeout", "12s")
	v.SetDefault("generative.max_tokens", 1200)

	v.SetDefault("pipeline.watchdog", "25s")
	v.SetDefault("pipeline.platform_limit", "30s")
	v.SetDefault("pipeline.max_recipes", 3)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("image.max_size_bytes", 8*1024*1024)
	v.SetDefault("dedup_window", "1s")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	p := cfg.Pipeline
	if p.MaxRecipes <= 0 {
		return fmt.Errorf("invalid pipeline max recipes")
	}
	if p.PlatformLimit <= 0 || p.Watchdog >= p.PlatformLimit {
		return fmt.Errorf("watchdog %s must be below the platform limit %s", p.Watchdog, p.PlatformLimit)
	}
	for name, d := range map[string]time.Duration{
		"vision":     cfg.Vision.Timeout,
		"search":     cfg.Search.Timeout,
		"generative": cfg.Generative.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s timeout", name)
		}
		if d >= p.Watchdog {
			return fmt.Errorf("%s timeout %s must be below the watchdog %s", name, d, p.Watchdog)
		}
	}

	if cfg.Vision.MinScore < 0 || cfg.Vision.MinScore > 1 {
		return fmt.Errorf("vision min score must be within [0, 1]")
	}

	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case CacheBackendMemory:
			if cfg.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if cfg.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case CacheBackendRedis:
			if cfg.Cache.RedisAddr == "" {
				return fmt.Errorf("redis cache requires an address")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}
	if cfg.Image.MaxSizeBytes <= 0 {
		return fmt.Errorf("invalid image max size")
	}
	return nil
}
