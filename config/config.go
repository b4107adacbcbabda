package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Assistant AssistantConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig selects where the farm catalog is loaded from
type CatalogConfig struct {
	Source  string        `mapstructure:"source"` // "embedded", "file" or "remote"
	Path    string        `mapstructure:"path"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// AssistantConfig tunes the chat assistant
type AssistantConfig struct {
	ResponseDelay time.Duration `mapstructure:"response_delay"`
	Currency      string        `mapstructure:"currency"`
	Vocabulary    []string      `mapstructure:"vocabulary"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rooted/")

	// ROOTED_SERVER_PORT -> server.port
	v.SetEnvPrefix("ROOTED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("catalog.source", "embedded")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.timeout", "30s")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("assistant.response_delay", "0s")
	v.SetDefault("assistant.currency", "SEK")
	v.SetDefault("assistant.vocabulary", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case "embedded":
	case "file":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required when source is 'file' (set ROOTED_CATALOG_PATH)")
		}
	case "remote":
		if config.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog base URL is required when source is 'remote' (set ROOTED_CATALOG_BASE_URL)")
		}
	default:
		return fmt.Errorf("catalog source must be 'embedded', 'file' or 'remote', got: %s", config.Catalog.Source)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Assistant.ResponseDelay < 0 {
		return fmt.Errorf("assistant response delay must not be negative, got: %s", config.Assistant.ResponseDelay)
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
