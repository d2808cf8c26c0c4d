package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Ingest    IngestConfig
	Cache     CacheConfig
	Converter ConverterConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IngestConfig holds ingestion engine configuration
type IngestConfig struct {
	DefaultCurrency string  `mapstructure:"default_currency"`
	DefaultCompany  string  `mapstructure:"default_company"`
	MarkupMin       float64 `mapstructure:"markup_min"`
	MarkupMax       float64 `mapstructure:"markup_max"`
	DebugLogging    bool    `mapstructure:"debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ConverterConfig holds currency-conversion API configuration
type ConverterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricesheet/")

	// Environment variable settings
	v.SetEnvPrefix("PRICESHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Ingest defaults: Turkish vendor files, 20-30% markup backfill
	v.SetDefault("ingest.default_currency", "TRY")
	v.SetDefault("ingest.default_company", "unknown")
	v.SetDefault("ingest.markup_min", 0.20)
	v.SetDefault("ingest.markup_max", 0.30)
	v.SetDefault("ingest.debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Converter defaults
	v.SetDefault("converter.base_url", "https://api.exchange.example.com")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Ingest.MarkupMin <= 0 || config.Ingest.MarkupMax <= config.Ingest.MarkupMin {
		return fmt.Errorf("markup range is invalid: min=%.2f max=%.2f",
			config.Ingest.MarkupMin, config.Ingest.MarkupMax)
	}

	switch config.Ingest.DefaultCurrency {
	case "USD", "EUR", "TRY":
	default:
		return fmt.Errorf("default currency must be USD, EUR or TRY, got: %s", config.Ingest.DefaultCurrency)
	}

	return nil
}
