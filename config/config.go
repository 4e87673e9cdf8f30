package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog source types
const (
	SourceABBREV = "abbrev"
	SourceSQLite = "sqlite"
	SourceUSDA   = "usda"
)

// maxExhaustiveCandidates is the hard ceiling of the exhaustive search mask
const maxExhaustiveCandidates = 63

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Catalog   CatalogConfig
	USDA      USDAConfig
	Selection SelectionConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CatalogConfig selects where the food catalog comes from.
// For the sqlite source, Path (if set) seeds an empty database from an ABBREV file.
type CatalogConfig struct {
	Source       string `mapstructure:"source"` // "abbrev", "sqlite" or "usda"
	Path         string `mapstructure:"path"`
	DatabasePath string `mapstructure:"database_path"`
}

// USDAConfig holds USDA API configuration
type USDAConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	BaseURL string   `mapstructure:"base_url"`
	Queries []string `mapstructure:"queries"`
}

// SelectionConfig holds default selection parameters and search limits
type SelectionConfig struct {
	MinKcal                 int `mapstructure:"min_kcal"`
	MaxKcal                 int `mapstructure:"max_kcal"`
	Limit                   int `mapstructure:"limit"`
	TotalKcal               int `mapstructure:"total_kcal"`
	MaxExhaustiveCandidates int `mapstructure:"max_exhaustive_candidates"`
	Workers                 int `mapstructure:"workers"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/maxprotein/")

	// MAXPROTEIN_SELECTION_TOTAL_KCAL -> selection.total_kcal
	v.SetEnvPrefix("MAXPROTEIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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

// setDefaults sets default configuration values. Every key needs a default
// so that AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("log.level", "info")

	v.SetDefault("catalog.source", SourceABBREV)
	v.SetDefault("catalog.path", "data/ABBREV.txt")
	v.SetDefault("catalog.database_path", "")

	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.queries", []string{})

	v.SetDefault("selection.min_kcal", 0)
	v.SetDefault("selection.max_kcal", 2500)
	v.SetDefault("selection.limit", 25)
	v.SetDefault("selection.total_kcal", 2000)
	v.SetDefault("selection.max_exhaustive_candidates", 25)
	v.SetDefault("selection.workers", 1)

	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case SourceABBREV:
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required for the abbrev source (set MAXPROTEIN_CATALOG_PATH)")
		}
	case SourceSQLite:
		if config.Catalog.DatabasePath == "" {
			return fmt.Errorf("database path is required for the sqlite source (set MAXPROTEIN_CATALOG_DATABASE_PATH)")
		}
	case SourceUSDA:
		if config.USDA.APIKey == "" {
			return fmt.Errorf("USDA API key is required for the usda source (set MAXPROTEIN_USDA_API_KEY)")
		}
		if len(config.USDA.Queries) == 0 {
			return fmt.Errorf("at least one USDA query is required for the usda source")
		}
	default:
		return fmt.Errorf("catalog source must be %q, %q or %q, got: %q",
			SourceABBREV, SourceSQLite, SourceUSDA, config.Catalog.Source)
	}

	s := config.Selection
	if s.MinKcal >= s.MaxKcal {
		return fmt.Errorf("selection min_kcal (%d) must be less than max_kcal (%d)", s.MinKcal, s.MaxKcal)
	}
	if s.Limit <= 0 {
		return fmt.Errorf("selection limit must be positive, got: %d", s.Limit)
	}
	if s.MaxExhaustiveCandidates < 1 || s.MaxExhaustiveCandidates > maxExhaustiveCandidates {
		return fmt.Errorf("selection max_exhaustive_candidates must be between 1 and %d, got: %d",
			maxExhaustiveCandidates, s.MaxExhaustiveCandidates)
	}
	if s.Workers < 1 {
		return fmt.Errorf("selection workers must be at least 1, got: %d", s.Workers)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
