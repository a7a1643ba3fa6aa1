package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scrapekit/scrapekit/pkg/observability"
	"github.com/scrapekit/scrapekit/pkg/settings"
)

// Config holds all application configuration
type Config struct {
	// Discovery configuration
	Discovery DiscoveryConfig

	// Pool configuration
	Pool PoolConfig

	// Settings backend configuration
	Settings settings.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// DiscoveryConfig holds provider discovery configuration
type DiscoveryConfig struct {
	// ProviderRoot is the directory scanned for provider manifests.
	ProviderRoot string

	// Categories restricts discovery to the named subpackages.
	// Empty means all categories.
	Categories []string

	// Parallelism bounds the discovery sub-pool.
	Parallelism int

	// Diagnostics propagates loader failures instead of skip-and-log.
	Diagnostics bool

	// FailClosed treats unreadable enablement settings as disabled.
	FailClosed bool

	// RefreshSchedule is a cron expression for periodic re-discovery.
	// Empty disables the refresh loop.
	RefreshSchedule string
}

// PoolConfig holds shared worker pool configuration
type PoolConfig struct {
	// Capacity is the number of workers in the shared pool.
	Capacity int

	// ShutdownTimeout bounds the drain during graceful shutdown.
	ShutdownTimeout time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool

	// Health/metrics server port (separate from any API surface)
	HealthPort string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Discovery:     loadDiscoveryConfig(),
		Pool:          loadPoolConfig(),
		Settings:      loadSettingsConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDiscoveryConfig loads discovery configuration from environment
func loadDiscoveryConfig() DiscoveryConfig {
	cfg := DiscoveryConfig{
		ProviderRoot:    getEnv("SCRAPEKIT_PROVIDER_ROOT", "providers"),
		Parallelism:     getEnvInt("SCRAPEKIT_DISCOVERY_PARALLELISM", 10),
		Diagnostics:     getEnvBool("SCRAPEKIT_DIAGNOSTICS", false),
		FailClosed:      getEnvBool("SCRAPEKIT_FAIL_CLOSED", false),
		RefreshSchedule: getEnv("SCRAPEKIT_REFRESH_SCHEDULE", ""),
	}

	if categories := getEnv("SCRAPEKIT_CATEGORIES", ""); categories != "" {
		for _, c := range strings.Split(categories, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.Categories = append(cfg.Categories, c)
			}
		}
	}

	return cfg
}

// loadPoolConfig loads worker pool configuration from environment
func loadPoolConfig() PoolConfig {
	return PoolConfig{
		Capacity:        getEnvInt("SCRAPEKIT_POOL_CAPACITY", 40),
		ShutdownTimeout: getEnvDuration("SCRAPEKIT_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// loadSettingsConfig loads settings backend configuration from environment
func loadSettingsConfig() settings.Config {
	cfg := settings.DefaultConfig()

	if backend := getEnv("SCRAPEKIT_SETTINGS_BACKEND", ""); backend != "" {
		cfg.Type = backend
	}
	if filePath := getEnv("SCRAPEKIT_SETTINGS_FILE", ""); filePath != "" {
		cfg.FilePath = filePath
	}
	if watch := getEnv("SCRAPEKIT_SETTINGS_WATCH", ""); watch != "" {
		cfg.Watch = strings.ToLower(watch) == "true" || watch == "1"
	}
	if redisURL := getEnv("SCRAPEKIT_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("SCRAPEKIT_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("SCRAPEKIT_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if sqlitePath := getEnv("SCRAPEKIT_SQLITE_PATH", ""); sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("SCRAPEKIT_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("SCRAPEKIT_METRICS_ENABLED", true),
		HealthPort:     getEnv("SCRAPEKIT_HEALTH_PORT", "9090"),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Discovery.ProviderRoot == "" {
		return fmt.Errorf("provider root is required")
	}
	if c.Discovery.Parallelism < 1 {
		return fmt.Errorf("discovery parallelism must be at least 1, got %d", c.Discovery.Parallelism)
	}

	if c.Pool.Capacity < 1 {
		return fmt.Errorf("pool capacity must be at least 1, got %d", c.Pool.Capacity)
	}

	switch c.Settings.Type {
	case "", "memory":
	case "file":
		if c.Settings.FilePath == "" {
			return fmt.Errorf("settings file path is required for file backend")
		}
	case "redis":
		if c.Settings.RedisURL == "" {
			return fmt.Errorf("redis URL is required for redis backend")
		}
	case "sqlite":
		if c.Settings.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite backend")
		}
	default:
		return fmt.Errorf("invalid settings backend: %s (must be memory, file, redis, or sqlite)", c.Settings.Type)
	}

	if c.Observability.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
