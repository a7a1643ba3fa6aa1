// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Discovery settings:
//
//	SCRAPEKIT_PROVIDER_ROOT="providers"
//	SCRAPEKIT_CATEGORIES="torrents,hosters"
//	SCRAPEKIT_DISCOVERY_PARALLELISM="10"
//	SCRAPEKIT_DIAGNOSTICS="false"
//	SCRAPEKIT_FAIL_CLOSED="false"
//	SCRAPEKIT_REFRESH_SCHEDULE="@every 30m"
//
// Pool settings:
//
//	SCRAPEKIT_POOL_CAPACITY="40"
//	SCRAPEKIT_SHUTDOWN_TIMEOUT="30s"
//
// Settings backend:
//
//	SCRAPEKIT_SETTINGS_BACKEND="memory"  # memory, file, redis, sqlite
//	SCRAPEKIT_SETTINGS_FILE="/etc/scrapekit/settings.yaml"
//	SCRAPEKIT_SETTINGS_WATCH="true"
//	SCRAPEKIT_REDIS_URL="redis://localhost:6379"
//	SCRAPEKIT_SQLITE_PATH="/var/lib/scrapekit/settings.db"
//
// Observability settings:
//
//	SCRAPEKIT_LOG_LEVEL="info"  # debug, info, warn, error
//	SCRAPEKIT_METRICS_ENABLED="true"
//	SCRAPEKIT_HEALTH_PORT="9090"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Provider root: %s\n", cfg.Discovery.ProviderRoot)
//	fmt.Printf("Pool capacity: %d\n", cfg.Pool.Capacity)
//
// # Related Packages
//
//   - pkg/settings: Uses settings backend configuration
//   - pkg/observability: Uses observability configuration
package config
