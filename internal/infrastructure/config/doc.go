// Package config provides 12-factor configuration management.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Browser: simulated hosts, brand, tab capacity, paging, archive date
//   - Cache: persisted tier TTL
//   - Search: suggestion tuning
//   - Store: persisted tier backend (badger or sqlite)
//   - Seed: record file loaded when the persisted tier is empty
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - BROWSER_SEARCH_HOST, BROWSER_ARCHIVE_HOST, BROWSER_BRAND
//   - BROWSER_TAB_CAPACITY, BROWSER_PAGE_SIZE, BROWSER_DEFAULT_ARCHIVE_DATE
//   - BROWSER_SYNTHETIC_ADDRESSES (address:name pairs, comma separated)
//   - CACHE_TTL, SEARCH_MIN_RESULTS, SEARCH_MAX_DISTANCE
//   - STORE_BACKEND, STORE_PATH, STORE_IN_MEMORY, SEED_PATH
package config
