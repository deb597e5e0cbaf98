package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Browser   BrowserConfig
	Cache     CacheConfig
	Search    SearchConfig
	Store     StoreConfig
	Seed      SeedConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// Allowed browser origins for the REST and websocket API
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// BrowserConfig holds simulated browser settings.
type BrowserConfig struct {
	SearchHost         string `envconfig:"BROWSER_SEARCH_HOST" default:"www.gogle.com"`
	ArchiveHost        string `envconfig:"BROWSER_ARCHIVE_HOST" default:"web.archiv.org"`
	Brand              string `envconfig:"BROWSER_BRAND" default:"Gogle"`
	TabCapacity        int    `envconfig:"BROWSER_TAB_CAPACITY" default:"10"`
	PageSize           int    `envconfig:"BROWSER_PAGE_SIZE" default:"10"`
	DefaultArchiveDate string `envconfig:"BROWSER_DEFAULT_ARCHIVE_DATE" default:"20240101"`
	// name=address entries; empty uses the built-in mail entry points
	SyntheticAddresses []string `envconfig:"BROWSER_SYNTHETIC_ADDRESSES"`
}

// Synthetic parses SyntheticAddresses into an address -> name table. Nil
// when none are configured.
func (b BrowserConfig) Synthetic() (map[string]string, error) {
	if len(b.SyntheticAddresses) == 0 {
		return nil, nil
	}
	table := make(map[string]string, len(b.SyntheticAddresses))
	for _, entry := range b.SyntheticAddresses {
		name, addr, ok := strings.Cut(entry, "=")
		name, addr = strings.TrimSpace(name), strings.TrimSpace(addr)
		if !ok || name == "" || addr == "" {
			return nil, fmt.Errorf("invalid synthetic address %q, want name=address", entry)
		}
		table[addr] = name
	}
	return table, nil
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// SearchConfig holds search suggestion tuning.
type SearchConfig struct {
	MinResults  int `envconfig:"SEARCH_MIN_RESULTS" default:"1"`
	MaxDistance int `envconfig:"SEARCH_MAX_DISTANCE" default:"2"`
}

// StoreConfig selects the persisted cache backend.
type StoreConfig struct {
	Backend  string `envconfig:"STORE_BACKEND" default:"badger"`
	Path     string `envconfig:"STORE_PATH" default:"./data/cache"`
	InMemory bool   `envconfig:"STORE_IN_MEMORY" default:"false"`
	// Consecutive store failures before reads and writes are skipped
	BreakerThreshold uint32        `envconfig:"STORE_BREAKER_THRESHOLD" default:"3"`
	BreakerCooldown  time.Duration `envconfig:"STORE_BREAKER_COOLDOWN" default:"30s"`
}

// SeedConfig points at the record file used when the cache is empty.
type SeedConfig struct {
	Path string `envconfig:"SEED_PATH"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Browser: BrowserConfig{
			SearchHost:         "www.gogle.com",
			ArchiveHost:        "web.archiv.org",
			Brand:              "Gogle",
			TabCapacity:        10,
			PageSize:           10,
			DefaultArchiveDate: "20240101",
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Search: SearchConfig{
			MinResults:  1,
			MaxDistance: 2,
		},
		Store: StoreConfig{
			Backend:          "badger",
			Path:             "./data/cache",
			BreakerThreshold: 3,
			BreakerCooldown:  30 * time.Second,
		},
	}
}
