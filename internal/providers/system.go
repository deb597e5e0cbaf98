package providers

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/cache"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// CacheControl is the cache surface the system service manages
type CacheControl interface {
	Stats() cache.Stats
	Inspect(ctx context.Context) (cache.PersistedInfo, error)
	Purge(ctx context.Context) error
}

// Seeder replaces cache contents from a seed file
type Seeder interface {
	Seed(ctx context.Context, path string) (int, error)
}

// System provides runtime information and cache maintenance
type System struct {
	startTime time.Time
	cache     CacheControl
	seeder    Seeder
}

// NewSystem creates a system provider
func NewSystem(cache CacheControl, seeder Seeder) *System {
	return &System{
		startTime: time.Now(),
		cache:     cache,
		seeder:    seeder,
	}
}

// Definition returns service metadata
func (s *System) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "Runtime information and result cache maintenance",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"info",
			"cache",
			"seed",
		},
		Tools: []types.Tool{
			{
				ID:          "system.info",
				Name:        "System Info",
				Description: "Get runtime information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.time",
				Name:        "Current Time",
				Description: "Get current server time",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.ping",
				Name:        "Ping",
				Description: "Test service availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.cache_stats",
				Name:        "Cache Stats",
				Description: "Report the in-process result cache",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.cache_inspect",
				Name:        "Inspect Cache",
				Description: "Report the persisted cache tier",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.cache_purge",
				Name:        "Purge Cache",
				Description: "Empty both cache tiers",
				Parameters:  []types.Parameter{},
				Returns:     "boolean",
			},
			{
				ID:          "system.cache_seed",
				Name:        "Seed Cache",
				Description: "Replace cache contents from a seed file, directory, glob or URL",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Seed file, directory, glob or http(s) URL", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a system operation
func (s *System) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.info":
		return s.info()
	case "system.time":
		return s.currentTime()
	case "system.ping":
		return s.ping()
	case "system.cache_stats":
		return s.cacheStats()
	case "system.cache_inspect":
		return s.cacheInspect(ctx)
	case "system.cache_purge":
		return s.cachePurge(ctx)
	case "system.cache_seed":
		return s.cacheSeed(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *System) info() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return success(map[string]interface{}{
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024, // MB
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}

func (s *System) currentTime() (*types.Result, error) {
	now := time.Now()
	return success(map[string]interface{}{
		"timestamp": now.Unix(),
		"iso":       now.Format(time.RFC3339),
		"unix_ms":   now.UnixMilli(),
	})
}

func (s *System) ping() (*types.Result, error) {
	return success(map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	})
}

func (s *System) cacheStats() (*types.Result, error) {
	if s.cache == nil {
		return failure("cache not configured")
	}
	stats := s.cache.Stats()
	return success(map[string]interface{}{
		"records":      stats.Records,
		"ttl_seconds":  stats.TTL.Seconds(),
		"last_outcome": stats.LastOutcome,
	})
}

func (s *System) cacheInspect(ctx context.Context) (*types.Result, error) {
	if s.cache == nil {
		return failure("cache not configured")
	}
	info, err := s.cache.Inspect(ctx)
	if err != nil {
		return failure(fmt.Sprintf("inspect failed: %v", err))
	}
	data := map[string]interface{}{
		"present": info.Present,
		"records": info.Records,
		"expired": info.Expired,
	}
	if info.Present {
		data["fetched_at"] = info.FetchedAt.Format(time.RFC3339)
	}
	return success(data)
}

func (s *System) cachePurge(ctx context.Context) (*types.Result, error) {
	if s.cache == nil {
		return failure("cache not configured")
	}
	if err := s.cache.Purge(ctx); err != nil {
		return failure(fmt.Sprintf("purge failed: %v", err))
	}
	return success(map[string]interface{}{"purged": true})
}

func (s *System) cacheSeed(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path required")
	}
	if s.seeder == nil {
		return failure("seeding not configured")
	}
	n, err := s.seeder.Seed(ctx, path)
	if err != nil {
		return failure(fmt.Sprintf("seed failed: %v", err))
	}
	return success(map[string]interface{}{"records": n, "path": path})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	return &types.Result{Success: false, Error: &message}, nil
}
