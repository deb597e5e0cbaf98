package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/monitoring"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

const (
	// DefaultTTL is how long the persisted tier stays valid
	DefaultTTL = time.Hour

	// Persisted slot keys
	RecordsKey   = "browser.cache.records"
	FetchedAtKey = "browser.cache.fetched_at"
)

// Hydration outcomes
const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeExpired  = "expired"
	OutcomeCorrupt  = "corrupt"
	OutcomeReadFail = "read_error"
)

var errCorrupt = errors.New("persisted cache is corrupt")

// Cache is the shared two-tier record cache
type Cache struct {
	mu      sync.RWMutex
	records []types.ContentRecord // in-process tier; nil until hydrated

	kv      store.KV
	ttl     time.Duration
	now     func() time.Time
	logger  *logging.Logger
	metrics *monitoring.Metrics

	group       singleflight.Group
	lastOutcome string
}

// Option configures a Cache
type Option func(*Cache)

// WithTTL sets the persisted tier TTL
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithMetrics adds metrics tracking
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(c *Cache) { c.metrics = metrics }
}

// New creates a cache over the persisted slot kv
func New(kv store.KV, opts ...Option) *Cache {
	c := &Cache{
		kv:     kv,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns all cached records, hydrating from the persisted tier on
// first use. An empty result means the cache is unavailable.
func (c *Cache) Get(ctx context.Context) []types.ContentRecord {
	if records := c.memory(); len(records) > 0 {
		return records
	}

	_, _, _ = c.group.Do("hydrate", func() (interface{}, error) {
		// another caller may have finished hydrating while we waited
		if c.hasMemory() {
			return nil, nil
		}
		c.hydrate(ctx)
		return nil, nil
	})
	return c.memory()
}

// Lookup finds the record stored under exactly address
func (c *Cache) Lookup(ctx context.Context, address string) (types.ContentRecord, bool) {
	for _, rec := range c.Get(ctx) {
		if rec.Address == address {
			c.metrics.RecordCacheLookup(true)
			return rec, true
		}
	}
	c.metrics.RecordCacheLookup(false)
	return types.ContentRecord{}, false
}

// Put replaces both tiers with records and refreshes the fetch time
func (c *Cache) Put(ctx context.Context, records []types.ContentRecord) error {
	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("failed to serialize records: %w", err)
	}

	fetchedAt := c.now()
	if c.kv != nil {
		err = c.kv.Write(ctx, map[string][]byte{
			RecordsKey:   data,
			FetchedAtKey: []byte(strconv.FormatInt(fetchedAt.UnixMilli(), 10)),
		})
		if err != nil {
			return fmt.Errorf("failed to persist records: %w", err)
		}
	}

	c.setMemory(records)
	c.logger.Info("Result cache replaced",
		zap.Int("records", len(records)),
		zap.Time("fetched_at", fetchedAt),
	)
	return nil
}

// Purge empties both tiers
func (c *Cache) Purge(ctx context.Context) error {
	c.setMemory(nil)
	return c.purgePersisted(ctx)
}

// Stats describes the cache for health endpoints
type Stats struct {
	Records     int           `json:"records"`
	TTL         time.Duration `json:"ttl"`
	LastOutcome string        `json:"last_outcome,omitempty"`
}

// Stats returns current cache statistics
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Records:     len(c.records),
		TTL:         c.ttl,
		LastOutcome: c.lastOutcome,
	}
}

// PersistedInfo reports what the persisted tier currently holds without
// touching the in-process tier.
type PersistedInfo struct {
	Present   bool
	Records   int
	FetchedAt time.Time
	Expired   bool
}

// Inspect reads the persisted tier. Corrupt data is reported as an error.
func (c *Cache) Inspect(ctx context.Context) (PersistedInfo, error) {
	records, fetchedAt, ok, err := c.readPersisted(ctx)
	if err != nil || !ok {
		return PersistedInfo{}, err
	}
	return PersistedInfo{
		Present:   true,
		Records:   len(records),
		FetchedAt: fetchedAt,
		Expired:   c.now().Sub(fetchedAt) >= c.ttl,
	}, nil
}

func (c *Cache) hydrate(ctx context.Context) {
	records, fetchedAt, ok, err := c.readPersisted(ctx)
	switch {
	case errors.Is(err, errCorrupt):
		c.logger.Warn("Persisted cache corrupt, purging", zap.Error(err))
		c.finishHydration(OutcomeCorrupt, nil)
		_ = c.purgePersisted(ctx)
		return
	case err != nil:
		c.logger.Warn("Persisted cache unreadable", zap.Error(err))
		c.finishHydration(OutcomeReadFail, nil)
		return
	case !ok || len(records) == 0:
		c.finishHydration(OutcomeMiss, nil)
		return
	}

	if age := c.now().Sub(fetchedAt); age >= c.ttl {
		c.logger.Info("Persisted cache expired, purging",
			zap.Duration("age", age),
			zap.Duration("ttl", c.ttl),
		)
		c.finishHydration(OutcomeExpired, nil)
		_ = c.purgePersisted(ctx)
		return
	}

	c.finishHydration(OutcomeHit, records)
	c.logger.Debug("Result cache hydrated", zap.Int("records", len(records)))
}

// readPersisted returns ok=false when nothing is stored
func (c *Cache) readPersisted(ctx context.Context) ([]types.ContentRecord, time.Time, bool, error) {
	if c.kv == nil {
		return nil, time.Time{}, false, nil
	}

	values, err := c.kv.Read(ctx, RecordsKey, FetchedAtKey)
	if err != nil {
		return nil, time.Time{}, false, err
	}

	data, hasRecords := values[RecordsKey]
	stamp, hasStamp := values[FetchedAtKey]
	if !hasRecords && !hasStamp {
		return nil, time.Time{}, false, nil
	}
	if !hasRecords || !hasStamp {
		return nil, time.Time{}, false, fmt.Errorf("%w: partial slot", errCorrupt)
	}

	ms, err := strconv.ParseInt(string(stamp), 10, 64)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("%w: fetched_at: %v", errCorrupt, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("%w: records: %v", errCorrupt, err)
	}
	return records, time.UnixMilli(ms), true, nil
}

func (c *Cache) purgePersisted(ctx context.Context) error {
	if c.kv == nil {
		return nil
	}
	if err := c.kv.Delete(ctx, RecordsKey, FetchedAtKey); err != nil {
		c.logger.Warn("Failed to purge persisted cache", zap.Error(err))
		return fmt.Errorf("failed to purge persisted cache: %w", err)
	}
	return nil
}

func (c *Cache) finishHydration(outcome string, records []types.ContentRecord) {
	c.metrics.RecordHydration(outcome)
	c.mu.Lock()
	c.lastOutcome = outcome
	c.mu.Unlock()
	if records != nil {
		c.setMemory(records)
	}
}

func (c *Cache) hasMemory() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records) > 0
}

// memory returns a copy of the in-process tier
func (c *Cache) memory() []types.ContentRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.records) == 0 {
		return nil
	}
	out := make([]types.ContentRecord, len(c.records))
	copy(out, c.records)
	return out
}

// setMemory swaps the whole in-process tier at once
func (c *Cache) setMemory(records []types.ContentRecord) {
	var next []types.ContentRecord
	if len(records) > 0 {
		next = make([]types.ContentRecord, len(records))
		copy(next, records)
	}

	c.mu.Lock()
	c.records = next
	c.mu.Unlock()
	c.metrics.SetCacheRecords(len(next))
}
