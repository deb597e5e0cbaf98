package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/cache"
)

type fakeCache struct {
	purged bool
	info   cache.PersistedInfo
	err    error
}

func (f *fakeCache) Stats() cache.Stats {
	return cache.Stats{Records: 4, TTL: time.Hour, LastOutcome: cache.OutcomeHit}
}

func (f *fakeCache) Inspect(context.Context) (cache.PersistedInfo, error) {
	return f.info, f.err
}

func (f *fakeCache) Purge(context.Context) error {
	f.purged = true
	return f.err
}

type fakeSeeder struct{ path string }

func (f *fakeSeeder) Seed(_ context.Context, path string) (int, error) {
	f.path = path
	return 7, nil
}

func TestSystemInfo(t *testing.T) {
	system := NewSystem(nil, nil)

	result, err := system.Execute(context.Background(), "system.info", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotNil(t, result.Data["go_version"])
	assert.NotNil(t, result.Data["cpus"])
}

func TestSystemTimeAndPing(t *testing.T) {
	system := NewSystem(nil, nil)
	ctx := context.Background()

	result, err := system.Execute(ctx, "system.time", nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Data["iso"])

	result, err = system.Execute(ctx, "system.ping", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, true, result.Data["pong"])
}

func TestSystemCacheTools(t *testing.T) {
	fc := &fakeCache{info: cache.PersistedInfo{Present: true, Records: 4, FetchedAt: time.Unix(0, 0)}}
	seeder := &fakeSeeder{}
	system := NewSystem(fc, seeder)
	ctx := context.Background()

	result, _ := system.Execute(ctx, "system.cache_stats", nil, nil)
	require.True(t, result.Success)
	assert.Equal(t, 4, result.Data["records"])
	assert.Equal(t, float64(3600), result.Data["ttl_seconds"])

	result, _ = system.Execute(ctx, "system.cache_inspect", nil, nil)
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["present"])
	assert.Contains(t, result.Data, "fetched_at")

	result, _ = system.Execute(ctx, "system.cache_purge", nil, nil)
	assert.True(t, result.Success)
	assert.True(t, fc.purged)

	result, _ = system.Execute(ctx, "system.cache_seed", map[string]interface{}{"path": "/seed.yaml"}, nil)
	require.True(t, result.Success)
	assert.Equal(t, 7, result.Data["records"])
	assert.Equal(t, "/seed.yaml", seeder.path)
}

func TestSystemFailures(t *testing.T) {
	ctx := context.Background()

	broken := NewSystem(&fakeCache{err: errors.New("disk gone")}, nil)
	result, err := broken.Execute(ctx, "system.cache_inspect", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	result, _ = broken.Execute(ctx, "system.cache_seed", map[string]interface{}{"path": "x"}, nil)
	assert.False(t, result.Success)

	result, _ = broken.Execute(ctx, "system.cache_seed", nil, nil)
	assert.False(t, result.Success)

	result, _ = NewSystem(nil, nil).Execute(ctx, "system.cache_stats", nil, nil)
	assert.False(t, result.Success)

	result, _ = broken.Execute(ctx, "system.nope", nil, nil)
	assert.False(t, result.Success)
}
