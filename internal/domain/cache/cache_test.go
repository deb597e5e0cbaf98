package cache

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newKV(t *testing.T) store.KV {
	t.Helper()
	kv, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func sampleRecords() []types.ContentRecord {
	return []types.ContentRecord{
		{ID: "1", Address: "https://a.example/x", Template: "Generic", Title: "A"},
		{ID: "2", Address: "https://b.example/", Template: "News", Title: "B"},
	}
}

func TestGetEmptyAtStartup(t *testing.T) {
	c := New(newKV(t))
	assert.Empty(t, c.Get(context.Background()))
	assert.Equal(t, OutcomeMiss, c.Stats().LastOutcome)
}

func TestPutThenGetAndLookup(t *testing.T) {
	ctx := context.Background()
	c := New(newKV(t))

	require.NoError(t, c.Put(ctx, sampleRecords()))
	assert.Len(t, c.Get(ctx), 2)

	rec, ok := c.Lookup(ctx, "https://a.example/x")
	require.True(t, ok)
	assert.Equal(t, "1", rec.ID)

	// exact match only
	_, ok = c.Lookup(ctx, "https://a.example/")
	assert.False(t, ok)
	_, ok = c.Lookup(ctx, "https://a.example/x/")
	assert.False(t, ok)
}

func TestHydratesFromPersistedTier(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}

	writer := New(kv, WithClock(clock.Now))
	require.NoError(t, writer.Put(ctx, sampleRecords()))

	clock.Advance(59 * time.Minute)
	reader := New(kv, WithClock(clock.Now))
	assert.Len(t, reader.Get(ctx), 2)
	assert.Equal(t, OutcomeHit, reader.Stats().LastOutcome)
	assert.Equal(t, 2, reader.Stats().Records)
}

func TestExpiredPersistedTierIsPurged(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}

	require.NoError(t, New(kv, WithClock(clock.Now)).Put(ctx, sampleRecords()))

	clock.Advance(time.Hour)
	reader := New(kv, WithClock(clock.Now))
	assert.Empty(t, reader.Get(ctx))
	assert.Equal(t, OutcomeExpired, reader.Stats().LastOutcome)

	values, err := kv.Read(ctx, RecordsKey, FetchedAtKey)
	require.NoError(t, err)
	assert.Empty(t, values, "expired entries are deleted eagerly")
}

func TestCustomTTL(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}

	require.NoError(t, New(kv, WithClock(clock.Now)).Put(ctx, sampleRecords()))
	clock.Advance(2 * time.Minute)

	reader := New(kv, WithClock(clock.Now), WithTTL(time.Minute))
	assert.Empty(t, reader.Get(ctx))
}

func TestCorruptPersistedTierDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values map[string][]byte
	}{
		{
			name: "bad json",
			values: map[string][]byte{
				RecordsKey:   []byte("{not json"),
				FetchedAtKey: []byte("1700000000000"),
			},
		},
		{
			name: "bad timestamp",
			values: map[string][]byte{
				RecordsKey:   []byte("[]"),
				FetchedAtKey: []byte("yesterday"),
			},
		},
		{
			name: "missing timestamp",
			values: map[string][]byte{
				RecordsKey: []byte(`[{"id":"1","address":"https://a.example/x"}]`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := newKV(t)
			require.NoError(t, kv.Write(ctx, tt.values))

			c := New(kv)
			assert.NotPanics(t, func() {
				assert.Empty(t, c.Get(ctx))
			})
			assert.Equal(t, OutcomeCorrupt, c.Stats().LastOutcome)
			assert.Equal(t, 0, c.Stats().Records, "in-process tier never partially written")

			values, err := kv.Read(ctx, RecordsKey, FetchedAtKey)
			require.NoError(t, err)
			assert.Empty(t, values)
		})
	}
}

type failingKV struct {
	store.KV
}

func (failingKV) Read(context.Context, ...string) (map[string][]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingKV) Write(context.Context, map[string][]byte) error {
	return errors.New("disk on fire")
}

func TestReadFailureDegradesToEmpty(t *testing.T) {
	c := New(failingKV{})
	assert.Empty(t, c.Get(context.Background()))
	assert.Equal(t, OutcomeReadFail, c.Stats().LastOutcome)
}

func TestPutFailureLeavesMemoryUntouched(t *testing.T) {
	c := New(failingKV{})
	err := c.Put(context.Background(), sampleRecords())
	assert.Error(t, err)
	assert.Equal(t, 0, c.Stats().Records)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := New(newKV(t))
	require.NoError(t, c.Put(ctx, sampleRecords()))

	got := c.Get(ctx)
	got[0].Address = "mutated"

	_, ok := c.Lookup(ctx, "https://a.example/x")
	assert.True(t, ok)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	c := New(kv)
	require.NoError(t, c.Put(ctx, sampleRecords()))

	require.NoError(t, c.Purge(ctx))
	assert.Empty(t, c.Get(ctx))
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New(newKV(t), WithClock(clock.Now))

	info, err := c.Inspect(ctx)
	require.NoError(t, err)
	assert.False(t, info.Present)

	require.NoError(t, c.Put(ctx, sampleRecords()))
	clock.Advance(2 * time.Hour)

	info, err = c.Inspect(ctx)
	require.NoError(t, err)
	assert.True(t, info.Present)
	assert.Equal(t, 2, info.Records)
	assert.True(t, info.Expired)
	assert.Equal(t, int64(1_700_000_000_000), info.FetchedAt.UnixMilli())
}

func TestConcurrentGetHydratesOnce(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, New(kv).Put(ctx, sampleRecords()))

	c := New(kv)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, c.Get(ctx), 2)
		}()
	}
	wg.Wait()
}

func TestPersistedRecordsAreCompressed(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, New(kv).Put(ctx, sampleRecords()))

	values, err := kv.Read(ctx, RecordsKey)
	require.NoError(t, err)
	blob := values[RecordsKey]
	assert.True(t, bytes.HasPrefix(blob, zstdMagic))

	records, err := decodeRecords(blob)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)
}

func TestDecodeRecordsRejectsBrokenFrame(t *testing.T) {
	_, err := decodeRecords(append(append([]byte{}, zstdMagic...), 0x00, 0x01))
	assert.Error(t, err)
}
