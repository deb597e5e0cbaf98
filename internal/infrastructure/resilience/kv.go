package resilience

import (
	"context"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
)

// GuardedKV routes store calls through a breaker so a failing persisted
// tier is skipped quickly instead of on every request.
type GuardedKV struct {
	kv      store.KV
	breaker *Breaker
}

// GuardKV wraps kv
func GuardKV(kv store.KV, breaker *Breaker) *GuardedKV {
	return &GuardedKV{kv: kv, breaker: breaker}
}

// Breaker returns the breaker guarding the store
func (g *GuardedKV) Breaker() *Breaker { return g.breaker }

// Read implements store.KV
func (g *GuardedKV) Read(ctx context.Context, keys ...string) (map[string][]byte, error) {
	var out map[string][]byte
	err := g.breaker.Do(func() error {
		var err error
		out, err = g.kv.Read(ctx, keys...)
		return err
	})
	return out, err
}

// Write implements store.KV
func (g *GuardedKV) Write(ctx context.Context, values map[string][]byte) error {
	return g.breaker.Do(func() error { return g.kv.Write(ctx, values) })
}

// Delete implements store.KV
func (g *GuardedKV) Delete(ctx context.Context, keys ...string) error {
	return g.breaker.Do(func() error { return g.kv.Delete(ctx, keys...) })
}

// Close implements store.KV. It bypasses the breaker.
func (g *GuardedKV) Close() error {
	return g.kv.Close()
}
