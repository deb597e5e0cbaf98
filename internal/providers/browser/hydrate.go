package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/resolver"
)

// Hydrate fills the cache from the persisted tier, falling back to the
// seed file, then reloads tabs whose page was resolved against the cache.
func (a *App) Hydrate(ctx context.Context) error {
	records := a.cache.Get(ctx)
	source := "persisted"

	if len(records) == 0 && a.seedPath != "" {
		seeded, err := a.seeds.LoadContext(ctx, a.seedPath)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		if err := a.cache.Put(ctx, seeded); err != nil {
			return fmt.Errorf("store seed: %w", err)
		}
		records = seeded
		source = "seed"
	}

	a.logger.Info("Cache hydrated",
		zap.String("source", source),
		zap.Int("records", len(records)),
	)
	a.events.publish(Event{Type: EventCacheHydrated, ActiveID: a.tabs.ActiveID(), Records: len(records)})

	if len(records) > 0 {
		a.reloadCacheDependent(ctx)
	}
	return nil
}

// StartHydration runs Hydrate in the background. The returned channel
// receives its result and is then closed.
func (a *App) StartHydration(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := a.Hydrate(ctx)
		if err != nil {
			a.logger.Error("Cache hydration failed", zap.Error(err))
		}
		done <- err
	}()
	return done
}

// cacheDependent lists the views whose outcome depends on cache contents
var cacheDependent = map[resolver.View]bool{
	resolver.ViewCacheUnavailable: true,
	resolver.ViewSearchResults:    true,
	resolver.ViewContent:          true,
	resolver.ViewArchiveSnapshot:  true,
	resolver.ViewNotArchived:      true,
	resolver.ViewPlaceholder:      true,
	resolver.ViewError:            true,
}

// reloadCacheDependent re-resolves tabs whose page came from an older cache.
// A navigation issued meanwhile bumps the tab sequence, so its page wins.
func (a *App) reloadCacheDependent(ctx context.Context) {
	for _, t := range a.tabs.Tabs() {
		if t.Page == nil || !cacheDependent[t.Page.View] {
			continue
		}
		a.load(ctx, t.ID, t.Seq, false)
	}
}

// Seed replaces the cache with the records at path
func (a *App) Seed(ctx context.Context, path string) (int, error) {
	records, err := a.seeds.LoadContext(ctx, path)
	if err != nil {
		return 0, err
	}
	if err := a.cache.Put(ctx, records); err != nil {
		return 0, err
	}
	a.reloadCacheDependent(ctx)
	return len(records), nil
}
