package browser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/resolver"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

const seedYAML = `
records:
  - address: https://a.example/x
    template: Generic
    title: Alpha page
    keywords: [alpha]
    archivedDate: "2024-03-15"
  - address: https://facelook.example/john
    template: Social
    title: John on Facelook
    keywords: [facelook, john]
  - address: https://gone.example/
    template: Blog
    title: Gone blog
    domainStatus: expired
`

func newKV(t *testing.T) store.KV {
	t.Helper()
	kv, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func newApp(t *testing.T, mutate func(*Config)) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TabCapacity = 3
	if mutate != nil {
		mutate(&cfg)
	}
	return NewApp(cfg, Deps{Store: newKV(t)})
}

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))
	return path
}

func seededApp(t *testing.T) *App {
	t.Helper()
	app := newApp(t, func(c *Config) { c.SeedPath = writeSeed(t) })
	require.NoError(t, app.Hydrate(context.Background()))
	return app
}

func TestNewAppStartsAtHome(t *testing.T) {
	app := newApp(t, nil)

	tabs := app.Tabs()
	require.Len(t, tabs, 1)
	require.NotNil(t, tabs[0].Page)
	assert.Equal(t, resolver.ViewHome, tabs[0].Page.View)
	assert.Equal(t, "Gogle", tabs[0].Title)
}

func TestNavigateContentAndPlaceholder(t *testing.T) {
	app := seededApp(t)
	ctx := context.Background()

	tab, err := app.Navigate(ctx, "", "https://a.example/x")
	require.NoError(t, err)
	require.NotNil(t, tab.Page)
	assert.Equal(t, resolver.ViewContent, tab.Page.View)
	assert.Equal(t, "a.example", tab.Title)

	tab, err = app.Navigate(ctx, tab.ID, "a.example/y")
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewPlaceholder, tab.Page.View)

	tab, err = app.Navigate(ctx, tab.ID, "https://gone.example/")
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewError, tab.Page.View)
}

func TestSearchBeforeHydrationThenReload(t *testing.T) {
	app := newApp(t, func(c *Config) { c.SeedPath = writeSeed(t) })
	ctx := context.Background()

	tab, err := app.Search(ctx, "", "alpha", false)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewCacheUnavailable, tab.Page.View)

	done := app.StartHydration(ctx)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hydration did not finish")
	}

	tab, err = app.Tab(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewSearchResults, tab.Page.View)
	assert.Len(t, tab.Search.Results, 1)
}

func TestNavigateBeforeHydrationThenReload(t *testing.T) {
	app := newApp(t, func(c *Config) { c.SeedPath = writeSeed(t) })
	ctx := context.Background()

	page, err := app.Navigate(ctx, "", "https://a.example/x")
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewPlaceholder, page.Page.View)

	second, ok := app.NewTab(ctx)
	require.True(t, ok)
	snapshot, err := app.Navigate(ctx, second.ID, "https://web.archiv.org/web/20240101/https://a.example/x")
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewNotArchived, snapshot.Page.View)

	home, ok := app.NewTab(ctx)
	require.True(t, ok)

	select {
	case err := <-app.StartHydration(ctx):
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hydration did not finish")
	}

	page, err = app.Tab(page.ID)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewContent, page.Page.View)
	require.NotNil(t, page.Page.Record)
	assert.Equal(t, "Alpha page", page.Page.Record.Title)

	snapshot, err = app.Tab(snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewArchiveSnapshot, snapshot.Page.View)

	again, err := app.Tab(home.ID)
	require.NoError(t, err)
	assert.Equal(t, home.Seq, again.Seq)
	assert.Equal(t, resolver.ViewHome, again.Page.View)
}

func TestSearchSuggestion(t *testing.T) {
	app := seededApp(t)
	ctx := context.Background()

	tab, err := app.Search(ctx, "", "faceloko", false)
	require.NoError(t, err)
	require.NotNil(t, tab.Search.Suggestion)
	assert.Equal(t, "facelook", tab.Search.Suggestion.Suggested)

	tab, err = app.Search(ctx, tab.ID, tab.Search.Suggestion.Suggested, true)
	require.NoError(t, err)
	assert.Nil(t, tab.Search.Suggestion)
	assert.Len(t, tab.Search.Results, 1)

	_, err = app.Search(ctx, tab.ID, "   ", false)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestBackForwardReResolves(t *testing.T) {
	app := seededApp(t)
	ctx := context.Background()

	tab, _ := app.Navigate(ctx, "", "https://a.example/x")
	tab, _ = app.Navigate(ctx, tab.ID, "https://a.example/y")

	tab, err := app.Back(ctx, tab.ID)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewContent, tab.Page.View)
	assert.Equal(t, "https://a.example/x", tab.AddressText)

	tab, err = app.Forward(ctx, tab.ID)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewPlaceholder, tab.Page.View)

	// at the end nothing changes
	again, err := app.Forward(ctx, tab.ID)
	require.NoError(t, err)
	assert.Equal(t, tab.Seq, again.Seq)
}

func TestTabLifecycle(t *testing.T) {
	app := newApp(t, nil)
	ctx := context.Background()
	first := app.Active().ID

	second, ok := app.NewTab(ctx)
	require.True(t, ok)
	require.NotNil(t, second.Page)
	assert.Equal(t, resolver.ViewHome, second.Page.View)

	app.NewTab(ctx)
	_, ok = app.NewTab(ctx)
	assert.False(t, ok)
	assert.Len(t, app.Tabs(), 3)

	_, err := app.SwitchTab(ctx, first)
	require.NoError(t, err)
	closed, err := app.CloseTab(ctx, first)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, second.ID, app.Active().ID)

	assert.Equal(t, 1, app.SetCapacity(ctx, -4))
	assert.Equal(t, 1, app.Capacity())
}

func TestArchiveSubmitOpensSnapshot(t *testing.T) {
	app := seededApp(t)
	ctx := context.Background()

	tab, err := app.ArchiveSubmit(ctx, "", "https://a.example/x")
	require.NoError(t, err)
	assert.Equal(t, "https://web.archiv.org/web/20240315/https://a.example/x", tab.AddressText)
	require.NotNil(t, tab.Page)
	assert.Equal(t, resolver.ViewArchiveSnapshot, tab.Page.View)
	assert.Equal(t, "2024-03-15", tab.Page.BannerDate)
	assert.Equal(t, address.KindArchiveSnapshot, tab.Location.Kind())

	tab, err = app.ArchiveHome(ctx, tab.ID)
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewArchiveHome, tab.Page.View)

	state := app.ArchiveView(ctx, "https://web.archiv.org/web/20240101/https://missing.example/")
	assert.False(t, state.Found)
}

func TestHydrateFromPersistedTier(t *testing.T) {
	kv := newKV(t)
	ctx := context.Background()

	writer := NewApp(DefaultConfig(), Deps{Store: kv})
	require.NoError(t, writer.Cache().Put(ctx, []types.ContentRecord{
		{Address: "https://p.example/", Template: "Wiki", Title: "Persisted"},
	}))

	reader := NewApp(DefaultConfig(), Deps{Store: kv})
	require.NoError(t, reader.Hydrate(ctx))
	tab, err := reader.Navigate(ctx, "", "https://p.example/")
	require.NoError(t, err)
	assert.Equal(t, resolver.ViewContent, tab.Page.View)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	app := newApp(t, nil)
	events, cancel := app.Subscribe(16)
	defer cancel()

	_, ok := app.NewTab(context.Background())
	require.True(t, ok)

	var got []EventType
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e.Type)
		case <-time.After(time.Second):
			t.Fatal("no event")
		}
	}
	assert.Equal(t, []EventType{EventTabOpened, EventTabUpdated}, got)

	cancel()
	_, open := <-events
	assert.False(t, open)
}

func TestSetPageAndAddressText(t *testing.T) {
	app := seededApp(t)
	ctx := context.Background()

	tab, err := app.SetAddressText(ctx, "", "draft")
	require.NoError(t, err)
	assert.Equal(t, "draft", tab.AddressText)

	tab, _ = app.Search(ctx, tab.ID, "john", false)
	tab, err = app.SetPage(ctx, tab.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Search.Page)

	_, err = app.SetPage(ctx, "missing", 1)
	assert.Error(t, err)
}
