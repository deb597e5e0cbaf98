package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/archive"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/cache"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/render"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/resolver"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/search"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/seed"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/tabs"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/monitoring"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
)

// ErrEmptyQuery is returned by Search for blank queries
var ErrEmptyQuery = errors.New("query is required")

// Config holds browser settings
type Config struct {
	SearchHost         string
	ArchiveHost        string
	Brand              string
	TabCapacity        int
	PageSize           int
	DefaultArchiveDate string
	// Synthetic maps always-available addresses to entry names. Nil uses
	// the built-in mail entry points.
	Synthetic   map[string]string
	CacheTTL    time.Duration
	MinResults  int
	MaxDistance int
	SeedPath    string
}

// DefaultConfig returns the standard browser settings
func DefaultConfig() Config {
	return Config{
		SearchHost:         address.DefaultSearchHost,
		ArchiveHost:        address.DefaultArchiveHost,
		Brand:              tabs.DefaultBrand,
		TabCapacity:        tabs.DefaultCapacity,
		PageSize:           search.DefaultPageSize,
		DefaultArchiveDate: archive.DefaultDate,
		CacheTTL:           cache.DefaultTTL,
		MinResults:         search.DefaultMinResults,
		MaxDistance:        search.DefaultMaxDistance,
	}
}

// Deps are the App's collaborators
type Deps struct {
	Store     store.KV
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Renderers *render.Registry
}

// App is one browser instance
type App struct {
	codec    *address.Codec
	cache    *cache.Cache
	resolver *resolver.Resolver
	tabs     *tabs.Registry
	viewer   *archive.Viewer
	seeds    *seed.Loader
	seedPath string

	events  *broker
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewApp creates a browser with one tab open at the search home
func NewApp(cfg Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("browser")

	codec := address.NewCodec(cfg.SearchHost, cfg.ArchiveHost)
	c := cache.New(deps.Store,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithLogger(logger.Named("cache")),
		cache.WithMetrics(deps.Metrics),
	)

	synthetic := cfg.Synthetic
	if synthetic == nil {
		synthetic = resolver.DefaultSynthetic(codec.SearchHost())
	}

	a := &App{
		codec: codec,
		cache: c,
		resolver: resolver.New(resolver.Config{
			Codec:     codec,
			Source:    c,
			Engine:    search.NewEngine(search.Config{MinResults: cfg.MinResults, MaxDistance: cfg.MaxDistance}),
			Renderers: deps.Renderers,
			Synthetic: synthetic,
			Logger:    logger.Named("resolver"),
			Metrics:   deps.Metrics,
		}),
		tabs: tabs.NewRegistry(tabs.Options{
			Capacity: cfg.TabCapacity,
			PageSize: cfg.PageSize,
			Codec:    codec,
			Brand:    cfg.Brand,
		}),
		seeds:    seed.NewLoader(logger.Named("seed")),
		seedPath: cfg.SeedPath,
		events:   newBroker(),
		logger:   logger,
		metrics:  deps.Metrics,
	}
	a.viewer = archive.NewViewer(codec, c, archive.Options{
		DefaultDate: cfg.DefaultArchiveDate,
		Navigate:    a.navigateFromViewer,
		Logger:      logger.Named("archive"),
	})

	first := a.tabs.Active()
	a.load(context.Background(), first.ID, first.Seq, false)
	a.metrics.SetTabsOpen(a.tabs.Len())
	return a
}

// Codec returns the address codec
func (a *App) Codec() *address.Codec { return a.codec }

// Cache returns the shared result cache
func (a *App) Cache() *cache.Cache { return a.cache }

// Tabs returns all tabs in display order
func (a *App) Tabs() []tabs.Tab { return a.tabs.Tabs() }

// Active returns the active tab
func (a *App) Active() tabs.Tab { return a.tabs.Active() }

// Capacity returns the tab limit
func (a *App) Capacity() int { return a.tabs.Capacity() }

// Tab returns a tab by id
func (a *App) Tab(id string) (tabs.Tab, error) {
	t, ok := a.tabs.Get(id)
	if !ok {
		return tabs.Tab{}, fmt.Errorf("%w: %s", tabs.ErrTabNotFound, id)
	}
	return t, nil
}

// NewTab opens a tab at the search home. ok is false at capacity.
func (a *App) NewTab(ctx context.Context) (tabs.Tab, bool) {
	t, ok := a.tabs.AddTab()
	if !ok {
		a.logger.Debug("Tab capacity reached", zap.Int("capacity", a.tabs.Capacity()))
		return tabs.Tab{}, false
	}
	a.metrics.SetTabsOpen(a.tabs.Len())
	a.publish(EventTabOpened, t)
	return a.load(ctx, t.ID, t.Seq, false), true
}

// CloseTab closes a tab. Closing the last tab does nothing.
func (a *App) CloseTab(_ context.Context, id string) (bool, error) {
	closed, err := a.tabs.CloseTab(id)
	if err != nil || !closed {
		return false, err
	}
	a.metrics.SetTabsOpen(a.tabs.Len())
	a.events.publish(Event{Type: EventTabClosed, TabID: id, ActiveID: a.tabs.ActiveID()})
	return true, nil
}

// SwitchTab activates a tab
func (a *App) SwitchTab(_ context.Context, id string) (tabs.Tab, error) {
	t, err := a.tabs.SwitchTab(id)
	if err != nil {
		return tabs.Tab{}, err
	}
	a.publish(EventTabActivated, t)
	return t, nil
}

// SetCapacity changes the tab limit and returns the value in effect
func (a *App) SetCapacity(_ context.Context, n int) int {
	n = a.tabs.SetCapacity(n)
	a.events.publish(Event{Type: EventCapacityChanged, ActiveID: a.tabs.ActiveID(), Capacity: n})
	return n
}

// Navigate opens raw in tab id. An empty id means the active tab.
func (a *App) Navigate(ctx context.Context, id, raw string) (tabs.Tab, error) {
	return a.navigate(ctx, id, raw, false)
}

// Search runs query in tab id. skipSuggestion is set when the user
// clicked a suggested query.
func (a *App) Search(ctx context.Context, id, query string, skipSuggestion bool) (tabs.Tab, error) {
	if strings.TrimSpace(query) == "" {
		return tabs.Tab{}, ErrEmptyQuery
	}
	return a.navigate(ctx, id, a.codec.EncodeSearchAddress(query), skipSuggestion)
}

// Back moves tab id one entry back
func (a *App) Back(ctx context.Context, id string) (tabs.Tab, error) {
	return a.move(ctx, id, tabs.Back{})
}

// Forward moves tab id one entry forward
func (a *App) Forward(ctx context.Context, id string) (tabs.Tab, error) {
	return a.move(ctx, id, tabs.Forward{})
}

// SetPage selects a search results page
func (a *App) SetPage(_ context.Context, id string, page int) (tabs.Tab, error) {
	return a.dispatch(id, tabs.SetSearchPage{Page: page})
}

// SetAddressText updates the address bar text without navigating
func (a *App) SetAddressText(_ context.Context, id, text string) (tabs.Tab, error) {
	return a.dispatch(id, tabs.SetAddressText{Text: text})
}

// Resolve resolves raw without touching any tab
func (a *App) Resolve(ctx context.Context, raw string) resolver.Page {
	return a.resolver.Resolve(ctx, resolver.Request{Address: raw})
}

// ArchiveView describes the archive page for raw
func (a *App) ArchiveView(ctx context.Context, raw string) archive.State {
	return a.viewer.View(ctx, raw)
}

// ArchiveSubmit looks input up in the archive and opens the snapshot in tab id
func (a *App) ArchiveSubmit(ctx context.Context, id, input string) (tabs.Tab, error) {
	id = a.tabID(id)
	if _, err := a.viewer.Submit(withTab(ctx, id), input); err != nil {
		return tabs.Tab{}, err
	}
	return a.Tab(id)
}

// ArchiveHome opens the archive front page in tab id
func (a *App) ArchiveHome(ctx context.Context, id string) (tabs.Tab, error) {
	id = a.tabID(id)
	if _, err := a.viewer.Home(withTab(ctx, id)); err != nil {
		return tabs.Tab{}, err
	}
	return a.Tab(id)
}

func (a *App) navigateFromViewer(ctx context.Context, target string) error {
	_, err := a.navigate(ctx, tabFromContext(ctx), target, false)
	return err
}

func (a *App) navigate(ctx context.Context, id, raw string, skip bool) (tabs.Tab, error) {
	id = a.tabID(id)
	parsed := a.codec.Parse(raw)
	if parsed.Location.Address() == "" {
		return a.SetAddressText(ctx, id, "")
	}

	t, err := a.tabs.Dispatch(id, tabs.Navigate{Location: parsed.Location, Query: parsed.Query})
	if err != nil {
		return tabs.Tab{}, err
	}
	return a.load(ctx, id, t.Seq, skip), nil
}

func (a *App) move(ctx context.Context, id string, action tabs.Action) (tabs.Tab, error) {
	id = a.tabID(id)
	before, ok := a.tabs.Get(id)
	if !ok {
		return tabs.Tab{}, fmt.Errorf("%w: %s", tabs.ErrTabNotFound, id)
	}
	t, err := a.tabs.Dispatch(id, action)
	if err != nil {
		return tabs.Tab{}, err
	}
	if t.Seq == before.Seq {
		return t, nil
	}
	return a.load(ctx, id, t.Seq, false), nil
}

func (a *App) dispatch(id string, action tabs.Action) (tabs.Tab, error) {
	t, err := a.tabs.Dispatch(a.tabID(id), action)
	if err != nil {
		return tabs.Tab{}, err
	}
	a.publish(EventTabUpdated, t)
	return t, nil
}

// load resolves the tab's current location for request seq and applies
// the page unless the tab has moved on.
func (a *App) load(ctx context.Context, id string, seq uint64, skip bool) tabs.Tab {
	t, ok := a.tabs.Get(id)
	if !ok {
		return tabs.Tab{}
	}
	page := a.resolver.Resolve(ctx, resolver.Request{
		Address:        t.Location.Address(),
		SkipSuggestion: skip,
	})

	t, err := a.tabs.Dispatch(id, tabs.ApplyPage{Seq: seq, Page: page})
	switch {
	case errors.Is(err, tabs.ErrStaleRequest):
		a.metrics.IncStaleResults()
		a.logger.Debug("Dropped stale page",
			zap.String("tab_id", id),
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", t.Seq),
			zap.String("address", page.Address),
		)
		return t
	case err != nil:
		// tab closed while resolving
		a.logger.Debug("Discarded page for closed tab", zap.String("tab_id", id))
		return tabs.Tab{}
	}

	a.publish(EventTabUpdated, t)
	return t
}

func (a *App) tabID(id string) string {
	if id == "" {
		return a.tabs.ActiveID()
	}
	return id
}

func (a *App) publish(typ EventType, t tabs.Tab) {
	a.events.publish(Event{Type: typ, TabID: t.ID, ActiveID: a.tabs.ActiveID(), Tab: &t})
}

type tabKey struct{}

func withTab(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tabKey{}, id)
}

func tabFromContext(ctx context.Context) string {
	id, _ := ctx.Value(tabKey{}).(string)
	return id
}
