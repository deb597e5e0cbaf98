package resolver

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/render"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/search"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/monitoring"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// Source is the read side of the result cache
type Source interface {
	Get(ctx context.Context) []types.ContentRecord
	Lookup(ctx context.Context, address string) (types.ContentRecord, bool)
}

// Request is one navigation to resolve
type Request struct {
	Address        string
	SkipSuggestion bool
}

// Config wires a Resolver
type Config struct {
	Codec     *address.Codec
	Source    Source
	Engine    *search.Engine
	Renderers *render.Registry
	// Synthetic maps always-available addresses to their entry names
	Synthetic map[string]string
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
}

// DefaultSynthetic returns the built-in mail entry points for searchHost
func DefaultSynthetic(searchHost string) map[string]string {
	mailHost := "mail." + strings.TrimPrefix(searchHost, "www.")
	return map[string]string{
		"https://" + mailHost + "/":      "mail",
		"https://" + mailHost + "/inbox": "mail.inbox",
		"https://" + mailHost + "/login": "mail.login",
	}
}

// stage claims an external address by filling in the page and returning true
type stage struct {
	name   string
	handle func(ctx context.Context, p *Page) bool
}

// Resolver classifies addresses and looks up their content
type Resolver struct {
	codec     *address.Codec
	source    Source
	engine    *search.Engine
	renderers *render.Registry
	synthetic map[string]string
	stages    []stage
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// New creates a resolver
func New(cfg Config) *Resolver {
	r := &Resolver{
		codec:     cfg.Codec,
		source:    cfg.Source,
		engine:    cfg.Engine,
		renderers: cfg.Renderers,
		synthetic: make(map[string]string, len(cfg.Synthetic)),
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if r.codec == nil {
		r.codec = address.NewCodec("", "")
	}
	if r.engine == nil {
		r.engine = search.NewEngine(search.DefaultConfig())
	}
	if r.renderers == nil {
		r.renderers = render.DefaultRegistry()
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	for addr, name := range cfg.Synthetic {
		r.synthetic[syntheticKey(addr)] = name
	}

	// order matters: see package doc
	r.stages = []stage{
		{name: "synthetic", handle: r.resolveSynthetic},
		{name: "cache", handle: r.resolveCached},
		{name: "pattern", handle: r.resolvePattern},
		{name: "invalid", handle: r.resolveInvalid},
		{name: "placeholder", handle: r.resolvePlaceholder},
	}
	return r
}

// Codec returns the codec used for classification
func (r *Resolver) Codec() *address.Codec { return r.codec }

// StageNames returns the external-address stages in evaluation order
func (r *Resolver) StageNames() []string {
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.name
	}
	return names
}

// Resolve classifies req.Address and produces the page to show
func (r *Resolver) Resolve(ctx context.Context, req Request) Page {
	start := time.Now()
	parsed := r.codec.Parse(req.Address)
	page := newPage(parsed.Location)

	switch parsed.Location.Kind() {
	case address.KindHome:
		page.View = ViewHome
	case address.KindSearchResults:
		r.resolveSearch(ctx, &page, parsed.Query, req.SkipSuggestion)
	case address.KindArchiveSnapshot:
		r.resolveSnapshot(ctx, &page)
	default:
		r.resolveExternal(ctx, &page)
	}

	r.metrics.RecordNavigation(page.Kind, string(page.View), time.Since(start))
	r.logger.Debug("Resolved address",
		zap.String("address", page.Address),
		zap.String("kind", page.Kind),
		zap.String("view", string(page.View)),
		zap.String("stage", page.Stage),
	)
	return page
}

func (r *Resolver) resolveSearch(ctx context.Context, p *Page, query string, skip bool) {
	p.Query = query
	records := r.source.Get(ctx)
	if len(records) == 0 {
		r.metrics.RecordSearch("cache_unavailable", false)
		p.fail(ViewCacheUnavailable, newError(ErrCacheUnavailable, "", ""))
		return
	}

	res := r.engine.Search(records, query, search.Options{SkipSuggestion: skip})
	outcome := "hit"
	switch {
	case res.Suggestion != nil:
		outcome = "suggested"
	case len(res.Records) == 0:
		outcome = "empty"
	}
	r.metrics.RecordSearch(outcome, res.Suggestion != nil)

	p.View = ViewSearchResults
	p.Search = &SearchPage{
		Query:      query,
		Results:    res.Records,
		Suggestion: res.Suggestion,
	}
}

func (r *Resolver) resolveSnapshot(ctx context.Context, p *Page) {
	loc := p.Location
	rec, ok := r.source.Lookup(ctx, loc.Inner())
	if !ok {
		host, _ := address.HostName(loc.Inner())
		p.fail(ViewNotArchived, newError(ErrSnapshotNotFound, host, ""))
		return
	}

	p.View = ViewArchiveSnapshot
	p.Record = &rec
	p.BannerDate = address.FormatArchiveDate(loc.Date())
	if rec.ArchivedDate != "" {
		p.BannerDate = rec.ArchivedDate
	}
	if out, ok := r.renderers.Render(rec); ok {
		p.Rendered = &out
	}
}

func (r *Resolver) resolveExternal(ctx context.Context, p *Page) {
	for _, s := range r.stages {
		if s.handle(ctx, p) {
			p.Stage = s.name
			return
		}
	}
}

func (r *Resolver) resolveSynthetic(_ context.Context, p *Page) bool {
	name, ok := r.synthetic[syntheticKey(p.Address)]
	if !ok {
		return false
	}
	p.View = ViewSynthetic
	p.Synthetic = name
	return true
}

func (r *Resolver) resolveCached(ctx context.Context, p *Page) bool {
	rec, ok := r.source.Lookup(ctx, p.Address)
	if !ok {
		return false
	}

	p.Record = &rec
	if rec.Expired() {
		host, _ := address.HostName(p.Address)
		p.fail(ViewError, newError(ErrDomainExpired, host, DiagnosticNameNotResolved))
		return true
	}

	out, ok := r.renderers.Render(rec)
	if !ok {
		// unknown template is served like an address with no content
		r.logger.Warn("Record has unknown template",
			zap.String("address", rec.Address),
			zap.String("template", rec.Template),
		)
		p.View = ViewPlaceholder
		return true
	}
	p.View = ViewContent
	p.Rendered = &out
	return true
}

func (r *Resolver) resolvePattern(_ context.Context, p *Page) bool {
	switch {
	case r.codec.IsArchiveHost(p.Address):
		p.View = ViewArchiveHome
		return true
	case r.codec.IsSearchHost(p.Address):
		p.View = ViewHome
		return true
	}
	return false
}

func (r *Resolver) resolveInvalid(_ context.Context, p *Page) bool {
	if address.ValidURL(p.Address) {
		return false
	}
	p.fail(ViewError, newError(ErrInvalidAddress, guessHost(p.Address), DiagnosticNameNotResolved))
	return true
}

func (r *Resolver) resolvePlaceholder(_ context.Context, p *Page) bool {
	p.View = ViewPlaceholder
	return true
}

// guessHost is the best-effort host shown on the error page
func guessHost(raw string) string {
	if host, ok := address.HostName(raw); ok {
		return host
	}
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

func syntheticKey(addr string) string {
	return strings.TrimSuffix(address.Normalize(addr), "/")
}

// Search resolves the results page for query
func (r *Resolver) Search(ctx context.Context, query string, skipSuggestion bool) Page {
	return r.Resolve(ctx, Request{
		Address:        r.codec.EncodeSearchAddress(query),
		SkipSuggestion: skipSuggestion,
	})
}
