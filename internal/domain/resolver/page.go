package resolver

import (
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/render"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/search"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// View names what the browser frame should draw
type View string

const (
	ViewHome             View = "home"
	ViewSearchResults    View = "search_results"
	ViewCacheUnavailable View = "cache_unavailable"
	ViewContent          View = "content"
	ViewSynthetic        View = "synthetic"
	ViewArchiveHome      View = "archive_home"
	ViewArchiveSnapshot  View = "archive_snapshot"
	ViewNotArchived      View = "not_archived"
	ViewError            View = "error"
	ViewPlaceholder      View = "placeholder"
)

// SearchPage carries search results for the SearchResults view
type SearchPage struct {
	Query      string                `json:"query"`
	Results    []types.ContentRecord `json:"results"`
	Suggestion *search.Suggestion    `json:"suggestion,omitempty"`
}

// Page is a fully resolved navigation
type Page struct {
	View       View                 `json:"view"`
	Location   address.Location     `json:"-"`
	Kind       string               `json:"kind"`
	Address    string               `json:"address"`
	Query      string               `json:"query,omitempty"`
	Synthetic  string               `json:"synthetic,omitempty"`
	Record     *types.ContentRecord `json:"record,omitempty"`
	Rendered   *render.Renderable   `json:"rendered,omitempty"`
	Search     *SearchPage          `json:"search,omitempty"`
	BannerDate string               `json:"banner_date,omitempty"`
	Stage      string               `json:"stage,omitempty"`
	Err        *Error               `json:"error,omitempty"`
}

func newPage(loc address.Location) Page {
	return Page{
		Location: loc,
		Kind:     loc.Kind().String(),
		Address:  loc.Address(),
	}
}

func (p *Page) fail(view View, err *Error) {
	p.View = view
	p.Err = err
}
