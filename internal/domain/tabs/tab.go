package tabs

import (
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/history"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/resolver"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/search"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// UntitledTitle is used when no title can be derived from the location
const UntitledTitle = "Untitled"

// SearchState is the tab's last search
type SearchState struct {
	Query      string                `json:"query"`
	Results    []types.ContentRecord `json:"results"`
	Suggestion *search.Suggestion    `json:"suggestion,omitempty"`
	Page       int                   `json:"page"`
	Pagination search.Pagination     `json:"pagination"`
}

// Tab is a snapshot of one tab
type Tab struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	AddressText  string           `json:"address_text"`
	Location     address.Location `json:"-"`
	Kind         string           `json:"kind"`
	Seq          uint64           `json:"seq"`
	Loading      bool             `json:"loading"`
	Page         *resolver.Page   `json:"page,omitempty"`
	Search       SearchState      `json:"search"`
	CanGoBack    bool             `json:"can_go_back"`
	CanGoForward bool             `json:"can_go_forward"`
	HistoryLen   int              `json:"history_len"`
	HistoryIndex int              `json:"history_index"`
}

type tab struct {
	id          string
	addressText string
	history     *history.History
	seq         uint64
	page        *resolver.Page
	search      SearchState
}

func (t *tab) snapshot(title string) Tab {
	loc := t.history.Current()
	out := Tab{
		ID:           t.id,
		Title:        title,
		AddressText:  t.addressText,
		Location:     loc,
		Kind:         loc.Kind().String(),
		Seq:          t.seq,
		Loading:      t.page == nil,
		Search:       t.search,
		CanGoBack:    t.history.CanGoBack(),
		CanGoForward: t.history.CanGoForward(),
		HistoryLen:   t.history.Len(),
		HistoryIndex: t.history.Index(),
	}
	if t.page != nil {
		p := *t.page
		out.Page = &p
	}
	if t.search.Results != nil {
		out.Search.Results = append([]types.ContentRecord(nil), t.search.Results...)
	}
	return out
}

// DefaultTitle derives a tab title from its location: the brand for home,
// the query for search results and the host name otherwise.
func DefaultTitle(codec *address.Codec, brand string) func(address.Location) string {
	return func(loc address.Location) string {
		switch loc.Kind() {
		case address.KindHome:
			return brand
		case address.KindSearchResults:
			if q := codec.Parse(loc.Address()).Query; q != "" {
				return q
			}
		default:
			if host, ok := address.DisplayHost(loc.Address()); ok {
				return host
			}
		}
		return UntitledTitle
	}
}
