package tabs

import (
	"fmt"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/search"
)

// Dispatch applies action to tab id and returns the updated tab
func (r *Registry) Dispatch(id string, action Action) (Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok {
		return Tab{}, fmt.Errorf("%w: %s", ErrTabNotFound, id)
	}

	switch a := action.(type) {
	case Navigate:
		t.history.NavigateTo(a.Location)
		r.startRequest(t)
		if a.Location.Kind() == address.KindSearchResults && a.Query != t.search.Query {
			t.search = SearchState{Query: a.Query, Page: 1}
		}

	case Back:
		if t.history.Back() {
			r.startRequest(t)
		}

	case Forward:
		if t.history.Forward() {
			r.startRequest(t)
		}

	case SetAddressText:
		t.addressText = a.Text

	case ApplyPage:
		if a.Seq != t.seq {
			return r.snapshot(t), fmt.Errorf("%w: tab %s at %d, got %d", ErrStaleRequest, id, t.seq, a.Seq)
		}
		page := a.Page
		t.page = &page
		t.addressText = page.Address
		if page.Search != nil {
			pageNum := t.search.Page
			if page.Search.Query != t.search.Query || pageNum < 1 {
				pageNum = 1
			}
			t.search = SearchState{
				Query:      page.Search.Query,
				Results:    page.Search.Results,
				Suggestion: page.Search.Suggestion,
			}
			r.paginate(t, pageNum)
		}

	case SetSearchPage:
		r.paginate(t, a.Page)

	default:
		return Tab{}, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	return r.snapshot(t), nil
}

// startRequest clears the shown page and issues a new sequence
func (r *Registry) startRequest(t *tab) {
	t.seq++
	t.page = nil
	t.addressText = t.history.Current().Address()
}

func (r *Registry) paginate(t *tab, page int) {
	p := search.Paginate(len(t.search.Results), page, r.pageSize)
	t.search.Page = p.Page
	t.search.Pagination = p
}
