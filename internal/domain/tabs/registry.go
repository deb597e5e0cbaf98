package tabs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/history"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/search"
)

const (
	// DefaultCapacity is the tab limit when none is configured
	DefaultCapacity = 10
	// DefaultBrand titles tabs showing the search home
	DefaultBrand = "Gogle"
)

var (
	ErrTabNotFound   = errors.New("tab not found")
	ErrStaleRequest  = errors.New("stale request")
	ErrUnknownAction = errors.New("unknown action")
)

// Options configures a Registry
type Options struct {
	Capacity int
	PageSize int
	Codec    *address.Codec
	Brand    string
	// Title overrides DefaultTitle
	Title func(address.Location) string
}

// Registry holds tabs in display order
type Registry struct {
	mu       sync.RWMutex
	tabs     map[string]*tab // Protected by mu
	order    []string        // Protected by mu
	activeID string          // Protected by mu
	capacity int             // Protected by mu

	pageSize int
	home     address.Location
	title    func(address.Location) string
}

// NewRegistry creates a registry with one tab open at home
func NewRegistry(opts Options) *Registry {
	if opts.Capacity < 1 {
		opts.Capacity = DefaultCapacity
	}
	if opts.PageSize < 1 {
		opts.PageSize = search.DefaultPageSize
	}
	if opts.Codec == nil {
		opts.Codec = address.NewCodec("", "")
	}
	if opts.Brand == "" {
		opts.Brand = DefaultBrand
	}
	if opts.Title == nil {
		opts.Title = DefaultTitle(opts.Codec, opts.Brand)
	}

	r := &Registry{
		tabs:     make(map[string]*tab),
		capacity: opts.Capacity,
		pageSize: opts.PageSize,
		home:     opts.Codec.Home(),
		title:    opts.Title,
	}
	r.open()
	return r
}

// open creates a tab at home and activates it. Caller holds mu.
func (r *Registry) open() *tab {
	t := &tab{
		id:          uuid.New().String(),
		addressText: r.home.Address(),
		history:     history.New(r.home),
		seq:         1,
	}
	r.tabs[t.id] = t
	r.order = append(r.order, t.id)
	r.activeID = t.id
	return t
}

func (r *Registry) snapshot(t *tab) Tab {
	return t.snapshot(r.title(t.history.Current()))
}

// AddTab opens a tab at home and activates it. At capacity it does nothing
// and returns false.
func (r *Registry) AddTab() (Tab, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.order) >= r.capacity {
		return Tab{}, false
	}
	return r.snapshot(r.open()), true
}

// CloseTab removes a tab. Closing the only tab does nothing and returns
// false. When the active tab closes, the tab now at its index (or the new
// last tab) becomes active.
func (r *Registry) CloseTab(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrTabNotFound, id)
	}
	if len(r.order) == 1 {
		return false, nil
	}

	delete(r.tabs, id)
	r.order = append(r.order[:idx], r.order[idx+1:]...)

	if r.activeID == id {
		if idx >= len(r.order) {
			idx = len(r.order) - 1
		}
		r.activeID = r.order[idx]
	}
	return true, nil
}

// SwitchTab makes id the active tab
func (r *Registry) SwitchTab(id string) (Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok {
		return Tab{}, fmt.Errorf("%w: %s", ErrTabNotFound, id)
	}
	r.activeID = id
	return r.snapshot(t), nil
}

// SetCapacity changes the tab limit (minimum 1) and returns the value in
// effect. Open tabs beyond the new limit stay open.
func (r *Registry) SetCapacity(n int) int {
	if n < 1 {
		n = 1
	}
	r.mu.Lock()
	r.capacity = n
	r.mu.Unlock()
	return n
}

// Capacity returns the tab limit
func (r *Registry) Capacity() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capacity
}

// Len returns the number of open tabs
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Tabs returns all tabs in display order
func (r *Registry) Tabs() []Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tab, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.snapshot(r.tabs[id]))
	}
	return out
}

// Active returns the active tab
func (r *Registry) Active() Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(r.tabs[r.activeID])
}

// ActiveID returns the active tab's id
func (r *Registry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// Get returns a tab by id
func (r *Registry) Get(id string) (Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tabs[id]
	if !ok {
		return Tab{}, false
	}
	return r.snapshot(t), true
}

// History returns a copy of a tab's history
func (r *Registry) History(id string) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTabNotFound, id)
	}
	return t.history.Entries(), nil
}

func (r *Registry) indexOf(id string) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}
