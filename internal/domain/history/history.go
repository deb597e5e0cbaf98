// Package history keeps a tab's back/forward stack.
package history

import "github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"

// Entry is one visited location with its insertion order
type Entry struct {
	Location address.Location
	Seq      uint64
}

// History is a non-empty list of entries with a current index. It is not
// safe for concurrent use; the owning tab registry serializes access.
type History struct {
	entries []Entry
	index   int
	nextSeq uint64
}

// New creates a history seeded with initial
func New(initial address.Location) *History {
	h := &History{}
	h.entries = []Entry{h.entry(initial)}
	return h
}

func (h *History) entry(loc address.Location) Entry {
	h.nextSeq++
	return Entry{Location: loc, Seq: h.nextSeq}
}

// NavigateTo pushes loc and drops forward entries. Returns false when loc
// is already current and nothing changed.
func (h *History) NavigateTo(loc address.Location) bool {
	if h.Current() == loc {
		return false
	}
	h.entries = append(h.entries[:h.index+1:h.index+1], h.entry(loc))
	h.index = len(h.entries) - 1
	return true
}

// Back moves one entry back. Returns false at the start.
func (h *History) Back() bool {
	if !h.CanGoBack() {
		return false
	}
	h.index--
	return true
}

// Forward moves one entry forward. Returns false at the end.
func (h *History) Forward() bool {
	if !h.CanGoForward() {
		return false
	}
	h.index++
	return true
}

// Current returns the location at the current index
func (h *History) Current() address.Location {
	return h.entries[h.index].Location
}

// CurrentEntry returns the entry at the current index
func (h *History) CurrentEntry() Entry {
	return h.entries[h.index]
}

func (h *History) CanGoBack() bool    { return h.index > 0 }
func (h *History) CanGoForward() bool { return h.index < len(h.entries)-1 }
func (h *History) Len() int           { return len(h.entries) }
func (h *History) Index() int         { return h.index }

// Entries returns a copy of all entries
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clone returns an independent copy
func (h *History) Clone() *History {
	return &History{
		entries: h.Entries(),
		index:   h.index,
		nextSeq: h.nextSeq,
	}
}
