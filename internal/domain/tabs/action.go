package tabs

import (
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/resolver"
)

// Action is a state transition applied with Registry.Dispatch
type Action interface {
	isAction()
}

// Navigate pushes Location onto the tab history and starts a new request.
// Re-navigating to the current location starts a request without adding a
// history entry.
type Navigate struct {
	Location address.Location
	Query    string
}

// Back moves one history entry back
type Back struct{}

// Forward moves one history entry forward
type Forward struct{}

// SetAddressText updates the address bar without navigating
type SetAddressText struct {
	Text string
}

// ApplyPage stores a resolved page for request Seq
type ApplyPage struct {
	Seq  uint64
	Page resolver.Page
}

// SetSearchPage selects a results page, clamped to the available range
type SetSearchPage struct {
	Page int
}

func (Navigate) isAction()       {}
func (Back) isAction()           {}
func (Forward) isAction()        {}
func (SetAddressText) isAction() {}
func (ApplyPage) isAction()      {}
func (SetSearchPage) isAction()  {}
