// Package archive implements the web archive front end: a home page with a
// lookup field, and dated snapshots of cached records.
//
// The viewer never renders in place. Submitting an address builds the
// archive address and hands it to the host browser's navigation callback.
package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/address"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// DefaultDate is used when the cache has no archivedDate for an address
const DefaultDate = "20240101"

// ErrEmptyAddress is returned by Submit for blank input
var ErrEmptyAddress = errors.New("address is required")

// Mode is the viewer's state machine position
type Mode string

const (
	ModeHome     Mode = "home"
	ModeSnapshot Mode = "snapshot"
)

// Lookup is the cache read the viewer needs
type Lookup interface {
	Lookup(ctx context.Context, address string) (types.ContentRecord, bool)
}

// NavigateFunc hands an address back to the host browser
type NavigateFunc func(ctx context.Context, address string) error

// Options configures a Viewer
type Options struct {
	DefaultDate string
	Navigate    NavigateFunc
	Logger      *logging.Logger
}

// State is what the viewer shows for one address
type State struct {
	Mode    Mode                 `json:"mode"`
	Address string               `json:"address"`
	Date    string               `json:"date,omitempty"`
	Inner   string               `json:"inner,omitempty"`
	Banner  string               `json:"banner,omitempty"`
	Found   bool                 `json:"found"`
	Record  *types.ContentRecord `json:"record,omitempty"`
}

// Viewer is the archive front end
type Viewer struct {
	codec       *address.Codec
	lookup      Lookup
	defaultDate string
	navigate    NavigateFunc
	logger      *logging.Logger
}

// NewViewer creates a viewer
func NewViewer(codec *address.Codec, lookup Lookup, opts Options) *Viewer {
	if opts.DefaultDate == "" {
		opts.DefaultDate = DefaultDate
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Viewer{
		codec:       codec,
		lookup:      lookup,
		defaultDate: opts.DefaultDate,
		navigate:    opts.Navigate,
		logger:      opts.Logger,
	}
}

// SetNavigate replaces the navigation callback
func (v *Viewer) SetNavigate(fn NavigateFunc) {
	v.navigate = fn
}

// View returns the state for raw. Anything that is not a strict snapshot
// address shows the archive home.
func (v *Viewer) View(ctx context.Context, raw string) State {
	date, inner, ok := v.codec.DecodeArchiveAddress(address.Normalize(raw))
	if !ok {
		return State{Mode: ModeHome, Address: v.codec.ArchiveHomeAddress()}
	}

	state := State{
		Mode:    ModeSnapshot,
		Address: address.Normalize(raw),
		Date:    date,
		Inner:   inner,
		Banner:  address.FormatArchiveDate(date),
	}
	if rec, found := v.lookup.Lookup(ctx, inner); found {
		state.Found = true
		state.Record = &rec
		if rec.ArchivedDate != "" {
			state.Banner = rec.ArchivedDate
		}
	}
	return state
}

// SnapshotAddress builds the archive address for input using the record's
// archivedDate, or the default date when the cache has none.
func (v *Viewer) SnapshotAddress(ctx context.Context, input string) (string, error) {
	inner := address.Normalize(input)
	if inner == "" {
		return "", ErrEmptyAddress
	}

	date := v.defaultDate
	if rec, ok := v.lookup.Lookup(ctx, inner); ok && rec.ArchivedDate != "" {
		compact, err := address.CompactArchiveDate(rec.ArchivedDate)
		if err != nil {
			v.logger.Warn("Ignoring malformed archivedDate",
				zap.String("address", inner),
				zap.String("archived_date", rec.ArchivedDate),
			)
		} else {
			date = compact
		}
	}
	return v.codec.EncodeArchiveAddress(date, inner)
}

// Submit looks up input in the archive and navigates to the snapshot
func (v *Viewer) Submit(ctx context.Context, input string) (string, error) {
	target, err := v.SnapshotAddress(ctx, strings.TrimSpace(input))
	if err != nil {
		return "", err
	}
	return target, v.open(ctx, target)
}

// Home navigates to the archive front page
func (v *Viewer) Home(ctx context.Context) (string, error) {
	target := v.codec.ArchiveHomeAddress()
	return target, v.open(ctx, target)
}

func (v *Viewer) open(ctx context.Context, target string) error {
	if v.navigate == nil {
		return nil
	}
	if err := v.navigate(ctx, target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	return nil
}
