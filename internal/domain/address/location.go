package address

// Kind is the closed set of location kinds
type Kind int

const (
	KindHome Kind = iota
	KindSearchResults
	KindArchiveSnapshot
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindSearchResults:
		return "search_results"
	case KindArchiveSnapshot:
		return "archive_snapshot"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Location is the classified form of an address. It is a comparable value;
// two locations are equal when kind and canonical address match.
type Location struct {
	kind    Kind
	address string
	date    string
	inner   string
}

// Kind returns the location kind
func (l Location) Kind() Kind { return l.kind }

// Address returns the canonical address string
func (l Location) Address() string { return l.address }

// Date returns the 8-digit snapshot date (archive snapshots only)
func (l Location) Date() string { return l.date }

// Inner returns the archived address (archive snapshots only)
func (l Location) Inner() string { return l.inner }

// IsZero reports whether l is the zero value
func (l Location) IsZero() bool { return l == Location{} }

func (l Location) String() string {
	return l.kind.String() + "(" + l.address + ")"
}

// External wraps raw as an external address without classification
func External(raw string) Location {
	return Location{kind: KindExternal, address: raw}
}
