package resolver

import "fmt"

// ErrorKind classifies user-visible resolution failures
type ErrorKind string

const (
	KindCacheUnavailable ErrorKind = "cache_unavailable"
	KindInvalidAddress   ErrorKind = "invalid_address"
	KindSnapshotNotFound ErrorKind = "snapshot_not_found"
	KindDomainExpired    ErrorKind = "domain_expired"
)

// DiagnosticNameNotResolved is shown on invalid-address error pages
const DiagnosticNameNotResolved = "DNS_PROBE_FINISHED_NXDOMAIN"

// Error is a recoverable resolution failure rendered as a page
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Host    string    `json:"host,omitempty"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Host)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches on kind so errors.Is(page.Err, ErrDomainExpired) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrCacheUnavailable = &Error{Kind: KindCacheUnavailable, Message: "cache not found, restart the scenario"}
	ErrInvalidAddress   = &Error{Kind: KindInvalidAddress, Message: "this site can't be reached"}
	ErrSnapshotNotFound = &Error{Kind: KindSnapshotNotFound, Message: "this page has not been archived"}
	ErrDomainExpired    = &Error{Kind: KindDomainExpired, Message: "this site can't be reached"}
)

func newError(base *Error, host, code string) *Error {
	return &Error{Kind: base.Kind, Host: host, Code: code, Message: base.Message}
}
