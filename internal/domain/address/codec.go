package address

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

const (
	// DefaultSearchHost is the simulated search engine's domain
	DefaultSearchHost = "www.gogle.com"
	// DefaultArchiveHost is the simulated web archive's domain
	DefaultArchiveHost = "web.archiv.org"

	searchPath  = "/search"
	archivePath = "/web/"
)

// ErrInvalidDate is returned when an archive date is not exactly 8 digits
var ErrInvalidDate = errors.New("archive date must be 8 digits (YYYYMMDD)")

// ErrEmptyInner is returned when an archive address would wrap nothing
var ErrEmptyInner = errors.New("archived address is empty")

var datePattern = regexp.MustCompile(`^[0-9]{8}$`)

// Parsed is the result of classifying an address. Query is only set for
// search results and is kept outside the Location tag.
type Parsed struct {
	Location Location
	Query    string
}

// Codec parses and produces addresses for one pair of search/archive hosts
type Codec struct {
	searchHost    string
	archiveHost   string
	archiveRegexp *regexp.Regexp
}

// NewCodec creates a codec. Empty hosts fall back to the defaults.
func NewCodec(searchHost, archiveHost string) *Codec {
	if searchHost == "" {
		searchHost = DefaultSearchHost
	}
	if archiveHost == "" {
		archiveHost = DefaultArchiveHost
	}
	searchHost = strings.ToLower(searchHost)
	archiveHost = strings.ToLower(archiveHost)

	return &Codec{
		searchHost:  searchHost,
		archiveHost: archiveHost,
		archiveRegexp: regexp.MustCompile(
			`^(?i:https?://` + regexp.QuoteMeta(archiveHost) + `)/web/([0-9]{8})/(.+)$`,
		),
	}
}

// SearchHost returns the search engine host
func (c *Codec) SearchHost() string { return c.searchHost }

// ArchiveHost returns the archive host
func (c *Codec) ArchiveHost() string { return c.archiveHost }

// Home returns the search engine home location
func (c *Codec) Home() Location {
	return Location{kind: KindHome, address: c.HomeAddress()}
}

// HomeAddress returns the search engine home address
func (c *Codec) HomeAddress() string {
	return "https://" + c.searchHost + "/"
}

// ArchiveHomeAddress returns the archive front page address
func (c *Codec) ArchiveHomeAddress() string {
	return "https://" + c.archiveHost + "/"
}

// Parse classifies raw into a Location
func (c *Codec) Parse(raw string) Parsed {
	trimmed := strings.TrimSpace(raw)
	if !hasScheme(trimmed) && !strings.Contains(trimmed, ".") {
		// bare keyword, never an address
		return Parsed{Location: External(trimmed)}
	}

	normalized := Normalize(trimmed)
	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" {
		return Parsed{Location: External(normalized)}
	}

	host := strings.ToLower(u.Hostname())
	switch host {
	case c.searchHost:
		return c.parseSearch(u, normalized)
	case c.archiveHost:
		if date, inner, ok := c.DecodeArchiveAddress(normalized); ok {
			return Parsed{Location: Location{
				kind:    KindArchiveSnapshot,
				address: normalized,
				date:    date,
				inner:   inner,
			}}
		}
	}

	return Parsed{Location: External(normalized)}
}

func (c *Codec) parseSearch(u *url.URL, normalized string) Parsed {
	switch strings.TrimSuffix(u.Path, "/") {
	case "":
		return Parsed{Location: c.Home()}
	case searchPath:
		query := strings.TrimSpace(u.Query().Get("q"))
		if query == "" {
			return Parsed{Location: External(normalized)}
		}
		return Parsed{
			Location: Location{kind: KindSearchResults, address: c.EncodeSearchAddress(query)},
			Query:    query,
		}
	}
	return Parsed{Location: External(normalized)}
}

// EncodeSearchAddress builds the search results address for query
func (c *Codec) EncodeSearchAddress(query string) string {
	return "https://" + c.searchHost + searchPath + "?q=" + url.QueryEscape(strings.TrimSpace(query))
}

// EncodeArchiveAddress builds https://<archive-host>/web/<date>/<inner>
func (c *Codec) EncodeArchiveAddress(date, inner string) (string, error) {
	if !datePattern.MatchString(date) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if strings.TrimSpace(inner) == "" {
		return "", ErrEmptyInner
	}
	return "https://" + c.archiveHost + archivePath + date + "/" + inner, nil
}

// DecodeArchiveAddress is the inverse of EncodeArchiveAddress
func (c *Codec) DecodeArchiveAddress(raw string) (date, inner string, ok bool) {
	m := c.archiveRegexp.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsArchiveHost reports whether raw points at the archive domain
func (c *Codec) IsArchiveHost(raw string) bool {
	host, ok := HostName(raw)
	return ok && host == c.archiveHost
}

// IsSearchHost reports whether raw points at the search domain
func (c *Codec) IsSearchHost(raw string) bool {
	host, ok := HostName(raw)
	return ok && host == c.searchHost
}

// Normalize trims raw and prefixes https:// when it has no scheme but
// looks like a domain. Bare keywords are returned trimmed and unchanged.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || hasScheme(trimmed) || !strings.Contains(trimmed, ".") {
		return trimmed
	}
	return "https://" + trimmed
}

// ValidURL reports whether raw is a usable http(s) address
func ValidURL(raw string) bool {
	u, err := url.Parse(Normalize(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" || strings.ContainsAny(host, " _") {
		return false
	}
	return host == "localhost" || (strings.Contains(host, ".") &&
		!strings.HasPrefix(host, ".") && !strings.HasSuffix(host, "."))
}

// HostName extracts the lowercased host from raw
func HostName(raw string) (string, bool) {
	u, err := url.Parse(Normalize(raw))
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}

// DisplayHost is HostName with punycode labels shown in Unicode
func DisplayHost(raw string) (string, bool) {
	host, ok := HostName(raw)
	if !ok {
		return "", false
	}
	if display, err := idna.Display.ToUnicode(host); err == nil {
		return display, true
	}
	return host, true
}

// FormatArchiveDate renders YYYYMMDD as YYYY-MM-DD. Other input is returned as is.
func FormatArchiveDate(date string) string {
	if !datePattern.MatchString(date) {
		return date
	}
	return date[0:4] + "-" + date[4:6] + "-" + date[6:8]
}

// CompactArchiveDate turns YYYY-MM-DD (or YYYY/MM/DD) into YYYYMMDD
func CompactArchiveDate(date string) (string, error) {
	compact := strings.NewReplacer("-", "", "/", "").Replace(strings.TrimSpace(date))
	if !datePattern.MatchString(compact) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return compact, nil
}

func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for _, r := range s[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}
