package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c := NewCodec("", "")

	tests := []struct {
		name      string
		raw       string
		wantKind  Kind
		wantAddr  string
		wantQuery string
		wantDate  string
		wantInner string
	}{
		{
			name:     "search home",
			raw:      "https://www.gogle.com",
			wantKind: KindHome,
			wantAddr: "https://www.gogle.com/",
		},
		{
			name:     "search home with slash",
			raw:      "https://www.gogle.com/",
			wantKind: KindHome,
			wantAddr: "https://www.gogle.com/",
		},
		{
			name:      "search results",
			raw:       "https://www.gogle.com/search?q=%20facelook%20",
			wantKind:  KindSearchResults,
			wantAddr:  "https://www.gogle.com/search?q=facelook",
			wantQuery: "facelook",
		},
		{
			name:     "search without query",
			raw:      "https://www.gogle.com/search?q=",
			wantKind: KindExternal,
			wantAddr: "https://www.gogle.com/search?q=",
		},
		{
			name:      "archive snapshot",
			raw:       "https://web.archiv.org/web/20240101/https://a.example/x",
			wantKind:  KindArchiveSnapshot,
			wantAddr:  "https://web.archiv.org/web/20240101/https://a.example/x",
			wantDate:  "20240101",
			wantInner: "https://a.example/x",
		},
		{
			name:     "archive with short date",
			raw:      "https://web.archiv.org/web/2024/https://a.example/x",
			wantKind: KindExternal,
			wantAddr: "https://web.archiv.org/web/2024/https://a.example/x",
		},
		{
			name:     "external without scheme",
			raw:      "  a.example/x ",
			wantKind: KindExternal,
			wantAddr: "https://a.example/x",
		},
		{
			name:     "bare keyword",
			raw:      "facelook",
			wantKind: KindExternal,
			wantAddr: "facelook",
		},
		{
			name:     "malformed",
			raw:      "https://a b.example/%zz",
			wantKind: KindExternal,
			wantAddr: "https://a b.example/%zz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.Parse(tt.raw)
			assert.Equal(t, tt.wantKind, p.Location.Kind())
			assert.Equal(t, tt.wantAddr, p.Location.Address())
			assert.Equal(t, tt.wantQuery, p.Query)
			assert.Equal(t, tt.wantDate, p.Location.Date())
			assert.Equal(t, tt.wantInner, p.Location.Inner())
		})
	}
}

func TestArchiveAddressRoundTrip(t *testing.T) {
	c := NewCodec("", "Web.Archiv.org")

	inners := []string{
		"https://a.example/x",
		"https://a.example/x?id=1&b=2",
		"http://b.example/",
		"c.example",
	}
	dates := []string{"20240101", "19991231", "00000000"}

	for _, d := range dates {
		for _, a := range inners {
			encoded, err := c.EncodeArchiveAddress(d, a)
			require.NoError(t, err)

			gotDate, gotInner, ok := c.DecodeArchiveAddress(encoded)
			require.True(t, ok, encoded)
			assert.Equal(t, d, gotDate)
			assert.Equal(t, a, gotInner)
		}
	}
}

func TestEncodeArchiveAddressRejectsBadDate(t *testing.T) {
	c := NewCodec("", "")

	for _, d := range []string{"", "2024-01-01", "2024011", "2024010a"} {
		_, err := c.EncodeArchiveAddress(d, "https://a.example")
		assert.ErrorIs(t, err, ErrInvalidDate, d)
	}
}

func TestEncodeArchiveAddressRejectsEmptyInner(t *testing.T) {
	c := NewCodec("", "")

	for _, inner := range []string{"", "   "} {
		_, err := c.EncodeArchiveAddress("20240101", inner)
		assert.ErrorIs(t, err, ErrEmptyInner)
	}

	_, _, ok := c.DecodeArchiveAddress("https://web.archiv.org/web/20240101/")
	assert.False(t, ok)
}

func TestEncodeSearchAddress(t *testing.T) {
	c := NewCodec("search.local", "")

	addr := c.EncodeSearchAddress(" john doe ")
	assert.Equal(t, "https://search.local/search?q=john+doe", addr)

	p := c.Parse(addr)
	assert.Equal(t, KindSearchResults, p.Location.Kind())
	assert.Equal(t, "john doe", p.Query)
}

func TestLocationEquality(t *testing.T) {
	c := NewCodec("", "")

	assert.Equal(t, c.Parse("https://www.gogle.com").Location, c.Home())
	assert.NotEqual(t,
		c.Parse(c.EncodeSearchAddress("a")).Location,
		c.Parse(c.EncodeSearchAddress("b")).Location,
	)
}

func TestValidURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://a.example/x", true},
		{"a.example", true},
		{"http://localhost", true},
		{"facelook", false},
		{"ftp://a.example", false},
		{"https://", false},
		{"https://.example", false},
		{"https://a_b.example", false},
		{"https://a b.example", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidURL(tt.raw), tt.raw)
	}
}

func TestHostName(t *testing.T) {
	host, ok := HostName("https://News.Example/a")
	assert.True(t, ok)
	assert.Equal(t, "news.example", host)

	_, ok = HostName("facelook")
	assert.False(t, ok)
}

func TestDisplayHost(t *testing.T) {
	host, ok := DisplayHost("https://xn--mnchen-3ya.example/")
	assert.True(t, ok)
	assert.Equal(t, "münchen.example", host)

	host, ok = DisplayHost("https://News.Example/a")
	assert.True(t, ok)
	assert.Equal(t, "news.example", host)

	_, ok = DisplayHost("facelook")
	assert.False(t, ok)
}

func TestArchiveDates(t *testing.T) {
	assert.Equal(t, "2024-03-15", FormatArchiveDate("20240315"))
	assert.Equal(t, "garbage", FormatArchiveDate("garbage"))

	compact, err := CompactArchiveDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "20240315", compact)

	_, err = CompactArchiveDate("15 March")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
