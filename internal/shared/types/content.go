package types

// DomainStatus marks whether the domain serving a record is still alive
type DomainStatus string

const (
	DomainActive  DomainStatus = "active"
	DomainExpired DomainStatus = "expired"
)

// ContentRecord is one simulated page. Renderers pick it up by Template.
type ContentRecord struct {
	ID           string                 `json:"id" yaml:"id" toml:"id"`
	Address      string                 `json:"address" yaml:"address" toml:"address"`
	Template     string                 `json:"template" yaml:"template" toml:"template"`
	Title        string                 `json:"title,omitempty" yaml:"title" toml:"title"`
	Description  string                 `json:"description,omitempty" yaml:"description" toml:"description"`
	Keywords     []string               `json:"keywords,omitempty" yaml:"keywords" toml:"keywords"`
	Content      map[string]interface{} `json:"content,omitempty" yaml:"content" toml:"content"`
	ArchivedDate string                 `json:"archivedDate,omitempty" yaml:"archivedDate" toml:"archivedDate"`
	DomainStatus DomainStatus           `json:"domainStatus,omitempty" yaml:"domainStatus" toml:"domainStatus"`
}

// Expired reports whether the record's domain has lapsed
func (r ContentRecord) Expired() bool {
	return r.DomainStatus == DomainExpired
}
