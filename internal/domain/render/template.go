package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTemplate is returned for names outside the closed template set
var ErrUnknownTemplate = errors.New("unknown template")

// Template identifies a site renderer
type Template string

const (
	TemplateGeneric Template = "Generic"
	TemplateNews    Template = "News"
	TemplateSocial  Template = "Social"
	TemplateProfile Template = "Profile"
	TemplateWiki    Template = "Wiki"
	TemplateBlog    Template = "Blog"
	TemplateShop    Template = "Shop"
	TemplateForum   Template = "Forum"
	TemplateMail    Template = "Mail"
)

var knownTemplates = map[Template]struct{}{
	TemplateGeneric: {},
	TemplateNews:    {},
	TemplateSocial:  {},
	TemplateProfile: {},
	TemplateWiki:    {},
	TemplateBlog:    {},
	TemplateShop:    {},
	TemplateForum:   {},
	TemplateMail:    {},
}

// Templates returns the closed template set in sorted order
func Templates() []Template {
	out := make([]Template, 0, len(knownTemplates))
	for t := range knownTemplates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseTemplate maps a record's template name onto the closed set.
// Matching ignores case and surrounding space.
func ParseTemplate(name string) (Template, error) {
	trimmed := strings.TrimSpace(name)
	for t := range knownTemplates {
		if strings.EqualFold(string(t), trimmed) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}
