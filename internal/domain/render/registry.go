package render

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// Renderable is what the external site renderer receives
type Renderable struct {
	Template Template               `json:"template"`
	Title    string                 `json:"title"`
	Address  string                 `json:"address"`
	Body     string                 `json:"body,omitempty"`
	Text     string                 `json:"text,omitempty"`
	Links    []Link                 `json:"links,omitempty"`
	Content  map[string]interface{} `json:"content,omitempty"`
}

// Renderer turns a record into a Renderable
type Renderer interface {
	Render(rec types.ContentRecord) Renderable
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(rec types.ContentRecord) Renderable

// Render implements Renderer
func (f RendererFunc) Render(rec types.ContentRecord) Renderable { return f(rec) }

// Registry is a validated template -> renderer table
type Registry struct {
	renderers map[Template]Renderer
}

// NewRegistry validates table against the closed template set. Every
// template must have a renderer and every key must be a known template.
func NewRegistry(table map[string]Renderer) (*Registry, error) {
	renderers := make(map[Template]Renderer, len(table))
	for name, r := range table {
		t, err := ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		if string(t) != name {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownTemplate, name, t)
		}
		if r == nil {
			return nil, fmt.Errorf("nil renderer for template %s", t)
		}
		renderers[t] = r
	}

	for t := range knownTemplates {
		if _, ok := renderers[t]; !ok {
			return nil, fmt.Errorf("no renderer registered for template %s", t)
		}
	}
	return &Registry{renderers: renderers}, nil
}

// DefaultRegistry maps every template to the sanitizing default renderer
func DefaultRegistry() *Registry {
	def := NewDefaultRenderer()
	table := make(map[string]Renderer, len(knownTemplates))
	for t := range knownTemplates {
		table[string(t)] = def
	}
	reg, err := NewRegistry(table)
	if err != nil {
		panic(fmt.Sprintf("default render registry: %v", err))
	}
	return reg
}

// Render dispatches rec by its template. ok is false for unknown templates.
func (r *Registry) Render(rec types.ContentRecord) (Renderable, bool) {
	t, err := ParseTemplate(rec.Template)
	if err != nil {
		return Renderable{}, false
	}
	out := r.renderers[t].Render(rec)
	out.Template = t
	return out, true
}

// DefaultRenderer hands record fields through and sanitizes the HTML body
type DefaultRenderer struct {
	sanitizer *bluemonday.Policy
}

// NewDefaultRenderer creates a renderer with the UGC sanitizing policy
func NewDefaultRenderer() *DefaultRenderer {
	return &DefaultRenderer{sanitizer: bluemonday.UGCPolicy()}
}

// Render implements Renderer
func (d *DefaultRenderer) Render(rec types.ContentRecord) Renderable {
	out := Renderable{
		Title:   rec.Title,
		Address: rec.Address,
		Content: rec.Content,
	}
	if body, ok := rec.Content["body"].(string); ok {
		out.Body = d.sanitizer.Sanitize(body)
		out.Text, out.Links = extract(out.Body)
	}
	return out
}
