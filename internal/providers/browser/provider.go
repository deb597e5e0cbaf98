package browser

import (
	"context"
	"fmt"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// Provider exposes a browser App as a service
type Provider struct {
	app *App
}

// NewProvider creates a browser provider
func NewProvider(app *App) *Provider {
	return &Provider{app: app}
}

// App returns the underlying browser
func (p *Provider) App() *App { return p.app }

// Definition returns service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "browser",
		Name:         "Browser",
		Category:     types.CategoryBrowser,
		Description:  "Simulated web browser with tabs, search engine and web archive",
		Capabilities: []string{"tabs", "history", "search", "archive"},
		Tools:        p.getTools(),
	}
}

func tabParam() types.Parameter {
	return types.Parameter{Name: "tab_id", Type: "string", Description: "Tab ID (defaults to the active tab)", Required: false}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "browser.navigate",
			Name:        "Navigate",
			Description: "Open an address in a tab",
			Parameters: []types.Parameter{
				{Name: "address", Type: "string", Description: "Address to open", Required: true},
				tabParam(),
			},
			Returns: "object",
		},
		{
			ID:          "browser.search",
			Name:        "Search",
			Description: "Run a search engine query in a tab",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Description: "Search query", Required: true},
				{Name: "skip_suggestion", Type: "boolean", Description: "Do not offer a corrected query", Required: false},
				tabParam(),
			},
			Returns: "object",
		},
		{
			ID:          "browser.back",
			Name:        "Back",
			Description: "Go back one history entry",
			Parameters:  []types.Parameter{tabParam()},
			Returns:     "object",
		},
		{
			ID:          "browser.forward",
			Name:        "Forward",
			Description: "Go forward one history entry",
			Parameters:  []types.Parameter{tabParam()},
			Returns:     "object",
		},
		{
			ID:          "browser.new_tab",
			Name:        "New Tab",
			Description: "Open a tab at the search home",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "browser.close_tab",
			Name:        "Close Tab",
			Description: "Close a tab (the last tab stays open)",
			Parameters: []types.Parameter{
				{Name: "tab_id", Type: "string", Description: "Tab ID", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "browser.switch_tab",
			Name:        "Switch Tab",
			Description: "Activate a tab",
			Parameters: []types.Parameter{
				{Name: "tab_id", Type: "string", Description: "Tab ID", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "browser.list_tabs",
			Name:        "List Tabs",
			Description: "List open tabs in display order",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "browser.set_page",
			Name:        "Set Results Page",
			Description: "Select a search results page",
			Parameters: []types.Parameter{
				{Name: "page", Type: "number", Description: "1-based page number", Required: true},
				tabParam(),
			},
			Returns: "object",
		},
		{
			ID:          "browser.set_capacity",
			Name:        "Set Tab Capacity",
			Description: "Change the maximum number of open tabs",
			Parameters: []types.Parameter{
				{Name: "capacity", Type: "number", Description: "Tab limit (minimum 1)", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "browser.archive_view",
			Name:        "Archive View",
			Description: "Describe the archive page for an address",
			Parameters: []types.Parameter{
				{Name: "address", Type: "string", Description: "Archive address", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "browser.archive_submit",
			Name:        "Archive Lookup",
			Description: "Open the archived snapshot of an address",
			Parameters: []types.Parameter{
				{Name: "address", Type: "string", Description: "Address to look up", Required: true},
				tabParam(),
			},
			Returns: "object",
		},
	}
}

// Execute routes tool calls
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "browser.navigate":
		return p.Navigate(ctx, params, appCtx)
	case "browser.search":
		return p.Search(ctx, params, appCtx)
	case "browser.back":
		return p.Back(ctx, params, appCtx)
	case "browser.forward":
		return p.Forward(ctx, params, appCtx)
	case "browser.new_tab":
		return p.NewTab(ctx, params, appCtx)
	case "browser.close_tab":
		return p.CloseTab(ctx, params, appCtx)
	case "browser.switch_tab":
		return p.SwitchTab(ctx, params, appCtx)
	case "browser.list_tabs":
		return p.ListTabs(ctx, params, appCtx)
	case "browser.set_page":
		return p.SetPage(ctx, params, appCtx)
	case "browser.set_capacity":
		return p.SetCapacity(ctx, params, appCtx)
	case "browser.archive_view":
		return p.ArchiveView(ctx, params, appCtx)
	case "browser.archive_submit":
		return p.ArchiveSubmit(ctx, params, appCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
