package browser

import (
	"context"
	"errors"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/tabs"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

func tabResult(t tabs.Tab, err error) (*types.Result, error) {
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{"tab": t})
}

// Navigate opens an address
func (p *Provider) Navigate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	addr, err := GetString(params, "address", true)
	if err != nil {
		return Failure(err.Error())
	}
	return tabResult(p.app.Navigate(ctx, tabIDFrom(params, appCtx), addr))
}

// Search runs a query
func (p *Provider) Search(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	query, err := GetString(params, "query", true)
	if err != nil {
		return Failure(err.Error())
	}
	skip := GetBool(params, "skip_suggestion", false)
	return tabResult(p.app.Search(ctx, tabIDFrom(params, appCtx), query, skip))
}

// Back goes back one entry
func (p *Provider) Back(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return tabResult(p.app.Back(ctx, tabIDFrom(params, appCtx)))
}

// Forward goes forward one entry
func (p *Provider) Forward(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return tabResult(p.app.Forward(ctx, tabIDFrom(params, appCtx)))
}

// NewTab opens a tab
func (p *Provider) NewTab(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	t, ok := p.app.NewTab(ctx)
	if !ok {
		return Success(map[string]interface{}{
			"opened":   false,
			"capacity": p.app.Capacity(),
		})
	}
	return Success(map[string]interface{}{"opened": true, "tab": t})
}

// CloseTab closes a tab
func (p *Provider) CloseTab(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	id, err := GetString(params, "tab_id", true)
	if err != nil {
		return Failure(err.Error())
	}
	closed, err := p.app.CloseTab(ctx, id)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{
		"closed":    closed,
		"active_id": p.app.Active().ID,
	})
}

// SwitchTab activates a tab
func (p *Provider) SwitchTab(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	id, err := GetString(params, "tab_id", true)
	if err != nil {
		return Failure(err.Error())
	}
	return tabResult(p.app.SwitchTab(ctx, id))
}

// ListTabs lists open tabs
func (p *Provider) ListTabs(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	all := p.app.Tabs()
	return Success(map[string]interface{}{
		"tabs":      all,
		"count":     len(all),
		"active_id": p.app.Active().ID,
		"capacity":  p.app.Capacity(),
	})
}

// SetPage selects a results page
func (p *Provider) SetPage(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	page, err := GetInt(params, "page", true)
	if err != nil {
		return Failure(err.Error())
	}
	return tabResult(p.app.SetPage(ctx, tabIDFrom(params, appCtx), page))
}

// SetCapacity changes the tab limit
func (p *Provider) SetCapacity(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	n, err := GetInt(params, "capacity", true)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{"capacity": p.app.SetCapacity(ctx, n)})
}

// ArchiveView describes an archive page
func (p *Provider) ArchiveView(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	addr, err := GetString(params, "address", true)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{"archive": p.app.ArchiveView(ctx, addr)})
}

// ArchiveSubmit opens a snapshot
func (p *Provider) ArchiveSubmit(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	addr, err := GetString(params, "address", true)
	if err != nil {
		return Failure(err.Error())
	}
	t, err := p.app.ArchiveSubmit(ctx, tabIDFrom(params, appCtx), addr)
	if errors.Is(err, tabs.ErrTabNotFound) {
		return Failure("tab not found")
	}
	return tabResult(t, err)
}
