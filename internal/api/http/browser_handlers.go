package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/tabs"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/utils"
)

// tabID reads and validates the :id path parameter
func (h *Handlers) tabID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := utils.ValidateID(id, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return id, true
}

func (h *Handlers) respondTab(c *gin.Context, t tabs.Tab, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": t})
}

// ListTabs lists tabs in display order
func (h *Handlers) ListTabs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tabs":      h.app.Tabs(),
		"active_id": h.app.Active().ID,
		"capacity":  h.app.Capacity(),
	})
}

// NewTab opens a tab; at capacity it reports opened=false
func (h *Handlers) NewTab(c *gin.Context) {
	t, ok := h.app.NewTab(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"opened": false, "capacity": h.app.Capacity()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"opened": true, "tab": t})
}

// GetTab returns one tab
func (h *Handlers) GetTab(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	t, err := h.app.Tab(id)
	h.respondTab(c, t, err)
}

// CloseTab closes a tab; closing the last tab is a no-op
func (h *Handlers) CloseTab(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	closed, err := h.app.CloseTab(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"closed":    closed,
		"tab_id":    id,
		"active_id": h.app.Active().ID,
	})
}

// ActivateTab switches the active tab
func (h *Handlers) ActivateTab(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	t, err := h.app.SwitchTab(c.Request.Context(), id)
	h.respondTab(c, t, err)
}

// Navigate opens an address in a tab
func (h *Handlers) Navigate(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	var req types.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateAddress(req.Address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.app.Navigate(c.Request.Context(), id, req.Address)
	h.respondTab(c, t, err)
}

// Search runs a query in a tab
func (h *Handlers) Search(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateQuery(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.app.Search(c.Request.Context(), id, req.Query, req.SkipSuggestion)
	h.respondTab(c, t, err)
}

// Back moves a tab back
func (h *Handlers) Back(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	t, err := h.app.Back(c.Request.Context(), id)
	h.respondTab(c, t, err)
}

// Forward moves a tab forward
func (h *Handlers) Forward(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	t, err := h.app.Forward(c.Request.Context(), id)
	h.respondTab(c, t, err)
}

// SetPage selects a search results page
func (h *Handlers) SetPage(c *gin.Context) {
	id, ok := h.tabID(c)
	if !ok {
		return
	}
	var req types.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.app.SetPage(c.Request.Context(), id, req.Page)
	h.respondTab(c, t, err)
}

// SetCapacity changes the tab limit
func (h *Handlers) SetCapacity(c *gin.Context) {
	var req types.CapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"capacity": h.app.SetCapacity(c.Request.Context(), req.Capacity)})
}

// ArchiveView describes the archive page for ?address=
func (h *Handlers) ArchiveView(c *gin.Context) {
	addr := c.Query("address")
	if err := utils.ValidateAddress(addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archive": h.app.ArchiveView(c.Request.Context(), addr)})
}

// ArchiveSubmit opens the snapshot of an address in a tab
func (h *Handlers) ArchiveSubmit(c *gin.Context) {
	var req types.ArchiveSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateID(req.TabID, "tab_id", false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.app.ArchiveSubmit(c.Request.Context(), req.TabID, req.Address)
	h.respondTab(c, t, err)
}
