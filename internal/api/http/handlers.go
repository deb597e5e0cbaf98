package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/archive"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/tabs"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/tracing"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers/browser"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/service"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// Handlers serves the browser and service registry over HTTP
type Handlers struct {
	app      *browser.App
	registry *service.Registry
	logger   *logging.Logger
}

// NewHandlers creates HTTP handlers
func NewHandlers(app *browser.App, registry *service.Registry, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{app: app, registry: registry, logger: logger}
}

// Register mounts every route on router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Service management
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)

	// Tabs
	router.GET("/browser/tabs", h.ListTabs)
	router.POST("/browser/tabs", h.NewTab)
	router.GET("/browser/tabs/:id", h.GetTab)
	router.DELETE("/browser/tabs/:id", h.CloseTab)
	router.POST("/browser/tabs/:id/activate", h.ActivateTab)
	router.POST("/browser/tabs/:id/navigate", h.Navigate)
	router.POST("/browser/tabs/:id/search", h.Search)
	router.POST("/browser/tabs/:id/back", h.Back)
	router.POST("/browser/tabs/:id/forward", h.Forward)
	router.POST("/browser/tabs/:id/page", h.SetPage)
	router.PUT("/browser/capacity", h.SetCapacity)

	// Archive
	router.GET("/archive/view", h.ArchiveView)
	router.POST("/archive/submit", h.ArchiveSubmit)
}

// Root handles basic liveness
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Simulated Browser Service (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"tabs":             len(h.app.Tabs()),
		"tab_capacity":     h.app.Capacity(),
		"cache":            h.app.Cache().Stats(),
		"service_registry": h.registry.Stats(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverRequest is a free-text service lookup
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}

// DiscoverServices finds services relevant to an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"intent":   req.Intent,
		"services": h.registry.Discover(req.Intent, req.Limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var appCtx *types.Context
	if req.TabID != nil {
		if err := utils.ValidateID(*req.TabID, "tab_id", false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		appCtx = &types.Context{TabID: req.TabID}
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		h.logger.Warn("Service execution failed",
			tracing.Field(c.Request.Context()),
			zap.String("tool_id", req.ToolID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, tabs.ErrTabNotFound):
		return http.StatusNotFound
	case errors.Is(err, browser.ErrEmptyQuery), errors.Is(err, archive.ErrEmptyAddress):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			tracing.Field(c.Request.Context()),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
