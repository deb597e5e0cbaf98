package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/tabs"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/monitoring"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers/browser"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

const (
	writeTimeout   = 10 * time.Second
	commandTimeout = 30 * time.Second
	eventBuffer    = 64
)

var errUnknownType = errors.New("unknown message type")

// Handler streams browser events to websocket clients and accepts commands
type Handler struct {
	app      *browser.App
	upgrader websocket.Upgrader
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a websocket handler. checkOrigin nil allows any origin.
func NewHandler(app *browser.App, logger *logging.Logger, metrics *monitoring.Metrics, checkOrigin func(*http.Request) bool) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		app:      app,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		logger:   logger.Named("ws"),
		metrics:  metrics,
	}
}

// conn serializes writes; gorilla allows one concurrent writer
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(data)
}

// HandleConnection upgrades the request and serves it until the client leaves
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	cn := &conn{ws: ws}
	events, cancel := h.app.Subscribe(eventBuffer)
	defer cancel()

	ctx, stop := context.WithCancel(c.Request.Context())
	defer stop()

	h.reply(cn, gin.H{
		"type":      "snapshot",
		"tabs":      h.app.Tabs(),
		"active_id": h.app.Active().ID,
		"capacity":  h.app.Capacity(),
	})

	go h.forward(ctx, cn, events)

	for {
		var msg types.WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.metrics.RecordWSMessage("in", msg.Type)
		h.handle(ctx, cn, msg)
	}
}

// forward pushes browser events until the subscription closes
func (h *Handler) forward(ctx context.Context, cn *conn, events <-chan browser.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.reply(cn, gin.H{"type": "event", "event": ev})
		}
	}
}

func (h *Handler) handle(ctx context.Context, cn *conn, msg types.WSMessage) {
	if msg.Type == "ping" {
		h.reply(cn, gin.H{"type": "pong", "timestamp": time.Now().Unix()})
		return
	}

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	t, err := h.execute(cmdCtx, msg)
	if err != nil {
		h.reply(cn, gin.H{"type": "error", "request": msg.Type, "error": err.Error()})
		return
	}
	h.reply(cn, gin.H{"type": "tab", "request": msg.Type, "tab": t})
}

func (h *Handler) execute(ctx context.Context, msg types.WSMessage) (tabs.Tab, error) {
	switch msg.Type {
	case "navigate":
		return h.app.Navigate(ctx, msg.TabID, msg.Address)
	case "search":
		return h.app.Search(ctx, msg.TabID, msg.Query, msg.SkipSuggestion)
	case "back":
		return h.app.Back(ctx, msg.TabID)
	case "forward":
		return h.app.Forward(ctx, msg.TabID)
	case "page":
		return h.app.SetPage(ctx, msg.TabID, msg.Page)
	case "address_text":
		return h.app.SetAddressText(ctx, msg.TabID, msg.Address)
	case "switch_tab":
		return h.app.SwitchTab(ctx, msg.TabID)
	case "new_tab":
		t, ok := h.app.NewTab(ctx)
		if !ok {
			return tabs.Tab{}, errors.New("tab capacity reached")
		}
		return t, nil
	case "archive_submit":
		return h.app.ArchiveSubmit(ctx, msg.TabID, msg.Address)
	default:
		return tabs.Tab{}, errUnknownType
	}
}

func (h *Handler) reply(cn *conn, data gin.H) {
	if err := cn.send(data); err != nil {
		h.logger.Debug("WebSocket write failed", zap.Error(err))
		return
	}
	if typ, ok := data["type"].(string); ok {
		h.metrics.RecordWSMessage("out", typ)
	}
}
