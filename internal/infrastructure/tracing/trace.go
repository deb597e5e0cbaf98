package tracing

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
)

// Header carries the request id in both directions
const Header = "X-Request-ID"

type ctxKey struct{}

// WithRequestID stores id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by the middleware, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Field is a zap field for the request id in ctx
func Field(ctx context.Context) zap.Field {
	return zap.String("request_id", RequestID(ctx))
}

// Options tunes the middleware
type Options struct {
	// SlowThreshold logs requests slower than this at warn level
	SlowThreshold time.Duration
	Logger        *logging.Logger
}

// Middleware tags every request with an id, echoes it in the response and
// logs one line per request.
func Middleware(opts Options) gin.HandlerFunc {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("http")

	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), id))
		c.Header(Header, id)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", elapsed),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request failed", fields...)
		case opts.SlowThreshold > 0 && elapsed > opts.SlowThreshold:
			logger.Warn("Slow request", fields...)
		default:
			logger.Debug("Request served", fields...)
		}
	}
}
