package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows any origin to drive the browser API.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Content-Length",
			"Accept",
			"Origin",
			"Cache-Control",
			"X-Requested-With",
		},
		MaxAge: 12 * time.Hour,
	}
}

// WithOrigins returns a copy restricted to origins. An empty list keeps the
// current setting.
func (c CORSConfig) WithOrigins(origins []string) CORSConfig {
	if len(origins) > 0 {
		c.AllowOrigins = append([]string(nil), origins...)
	}
	return c
}

// AllowsAll reports whether any origin is accepted.
func (c CORSConfig) AllowsAll() bool {
	for _, o := range c.AllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// CORS creates a CORS middleware with the provided configuration.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	if cfg.AllowsAll() {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    cfg.AllowMethods,
			AllowHeaders:    cfg.AllowHeaders,
			MaxAge:          cfg.MaxAge,
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
