package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func request(router *gin.Engine, method, remote, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
		if method == http.MethodOptions {
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := setupTestRouter(CORS(DefaultCORSConfig()))

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{"simple GET with origin", http.MethodGet, "http://localhost:3000", http.StatusOK, true},
		{"preflight", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, true},
		{"no origin", http.MethodGet, "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(router, tt.method, "", tt.origin)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	cfg := DefaultCORSConfig().WithOrigins([]string{"https://game.example"})
	assert.False(t, cfg.AllowsAll())

	router := setupTestRouter(CORS(cfg))

	w := request(router, http.MethodGet, "", "https://game.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://game.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(router, http.MethodGet, "", "https://other.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWithOriginsEmptyKeepsDefault(t *testing.T) {
	cfg := DefaultCORSConfig().WithOrigins(nil)
	assert.True(t, cfg.AllowsAll())
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter(RateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))

	for i := 0; i < 2; i++ {
		w := request(router, http.MethodGet, "192.168.1.1:1234", "")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
	}

	w := request(router, http.MethodGet, "192.168.1.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitDifferentClients(t *testing.T) {
	router := setupTestRouter(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))

	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "192.168.1.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "192.168.1.2:1234", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(router, http.MethodGet, "192.168.1.1:1234", "").Code)
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	now := time.Unix(1700000000, 0)
	set := newLimiterSet(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		IdleTimeout:       time.Minute,
	}, func() time.Time { return now })

	assert.True(t, set.allow("10.0.0.1"))
	assert.True(t, set.allow("10.0.0.2"))
	assert.Equal(t, 2, set.len())

	now = now.Add(30 * time.Second)
	assert.True(t, set.allow("10.0.0.2"))

	now = now.Add(45 * time.Second)
	assert.True(t, set.allow("10.0.0.3"))
	assert.Equal(t, 2, set.len(), "10.0.0.1 was idle past the timeout")
}

func TestGlobalRateLimit(t *testing.T) {
	router := setupTestRouter(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))

	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "192.168.1.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "192.168.1.2:1234", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(router, http.MethodGet, "192.168.1.3:1234", "").Code)
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()

	assert.Equal(t, 100, cfg.RequestsPerSecond)
	assert.Equal(t, 200, cfg.Burst)
	assert.Equal(t, 10*time.Minute, cfg.IdleTimeout)
}
