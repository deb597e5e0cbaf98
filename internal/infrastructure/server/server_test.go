package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/api/middleware"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Store.InMemory = true
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false
	return cfg
}

func TestNewServerServesRoutes(t *testing.T) {
	srv, err := NewServer(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	for _, path := range []string{"/", "/health", "/services", "/browser/tabs"} {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewServerRejectsBadSynthetic(t *testing.T) {
	cfg := testConfig()
	cfg.Browser.SyntheticAddresses = []string{"broken"}

	_, err := NewServer(cfg)
	assert.Error(t, err)
}

func TestNewServerRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "etcd"

	_, err := NewServer(cfg)
	assert.Error(t, err)
}

func TestOriginChecker(t *testing.T) {
	assert.Nil(t, originChecker(middleware.DefaultCORSConfig()))

	check := originChecker(middleware.DefaultCORSConfig().WithOrigins([]string{"https://game.example"}))
	require.NotNil(t, check)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://game.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))
}
