package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers/browser"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/service"
)

const seedYAML = `
records:
  - address: https://facelook.example/john
    template: Social
    title: John on Facelook
    keywords: [facelook, john]
    archivedDate: "2024-03-15"
`

type tabBody struct {
	Tab struct {
		ID          string `json:"id"`
		AddressText string `json:"address_text"`
		Kind        string `json:"kind"`
		Page        struct {
			View   string `json:"view"`
			Search struct {
				Suggestion *struct {
					Suggested string `json:"suggested"`
				} `json:"suggestion"`
			} `json:"search"`
		} `json:"page"`
	} `json:"tab"`
}

func setupRouter(t *testing.T) (*gin.Engine, *browser.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	seedPath := filepath.Join(t.TempDir(), "records.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedYAML), 0o644))

	cfg := browser.DefaultConfig()
	cfg.TabCapacity = 2
	cfg.SeedPath = seedPath
	app := browser.NewApp(cfg, browser.Deps{Store: kv})
	require.NoError(t, app.Hydrate(context.Background()))

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(browser.NewProvider(app)))
	require.NoError(t, registry.Register(providers.NewSystem(app.Cache(), app)))

	router := gin.New()
	NewHandlers(app, registry, nil).Register(router)
	return router, app
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeTab(t *testing.T, w *httptest.ResponseRecorder) tabBody {
	t.Helper()
	var body tabBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "online")

	w = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 1, body["tabs"])
	assert.EqualValues(t, 2, body["tab_capacity"])
}

func TestListServices(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodGet, "/services", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"browser"`)
	assert.Contains(t, w.Body.String(), `"system"`)

	w = do(t, router, http.MethodGet, "/services?category=Bad_Cat", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNavigateAndSearch(t *testing.T) {
	router, app := setupRouter(t)
	id := app.Active().ID

	w := do(t, router, http.MethodPost, "/browser/tabs/"+id+"/navigate", map[string]string{
		"address": "https://facelook.example/john",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeTab(t, w)
	assert.Equal(t, "content", body.Tab.Page.View)
	assert.Equal(t, "https://facelook.example/john", body.Tab.AddressText)

	w = do(t, router, http.MethodPost, "/browser/tabs/"+id+"/search", map[string]interface{}{
		"query": "faceloko",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeTab(t, w)
	assert.Equal(t, "search_results", body.Tab.Page.View)
	require.NotNil(t, body.Tab.Page.Search.Suggestion)
	assert.Equal(t, "facelook", body.Tab.Page.Search.Suggestion.Suggested)

	w = do(t, router, http.MethodPost, "/browser/tabs/"+id+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content", decodeTab(t, w).Tab.Page.View)
}

func TestNavigateRejectsBadInput(t *testing.T) {
	router, app := setupRouter(t)
	id := app.Active().ID

	w := do(t, router, http.MethodPost, "/browser/tabs/"+id+"/navigate", map[string]string{"address": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/browser/tabs/"+id+"/search", map[string]string{"query": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/browser/tabs/missing/navigate", map[string]string{"address": "facelook"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/browser/tabs/bad$id/back", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidAddressIsAPageNotAnError(t *testing.T) {
	router, app := setupRouter(t)

	w := do(t, router, http.MethodPost, "/browser/tabs/"+app.Active().ID+"/navigate", map[string]string{
		"address": "facelook",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", decodeTab(t, w).Tab.Page.View)
}

func TestTabLifecycle(t *testing.T) {
	router, app := setupRouter(t)
	first := app.Active().ID

	w := do(t, router, http.MethodPost, "/browser/tabs", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	second := decodeTab(t, w).Tab.ID
	require.NotEmpty(t, second)

	// capacity 2 reached
	w = do(t, router, http.MethodPost, "/browser/tabs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"opened":false`)

	w = do(t, router, http.MethodPost, "/browser/tabs/"+first+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, app.Active().ID)

	w = do(t, router, http.MethodDelete, "/browser/tabs/"+first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"closed":true`)
	assert.Equal(t, second, app.Active().ID)

	// last tab stays open
	w = do(t, router, http.MethodDelete, "/browser/tabs/"+second, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"closed":false`)

	w = do(t, router, http.MethodGet, "/browser/tabs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), second)
}

func TestSetCapacity(t *testing.T) {
	router, app := setupRouter(t)

	w := do(t, router, http.MethodPut, "/browser/capacity", map[string]int{"capacity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, app.Capacity())

	w = do(t, router, http.MethodPut, "/browser/capacity", map[string]string{"capacity": "many"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveRoutes(t *testing.T) {
	router, app := setupRouter(t)

	w := do(t, router, http.MethodGet, "/archive/view?address=https://web.archiv.org/web/20240101/https://facelook.example/john", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"found":true`)

	w = do(t, router, http.MethodGet, "/archive/view", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/archive/submit", map[string]string{
		"tab_id":  app.Active().ID,
		"address": "https://facelook.example/john",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeTab(t, w)
	assert.Equal(t, "archive_snapshot", body.Tab.Page.View)
	assert.Contains(t, body.Tab.AddressText, "20240315")
}

func TestExecuteService(t *testing.T) {
	router, app := setupRouter(t)
	id := app.Active().ID

	w := do(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "browser.navigate",
		"params":  map[string]interface{}{"address": "https://facelook.example/john"},
		"tab_id":  id,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, "https://facelook.example/john", app.Active().AddressText)

	w = do(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "bad tool",
		"params":  map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "system.ping",
		"params":  map[string]interface{}{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
