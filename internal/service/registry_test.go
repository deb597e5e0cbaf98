package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/monitoring"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

type mockProvider struct {
	id       string
	category types.Category
	fail     bool
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryArchive
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing snapshots",
		Category:     category,
		Capabilities: []string{"lookup", "snapshot"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if m.fail {
		msg := "failed"
		return &types.Result{Success: false, Error: &msg}, nil
	}
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	_, ok := r.Get("test")
	assert.True(t, ok)

	assert.Error(t, r.Register(&mockProvider{id: ""}))

	r.Unregister("test")
	_, ok = r.Get("test")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "b"})
	r.Register(&mockProvider{id: "a"})
	r.Register(&mockProvider{id: "c", category: types.CategorySystem})

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, "a", services[0].ID)

	cat := types.CategoryArchive
	assert.Len(t, r.List(&cat), 2)
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "archive"})
	r.Register(&mockProvider{id: "other", category: types.CategorySystem})

	results := r.Discover("open archive snapshot", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "archive", results[0].ID)

	assert.Len(t, r.Discover("open archive snapshot", 1), 1)
}

func TestExecute(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	r := NewRegistry().WithMetrics(metrics)
	r.Register(&mockProvider{id: "test"})
	ctx := context.Background()

	result, err := r.Execute(ctx, "test.test", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "test.test", result.Data["tool"])

	result, err = r.Execute(ctx, "missing.tool", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)

	result, err = r.Execute(ctx, "notool", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2", category: types.CategorySystem})

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"archive": 1, "system": 1}, stats["categories"])
}
