package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderseed/internal/config"
	"github.com/dshills/orderseed/internal/metrics"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "data", "orders.db")
	cfg.Location = time.UTC

	server, err := NewServer(cfg, metrics.NewCollector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func requireMCPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, code, mcpErr.Code)
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	assert.NotNil(t, server.mcp)
	assert.NotNil(t, server.Storage())
	assert.NotNil(t, server.Seeder())
	assert.NotEmpty(t, server.menu.Sellables)
}

func TestNewServer_BadWeightsFile(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "orders.db")
	cfg.WeightsFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewServer(cfg, nil)
	assert.Error(t, err)
}

func TestHandlePopulateOrders(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handlePopulateOrders(ctx, callRequest("populate_orders", map[string]interface{}{
		"historical_count": float64(40),
		"recent_count":     float64(5),
		"recent_status":    "pending",
	}))
	require.NoError(t, err)

	resp := decodeResult(t, result)
	assert.Equal(t, true, resp["populated"])
	assert.Equal(t, true, resp["menu_seeded"])
	assert.Equal(t, float64(40), resp["historical_orders"])
	assert.NotEmpty(t, resp["batch_id"])
	assert.Contains(t, resp, "first_order_at")

	// Today may be closed, in which case no recent orders are made
	recent := resp["recent_orders"].(float64)
	assert.True(t, recent == 0 || recent == 5, "recent_orders = %v", recent)

	count, err := server.Storage().CountOrders(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 40+int(recent), count)

	// Menu is only seeded once
	result, err = server.handlePopulateOrders(ctx, callRequest("populate_orders", map[string]interface{}{
		"historical_count": float64(10),
		"recent_count":     float64(0),
	}))
	require.NoError(t, err)
	resp = decodeResult(t, result)
	assert.Equal(t, false, resp["menu_seeded"])
	assert.Equal(t, float64(10), resp["historical_orders"])
}

func TestHandlePopulateOrders_InvalidParams(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"negative historical", map[string]interface{}{"historical_count": float64(-1)}},
		{"recent too large", map[string]interface{}{"recent_count": float64(maxPopulateCount + 1)}},
		{"unknown status", map[string]interface{}{"recent_status": "shipped"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := server.handlePopulateOrders(ctx, callRequest("populate_orders", tt.args))
			requireMCPError(t, err, ErrorCodeInvalidParams)
		})
	}

	count, err := server.Storage().CountOrders(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandlePopulateOrders_MenuNotSeeded(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handlePopulateOrders(context.Background(), callRequest("populate_orders", map[string]interface{}{
		"historical_count": float64(5),
		"seed_menu":        false,
	}))
	requireMCPError(t, err, ErrorCodeMenuNotSeeded)
}

func TestHandleGetStatus(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleGetStatus(ctx, callRequest("get_status", nil))
	require.NoError(t, err)
	resp := decodeResult(t, result)
	assert.Equal(t, false, resp["populate_running"])
	health := resp["health"].(map[string]interface{})
	assert.Equal(t, true, health["database_accessible"])
	assert.Equal(t, false, health["menu_seeded"])

	_, err = server.handlePopulateOrders(ctx, callRequest("populate_orders", map[string]interface{}{
		"historical_count": float64(25),
		"recent_count":     float64(0),
	}))
	require.NoError(t, err)

	result, err = server.handleGetStatus(ctx, callRequest("get_status", nil))
	require.NoError(t, err)
	resp = decodeResult(t, result)

	menu := resp["menu"].(map[string]interface{})
	assert.Equal(t, float64(len(server.menu.Sellables)), menu["sellables_count"])
	orders := resp["orders"].(map[string]interface{})
	assert.Equal(t, float64(25), orders["orders_count"])
	assert.Equal(t, float64(1), orders["batches_count"])
	assert.Contains(t, orders, "first_order_at")
	health = resp["health"].(map[string]interface{})
	assert.Equal(t, true, health["menu_seeded"])
}

func TestHandleListRecentOrders(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, err := server.handlePopulateOrders(ctx, callRequest("populate_orders", map[string]interface{}{
		"historical_count": float64(20),
		"recent_count":     float64(8),
		"recent_status":    "in_progress",
	}))
	require.NoError(t, err)

	recentTotal, err := server.Storage().CountOrders(ctx, nil)
	require.NoError(t, err)
	recentTotal -= 20

	result, err := server.handleListRecentOrders(ctx, callRequest("list_recent_orders", map[string]interface{}{
		"limit": float64(5),
	}))
	require.NoError(t, err)
	resp := decodeResult(t, result)

	want := recentTotal
	if want > 5 {
		want = 5
	}
	assert.Equal(t, float64(want), resp["count"])
	for _, raw := range resp["orders"].([]interface{}) {
		order := raw.(map[string]interface{})
		assert.Equal(t, "in_progress", order["status"])
		assert.NotEmpty(t, order["sellables"])
	}

	// Filtering on another status finds nothing
	result, err = server.handleListRecentOrders(ctx, callRequest("list_recent_orders", map[string]interface{}{
		"status": "cancelled",
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(0), decodeResult(t, result)["count"])
}

func TestHandleListRecentOrders_InvalidParams(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, err := server.handleListRecentOrders(ctx, callRequest("list_recent_orders", map[string]interface{}{
		"limit": float64(0),
	}))
	requireMCPError(t, err, ErrorCodeInvalidParams)

	_, err = server.handleListRecentOrders(ctx, callRequest("list_recent_orders", map[string]interface{}{
		"status": "shipped",
	}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestHandlePreviewOrder(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	// Nothing to sample from before the menu exists
	_, err := server.handlePreviewOrder(ctx, callRequest("preview_order", nil))
	requireMCPError(t, err, ErrorCodeMenuNotSeeded)

	_, err = server.SeedMenu(ctx)
	require.NoError(t, err)

	result, err := server.handlePreviewOrder(ctx, callRequest("preview_order", map[string]interface{}{
		"count": float64(3),
	}))
	require.NoError(t, err)
	resp := decodeResult(t, result)
	assert.Equal(t, false, resp["persisted"])

	orders := resp["orders"].([]interface{})
	require.Len(t, orders, 3)
	for _, raw := range orders {
		order := raw.(map[string]interface{})
		assert.NotEmpty(t, order["customer_name"])
		assert.NotEmpty(t, order["sellables"])
		assert.NotContains(t, order, "status")
	}

	count, err := server.Storage().CountOrders(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = server.handlePreviewOrder(ctx, callRequest("preview_order", map[string]interface{}{
		"count": float64(21),
	}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestPopulateError(t *testing.T) {
	requireMCPError(t, populateError(assert.AnError), ErrorCodeInternalError)
}
