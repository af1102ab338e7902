package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/orderseed/internal/sampler"
	"github.com/dshills/orderseed/internal/seeder"
	"github.com/dshills/orderseed/internal/storage"
	"github.com/dshills/orderseed/internal/synthesizer"
	"github.com/dshills/orderseed/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodePopulateInProgress = -32002 // Another populate run is already running
	ErrorCodeMenuNotSeeded      = -32003 // Menu or staff missing, nothing to sample from
	ErrorCodePersistenceFailed  = -32005 // Batch write failed and was rolled back
)

const maxPopulateCount = 1000000

var orderStatuses = []string{
	string(types.StatusPending),
	string(types.StatusInProgress),
	string(types.StatusCompleted),
	string(types.StatusCancelled),
}

// handlePopulateOrders handles the populate_orders tool invocation
func (s *Server) handlePopulateOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	run := s.seeder.Config()
	run.HistoricalCount = getIntDefault(args, "historical_count", run.HistoricalCount)
	run.RecentCount = getIntDefault(args, "recent_count", run.RecentCount)
	for param, n := range map[string]int{"historical_count": run.HistoricalCount, "recent_count": run.RecentCount} {
		if n < 0 || n > maxPopulateCount {
			return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("%s must be between 0 and %d", param, maxPopulateCount), map[string]interface{}{
				"param": param,
				"value": n,
			})
		}
	}

	status := types.OrderStatus(getStringDefault(args, "recent_status", string(run.RecentStatus)))
	if !status.Valid() {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid recent_status", map[string]interface{}{
			"param":   "recent_status",
			"value":   status,
			"allowed": orderStatuses,
		})
	}
	run.RecentStatus = status

	menuSeeded := false
	if getBoolDefault(args, "seed_menu", true) {
		menuSeeded, err = s.SeedMenu(ctx)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to seed menu", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	stats, err := s.seeder.Populate(ctx, &run)
	if err != nil {
		log.Printf("populate failed: %v", err)
		return nil, populateError(err)
	}
	log.Printf("populate %s: %d historical, %d recent orders in %v",
		stats.BatchID, stats.HistoricalOrders, stats.RecentOrders, stats.Duration)

	response := map[string]interface{}{
		"populated":           true,
		"batch_id":            stats.BatchID,
		"menu_seeded":         menuSeeded,
		"historical_orders":   stats.HistoricalOrders,
		"recent_orders":       stats.RecentOrders,
		"revenue":             stats.Revenue,
		"calendar_rejections": stats.CalendarRejections,
		"duration_ms":         stats.Duration.Milliseconds(),
	}
	if !stats.FirstOrderAt.IsZero() {
		response["first_order_at"] = stats.FirstOrderAt.Format(time.RFC3339)
		response["last_order_at"] = stats.LastOrderAt.Format(time.RFC3339)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// populateError maps seeder failures to MCP errors
func populateError(err error) error {
	data := map[string]interface{}{"error": err.Error()}
	switch {
	case errors.Is(err, seeder.ErrPopulateInProgress):
		return newMCPError(ErrorCodePopulateInProgress, "populate already in progress", nil)
	case errors.Is(err, seeder.ErrInvalidCount), errors.Is(err, types.ErrInvalidStatus):
		return newMCPError(ErrorCodeInvalidParams, "invalid populate parameters", data)
	case errors.Is(err, sampler.ErrEmptyDistribution), errors.Is(err, synthesizer.ErrNoEmployees):
		return newMCPError(ErrorCodeMenuNotSeeded, "menu or staff missing; populate with seed_menu=true", data)
	case errors.Is(err, seeder.ErrPersistenceFailure):
		return newMCPError(ErrorCodePersistenceFailed, "failed to store orders, nothing was written", data)
	default:
		return newMCPError(ErrorCodeInternalError, "populate failed", data)
	}
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.storage.GetStatus(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	orders := map[string]interface{}{
		"orders_count":  status.OrdersCount,
		"recent_count":  status.RecentCount,
		"batches_count": status.BatchesCount,
		"revenue":       status.Revenue,
	}
	if !status.FirstOrderAt.IsZero() {
		orders["first_order_at"] = status.FirstOrderAt.Format(time.RFC3339)
		orders["last_order_at"] = status.LastOrderAt.Format(time.RFC3339)
	}

	response := map[string]interface{}{
		"schema_version":   status.SchemaVersion,
		"populate_running": s.seeder.Running(),
		"menu": map[string]interface{}{
			"categories_count": status.CategoriesCount,
			"sellables_count":  status.SellablesCount,
			"items_count":      status.ItemsCount,
			"employees_count":  status.EmployeesCount,
		},
		"orders":           orders,
		"database_size_mb": fmt.Sprintf("%.2f", status.DatabaseSizeMB),
		"health": map[string]interface{}{
			"database_accessible": status.Health.DatabaseAccessible,
			"menu_seeded":         status.Health.MenuSeeded,
			"employees_available": status.Health.EmployeesAvailable,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListRecentOrders handles the list_recent_orders tool invocation
func (s *Server) handleListRecentOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	limit := getIntDefault(args, "limit", 20)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	filter := &storage.OrderFilter{RecentOnly: true, Limit: limit}
	if raw := getStringDefault(args, "status", ""); raw != "" {
		status := types.OrderStatus(raw)
		if !status.Valid() {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid status", map[string]interface{}{
				"param":   "status",
				"value":   raw,
				"allowed": orderStatuses,
			})
		}
		filter.Status = status
	}

	orders, err := s.storage.ListOrders(ctx, filter)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list orders", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, 0, len(orders))
	for _, o := range orders {
		// Load the lines for the board
		full, err := s.storage.GetOrder(ctx, o.ID)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to load order", map[string]interface{}{
				"order_id": o.ID,
				"error":    err.Error(),
			})
		}
		results = append(results, storedOrderJSON(full))
	}

	response := map[string]interface{}{
		"count":  len(results),
		"orders": results,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handlePreviewOrder handles the preview_order tool invocation
func (s *Server) handlePreviewOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	count := getIntDefault(args, "count", 1)
	if count < 1 || count > 20 {
		return nil, newMCPError(ErrorCodeInvalidParams, "count must be between 1 and 20", map[string]interface{}{
			"param": "count",
			"value": count,
		})
	}

	specs, err := s.seeder.GenerateBatch(ctx, count, 0)
	if err != nil {
		return nil, populateError(err)
	}

	results := make([]map[string]interface{}, 0, len(specs))
	for _, spec := range specs {
		results = append(results, specJSON(spec))
	}

	response := map[string]interface{}{
		"persisted": false,
		"orders":    results,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// arguments extracts the argument map. Every tool has only optional
// parameters, so a missing map is treated as empty.
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

func specJSON(spec types.OrderSpec) map[string]interface{} {
	out := map[string]interface{}{
		"customer_name": spec.CustomerName,
		"employee_id":   spec.EmployeeID,
		"ordered_at":    spec.OrderedAt.Format(time.RFC3339),
		"total_price":   spec.TotalPrice,
		"sellables":     sellablesJSON(spec.Sellables),
	}
	if spec.Recent != nil {
		out["status"] = spec.Recent.Status
	}
	return out
}

func storedOrderJSON(o *storage.Order) map[string]interface{} {
	out := map[string]interface{}{
		"id":            o.ID,
		"batch_id":      o.BatchID,
		"customer_name": o.CustomerName,
		"employee_id":   o.EmployeeID,
		"ordered_at":    o.OrderedAt.Format(time.RFC3339),
		"total_price":   o.TotalPrice,
		"sellables":     sellablesJSON(o.Sellables),
	}
	if o.Status != nil {
		out["status"] = *o.Status
	}
	return out
}

func sellablesJSON(sold []types.SoldSellable) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(sold))
	for _, s := range sold {
		items := make([]map[string]interface{}, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, map[string]interface{}{
				"name":     it.Name,
				"quantity": it.Quantity,
			})
		}
		out = append(out, map[string]interface{}{
			"name":     s.Name,
			"category": s.Category,
			"price":    s.Price,
			"items":    items,
		})
	}
	return out
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
