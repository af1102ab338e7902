package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// populateOrdersTool returns the tool definition for populate_orders
func populateOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "populate_orders",
		Description: "Generate synthetic historical orders plus today's in-flight orders and store them in one transaction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"historical_count": map[string]interface{}{
					"type":        "integer",
					"description": "Orders spread over the last two years of business days (default from ORDERSEED_HISTORICAL_COUNT)",
					"minimum":     0,
					"maximum":     maxPopulateCount,
				},
				"recent_count": map[string]interface{}{
					"type":        "integer",
					"description": "Orders placed today; none are generated when the store is closed today",
					"minimum":     0,
					"maximum":     maxPopulateCount,
				},
				"recent_status": map[string]interface{}{
					"type":        "string",
					"description": "Status given to today's orders",
					"enum":        orderStatuses,
					"default":     "completed",
				},
				"seed_menu": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, write the default menu and staff first when the store has none",
					"default":     true,
				},
			},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report menu, staff and order counts of the store",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// listRecentOrdersTool returns the tool definition for list_recent_orders
func listRecentOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_recent_orders",
		Description: "List today's in-flight orders the way the kitchen board shows them, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"status": map[string]interface{}{
					"type":        "string",
					"description": "Only orders with this status",
					"enum":        orderStatuses,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of orders to return (1-100)",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}

// previewOrderTool returns the tool definition for preview_order
func previewOrderTool() mcp.Tool {
	return mcp.Tool{
		Name:        "preview_order",
		Description: "Synthesize sample orders from the stored menu without saving them",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of orders to synthesize (1-20)",
					"default":     1,
					"minimum":     1,
					"maximum":     20,
				},
			},
		},
	}
}
