// Package mcp implements the Model Context Protocol (MCP) server for orderseed.
//
// The MCP server exposes four tools:
//   - populate_orders: Generate and store a populate batch
//   - get_status: Report menu, staff and order statistics
//   - list_recent_orders: Show today's orders as the kitchen board sees them
//   - preview_order: Generate orders without storing them
//
// The server communicates with MCP clients via standard input/output.
// Stdout is reserved for the protocol, so all logging goes to stderr.
//
// # Tool: populate_orders
//
//	Request:
//	{
//	  "name": "populate_orders",
//	  "arguments": {
//	    "historical_count": 10000,
//	    "recent_count": 50,
//	    "recent_status": "completed",
//	    "seed_menu": true
//	  }
//	}
//
//	Response:
//	{
//	  "populated": true,
//	  "batch_id": "0b9c...",
//	  "menu_seeded": false,
//	  "historical_orders": 10000,
//	  "recent_orders": 50,
//	  "revenue": 141023.4,
//	  "calendar_rejections": 12877,
//	  "first_order_at": "2023-03-06T11:02:11-05:00",
//	  "last_order_at": "2025-03-04T19:41:50-05:00",
//	  "duration_ms": 913
//	}
//
// The whole batch is written in one transaction. A failure leaves the
// order tables exactly as they were.
//
// # Error Handling
//
// Error codes:
//   - -32602: Invalid params
//   - -32603: Internal error
//   - -32002: Populate already in progress
//   - -32003: Menu or staff missing
//   - -32005: Persistence failed, batch rolled back
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "orderseed": {
//	      "command": "/usr/local/bin/orderseed",
//	      "args": ["serve"],
//	      "env": {
//	        "ORDERSEED_DB_PATH": "/var/lib/orderseed/orders.db"
//	      }
//	    }
//	  }
//	}
package mcp
