package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/orderseed/internal/calendar"
	"github.com/dshills/orderseed/internal/config"
	"github.com/dshills/orderseed/internal/menu"
	"github.com/dshills/orderseed/internal/metrics"
	"github.com/dshills/orderseed/internal/seeder"
	"github.com/dshills/orderseed/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "orderseed"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	storage storage.Storage
	seeder  *seeder.Seeder
	menu    menu.Menu
}

// NewServer opens the store described by cfg and creates a new MCP server
// instance. collector may be nil.
func NewServer(cfg *config.Config, collector *metrics.Collector) (*Server, error) {
	s, err := Open(cfg, collector)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)
	s.mcp = mcpServer

	// Register tools
	if err := s.registerTools(); err != nil {
		_ = s.storage.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Open wires storage, calendar and seeder from cfg without an MCP
// transport. The CLI uses it for one-shot commands.
func Open(cfg *config.Config, collector *metrics.Collector) (*Server, error) {
	tables, schedule, err := cfg.Weights()
	if err != nil {
		return nil, fmt.Errorf("failed to load weights: %w", err)
	}
	cal, err := calendar.New(schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}

	// Create directory if it doesn't exist
	if dir := filepath.Dir(cfg.DBPath); dir != "." && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Initialize storage
	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	run := seeder.DefaultConfig()
	run.HistoricalCount = cfg.HistoricalCount
	run.RecentCount = cfg.RecentCount
	seed := seeder.New(store, cal, tables, seeder.WithConfig(run), seeder.WithMetrics(collector))

	return &Server{
		storage: store,
		seeder:  seed,
		menu:    menu.Default(),
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.Close() }()
	return server.ServeStdio(s.mcp)
}

// Close releases the store
func (s *Server) Close() error {
	return s.storage.Close()
}

// Storage returns the underlying store
func (s *Server) Storage() storage.Storage {
	return s.storage
}

// Seeder returns the populate orchestrator
func (s *Server) Seeder() *seeder.Seeder {
	return s.seeder
}

// SeedMenu writes the default menu if the store has none
func (s *Server) SeedMenu(ctx context.Context) (bool, error) {
	return menu.Seed(ctx, s.storage, s.menu)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	// Register populate_orders tool
	s.mcp.AddTool(populateOrdersTool(), s.handlePopulateOrders)

	// Register get_status tool
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	// Register list_recent_orders tool
	s.mcp.AddTool(listRecentOrdersTool(), s.handleListRecentOrders)

	// Register preview_order tool
	s.mcp.AddTool(previewOrderTool(), s.handlePreviewOrder)

	return nil
}
