package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/orderseed/internal/config"
	"github.com/dshills/orderseed/internal/mcp"
	"github.com/dshills/orderseed/internal/metrics"
	"github.com/dshills/orderseed/internal/storage"
	"github.com/dshills/orderseed/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("orderseed\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	// Log to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, collector)
	}

	switch command {
	case "serve":
		err = serve(cfg, collector)
	case "populate":
		err = populate(cfg, collector, args)
	case "preview":
		err = preview(cfg, collector, args)
	default:
		fmt.Fprintf(os.Stderr, "usage: orderseed [--version] [serve|populate|preview] [flags]\n")
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func serveMetrics(addr string, collector *metrics.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Printf("Metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Metrics server error: %v", err)
	}
}

func serve(cfg *config.Config, collector *metrics.Collector) error {
	log.Printf("orderseed MCP server v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s, Database: %s",
		storage.BuildMode, storage.DriverName, cfg.DBPath)

	server, err := mcp.NewServer(cfg, collector)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

func populate(cfg *config.Config, collector *metrics.Collector, args []string) error {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	historical := fs.Int("historical", cfg.HistoricalCount, "orders spread over the history window")
	recent := fs.Int("recent", cfg.RecentCount, "orders placed today")
	status := fs.String("status", string(types.StatusCompleted), "status given to today's orders")
	seedMenu := fs.Bool("seed-menu", true, "write the default menu when the store has none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server, err := mcp.Open(cfg, collector)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *seedMenu {
		seeded, err := server.SeedMenu(ctx)
		if err != nil {
			return err
		}
		if seeded {
			log.Printf("Seeded default menu into %s", cfg.DBPath)
		}
	}

	run := server.Seeder().Config()
	run.HistoricalCount = *historical
	run.RecentCount = *recent
	run.RecentStatus = types.OrderStatus(*status)

	stats, err := server.Seeder().Populate(ctx, &run)
	if err != nil {
		return err
	}
	log.Printf("Batch %s: %d historical, %d recent orders, revenue %.2f, %d calendar rejections, took %v",
		stats.BatchID, stats.HistoricalOrders, stats.RecentOrders, stats.Revenue,
		stats.CalendarRejections, stats.Duration)
	return nil
}

func preview(cfg *config.Config, collector *metrics.Collector, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	count := fs.Int("n", 1, "orders to generate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server, err := mcp.Open(cfg, collector)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()

	specs, err := server.Seeder().GenerateBatch(context.Background(), *count, 0)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(specs)
}
