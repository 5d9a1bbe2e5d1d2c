// ABOUTME: Entry point for the capacity planning backend service
// ABOUTME: Provides HTTP API for provisioning plan optimization

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/stucchio/Cloud-capacity-planning/cache"
	"github.com/stucchio/Cloud-capacity-planning/config"
	"github.com/stucchio/Cloud-capacity-planning/handlers"
	"github.com/stucchio/Cloud-capacity-planning/logger"
)

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}

	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting capacity planning service")
	slog.Info("Planning defaults", "horizon_days", cfg.HorizonDays,
		"solver_max_nodes", cfg.SolverMaxNodes, "solver_timeout", cfg.SolverTimeout)
	if !cfg.RateLimitEnabled {
		slog.Warn("Rate limiting disabled")
	}

	// Initialize plan cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	// Initialize handlers and routes
	h := handlers.NewHandler(cfg, c)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
