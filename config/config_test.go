// ABOUTME: Tests for configuration loading
// ABOUTME: Validates defaults, env overrides, and rejection of bad values

package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.HorizonDays != 1 {
		t.Errorf("Expected default horizon 1 day, got %g", cfg.HorizonDays)
	}
	if cfg.SolverMaxNodes != 100000 {
		t.Errorf("Expected default node budget 100000, got %d", cfg.SolverMaxNodes)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HORIZON_DAYS", "7")
	t.Setenv("SOLVER_MAX_NODES", "500")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.HorizonDays != 7 {
		t.Errorf("Expected horizon 7 days, got %g", cfg.HorizonDays)
	}
	if cfg.SolverMaxNodes != 500 {
		t.Errorf("Expected node budget 500, got %d", cfg.SolverMaxNodes)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}
}

func TestLoad_InvalidHorizon(t *testing.T) {
	t.Setenv("HORIZON_DAYS", "-2")

	if _, err := Load(); err == nil {
		t.Error("Expected error for negative horizon, got nil")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_PLAN", "0")

	if _, err := Load(); err == nil {
		t.Error("Expected error for out-of-range rate limit, got nil")
	}
}

func TestLoad_MalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("SOLVER_TIMEOUT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SolverTimeout != 60 {
		t.Errorf("Expected default timeout 60, got %d", cfg.SolverTimeout)
	}
}
