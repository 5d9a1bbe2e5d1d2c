// ABOUTME: Configuration loader for the capacity planning service
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Server
	Port         string
	CacheTTL     int // seconds, default for general cache
	PlanCacheTTL int // seconds, for solved plans (default 300s)

	// Planning
	HorizonDays float64 // length of the repeating planning cycle in days (default 1)

	// Solver
	SolverMaxNodes int // branch-and-bound node budget (default 100000)
	SolverTimeout  int // seconds before a solve is cancelled (default 60)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitPlan    int  // Requests per minute for solve endpoints (default: 30)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		CacheTTL:     getEnvInt("CACHE_TTL", 300),
		PlanCacheTTL: getEnvInt("PLAN_CACHE_TTL", 300),

		HorizonDays: getEnvFloat("HORIZON_DAYS", 1),

		SolverMaxNodes: getEnvInt("SOLVER_MAX_NODES", 100000),
		SolverTimeout:  getEnvInt("SOLVER_TIMEOUT", 60),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitPlan:    getEnvInt("RATE_LIMIT_PLAN", 30),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),
	}

	if cfg.HorizonDays <= 0 {
		return nil, fmt.Errorf("HORIZON_DAYS must be positive, got %g", cfg.HorizonDays)
	}
	if cfg.SolverMaxNodes < 1 {
		return nil, fmt.Errorf("SOLVER_MAX_NODES must be at least 1, got %d", cfg.SolverMaxNodes)
	}
	if cfg.SolverTimeout < 1 {
		return nil, fmt.Errorf("SOLVER_TIMEOUT must be at least 1 second, got %d", cfg.SolverTimeout)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_PLAN", cfg.RateLimitPlan},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
