// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes and registers them with shared middleware

package handlers

import (
	"net/http"
	"time"

	"github.com/stucchio/Cloud-capacity-planning/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Solve   bool             // true for endpoints that run the solver (stricter rate limit)
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/status", Handler: h.Status},

		// Planning
		{Method: http.MethodPost, Path: "/api/v1/plan", Handler: h.HandlePlan, Solve: true},
		{Method: http.MethodPost, Path: "/api/v1/plan/compare", Handler: h.HandleCompare, Solve: true},
	}
}

// RegisterRoutes attaches all routes to the mux with logging, CORS, and
// rate limiting applied outermost-first.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	var defaultLimiter, solveLimiter *middleware.RateLimiter
	if h.cfg != nil && h.cfg.RateLimitEnabled {
		defaultLimiter = middleware.NewRateLimiter(h.cfg.RateLimitDefault, time.Minute)
		solveLimiter = middleware.NewRateLimiter(h.cfg.RateLimitPlan, time.Minute)
	}

	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.Solve {
			limiter = solveLimiter
		}
		mux.HandleFunc(route.Path, middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.CORS,
			middleware.RateLimit(limiter),
		))
	}
}
