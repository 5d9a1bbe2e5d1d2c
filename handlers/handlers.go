// ABOUTME: HTTP handlers for the capacity planning API
// ABOUTME: Provides health, status, plan, and comparison endpoints

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stucchio/Cloud-capacity-planning/cache"
	"github.com/stucchio/Cloud-capacity-planning/config"
	"github.com/stucchio/Cloud-capacity-planning/models"
	"github.com/stucchio/Cloud-capacity-planning/services"
	"github.com/stucchio/Cloud-capacity-planning/solver"
)

type Handler struct {
	cfg     *config.Config
	cache   *cache.Cache
	planner *services.Planner
}

// NewHandler wires the planner around the in-repo branch-and-bound solver.
// A nil config falls back to defaults (for testing).
func NewHandler(cfg *config.Config, c *cache.Cache) *Handler {
	bb := solver.NewBranchBound[services.VarID]()
	horizonDays := 1.0
	if cfg != nil {
		bb.MaxNodes = cfg.SolverMaxNodes
		horizonDays = cfg.HorizonDays
	}

	return &Handler{
		cfg:     cfg,
		cache:   c,
		planner: services.NewPlanner(bb, horizonDays),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := map[string]interface{}{
		"status": "ok",
		"solver": "branch-and-bound",
	}
	if h.cache != nil {
		resp["cached_plans"] = h.cache.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}

// Status reports the effective planning defaults so clients can see what a
// request without overrides will get.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"solver": "branch-and-bound",
	}
	if h.cfg != nil {
		status["horizon_days"] = h.cfg.HorizonDays
		status["solver_max_nodes"] = h.cfg.SolverMaxNodes
		status["solver_timeout_seconds"] = h.cfg.SolverTimeout
		status["rate_limit_enabled"] = h.cfg.RateLimitEnabled
	}

	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
