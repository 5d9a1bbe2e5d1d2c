// ABOUTME: HTTP handlers for planning and scenario comparison endpoints
// ABOUTME: Decodes requests, drives the planner, and maps errors to status codes

package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/stucchio/Cloud-capacity-planning/models"
	"github.com/stucchio/Cloud-capacity-planning/services"
)

// maxRequestBody caps planning request bodies at 1 MiB.
const maxRequestBody = 1 << 20

// HandlePlan solves one planning request. Identical request bodies are
// served from the plan cache.
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.PlanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	cacheKey := planCacheKey(body)
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			slog.Debug("Plan cache hit", "key", cacheKey)
			resp := cached.(models.PlanResponse)
			resp.Metadata.Cached = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	ctx := r.Context()
	if h.cfg != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(h.cfg.SolverTimeout)*time.Second)
		defer cancel()
	}

	resp, err := h.planner.Plan(ctx, req)
	if err != nil {
		h.writePlannerError(w, err)
		return
	}

	if h.cache != nil && resp.Status == models.PlanStatusOptimal {
		ttl := 300 * time.Second
		if h.cfg != nil {
			ttl = time.Duration(h.cfg.PlanCacheTTL) * time.Second
		}
		h.cache.SetWithTTL(cacheKey, *resp, ttl)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCompare solves several named scenarios side by side.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CompareRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.cfg != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(h.cfg.SolverTimeout)*time.Second)
		defer cancel()
	}

	resp, err := h.planner.Compare(ctx, req)
	if err != nil {
		h.writePlannerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writePlannerError maps planner errors onto HTTP statuses: bad input is the
// caller's to fix, a decode mismatch is ours.
func (h *Handler) writePlannerError(w http.ResponseWriter, err error) {
	var cfgErr *services.ConfigError
	if errors.As(err, &cfgErr) {
		writeError(w, cfgErr.Error(), http.StatusBadRequest)
		return
	}

	var decErr *services.DecodeError
	if errors.As(err, &decErr) {
		slog.Error("Internal decode failure", "error", decErr)
		writeError(w, "Internal planning error", http.StatusInternalServerError)
		return
	}

	slog.Error("Planning failed", "error", err)
	writeError(w, "Planning failed", http.StatusInternalServerError)
}

func planCacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return "plan:" + hex.EncodeToString(sum[:])
}
