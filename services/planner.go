// ABOUTME: Planning orchestrator: validate, build, solve, decode
// ABOUTME: Maps solver statuses to response statuses and runs scenario comparisons

package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stucchio/Cloud-capacity-planning/models"
	"github.com/stucchio/Cloud-capacity-planning/solver"
)

// Planner runs the full planning pipeline. It is stateless apart from its
// collaborators; concurrent Plan calls are safe.
type Planner struct {
	builder            *ModelBuilder
	decoder            *PlanDecoder
	solver             solver.Solver[VarID]
	defaultHorizonDays float64
}

// NewPlanner creates a planner around the given solver. Requests that omit
// horizon_days fall back to defaultHorizonDays.
func NewPlanner(s solver.Solver[VarID], defaultHorizonDays float64) *Planner {
	if defaultHorizonDays <= 0 {
		defaultHorizonDays = 1
	}
	return &Planner{
		builder:            NewModelBuilder(),
		decoder:            NewPlanDecoder(),
		solver:             s,
		defaultHorizonDays: defaultHorizonDays,
	}
}

// Plan solves one planning request.
//
// A ConfigError or DecodeError is returned as an error; solver outcomes
// (infeasible, unbounded, solver failure) are reported as response statuses
// so callers can tell "no feasible plan" from "solver unavailable" from
// "bad input". The planner never retries on its own.
func (p *Planner) Plan(ctx context.Context, req models.PlanRequest) (*models.PlanResponse, error) {
	horizonDays := req.HorizonDays
	if horizonDays == 0 {
		horizonDays = p.defaultHorizonDays
	}

	model, err := p.builder.Build(req.Catalog, req.Schedule, horizonDays)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sol := p.solver.Solve(ctx, model)
	solveTime := time.Since(start)

	resp := &models.PlanResponse{
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			SolveTimeMS: solveTime.Milliseconds(),
		},
	}

	switch sol.Status {
	case solver.Optimal:
		plan, err := p.decoder.Decode(req.Catalog, req.Schedule, sol)
		if err != nil {
			return nil, err
		}
		resp.Status = models.PlanStatusOptimal
		resp.Plan = plan
		resp.OnDemandBaselineCost = onDemandBaseline(req.Catalog, req.Schedule)
		if resp.OnDemandBaselineCost > 0 {
			resp.SavingsPct = (resp.OnDemandBaselineCost - plan.TotalCost) / resp.OnDemandBaselineCost * 100
		}

	case solver.Infeasible:
		// With the on-demand option always available this signals an
		// upstream modeling bug, not a user condition.
		slog.Warn("Planning model infeasible", "periods", len(req.Schedule.Periods), "tiers", len(req.Catalog.Tiers))
		resp.Status = models.PlanStatusInfeasible
		resp.Message = "no assignment satisfies all constraints"

	case solver.Unbounded:
		// Impossible with non-negative costs; treated as an invariant violation.
		slog.Error("Planning model unbounded", "periods", len(req.Schedule.Periods), "tiers", len(req.Catalog.Tiers))
		resp.Status = models.PlanStatusUnbounded
		resp.Message = "objective has no finite minimum"

	default:
		slog.Warn("Solver failed", "error", sol.Message)
		resp.Status = models.PlanStatusError
		resp.Message = sol.Message
	}

	return resp, nil
}

// Compare solves named scenarios concurrently and reports the cheapest
// optimal one. A malformed scenario fails the whole comparison with a
// ConfigError.
func (p *Planner) Compare(ctx context.Context, req models.CompareRequest) (*models.CompareResponse, error) {
	if len(req.Scenarios) == 0 {
		return nil, &ConfigError{Field: "scenarios", Reason: "must not be empty"}
	}
	names := make(map[string]bool, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		if sc.Name == "" {
			return nil, &ConfigError{Field: "scenario.name", Reason: "must not be empty"}
		}
		if names[sc.Name] {
			return nil, &ConfigError{Field: "scenario.name", Reason: "duplicate scenario " + sc.Name}
		}
		names[sc.Name] = true
	}

	results := make([]models.ScenarioOutcome, len(req.Scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range req.Scenarios {
		g.Go(func() error {
			resp, err := p.Plan(gctx, models.PlanRequest{
				Catalog:     sc.Catalog,
				Schedule:    sc.Schedule,
				HorizonDays: sc.HorizonDays,
			})
			if err != nil {
				return err
			}
			results[i] = models.ScenarioOutcome{Name: sc.Name, Response: *resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.CompareResponse{Results: results}
	bestCost := math.Inf(1)
	for _, r := range results {
		if r.Response.Status == models.PlanStatusOptimal && r.Response.Plan.TotalCost < bestCost {
			bestCost = r.Response.Plan.TotalCost
			out.Cheapest = r.Name
		}
	}
	return out, nil
}

// onDemandBaseline is the cost of meeting the schedule with on-demand
// capacity alone: rate * duration * ceil(demand) summed over periods.
func onDemandBaseline(catalog models.PricingCatalog, schedule models.DemandSchedule) float64 {
	total := 0.0
	for _, period := range schedule.Periods {
		total += catalog.OnDemandHourlyRate * period.DurationHours * math.Ceil(period.Demand)
	}
	return total
}
