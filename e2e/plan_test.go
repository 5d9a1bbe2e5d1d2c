// ABOUTME: End-to-end tests for the capacity planning API
// ABOUTME: Runs planning requests through the full route table over HTTP

package e2e

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stucchio/Cloud-capacity-planning/cache"
	"github.com/stucchio/Cloud-capacity-planning/config"
	"github.com/stucchio/Cloud-capacity-planning/handlers"
	"github.com/stucchio/Cloud-capacity-planning/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Port:             "8080",
		CacheTTL:         300,
		PlanCacheTTL:     300,
		HorizonDays:      1,
		SolverMaxNodes:   100000,
		SolverTimeout:    60,
		RateLimitEnabled: false,
	}

	handler := handlers.NewHandler(cfg, cache.New(5*time.Minute))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// planRequest is the worked daily-cycle scenario: three 8-hour windows with
// overnight, business-hours, and evening-peak demand, priced against three
// commitment tiers.
func planRequest() models.PlanRequest {
	return models.PlanRequest{
		Catalog: models.PricingCatalog{
			OnDemandHourlyRate: 0.64,
			Tiers: []models.PricingTier{
				{ID: "light", AnnualFixedCost: 552, HourlyCost: 0.312},
				{ID: "medium", AnnualFixedCost: 1280, HourlyCost: 0.192},
				{ID: "heavy", AnnualFixedCost: 1560, HourlyCost: 0.128},
			},
		},
		Schedule: models.DemandSchedule{
			Periods: []models.Period{
				{ID: "night", Demand: 12.2, DurationHours: 8},
				{ID: "morning", Demand: 25.1, DurationHours: 8},
				{ID: "evening", Demand: 53.5, DurationHours: 8},
			},
		},
	}
}

func postPlan(t *testing.T, url string, payload interface{}) (*http.Response, models.PlanResponse) {
	t.Helper()

	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to post plan request: %v", err)
	}
	defer resp.Body.Close()

	var plan models.PlanResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
			t.Fatalf("Failed to decode plan response: %v", err)
		}
	}
	return resp, plan
}

func TestPlanningE2E(t *testing.T) {
	server := newTestServer(t)

	// Step 1: health check
	healthResp, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("Failed to get health: %v", err)
	}
	healthResp.Body.Close()
	if healthResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from health, got %d", healthResp.StatusCode)
	}

	// Step 2: solve the daily cycle
	resp, plan := postPlan(t, server.URL+"/api/v1/plan", planRequest())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if plan.Status != models.PlanStatusOptimal {
		t.Fatalf("Expected optimal plan, got %s (%s)", plan.Status, plan.Message)
	}

	// Optimal mix: 26 heavy (13 all day, 13 morning+evening) and 28 light
	// for the evening peak, fixed costs amortized to one day of the year
	expected := 26*(1560.0/365) + 0.128*8*65 + 28*(552.0/365) + 0.312*8*28
	if math.Abs(plan.Plan.TotalCost-expected) > 1e-6 {
		t.Errorf("Expected total cost %.10f, got %.10f", expected, plan.Plan.TotalCost)
	}

	// Every period must be covered at its ceiled demand
	for _, alloc := range plan.Plan.Periods {
		total := alloc.OnDemand
		for _, v := range alloc.Reserved {
			total += v
		}
		var demand float64
		switch alloc.PeriodID {
		case "night":
			demand = 12.2
		case "morning":
			demand = 25.1
		case "evening":
			demand = 53.5
		default:
			t.Fatalf("Unexpected period %q", alloc.PeriodID)
		}
		if total < math.Ceil(demand)-1e-9 {
			t.Errorf("Period %s under-covered: %g < %g", alloc.PeriodID, total, math.Ceil(demand))
		}
	}

	if plan.SavingsPct <= 0 {
		t.Errorf("Expected positive savings, got %g%%", plan.SavingsPct)
	}
	t.Logf("Plan: cost %.2f vs baseline %.2f (%.1f%% savings), solved in %dms",
		plan.Plan.TotalCost, plan.OnDemandBaselineCost, plan.SavingsPct, plan.Metadata.SolveTimeMS)

	// Step 3: the identical request is served from cache
	resp2, cached := postPlan(t, server.URL+"/api/v1/plan", planRequest())
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 on repeat, got %d", resp2.StatusCode)
	}
	if !cached.Metadata.Cached {
		t.Error("Expected repeated request to be served from cache")
	}
	if math.Abs(cached.Plan.TotalCost-plan.Plan.TotalCost) > 1e-12 {
		t.Errorf("Cached cost %g differs from original %g", cached.Plan.TotalCost, plan.Plan.TotalCost)
	}
}

func TestCompareE2E(t *testing.T) {
	server := newTestServer(t)

	base := planRequest()
	compareReq := models.CompareRequest{
		Scenarios: []models.Scenario{
			{Name: "with-commitments", Catalog: base.Catalog, Schedule: base.Schedule},
			{Name: "on-demand-only", Catalog: models.PricingCatalog{OnDemandHourlyRate: 0.64}, Schedule: base.Schedule},
		},
	}

	body, _ := json.Marshal(compareReq)
	resp, err := http.Post(server.URL+"/api/v1/plan/compare", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to post compare request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var comparison models.CompareResponse
	if err := json.NewDecoder(resp.Body).Decode(&comparison); err != nil {
		t.Fatalf("Failed to decode compare response: %v", err)
	}
	if len(comparison.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(comparison.Results))
	}
	if comparison.Cheapest != "with-commitments" {
		t.Errorf("Expected with-commitments to be cheapest, got %q", comparison.Cheapest)
	}
	for _, r := range comparison.Results {
		if r.Response.Status != models.PlanStatusOptimal {
			t.Errorf("Scenario %s: expected optimal, got %s", r.Name, r.Response.Status)
		}
	}
}

func TestPlanRejectsBadInputE2E(t *testing.T) {
	server := newTestServer(t)

	bad := planRequest()
	bad.Schedule.Periods[0].DurationHours = 0

	resp, _ := postPlan(t, server.URL+"/api/v1/plan", bad)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for zero-duration period, got %d", resp.StatusCode)
	}
}

func TestZeroDemandE2E(t *testing.T) {
	server := newTestServer(t)

	req := planRequest()
	for i := range req.Schedule.Periods {
		req.Schedule.Periods[i].Demand = 0
	}

	resp, plan := postPlan(t, server.URL+"/api/v1/plan", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if plan.Status != models.PlanStatusOptimal {
		t.Fatalf("Expected optimal, got %s", plan.Status)
	}
	if plan.Plan.TotalCost != 0 {
		t.Errorf("Expected zero cost for zero demand, got %g", plan.Plan.TotalCost)
	}
}
