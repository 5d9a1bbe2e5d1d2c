// ABOUTME: Tests for the plan and compare commands
// ABOUTME: Verifies request loading, output formatting, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stucchio/Cloud-capacity-planning/models"
)

func writeRequestFile(t *testing.T, req models.PlanRequest) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	data, _ := json.Marshal(req)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write request file: %v", err)
	}
	return path
}

func TestLoadPlanRequest(t *testing.T) {
	want := models.PlanRequest{
		Catalog: models.PricingCatalog{
			OnDemandHourlyRate: 0.64,
			Tiers:              []models.PricingTier{{ID: "heavy", AnnualFixedCost: 1560, HourlyCost: 0.128}},
		},
		Schedule: models.DemandSchedule{
			Periods: []models.Period{{ID: "evening", Demand: 53.5, DurationHours: 8}},
		},
	}

	req, err := loadPlanRequest(writeRequestFile(t, want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Catalog.OnDemandHourlyRate != 0.64 {
		t.Errorf("expected rate 0.64, got %g", req.Catalog.OnDemandHourlyRate)
	}
	if len(req.Catalog.Tiers) != 1 || req.Catalog.Tiers[0].ID != "heavy" {
		t.Errorf("unexpected tiers: %+v", req.Catalog.Tiers)
	}
}

func TestLoadPlanRequest_MissingFile(t *testing.T) {
	if _, err := loadPlanRequest("/nonexistent/request.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPlanRequest_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := loadPlanRequest(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRunPlan_Optimal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PlanResponse{
			Status: models.PlanStatusOptimal,
			Plan: &models.ProvisioningPlan{
				Reservations: map[string]float64{"heavy": 26},
				Periods: []models.PeriodAllocation{
					{PeriodID: "evening", OnDemand: 0, Reserved: map[string]float64{"heavy": 26}},
				},
				TotalCost: 289.92,
			},
			OnDemandBaselineCost: 476.16,
			SavingsPct:           39.1,
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()
	planFile = writeRequestFile(t, models.PlanRequest{})
	planHorizonDays = 0

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	if !strings.Contains(out, "heavy") {
		t.Error("expected reservation tier in output")
	}
	if !strings.Contains(out, "289.92") {
		t.Error("expected total cost in output")
	}
}

func TestRunPlan_Infeasible(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PlanResponse{
			Status:  models.PlanStatusInfeasible,
			Message: "no assignment satisfies all constraints",
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()
	planFile = writeRequestFile(t, models.PlanRequest{})

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1 for infeasible plan, got %d", code)
	}
}

func TestRunPlan_BackendDown(t *testing.T) {
	apiURL = "http://localhost:99999"
	defer func() { apiURL = "" }()
	planFile = writeRequestFile(t, models.PlanRequest{})

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2 for connection error, got %d", code)
	}
}

func TestFormatCompareHuman(t *testing.T) {
	resp := &models.CompareResponse{
		Results: []models.ScenarioOutcome{
			{Name: "with-commitments", Response: models.PlanResponse{
				Status:     models.PlanStatusOptimal,
				Plan:       &models.ProvisioningPlan{TotalCost: 289.92},
				SavingsPct: 39.1,
			}},
			{Name: "on-demand-only", Response: models.PlanResponse{
				Status: models.PlanStatusOptimal,
				Plan:   &models.ProvisioningPlan{TotalCost: 476.16},
			}},
		},
		Cheapest: "with-commitments",
	}

	out := formatCompareHuman(resp)
	if !strings.Contains(out, "* with-commitments") {
		t.Error("expected cheapest scenario to be marked")
	}
	if !strings.Contains(out, "Cheapest: with-commitments") {
		t.Error("expected cheapest summary line")
	}
}
