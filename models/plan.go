// ABOUTME: Request and response models for the planning API
// ABOUTME: Provisioning plans, scenario comparisons, and error envelopes

package models

import "time"

// PlanRequest bundles the immutable inputs of one planning request.
// HorizonDays is the length of the repeating planning cycle in days; annual
// fixed costs are amortized to HorizonDays/365 of their value. Zero means
// "use the server default".
type PlanRequest struct {
	Catalog     PricingCatalog `json:"catalog"`
	Schedule    DemandSchedule `json:"schedule"`
	HorizonDays float64        `json:"horizon_days,omitempty"`
}

// PeriodAllocation is the decoded capacity mix for a single period.
// Reserved maps tier ID to the number of reserved instances running.
type PeriodAllocation struct {
	PeriodID string             `json:"period_id"`
	OnDemand float64            `json:"on_demand"`
	Reserved map[string]float64 `json:"reserved"`
}

// ProvisioningPlan is the structured solver output: how many reservations to
// purchase per tier and how to allocate capacity per period. Values are
// copied from the solver assignment as-is.
type ProvisioningPlan struct {
	Reservations map[string]float64 `json:"reservations"`
	Periods      []PeriodAllocation `json:"periods"`
	TotalCost    float64            `json:"total_cost"`
}

// Plan statuses mirror the solver outcome plus input rejection.
const (
	PlanStatusOptimal    = "optimal"
	PlanStatusInfeasible = "infeasible"
	PlanStatusUnbounded  = "unbounded"
	PlanStatusError      = "error"
)

// PlanResponse is the API response for a planning request.
type PlanResponse struct {
	Status               string            `json:"status"`
	Plan                 *ProvisioningPlan `json:"plan,omitempty"`
	OnDemandBaselineCost float64           `json:"on_demand_baseline_cost,omitempty"`
	SavingsPct           float64           `json:"savings_pct,omitempty"`
	Message              string            `json:"message,omitempty"`
	Metadata             Metadata          `json:"metadata"`
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Cached      bool      `json:"cached"`
	SolveTimeMS int64     `json:"solve_time_ms"`
}

// Scenario is a named planning request within a comparison.
type Scenario struct {
	Name        string         `json:"name"`
	Catalog     PricingCatalog `json:"catalog"`
	Schedule    DemandSchedule `json:"schedule"`
	HorizonDays float64        `json:"horizon_days,omitempty"`
}

// CompareRequest asks for several scenarios to be solved side by side.
type CompareRequest struct {
	Scenarios []Scenario `json:"scenarios"`
}

// ScenarioOutcome pairs a scenario name with its planning result.
type ScenarioOutcome struct {
	Name     string       `json:"name"`
	Response PlanResponse `json:"response"`
}

// CompareResponse lists per-scenario outcomes and names the cheapest
// scenario that solved to optimality (empty if none did).
type CompareResponse struct {
	Results  []ScenarioOutcome `json:"results"`
	Cheapest string            `json:"cheapest,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
