// ABOUTME: Model builder translating catalog and schedule into an integer program
// ABOUTME: Pure, deterministic construction of variables, objective, and constraints

package services

import (
	"fmt"

	"github.com/stucchio/Cloud-capacity-planning/models"
	"github.com/stucchio/Cloud-capacity-planning/solver"
)

// daysPerYear amortizes annual commitment costs onto the planning cycle.
const daysPerYear = 365.0

// ModelBuilder assembles the provisioning integer program. It is stateless:
// independent planning requests may build models in parallel.
type ModelBuilder struct{}

// NewModelBuilder creates a new model builder
func NewModelBuilder() *ModelBuilder {
	return &ModelBuilder{}
}

// Build validates the inputs and constructs the minimization model.
//
// Variables (all non-negative integer): one on-demand count per period, one
// reserved-running count per (tier, period), one reservation count per tier.
// The objective charges each reservation its annual fixed cost scaled to
// horizonDays/365 of a year, plus hourly running costs weighted by period
// duration. Capacity constraints tie each period's mix to its demand;
// reservation constraints keep per-period tier usage within the purchased
// pool, checked independently per period because periods are sequential
// windows of the same cycle, not concurrent.
//
// A ConfigError is the only failure mode; valid inputs always yield a model.
func (b *ModelBuilder) Build(catalog models.PricingCatalog, schedule models.DemandSchedule, horizonDays float64) (solver.Model[VarID], error) {
	var m solver.Model[VarID]

	if err := ValidateCatalog(catalog); err != nil {
		return m, err
	}
	if err := ValidateSchedule(schedule); err != nil {
		return m, err
	}
	if horizonDays <= 0 || !finite(horizonDays) {
		return m, &ConfigError{Field: "horizon_days", Reason: fmt.Sprintf("must be finite and positive, got %g", horizonDays)}
	}

	var objective solver.Expr[VarID]

	// Reservation purchase variables with amortized fixed cost.
	for _, tier := range catalog.Tiers {
		m.Variables = append(m.Variables, solver.Decl[VarID]{Var: ReservationVar(tier.ID), Domain: solver.NonNegativeInteger})
		objective = append(objective, solver.Term[VarID]{
			Coeff: tier.AnnualFixedCost * horizonDays / daysPerYear,
			Var:   ReservationVar(tier.ID),
		})
	}

	for _, period := range schedule.Periods {
		m.Variables = append(m.Variables, solver.Decl[VarID]{Var: OnDemandVar(period.ID), Domain: solver.NonNegativeInteger})
		objective = append(objective, solver.Term[VarID]{
			Coeff: catalog.OnDemandHourlyRate * period.DurationHours,
			Var:   OnDemandVar(period.ID),
		})

		// Capacity: on-demand plus reserved usage meets demand.
		capacity := solver.Expr[VarID]{{Coeff: 1, Var: OnDemandVar(period.ID)}}

		for _, tier := range catalog.Tiers {
			m.Variables = append(m.Variables, solver.Decl[VarID]{Var: ReservedVar(tier.ID, period.ID), Domain: solver.NonNegativeInteger})
			objective = append(objective, solver.Term[VarID]{
				Coeff: tier.HourlyCost * period.DurationHours,
				Var:   ReservedVar(tier.ID, period.ID),
			})
			capacity = append(capacity, solver.Term[VarID]{Coeff: 1, Var: ReservedVar(tier.ID, period.ID)})

			// Reservation pool: usage in any one period never exceeds the
			// purchased count.
			m.Constraints = append(m.Constraints, solver.Constraint[VarID]{
				Expr: solver.Expr[VarID]{
					{Coeff: 1, Var: ReservationVar(tier.ID)},
					{Coeff: -1, Var: ReservedVar(tier.ID, period.ID)},
				},
				Bound: 0,
			})
		}

		m.Constraints = append(m.Constraints, solver.Constraint[VarID]{Expr: capacity, Bound: period.Demand})
	}

	m.Objective = objective
	return m, nil
}
