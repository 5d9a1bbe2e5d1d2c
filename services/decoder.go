// ABOUTME: Plan decoder relabeling a flat solver assignment into a structured plan
// ABOUTME: Pure translation using the same variable keys the builder declared

package services

import (
	"fmt"

	"github.com/stucchio/Cloud-capacity-planning/models"
	"github.com/stucchio/Cloud-capacity-planning/solver"
)

// DecodeError reports an internal-consistency violation between the model
// submitted and the solution received: a naming-scheme mismatch, not a
// legitimate solver condition.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode: " + e.Reason
}

// PlanDecoder turns an Optimal solution back into a ProvisioningPlan.
type PlanDecoder struct{}

// NewPlanDecoder creates a new plan decoder
func NewPlanDecoder() *PlanDecoder {
	return &PlanDecoder{}
}

// Decode copies the assignment into structured form: one reservation count
// per tier, one allocation per period in schedule order. Values are taken
// from the solver verbatim, without rounding or reinterpretation.
func (d *PlanDecoder) Decode(catalog models.PricingCatalog, schedule models.DemandSchedule, sol solver.Solution[VarID]) (*models.ProvisioningPlan, error) {
	if sol.Status != solver.Optimal {
		return nil, &DecodeError{Reason: fmt.Sprintf("solution status is %s, not optimal", sol.Status)}
	}

	lookup := func(v VarID) (float64, error) {
		value, ok := sol.Assignment[v]
		if !ok {
			return 0, &DecodeError{Reason: fmt.Sprintf("assignment is missing variable %s", v)}
		}
		return value, nil
	}

	plan := &models.ProvisioningPlan{
		Reservations: make(map[string]float64, len(catalog.Tiers)),
		TotalCost:    sol.Objective,
	}

	for _, tier := range catalog.Tiers {
		count, err := lookup(ReservationVar(tier.ID))
		if err != nil {
			return nil, err
		}
		plan.Reservations[tier.ID] = count
	}

	for _, period := range schedule.Periods {
		onDemand, err := lookup(OnDemandVar(period.ID))
		if err != nil {
			return nil, err
		}

		alloc := models.PeriodAllocation{
			PeriodID: period.ID,
			OnDemand: onDemand,
			Reserved: make(map[string]float64, len(catalog.Tiers)),
		}
		for _, tier := range catalog.Tiers {
			running, err := lookup(ReservedVar(tier.ID, period.ID))
			if err != nil {
				return nil, err
			}
			alloc.Reserved[tier.ID] = running
		}
		plan.Periods = append(plan.Periods, alloc)
	}

	return plan, nil
}
