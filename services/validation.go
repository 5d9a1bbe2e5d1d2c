// ABOUTME: Input validation for pricing catalogs and demand schedules
// ABOUTME: Rejects malformed planning inputs before any model is built

package services

import (
	"fmt"
	"math"

	"github.com/stucchio/Cloud-capacity-planning/models"
)

// ConfigError reports a malformed catalog or schedule. It is raised before
// any solving occurs and is always recoverable by fixing the input.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// finite reports whether v is a usable number (not NaN or infinite).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateCatalog checks the pricing catalog: finite non-negative costs and
// unique, non-empty tier identifiers.
func ValidateCatalog(c models.PricingCatalog) error {
	if !finite(c.OnDemandHourlyRate) || c.OnDemandHourlyRate < 0 {
		return &ConfigError{Field: "on_demand_hourly_rate", Reason: fmt.Sprintf("must be finite and non-negative, got %g", c.OnDemandHourlyRate)}
	}

	seen := make(map[string]bool, len(c.Tiers))
	for _, tier := range c.Tiers {
		if tier.ID == "" {
			return &ConfigError{Field: "tier.id", Reason: "must not be empty"}
		}
		if seen[tier.ID] {
			return &ConfigError{Field: "tier.id", Reason: fmt.Sprintf("duplicate tier %q", tier.ID)}
		}
		seen[tier.ID] = true

		if !finite(tier.AnnualFixedCost) || tier.AnnualFixedCost < 0 {
			return &ConfigError{Field: "tier.annual_fixed_cost", Reason: fmt.Sprintf("tier %q: must be finite and non-negative, got %g", tier.ID, tier.AnnualFixedCost)}
		}
		if !finite(tier.HourlyCost) || tier.HourlyCost < 0 {
			return &ConfigError{Field: "tier.hourly_cost", Reason: fmt.Sprintf("tier %q: must be finite and non-negative, got %g", tier.ID, tier.HourlyCost)}
		}
	}
	return nil
}

// ValidateSchedule checks the demand schedule: unique, non-empty period
// identifiers, finite non-negative demand, strictly positive duration.
func ValidateSchedule(s models.DemandSchedule) error {
	seen := make(map[string]bool, len(s.Periods))
	for _, period := range s.Periods {
		if period.ID == "" {
			return &ConfigError{Field: "period.id", Reason: "must not be empty"}
		}
		if seen[period.ID] {
			return &ConfigError{Field: "period.id", Reason: fmt.Sprintf("duplicate period %q", period.ID)}
		}
		seen[period.ID] = true

		if !finite(period.Demand) || period.Demand < 0 {
			return &ConfigError{Field: "period.demand", Reason: fmt.Sprintf("period %q: must be finite and non-negative, got %g", period.ID, period.Demand)}
		}
		if !finite(period.DurationHours) || period.DurationHours <= 0 {
			return &ConfigError{Field: "period.duration_hours", Reason: fmt.Sprintf("period %q: must be finite and positive, got %g", period.ID, period.DurationHours)}
		}
	}
	return nil
}
