// ABOUTME: Data models for pricing catalogs and demand schedules
// ABOUTME: JSON-serializable structures supplied per planning request

package models

// PricingTier is a prepaid commitment option: an upfront annual fixed cost
// per reserved instance in exchange for a reduced hourly running cost.
type PricingTier struct {
	ID              string  `json:"id"`
	AnnualFixedCost float64 `json:"annual_fixed_cost"`
	HourlyCost      float64 `json:"hourly_cost"`
}

// PricingCatalog describes the capacity pricing options available to a plan:
// a pay-as-you-go hourly rate plus zero or more commitment tiers.
type PricingCatalog struct {
	OnDemandHourlyRate float64       `json:"on_demand_hourly_rate"`
	Tiers              []PricingTier `json:"tiers"`
}

// Period is a non-overlapping time window within the repeating planning
// horizon. Demand may be fractional; duration is in hours.
type Period struct {
	ID            string  `json:"id"`
	Demand        float64 `json:"demand"`
	DurationHours float64 `json:"duration_hours"`
}

// DemandSchedule maps the periods of one repeating horizon to required capacity.
type DemandSchedule struct {
	Periods []Period `json:"periods"`
}
