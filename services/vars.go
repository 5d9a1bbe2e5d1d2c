// ABOUTME: Composite variable keys shared by the model builder and plan decoder
// ABOUTME: A typed tagged variant replaces string-concatenated identifiers

package services

import "fmt"

// VarKind tags the three variable families of a planning model.
type VarKind uint8

const (
	KindOnDemand    VarKind = iota // on-demand instances running in a period
	KindReserved                   // reserved instances of a tier running in a period
	KindReservation                // total reservations purchased for a tier
)

// VarID identifies one decision variable. It is the naming contract between
// ModelBuilder and PlanDecoder: both construct keys through the helpers below
// and never through string assembly, so a mismatch is a type error rather
// than a runtime parsing bug.
type VarID struct {
	Kind   VarKind
	Tier   string // set for KindReserved and KindReservation
	Period string // set for KindOnDemand and KindReserved
}

// OnDemandVar keys the on-demand instance count for a period.
func OnDemandVar(period string) VarID {
	return VarID{Kind: KindOnDemand, Period: period}
}

// ReservedVar keys the reserved-running instance count for a (tier, period) pair.
func ReservedVar(tier, period string) VarID {
	return VarID{Kind: KindReserved, Tier: tier, Period: period}
}

// ReservationVar keys the total reservation count purchased for a tier.
func ReservationVar(tier string) VarID {
	return VarID{Kind: KindReservation, Tier: tier}
}

// String renders the key for logs and error messages only; it is never parsed.
func (v VarID) String() string {
	switch v.Kind {
	case KindOnDemand:
		return fmt.Sprintf("on_demand[%s]", v.Period)
	case KindReserved:
		return fmt.Sprintf("reserved[%s,%s]", v.Tier, v.Period)
	default:
		return fmt.Sprintf("reservation[%s]", v.Tier)
	}
}
