// Package plan models subscription tiers as a closed type so entitlement
// checks stay exhaustiveness-checkable.
package plan

import "fmt"

// Plan is a subscription tier.
type Plan int

const (
	Free Plan = iota
	Premium
)

// Limits describes what a tier is entitled to.
type Limits struct {
	PagesPerMonth int
	Translation   bool
	ReadAloud     bool
}

// Limits returns the entitlements for the plan.
func (p Plan) Limits() Limits {
	switch p {
	case Premium:
		return Limits{PagesPerMonth: 1000, Translation: true, ReadAloud: true}
	default:
		return Limits{PagesPerMonth: 30, Translation: true, ReadAloud: false}
	}
}

func (p Plan) String() string {
	switch p {
	case Premium:
		return "premium"
	default:
		return "free"
	}
}

// Parse maps a plan name from config or a billing backend to a Plan.
func Parse(s string) (Plan, error) {
	switch s {
	case "free", "":
		return Free, nil
	case "premium":
		return Premium, nil
	default:
		return Free, fmt.Errorf("unknown plan %q", s)
	}
}
