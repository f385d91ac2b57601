package domain

import (
	"fmt"
	"sort"
)

// SubscriptionPlan is a selectable subscription length. PriceOverride is the legacy flat
// total for that length; it only applies when the package has no active duration rows.
type SubscriptionPlan struct {
	Years         int    `json:"years"`
	Label         string `json:"label"`
	PriceOverride *Money `json:"price_override,omitempty"`
	SortOrder     int    `json:"sort_order"`
}

// Months returns the plan length in months.
func (p SubscriptionPlan) Months() int {
	return MonthsForYears(p.Years)
}

// PlanLabel returns "1 Year" or "N Years".
func PlanLabel(years int) string {
	if years == 1 {
		return "1 Year"
	}
	return fmt.Sprintf("%d Years", years)
}

// DefaultPlans is used when a package has no configured plans.
func DefaultPlans() []SubscriptionPlan {
	plans := make([]SubscriptionPlan, 0, 3)
	for years := 1; years <= 3; years++ {
		plans = append(plans, SubscriptionPlan{Years: years, Label: PlanLabel(years), SortOrder: years})
	}
	return plans
}

// NormalizePlans drops non-positive lengths, fills missing labels, and sorts by
// sort order then years. An empty input yields DefaultPlans.
func NormalizePlans(plans []SubscriptionPlan) []SubscriptionPlan {
	out := make([]SubscriptionPlan, 0, len(plans))
	for _, p := range plans {
		if p.Years <= 0 {
			continue
		}
		if p.Label == "" {
			p.Label = PlanLabel(p.Years)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return DefaultPlans()
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Years < out[j].Years
	})
	return out
}

// findOverride returns the legacy override for an exact month count, if any.
func findOverride(plans []SubscriptionPlan, months int) *Money {
	if months%monthsPerYear != 0 {
		return nil
	}
	years := months / monthsPerYear
	for _, p := range plans {
		if p.Years == years && p.PriceOverride != nil {
			return p.PriceOverride.Copy()
		}
	}
	return nil
}
