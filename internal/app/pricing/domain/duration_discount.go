package domain

import "math/big"

// DurationDiscountRow is one row of a package's duration discount table.
type DurationDiscountRow struct {
	PackageID       string   `json:"package_id"`
	DurationID      string   `json:"duration_id"`
	DurationMonths  int      `json:"duration_months"`
	DiscountPercent *big.Rat `json:"discount_percent"`
	IsActive        bool     `json:"is_active"`
	SortOrder       int      `json:"sort_order"`
}

// DiscountTable maps a subscription length in months to a discount percentage.
//
// Only active rows with a positive duration are consulted. When two active rows share
// a duration, the one scanned last wins; callers that care about which row is
// effective must therefore supply rows in a stable order (the repository orders by
// sort_order, then duration_id).
type DiscountTable struct {
	byMonths map[int]Percent
}

// NewDiscountTable builds the lookup from rows in scan order.
func NewDiscountTable(rows []DurationDiscountRow) *DiscountTable {
	t := &DiscountTable{byMonths: make(map[int]Percent)}
	for _, r := range rows {
		if !r.IsActive || r.DurationMonths <= 0 {
			continue
		}
		t.byMonths[r.DurationMonths] = NewPercent(r.DiscountPercent)
	}
	return t
}

// Lookup returns the discount for an exact duration match, or 0% when absent.
// There is no interpolation between durations.
func (t *DiscountTable) Lookup(months int) Percent {
	if t == nil {
		return NewPercent(nil)
	}
	if p, ok := t.byMonths[months]; ok {
		return p
	}
	return NewPercent(nil)
}

// HasAnyActiveRow reports whether the package has at least one effective row.
// When true, the duration table is the only pricing mode for the package.
func (t *DiscountTable) HasAnyActiveRow() bool {
	return t != nil && len(t.byMonths) > 0
}

// Len returns the number of effective durations.
func (t *DiscountTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byMonths)
}
