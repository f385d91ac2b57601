package domain

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// AddOnKind distinguishes flat-selection add-ons from per-unit quantity add-ons.
type AddOnKind string

const (
	AddOnFlat    AddOnKind = "flat"
	AddOnPerUnit AddOnKind = "per_unit"
)

// BuiltinEditingWebsiteID is the id of the website editing service offered on every package.
const BuiltinEditingWebsiteID = "__builtin_editing_website"

// AddOnItem is a catalog entry. For flat items Price is the full price; for per-unit
// items it is the price of one unit.
type AddOnItem struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	Kind        AddOnKind        `json:"kind"`
	Price       *Money           `json:"price"`
	Unit        string           `json:"unit,omitempty"`
	UnitStep    decimal.Decimal  `json:"unit_step"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
	SortOrder   int              `json:"sort_order"`
}

// Validate checks the catalog entry shape.
func (a AddOnItem) Validate() error {
	if a.ID == "" {
		return ErrEmptyAddOnID
	}
	if a.Kind != AddOnFlat && a.Kind != AddOnPerUnit {
		return ErrInvalidAddOnKind
	}
	if a.Price == nil || a.Price.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// BuiltinEditingWebsite returns the builtin editing service add-on at the given unit price.
func BuiltinEditingWebsite(price *Money) AddOnItem {
	maxQty := decimal.NewFromInt(1)
	return AddOnItem{
		ID:          BuiltinEditingWebsiteID,
		Label:       "Jasa Editing Website",
		Kind:        AddOnPerUnit,
		Price:       price,
		Unit:        "paket",
		UnitStep:    decimal.NewFromInt(1),
		MaxQuantity: &maxQty,
		SortOrder:   -100,
	}
}

// MergeCatalog adds builtins whose id is absent from the external catalog and sorts the
// result by sort order. External entries win over builtins with the same id. The sort is
// stable, so entries with equal sort order keep their source order.
func MergeCatalog(external []AddOnItem, builtins []AddOnItem) []AddOnItem {
	seen := make(map[string]struct{}, len(external))
	merged := make([]AddOnItem, 0, len(external)+len(builtins))
	for _, item := range external {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
	}
	for _, item := range builtins {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortOrder < merged[j].SortOrder
	})
	return merged
}

// ClampQuantity floors a requested quantity to a multiple of the unit step and clamps it
// to [0, MaxQuantity]. Steps and quantities may be fractional; a non-positive step is
// treated as 1.
func ClampQuantity(item AddOnItem, requested decimal.Decimal) decimal.Decimal {
	step := item.UnitStep
	if !step.IsPositive() {
		step = decimal.NewFromInt(1)
	}
	if !requested.IsPositive() {
		return decimal.Zero
	}

	qty := floorToStep(requested, step)
	if item.MaxQuantity != nil {
		maxQty := *item.MaxQuantity
		if maxQty.IsNegative() {
			maxQty = decimal.Zero
		}
		maxQty = floorToStep(maxQty, step)
		if qty.GreaterThan(maxQty) {
			qty = maxQty
		}
	}
	return qty
}

// floorToStep returns the largest multiple of step not above q. q must be non-negative
// and step positive.
func floorToStep(q, step decimal.Decimal) decimal.Decimal {
	ratio := new(big.Rat).Quo(q.Rat(), step.Rat())
	units := new(big.Int).Quo(ratio.Num(), ratio.Denom())
	return step.Mul(decimal.NewFromBigInt(units, 0))
}

// AddOnSelections maps add-on id to requested quantity. For flat add-ons any positive
// quantity means selected.
type AddOnSelections map[string]decimal.Decimal

// AddOnLine is one priced add-on in a breakdown.
type AddOnLine struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Kind      AddOnKind       `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice *Money          `json:"unit_price"`
	Amount    *Money          `json:"amount"`
}

// AddOnsTotal is the aggregated add-on price with per-line detail.
type AddOnsTotal struct {
	Total *Money
	Lines []AddOnLine
}

// SumAddOns prices the selections against the catalog. Items are visited in catalog order,
// so the breakdown is deterministic; selections for unknown ids are ignored and items with
// a zero quantity contribute nothing.
func SumAddOns(catalog []AddOnItem, selections AddOnSelections) (*AddOnsTotal, error) {
	total := Zero()
	lines := make([]AddOnLine, 0)

	for _, item := range catalog {
		requested, ok := selections[item.ID]
		if !ok || !requested.IsPositive() {
			continue
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}

		var qty decimal.Decimal
		switch item.Kind {
		case AddOnFlat:
			qty = decimal.NewFromInt(1)
		case AddOnPerUnit:
			qty = ClampQuantity(item, requested)
		}
		if qty.IsZero() {
			continue
		}

		amount := item.Price.MultiplyByRat(qty.Rat())
		total = total.Add(amount)
		lines = append(lines, AddOnLine{
			ID:        item.ID,
			Label:     item.Label,
			Kind:      item.Kind,
			Quantity:  qty,
			UnitPrice: item.Price.Copy(),
			Amount:    amount,
		})
	}

	return &AddOnsTotal{Total: total, Lines: lines}, nil
}
