package http

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
)

const priceListSheet = "Price List"

var priceListHeader = []interface{}{
	"package_id",
	"years",
	"label",
	"months",
	"mode",
	"discount_percent",
	"total_base",
	"total_display",
	"display_currency",
	"total_formatted",
}

// BuildPriceList renders plan options as an XLSX workbook. Unavailable plans keep their
// row with empty amounts.
func BuildPriceList(packageID string, options []list_plan_options.PlanOption, p Presenter) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), priceListSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(priceListSheet, "A1", &priceListHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, view := range toPlanOptionViews(options, p) {
		row := []interface{}{
			packageID,
			view.Years,
			view.Label,
			view.Months,
			string(view.Mode),
			view.DiscountPercent,
			"",
			"",
			view.DisplayCurrency,
			view.TotalFormatted,
		}
		if view.Available {
			base, _ := view.TotalBase.Rat().Float64()
			display, _ := view.TotalDisplay.Float64()
			row[6] = base
			row[7] = display
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row: %w", err)
		}
		if err := f.SetSheetRow(priceListSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
