package m_quote

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the quotes table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{
		QuoteID,
		PackageID,
		Months,
		Selections,
		PromoCode,
		Mode,
		DiscountPercent,
		SubtotalNumerator,
		SubtotalDenominator,
		AddOnsNumerator,
		AddOnsDenominator,
		DiscountAppliedNumerator,
		DiscountAppliedDenom,
		TotalNumerator,
		TotalDenominator,
		TotalDisplay,
		DisplayCurrency,
		Status,
		PaymentRef,
		Version,
		CreatedAt,
		UpdatedAt,
		ExpiresAt,
		ConsumedAt,
	}
}

// InsertMut creates a mutation for a newly locked quote. created_at and updated_at are
// stamped with the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.QuoteID,
			data.PackageID,
			data.Months,
			data.Selections,
			data.PromoCode,
			data.Mode,
			data.DiscountPercent,
			data.SubtotalNumerator,
			data.SubtotalDenominator,
			data.AddOnsNumerator,
			data.AddOnsDenominator,
			data.DiscountAppliedNumerator,
			data.DiscountAppliedDenom,
			data.TotalNumerator,
			data.TotalDenominator,
			data.TotalDisplay,
			data.DisplayCurrency,
			data.Status,
			data.PaymentRef,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
			data.ExpiresAt,
			data.ConsumedAt,
		},
	)
}

// UpdateMut creates a mutation for the given columns. updated_at is always refreshed.
func (m *Model) UpdateMut(quoteID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)
	columns = append(columns, QuoteID)
	values = append(values, quoteID)
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a mutation deleting a quote.
func (m *Model) DeleteMut(quoteID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{quoteID})
}
