package m_package_duration

import (
	"cloud.google.com/go/spanner"
)

// Data is one duration discount row.
type Data struct {
	PackageID       string              `spanner:"package_id"`
	DurationID      string              `spanner:"duration_id"`
	DurationMonths  int64               `spanner:"duration_months"`
	DiscountPercent spanner.NullNumeric `spanner:"discount_percent"`
	IsActive        bool                `spanner:"is_active"`
	SortOrder       int64               `spanner:"sort_order"`
}

// Model provides type-safe operations on the package_durations table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{PackageID, DurationID, DurationMonths, DiscountPercent, IsActive, SortOrder}
}

// UpsertMut writes a duration row.
func (m *Model) UpsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdateStruct(TableName, data)
}

// DeleteMut removes one duration row.
func (m *Model) DeleteMut(packageID, durationID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{packageID, durationID})
}
