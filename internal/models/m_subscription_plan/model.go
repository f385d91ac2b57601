package m_subscription_plan

import (
	"cloud.google.com/go/spanner"
)

// Data is one selectable plan length for a package.
type Data struct {
	PackageID     string              `spanner:"package_id"`
	Years         int64               `spanner:"years"`
	Label         spanner.NullString  `spanner:"label"`
	PriceOverride spanner.NullNumeric `spanner:"price_override"`
	SortOrder     int64               `spanner:"sort_order"`
}

// Model provides type-safe operations on the subscription_plans table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{PackageID, Years, Label, PriceOverride, SortOrder}
}

// UpsertMut writes a plan row.
func (m *Model) UpsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdateStruct(TableName, data)
}

// DeleteMut removes one plan.
func (m *Model) DeleteMut(packageID string, years int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{packageID, years})
}
