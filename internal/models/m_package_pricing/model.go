package m_package_pricing

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one row of package_pricing. Either price may be NULL while a package is
// still being configured.
type Data struct {
	PackageID    string              `spanner:"package_id"`
	DomainPrice  spanner.NullNumeric `spanner:"domain_price"`
	PackagePrice spanner.NullNumeric `spanner:"package_price"`
	UpdatedAt    time.Time           `spanner:"updated_at"`
}

// Model provides type-safe operations on the package_pricing table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{PackageID, DomainPrice, PackagePrice, UpdatedAt}
}

// UpsertMut writes a pricing row, stamping updated_at with the commit timestamp.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{PackageID, DomainPrice, PackagePrice, UpdatedAt},
		[]interface{}{data.PackageID, data.DomainPrice, data.PackagePrice, spanner.CommitTimestamp},
	)
}

// DeleteMut removes the pricing row of a package.
func (m *Model) DeleteMut(packageID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{packageID})
}
