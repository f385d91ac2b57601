package m_add_on

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data is one add-on catalog entry of a package.
type Data struct {
	PackageID   string              `spanner:"package_id"`
	AddOnID     string              `spanner:"add_on_id"`
	Label       string              `spanner:"label"`
	Kind        string              `spanner:"kind"`
	Price       big.Rat             `spanner:"price"`
	Unit        spanner.NullString  `spanner:"unit"`
	UnitStep    big.Rat             `spanner:"unit_step"`
	MaxQuantity spanner.NullNumeric `spanner:"max_quantity"`
	SortOrder   int64               `spanner:"sort_order"`
	IsActive    bool                `spanner:"is_active"`
}

// Model provides type-safe operations on the add_ons table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{PackageID, AddOnID, Label, Kind, Price, Unit, UnitStep, MaxQuantity, SortOrder, IsActive}
}

// UpsertMut writes an add-on row.
func (m *Model) UpsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdateStruct(TableName, data)
}

// DeleteMut removes one add-on.
func (m *Model) DeleteMut(packageID, addOnID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{packageID, addOnID})
}
