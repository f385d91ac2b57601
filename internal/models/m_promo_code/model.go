package m_promo_code

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data is one promo code row.
type Data struct {
	Code        string              `spanner:"code"`
	PromoID     string              `spanner:"promo_id"`
	Name        string              `spanner:"name"`
	IsActive    bool                `spanner:"is_active"`
	RuleType    string              `spanner:"rule_type"`
	RuleValue   big.Rat             `spanner:"rule_value"`
	MinSubtotal spanner.NullNumeric `spanner:"min_subtotal"`
	StartsAt    spanner.NullTime    `spanner:"starts_at"`
	EndsAt      spanner.NullTime    `spanner:"ends_at"`
}

// Model provides type-safe operations on the promo_codes table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{Code, PromoID, Name, IsActive, RuleType, RuleValue, MinSubtotal, StartsAt, EndsAt}
}

// UpsertMut writes a promo row.
func (m *Model) UpsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdateStruct(TableName, data)
}
