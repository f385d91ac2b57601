package m_website_setting

import "cloud.google.com/go/spanner"

// Field name constants for the website_settings table.
const (
	TableName = "website_settings"

	Key   = "key"
	Value = "value"
)

// Data is one key/value setting.
type Data struct {
	Key   string             `spanner:"key"`
	Value spanner.NullString `spanner:"value"`
}

// Model provides type-safe operations on the website_settings table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{Key, Value}
}

// UpsertMut writes a setting.
func (m *Model) UpsertMut(key, value string) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, []string{Key, Value}, []interface{}{key, value})
}
