package m_integration_secret

import "cloud.google.com/go/spanner"

// Field name constants for the integration_secrets table.
const (
	TableName = "integration_secrets"

	Provider   = "provider"
	Name       = "name"
	Ciphertext = "ciphertext"
	IV         = "iv"
)

// IVPlain marks a secret stored without encryption.
const IVPlain = "plain"

// Data is one provider secret. Ciphertext is never returned to clients.
type Data struct {
	Provider   string             `spanner:"provider"`
	Name       string             `spanner:"name"`
	Ciphertext spanner.NullString `spanner:"ciphertext"`
	IV         spanner.NullString `spanner:"iv"`
}

// Model provides type-safe operations on the integration_secrets table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{Provider, Name, Ciphertext, IV}
}

// UpsertMut writes a secret row.
func (m *Model) UpsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdateStruct(TableName, data)
}
