package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabasePath(t *testing.T) {
	t.Run("valid path", func(t *testing.T) {
		target, err := parseDatabasePath("projects/test-project/instances/dev-instance/databases/checkout-pricing-db")
		require.NoError(t, err)

		assert.Equal(t, "test-project", target.Project)
		assert.Equal(t, "dev-instance", target.Instance)
		assert.Equal(t, "checkout-pricing-db", target.Database)
		assert.Equal(t, "projects/test-project/instances/dev-instance", target.instancePath())
		assert.Equal(t, "projects/test-project/instances/dev-instance/databases/checkout-pricing-db", target.databasePath())
	})

	t.Run("invalid paths", func(t *testing.T) {
		for _, path := range []string{
			"",
			"checkout-pricing-db",
			"projects/p/instances/i",
			"projects/p/instances//databases/d",
			"projects/p/databases/i/instances/d",
		} {
			_, err := parseDatabasePath(path)
			assert.Error(t, err, path)
		}
	})
}

func TestSplitDDLStatements(t *testing.T) {
	content := `-- Catalog

CREATE TABLE a (
  id STRING(64) NOT NULL,
) PRIMARY KEY (id);

-- trailing comment
CREATE INDEX idx_a ON a(id);
`
	statements := splitDDLStatements(content)

	require.Len(t, statements, 2)
	assert.Equal(t, "CREATE TABLE a (\nid STRING(64) NOT NULL,\n) PRIMARY KEY (id)", statements[0])
	assert.Equal(t, "CREATE INDEX idx_a ON a(id)", statements[1])
}
