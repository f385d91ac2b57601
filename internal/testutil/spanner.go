package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/models/m_add_on"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_integration_secret"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_package_duration"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_package_pricing"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_promo_code"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_subscription_plan"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_website_setting"
)

// SetupSpannerTest connects to the emulator database and empties every table.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	client, err := spanner.NewClient(context.Background(), GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	return client, func() {
		CleanDatabase(t, client)
		client.Close()
	}
}

// GetTestSpannerDB returns SPANNER_TEST_DATABASE or the emulator default.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/checkout-pricing-test"
}

// CleanDatabase deletes all rows from every table.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	tables := []string{
		m_outbox.TableName,
		m_quote.TableName,
		m_promo_code.TableName,
		m_add_on.TableName,
		m_subscription_plan.TableName,
		m_package_duration.TableName,
		m_package_pricing.TableName,
		m_website_setting.TableName,
		m_integration_secret.TableName,
	}
	muts := make([]*spanner.Mutation, 0, len(tables))
	for _, table := range tables {
		muts = append(muts, spanner.Delete(table, spanner.AllKeys()))
	}
	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to clean database")
}

// Apply writes mutations directly.
func Apply(t *testing.T, client *spanner.Client, muts ...*spanner.Mutation) {
	t.Helper()
	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to apply mutations")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}

// AssertOutboxEvent verifies an outbox event exists with the given event type.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, eventType string) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL:    "SELECT event_id FROM outbox_events WHERE event_type = @eventType",
		Params: map[string]interface{}{"eventType": eventType},
	})
	defer iter.Stop()

	_, err := iter.Next()
	require.NoError(t, err, "outbox event not found for type: %s", eventType)
}
