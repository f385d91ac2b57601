package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns lists the columns scanned into Data.
func (m *Model) ReadColumns() []string {
	return []string{EventID, EventType, AggregateID, Payload, Status, CreatedAt, ProcessedAt, RetryCount, ErrorMessage}
}

// InsertMut creates a mutation for a new event; created_at is the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// MarkCompletedMut records a successful publish.
func (m *Model) MarkCompletedMut(eventID string, at time.Time) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{EventID, Status, ProcessedAt, ErrorMessage},
		[]interface{}{eventID, StatusCompleted, at, spanner.NullString{}},
	)
}

// MarkRetryMut records a failed publish attempt. The event stays pending until
// retryCount reaches maxRetries, then it is marked failed.
func (m *Model) MarkRetryMut(eventID string, retryCount, maxRetries int64, cause string, at time.Time) *spanner.Mutation {
	status := StatusPending
	processed := spanner.NullTime{}
	if retryCount >= maxRetries {
		status = StatusFailed
		processed = spanner.NullTime{Time: at, Valid: true}
	}
	return spanner.Update(
		TableName,
		[]string{EventID, Status, RetryCount, ErrorMessage, ProcessedAt},
		[]interface{}{eventID, status, retryCount, spanner.NullString{StringVal: cause, Valid: cause != ""}, processed},
	)
}

// DeleteMut creates a mutation for deleting an outbox event.
func (m *Model) DeleteMut(eventID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{eventID})
}
