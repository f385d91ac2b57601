package outbox

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/query"
)

// Store reads outbox rows for the relay and the cleanup job.
type Store interface {
	FetchPending(ctx context.Context, limit int) ([]*m_outbox.Data, error)
	FetchProcessedBefore(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}

// SpannerStore implements Store on outbox_events.
type SpannerStore struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewSpannerStore creates a new SpannerStore.
func NewSpannerStore(client *spanner.Client) *SpannerStore {
	return &SpannerStore{client: client, model: m_outbox.NewModel()}
}

var _ Store = (*SpannerStore)(nil)

// FetchPending returns the oldest pending events first.
func (s *SpannerStore) FetchPending(ctx context.Context, limit int) ([]*m_outbox.Data, error) {
	stmt := query.From(m_outbox.TableName).
		Select(s.model.ReadColumns()...).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(int64(limit)).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	events := make([]*m_outbox.Data, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return events, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query pending events: %w", err)
		}
		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		events = append(events, &data)
	}
}

// FetchProcessedBefore returns ids of completed or failed events processed before cutoff.
// A non-positive limit returns all of them.
func (s *SpannerStore) FetchProcessedBefore(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	stmt := query.From(m_outbox.TableName).
		Select(m_outbox.EventID).
		Where(query.In(m_outbox.Status, []string{m_outbox.StatusCompleted, m_outbox.StatusFailed})).
		Where(query.Lt(m_outbox.ProcessedAt, cutoff)).
		OrderBy(m_outbox.ProcessedAt, query.Asc).
		Limit(int64(limit)).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	ids := make([]string, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query processed events: %w", err)
		}
		var id string
		if err := row.Column(0, &id); err != nil {
			return nil, fmt.Errorf("failed to parse event id: %w", err)
		}
		ids = append(ids, id)
	}
}
