package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/query"
)

// EventsReadModel reads outbox_events for the events listing.
type EventsReadModel struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{client: client, model: m_outbox.NewModel()}
}

var _ list_events.EventsReadModel = (*EventsReadModel)(nil)

// ListEvents returns one page of events and the total number of matching rows.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	base := query.From(m_outbox.TableName).Select(r.model.ReadColumns()...)
	if req.EventType != nil {
		base = base.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		base = base.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		base = base.Where(query.Eq(m_outbox.Status, *req.Status))
	}

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	events := make([]*m_outbox.Data, 0)
	stmt := base.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(int64(req.Limit)).Build()
	err := scan(ctx, txn, stmt, func(row *spanner.Row) error {
		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = scan(ctx, txn, base.Count().Build(), func(row *spanner.Row) error {
		return row.Column(0, &total)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	return events, total, nil
}
