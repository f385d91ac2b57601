package list_events

import (
	"context"

	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   *string // e.g. "quote.locked"
	AggregateID *string
	Status      *string // "pending", "completed", "failed"
	Limit       int
}

// EventsReadModel reads outbox rows.
type EventsReadModel interface {
	ListEvents(ctx context.Context, req *Request) ([]*m_outbox.Data, int64, error)
}

// Query handles the list events query use case.
type Query struct {
	readModel EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel EventsReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists events newest first. Limit defaults to 100 and is capped at 1000.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_outbox.Data, int64, error) {
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	return q.readModel.ListEvents(ctx, req)
}
