package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
)

func TestPrintEvents(t *testing.T) {
	events := []*m_outbox.Data{
		{
			EventID:     "evt-1",
			EventType:   "quote.locked",
			AggregateID: "quote-1",
			Status:      m_outbox.StatusPending,
			CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printEvents(&buf, events, 3))

	out := buf.String()
	assert.Contains(t, out, "EVENT ID")
	assert.Contains(t, out, "quote.locked")
	assert.Contains(t, out, "2026-03-01T12:00:00Z")
	assert.Contains(t, out, "Showing 1 of 3 events")
}

func TestEventsRequest(t *testing.T) {
	eventsFlags.eventType = "quote.consumed"
	eventsFlags.aggregateID = ""
	eventsFlags.status = ""
	eventsFlags.limit = 5
	t.Cleanup(func() { eventsFlags.eventType = ""; eventsFlags.limit = 10 })

	req := eventsRequest()

	require.NotNil(t, req.EventType)
	assert.Equal(t, "quote.consumed", *req.EventType)
	assert.Nil(t, req.AggregateID)
	assert.Nil(t, req.Status)
	assert.Equal(t, 5, req.Limit)
}
