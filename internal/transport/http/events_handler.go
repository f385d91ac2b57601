package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
)

// EventsHandler serves the outbox events listing.
type EventsHandler struct {
	listEvents *list_events.Query
	logger     logrus.FieldLogger
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query) *EventsHandler {
	return &EventsHandler{
		listEvents: listEvents,
		logger:     logging.NewModuleLogger("events-handler"),
	}
}

// ListEvents handles GET /v1/events?event_type=&aggregate_id=&status=&limit=.
func (h *EventsHandler) ListEvents(ctx echo.Context) error {
	events, total, err := h.listEvents.Execute(ctx.Request().Context(), listEventsRequestFromContext(ctx))
	if err != nil {
		h.logger.WithError(err).Error("List events failed")
		return ctx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: "failed to fetch events"})
	}

	return ctx.JSON(http.StatusOK, &ListEventsResponse{
		Events:     toEventViews(events),
		TotalCount: total,
	})
}
