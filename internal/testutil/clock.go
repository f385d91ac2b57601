package testutil

import (
	"time"

	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
)

// ReferenceTime is the default "now" used across tests.
var ReferenceTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// NewMockClock returns a controllable clock set to ReferenceTime.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(ReferenceTime)
}
