package outbox

import (
	"context"
	"time"

	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

const cleanupBatch = 1000

// Cleaner deletes processed events older than the retention window.
type Cleaner struct {
	store     Store
	committer committer.Applier
}

// NewCleaner creates a Cleaner.
func NewCleaner(store Store, applier committer.Applier) *Cleaner {
	return &Cleaner{store: store, committer: applier}
}

// Run deletes completed and failed events processed before cutoff and returns how many
// were (or, with dryRun, would be) deleted. Pending events are never touched.
func (c *Cleaner) Run(ctx context.Context, cutoff time.Time, dryRun bool) (int, error) {
	if dryRun {
		ids, err := c.store.FetchProcessedBefore(ctx, cutoff, 0)
		return len(ids), err
	}

	model := m_outbox.NewModel()
	total := 0
	for {
		ids, err := c.store.FetchProcessedBefore(ctx, cutoff, cleanupBatch)
		if err != nil {
			return total, err
		}
		total += len(ids)
		if len(ids) == 0 {
			return total, nil
		}

		plan := committer.NewPlan()
		for _, id := range ids {
			plan.Add(model.DeleteMut(id))
		}
		if err := c.committer.Apply(ctx, plan); err != nil {
			return total - len(ids), err
		}
		if len(ids) < cleanupBatch {
			return total, nil
		}
	}
}
