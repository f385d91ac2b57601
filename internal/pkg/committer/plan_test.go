package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	t.Run("ignores nil mutations", func(t *testing.T) {
		plan := NewPlan()
		plan.Add(nil)
		assert.True(t, plan.IsEmpty())
		assert.Equal(t, 0, plan.Count())
	})

	t.Run("collects mutations in order", func(t *testing.T) {
		first := spanner.Delete("quotes", spanner.Key{"q-1"})
		second := spanner.Delete("outbox_events", spanner.Key{"e-1"})

		plan := NewPlan()
		plan.Add(first)
		plan.AddMultiple([]*spanner.Mutation{nil, second})

		assert.False(t, plan.IsEmpty())
		assert.Equal(t, 2, plan.Count())
		assert.Same(t, first, plan.Mutations()[0])
		assert.Same(t, second, plan.Mutations()[1])
	})
}
