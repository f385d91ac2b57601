// Package committer applies collected Spanner mutations atomically.
//
// Repositories never write. They return *spanner.Mutation values which a usecase gathers
// into a CommitPlan together with the outbox rows for the aggregate's domain events:
//
//	plan := committer.NewPlan()
//	plan.Add(quoteMut)
//	for _, event := range quote.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(outboxRepo.EnrichEvent(event, payload)))
//	}
//	return c.ApplyWithVersionCheck(ctx, committer.VersionGuard{...}, plan)
//
// Either every mutation in the plan lands or none does.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// ErrVersionConflict is returned when the stored version differs from the expected one.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// ErrRowNotFound is returned when the guarded row does not exist.
var ErrRowNotFound = errors.New("guarded row not found")

// CommitPlan collects mutations to apply in one transaction.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionGuard names the row and version column checked before a plan is written.
type VersionGuard struct {
	Table           string
	Key             spanner.Key
	Column          string
	ExpectedVersion int64
}

func (g VersionGuard) check(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
	row, err := txn.ReadRow(ctx, g.Table, g.Key, []string{g.Column})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return ErrRowNotFound
		}
		return fmt.Errorf("failed to read %s.%s: %w", g.Table, g.Column, err)
	}

	var current int64
	if err := row.Column(0, &current); err != nil {
		return fmt.Errorf("failed to parse %s.%s: %w", g.Table, g.Column, err)
	}
	if current != g.ExpectedVersion {
		return fmt.Errorf("%w: %s %v expected version %d, got %d", ErrVersionConflict, g.Table, g.Key, g.ExpectedVersion, current)
	}
	return nil
}

// Applier is the write side used by usecases.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	ApplyWithVersionCheck(ctx context.Context, guard VersionGuard, plan *CommitPlan) error
}

// Committer applies CommitPlans against a Spanner client.
type Committer struct {
	client *spanner.Client
}

var _ Applier = (*Committer)(nil)

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply writes the plan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck writes the plan only if the guarded row still has the expected
// version. The check and the write share one read-write transaction.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, guard VersionGuard, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if err := guard.check(ctx, txn); err != nil {
			return err
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrRowNotFound) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}
	return nil
}
