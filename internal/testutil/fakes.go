package testutil

import (
	"context"
	"sync"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

// FakeCatalog is an in-memory CatalogReader.
type FakeCatalog struct {
	mu        sync.Mutex
	Snapshots map[string]*domain.CatalogSnapshot
	Err       error
	Calls     int
}

// NewFakeCatalog indexes the given snapshots by package id.
func NewFakeCatalog(snapshots ...*domain.CatalogSnapshot) *FakeCatalog {
	c := &FakeCatalog{Snapshots: make(map[string]*domain.CatalogSnapshot)}
	for _, s := range snapshots {
		c.Snapshots[s.PackageID] = s
	}
	return c
}

// LoadSnapshot returns the stored snapshot, or an empty one for unknown packages.
func (c *FakeCatalog) LoadSnapshot(_ context.Context, packageID string) (*domain.CatalogSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	if c.Err != nil {
		return nil, c.Err
	}
	if s, ok := c.Snapshots[packageID]; ok {
		return s, nil
	}
	return &domain.CatalogSnapshot{PackageID: packageID, Pricing: domain.PriceConfiguration{PackageID: packageID}}, nil
}

// FakePromos is an in-memory PromoReader keyed by normalized code.
type FakePromos struct {
	Codes map[string]domain.PromoCode
	Err   error
}

// NewFakePromos indexes promos by normalized code, including inactive ones.
func NewFakePromos(promos ...domain.PromoCode) *FakePromos {
	p := &FakePromos{Codes: make(map[string]domain.PromoCode)}
	for _, promo := range promos {
		p.Codes[domain.NormalizeCode(promo.Code)] = promo
	}
	return p
}

// FindByCode implements contracts.PromoReader.
func (p *FakePromos) FindByCode(_ context.Context, normalizedCode string) (*domain.PromoCode, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	promo, ok := p.Codes[normalizedCode]
	if !ok {
		return nil, nil
	}
	return &promo, nil
}

// FakeQuoteStore builds real mutations but keeps quotes in memory.
type FakeQuoteStore struct {
	contracts.QuoteRepository
	Quotes map[string]*domain.Quote
}

// NewFakeQuoteStore creates an empty store.
func NewFakeQuoteStore(quotes ...*domain.Quote) *FakeQuoteStore {
	s := &FakeQuoteStore{QuoteRepository: repo.NewQuoteRepo(nil), Quotes: make(map[string]*domain.Quote)}
	for _, q := range quotes {
		s.Quotes[q.ID()] = q
	}
	return s
}

// GetByID implements contracts.QuoteRepository.
func (s *FakeQuoteStore) GetByID(_ context.Context, quoteID string) (*domain.Quote, error) {
	q, ok := s.Quotes[quoteID]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return q, nil
}

// FakeApplier records applied plans instead of writing them.
type FakeApplier struct {
	Plans  []*committer.CommitPlan
	Guards []committer.VersionGuard
	Err    error
}

var _ committer.Applier = (*FakeApplier)(nil)

// Apply implements committer.Applier.
func (a *FakeApplier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if a.Err != nil {
		return a.Err
	}
	a.Plans = append(a.Plans, plan)
	return nil
}

// ApplyWithVersionCheck implements committer.Applier.
func (a *FakeApplier) ApplyWithVersionCheck(_ context.Context, guard committer.VersionGuard, plan *committer.CommitPlan) error {
	if a.Err != nil {
		return a.Err
	}
	a.Guards = append(a.Guards, guard)
	a.Plans = append(a.Plans, plan)
	return nil
}

// RecordingObserver counts observations.
type RecordingObserver struct {
	Prices   []*domain.OrderPricingResult
	Promos   []*domain.PromoResult
	Locked   []*domain.Quote
	Consumed []*domain.Quote
}

func (o *RecordingObserver) ObservePrice(r *domain.OrderPricingResult) {
	o.Prices = append(o.Prices, r)
}
func (o *RecordingObserver) ObservePromo(r *domain.PromoResult)   { o.Promos = append(o.Promos, r) }
func (o *RecordingObserver) ObserveQuoteLocked(q *domain.Quote)   { o.Locked = append(o.Locked, q) }
func (o *RecordingObserver) ObserveQuoteConsumed(q *domain.Quote) { o.Consumed = append(o.Consumed, q) }
