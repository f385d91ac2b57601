package repo

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_add_on"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_package_duration"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_package_pricing"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_subscription_plan"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/query"
)

// spannerNumericScale is the number of fractional digits a NUMERIC column keeps.
const spannerNumericScale = 9

// CatalogRepo reads package pricing configuration from Spanner.
type CatalogRepo struct {
	client    *spanner.Client
	pricing   *m_package_pricing.Model
	durations *m_package_duration.Model
	plans     *m_subscription_plan.Model
	addOns    *m_add_on.Model
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) *CatalogRepo {
	return &CatalogRepo{
		client:    client,
		pricing:   m_package_pricing.NewModel(),
		durations: m_package_duration.NewModel(),
		plans:     m_subscription_plan.NewModel(),
		addOns:    m_add_on.NewModel(),
	}
}

var _ contracts.CatalogReader = (*CatalogRepo)(nil)

// LoadSnapshot reads all four catalog tables at a single timestamp.
func (r *CatalogRepo) LoadSnapshot(ctx context.Context, packageID string) (*domain.CatalogSnapshot, error) {
	if packageID == "" {
		return nil, domain.ErrEmptyPackageID
	}

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	snapshot := &domain.CatalogSnapshot{
		PackageID: packageID,
		Pricing:   domain.PriceConfiguration{PackageID: packageID},
	}

	row, err := txn.ReadRow(ctx, m_package_pricing.TableName, spanner.Key{packageID}, r.pricing.ReadColumns())
	switch {
	case err == nil:
		var data m_package_pricing.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse package pricing: %w", err)
		}
		snapshot.Pricing.DomainPrice = moneyFromNullNumeric(data.DomainPrice)
		snapshot.Pricing.PackagePrice = moneyFromNullNumeric(data.PackagePrice)
	case spanner.ErrCode(err) == codes.NotFound:
		// No pricing row yet: leave prices nil.
	default:
		return nil, fmt.Errorf("failed to read package pricing: %w", err)
	}

	if snapshot.Durations, err = r.readDurations(ctx, txn, packageID); err != nil {
		return nil, err
	}
	if snapshot.Plans, err = r.readPlans(ctx, txn, packageID); err != nil {
		return nil, err
	}
	if snapshot.AddOns, err = r.readAddOns(ctx, txn, packageID); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// readDurations returns rows in (sort_order, duration_id) order, which is the scan order
// duplicate durations are resolved in.
func (r *CatalogRepo) readDurations(ctx context.Context, txn *spanner.ReadOnlyTransaction, packageID string) ([]domain.DurationDiscountRow, error) {
	stmt := query.From(m_package_duration.TableName).
		Select(r.durations.ReadColumns()...).
		Where(query.Eq(m_package_duration.PackageID, packageID)).
		OrderBy(m_package_duration.SortOrder, query.Asc).
		OrderBy(m_package_duration.DurationID, query.Asc).
		Build()

	rows := make([]domain.DurationDiscountRow, 0)
	err := scan(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_package_duration.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse duration: %w", err)
		}
		var percent *big.Rat
		if data.DiscountPercent.Valid {
			percent = new(big.Rat).Set(&data.DiscountPercent.Numeric)
		}
		rows = append(rows, domain.DurationDiscountRow{
			PackageID:       data.PackageID,
			DurationID:      data.DurationID,
			DurationMonths:  int(data.DurationMonths),
			DiscountPercent: percent,
			IsActive:        data.IsActive,
			SortOrder:       int(data.SortOrder),
		})
		return nil
	})
	return rows, err
}

func (r *CatalogRepo) readPlans(ctx context.Context, txn *spanner.ReadOnlyTransaction, packageID string) ([]domain.SubscriptionPlan, error) {
	stmt := query.From(m_subscription_plan.TableName).
		Select(r.plans.ReadColumns()...).
		Where(query.Eq(m_subscription_plan.PackageID, packageID)).
		OrderBy(m_subscription_plan.SortOrder, query.Asc).
		OrderBy(m_subscription_plan.Years, query.Asc).
		Build()

	plans := make([]domain.SubscriptionPlan, 0)
	err := scan(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_subscription_plan.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse plan: %w", err)
		}
		plans = append(plans, domain.SubscriptionPlan{
			Years:         int(data.Years),
			Label:         data.Label.StringVal,
			PriceOverride: moneyFromNullNumeric(data.PriceOverride),
			SortOrder:     int(data.SortOrder),
		})
		return nil
	})
	return plans, err
}

func (r *CatalogRepo) readAddOns(ctx context.Context, txn *spanner.ReadOnlyTransaction, packageID string) ([]domain.AddOnItem, error) {
	stmt := query.From(m_add_on.TableName).
		Select(r.addOns.ReadColumns()...).
		Where(query.Eq(m_add_on.PackageID, packageID)).
		Where(query.Eq(m_add_on.IsActive, true)).
		OrderBy(m_add_on.SortOrder, query.Asc).
		OrderBy(m_add_on.AddOnID, query.Asc).
		Build()

	items := make([]domain.AddOnItem, 0)
	err := scan(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_add_on.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse add-on: %w", err)
		}
		item := domain.AddOnItem{
			ID:        data.AddOnID,
			Label:     data.Label,
			Kind:      domain.AddOnKind(data.Kind),
			Price:     domain.NewMoneyFromRat(&data.Price),
			Unit:      data.Unit.StringVal,
			UnitStep:  quantityFromNumeric(&data.UnitStep),
			SortOrder: int(data.SortOrder),
		}
		if data.MaxQuantity.Valid {
			maxQty := quantityFromNumeric(&data.MaxQuantity.Numeric)
			item.MaxQuantity = &maxQty
		}
		items = append(items, item)
		return nil
	})
	return items, err
}

// SnapshotMuts creates the mutations that store a snapshot. Existing rows for the same
// keys are overwritten; rows missing from the snapshot are left untouched.
func (r *CatalogRepo) SnapshotMuts(snapshot *domain.CatalogSnapshot) ([]*spanner.Mutation, error) {
	if snapshot == nil || snapshot.PackageID == "" {
		return nil, domain.ErrEmptyPackageID
	}
	packageID := snapshot.PackageID
	muts := []*spanner.Mutation{
		r.pricing.UpsertMut(&m_package_pricing.Data{
			PackageID:    packageID,
			DomainPrice:  nullNumericFromMoney(snapshot.Pricing.DomainPrice),
			PackagePrice: nullNumericFromMoney(snapshot.Pricing.PackagePrice),
		}),
	}

	for _, d := range snapshot.Durations {
		data := &m_package_duration.Data{
			PackageID:      packageID,
			DurationID:     d.DurationID,
			DurationMonths: int64(d.DurationMonths),
			IsActive:       d.IsActive,
			SortOrder:      int64(d.SortOrder),
		}
		if d.DiscountPercent != nil {
			data.DiscountPercent = spanner.NullNumeric{Numeric: *new(big.Rat).Set(d.DiscountPercent), Valid: true}
		}
		mut, err := r.durations.UpsertMut(data)
		if err != nil {
			return nil, fmt.Errorf("failed to build duration mutation: %w", err)
		}
		muts = append(muts, mut)
	}

	for _, p := range snapshot.Plans {
		mut, err := r.plans.UpsertMut(&m_subscription_plan.Data{
			PackageID:     packageID,
			Years:         int64(p.Years),
			Label:         spanner.NullString{StringVal: p.Label, Valid: p.Label != ""},
			PriceOverride: nullNumericFromMoney(p.PriceOverride),
			SortOrder:     int64(p.SortOrder),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build plan mutation: %w", err)
		}
		muts = append(muts, mut)
	}

	for _, a := range snapshot.AddOns {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("add-on %q: %w", a.ID, err)
		}
		data := &m_add_on.Data{
			PackageID: packageID,
			AddOnID:   a.ID,
			Label:     a.Label,
			Kind:      string(a.Kind),
			Price:     *a.Price.Rat(),
			Unit:      spanner.NullString{StringVal: a.Unit, Valid: a.Unit != ""},
			UnitStep:  *a.UnitStep.Rat(),
			SortOrder: int64(a.SortOrder),
			IsActive:  true,
		}
		if a.MaxQuantity != nil {
			data.MaxQuantity = spanner.NullNumeric{Numeric: *a.MaxQuantity.Rat(), Valid: true}
		}
		mut, err := r.addOns.UpsertMut(data)
		if err != nil {
			return nil, fmt.Errorf("failed to build add-on mutation: %w", err)
		}
		muts = append(muts, mut)
	}

	return muts, nil
}

type queryer interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

func scan(ctx context.Context, q queryer, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to iterate rows: %w", err)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func moneyFromNullNumeric(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

func nullNumericFromMoney(m *domain.Money) spanner.NullNumeric {
	if m == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *m.Rat(), Valid: true}
}

// quantityFromNumeric converts a NUMERIC column, which carries at most nine fractional
// digits, to a quantity.
func quantityFromNumeric(r *big.Rat) decimal.Decimal {
	return decimal.NewFromBigRat(r, spannerNumericScale)
}
