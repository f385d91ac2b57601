package repo

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_promo_code"
)

// PromoRepo reads promo codes from Spanner.
type PromoRepo struct {
	client *spanner.Client
	model  *m_promo_code.Model
}

// NewPromoRepo creates a new PromoRepo.
func NewPromoRepo(client *spanner.Client) *PromoRepo {
	return &PromoRepo{client: client, model: m_promo_code.NewModel()}
}

var _ contracts.PromoReader = (*PromoRepo)(nil)

// FindByCode reads a promo by its normalized code. Inactive codes are returned as stored;
// the domain decides whether they apply.
func (r *PromoRepo) FindByCode(ctx context.Context, normalizedCode string) (*domain.PromoCode, error) {
	row, err := r.client.Single().ReadRow(ctx, m_promo_code.TableName, spanner.Key{normalizedCode}, r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read promo code: %w", err)
	}

	var data m_promo_code.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse promo code: %w", err)
	}
	return promoFromData(&data), nil
}

func promoFromData(data *m_promo_code.Data) *domain.PromoCode {
	promo := &domain.PromoCode{
		ID:          data.PromoID,
		Code:        data.Code,
		Name:        data.Name,
		IsActive:    data.IsActive,
		Rule:        domain.PromoRule{Type: domain.PromoRuleType(data.RuleType), Value: new(big.Rat).Set(&data.RuleValue)},
		MinSubtotal: moneyFromNullNumeric(data.MinSubtotal),
	}
	if data.StartsAt.Valid {
		promo.Window.StartsAt = data.StartsAt.Time
	}
	if data.EndsAt.Valid {
		promo.Window.EndsAt = data.EndsAt.Time
	}
	return promo
}

// UpsertMut creates a mutation writing a promo code under its normalized code.
func (r *PromoRepo) UpsertMut(promo *domain.PromoCode) (*spanner.Mutation, error) {
	if err := promo.Rule.Validate(); err != nil {
		return nil, err
	}
	data := &m_promo_code.Data{
		Code:        domain.NormalizeCode(promo.Code),
		PromoID:     promo.ID,
		Name:        promo.Name,
		IsActive:    promo.IsActive,
		RuleType:    string(promo.Rule.Type),
		RuleValue:   *new(big.Rat).Set(promo.Rule.Value),
		MinSubtotal: nullNumericFromMoney(promo.MinSubtotal),
	}
	if !promo.Window.StartsAt.IsZero() {
		data.StartsAt = spanner.NullTime{Time: promo.Window.StartsAt, Valid: true}
	}
	if !promo.Window.EndsAt.IsZero() {
		data.EndsAt = spanner.NullTime{Time: promo.Window.EndsAt, Valid: true}
	}
	return r.model.UpsertMut(data)
}
