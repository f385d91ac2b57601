package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_quote"
)

// QuoteRepo implements QuoteRepository for Spanner.
type QuoteRepo struct {
	client *spanner.Client
	model  *m_quote.Model
}

// NewQuoteRepo creates a new QuoteRepo.
func NewQuoteRepo(client *spanner.Client) contracts.QuoteRepository {
	return &QuoteRepo{
		client: client,
		model:  m_quote.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a newly locked quote.
func (r *QuoteRepo) InsertMut(quote *domain.Quote) (*spanner.Mutation, error) {
	data, err := quoteToData(quote)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for the dirty fields of a quote. Amounts are frozen at
// lock time, so only lifecycle columns can change.
func (r *QuoteRepo) UpdateMut(quote *domain.Quote) (*spanner.Mutation, error) {
	changes := quote.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldStatus) {
		updates[m_quote.Status] = string(quote.Status())
	}
	if changes.Dirty(domain.FieldPaymentRef) {
		updates[m_quote.PaymentRef] = spanner.NullString{StringVal: quote.PaymentRef(), Valid: quote.PaymentRef() != ""}
	}
	if changes.Dirty(domain.FieldConsumedAt) {
		if at := quote.ConsumedAt(); at != nil {
			updates[m_quote.ConsumedAt] = *at
		} else {
			updates[m_quote.ConsumedAt] = spanner.NullTime{}
		}
	}
	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_quote.Version] = quote.Version() + 1
	return r.model.UpdateMut(quote.ID(), updates), nil
}

// GetByID loads a quote aggregate.
func (r *QuoteRepo) GetByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	row, err := r.client.Single().ReadRow(ctx, m_quote.TableName, spanner.Key{quoteID}, r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to read quote: %w", err)
	}

	var data m_quote.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse quote: %w", err)
	}
	return dataToQuote(&data)
}

func quoteToData(q *domain.Quote) (*m_quote.Data, error) {
	subtotalNum, subtotalDen, err := storableMoney("subtotal", q.SubtotalBase())
	if err != nil {
		return nil, err
	}
	addOnsNum, addOnsDen, err := storableMoney("add-ons", q.AddOnsBase())
	if err != nil {
		return nil, err
	}
	discountNum, discountDen, err := storableMoney("discount", q.DiscountApplied())
	if err != nil {
		return nil, err
	}
	totalNum, totalDen, err := storableMoney("total", q.TotalBase())
	if err != nil {
		return nil, err
	}

	selections, err := json.Marshal(q.Selections())
	if err != nil {
		return nil, fmt.Errorf("failed to encode selections: %w", err)
	}

	return &m_quote.Data{
		QuoteID:                  q.ID(),
		PackageID:                q.PackageID(),
		Months:                   int64(q.Months()),
		Selections:               spanner.NullJSON{Value: json.RawMessage(selections), Valid: true},
		PromoCode:                spanner.NullString{StringVal: q.PromoCode(), Valid: q.PromoCode() != ""},
		Mode:                     string(q.Mode()),
		DiscountPercent:          *q.DiscountPercent().Rat(),
		SubtotalNumerator:        subtotalNum,
		SubtotalDenominator:      subtotalDen,
		AddOnsNumerator:          addOnsNum,
		AddOnsDenominator:        addOnsDen,
		DiscountAppliedNumerator: discountNum,
		DiscountAppliedDenom:     discountDen,
		TotalNumerator:           totalNum,
		TotalDenominator:         totalDen,
		TotalDisplay:             *q.TotalDisplay(),
		DisplayCurrency:          q.DisplayCurrency(),
		Status:                   string(q.Status()),
		PaymentRef:               spanner.NullString{StringVal: q.PaymentRef(), Valid: q.PaymentRef() != ""},
		Version:                  q.Version(),
		CreatedAt:                q.CreatedAt(),
		ExpiresAt:                q.ExpiresAt(),
	}, nil
}

func dataToQuote(data *m_quote.Data) (*domain.Quote, error) {
	subtotal, err := domain.NewMoney(data.SubtotalNumerator, data.SubtotalDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid subtotal: %w", err)
	}
	addOns, err := domain.NewMoney(data.AddOnsNumerator, data.AddOnsDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid add-ons total: %w", err)
	}
	discount, err := domain.NewMoney(data.DiscountAppliedNumerator, data.DiscountAppliedDenom)
	if err != nil {
		return nil, fmt.Errorf("invalid discount: %w", err)
	}
	total, err := domain.NewMoney(data.TotalNumerator, data.TotalDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid total: %w", err)
	}

	selections := make(domain.AddOnSelections)
	if data.Selections.Valid {
		if err := json.Unmarshal([]byte(data.Selections.String()), &selections); err != nil {
			return nil, fmt.Errorf("invalid selections: %w", err)
		}
	}

	state := domain.QuoteState{
		ID:              data.QuoteID,
		PackageID:       data.PackageID,
		Months:          int(data.Months),
		Selections:      selections,
		PromoCode:       data.PromoCode.StringVal,
		Mode:            domain.PricingMode(data.Mode),
		DiscountPercent: new(big.Rat).Set(&data.DiscountPercent),
		SubtotalBase:    subtotal,
		AddOnsBase:      addOns,
		DiscountApplied: discount,
		TotalBase:       total,
		TotalDisplay:    new(big.Rat).Set(&data.TotalDisplay),
		DisplayCurrency: data.DisplayCurrency,
		Status:          domain.QuoteStatus(data.Status),
		PaymentRef:      data.PaymentRef.StringVal,
		Version:         data.Version,
		CreatedAt:       data.CreatedAt,
		ExpiresAt:       data.ExpiresAt,
	}
	if data.ConsumedAt.Valid {
		at := data.ConsumedAt.Time
		state.ConsumedAt = &at
	}
	return domain.ReconstructQuote(state), nil
}

func storableMoney(name string, m *domain.Money) (int64, int64, error) {
	if !m.IsSafeForStorage() {
		return 0, 0, fmt.Errorf("%s exceeds storage capacity: %w", name, domain.ErrMoneyOverflow)
	}
	num, _ := m.Numerator()
	den, _ := m.Denominator()
	return num, den, nil
}
