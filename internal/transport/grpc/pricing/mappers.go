package pricing

import (
	"math/big"
	"time"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/currency"
)

func moneyString(m *domain.Money) string {
	if m == nil {
		return ""
	}
	return m.Rat().RatString()
}

// displayString renders a display total computed by the engine.
func displayString(total *big.Rat) string {
	if total == nil {
		return ""
	}
	return currency.DisplayDecimal(total).String()
}

func toPriceReply(r *domain.OrderPricingResult) *PriceReply {
	reply := &PriceReply{
		PackageID:         r.PackageID,
		Months:            int32(r.Months),
		Available:         r.Available,
		UnavailableReason: r.UnavailableReason,
		Mode:              string(r.Mode),
		DiscountPercent:   r.DiscountPercent.String(),
		SubtotalBase:      moneyString(r.SubtotalBase),
		AddOnsBase:        moneyString(r.AddOnsBase),
		DiscountApplied:   moneyString(r.DiscountApplied),
		TotalBase:         moneyString(r.TotalBase),
		DisplayCurrency:   r.DisplayCurrency,
		Promo:             toPromo(r.Promo),
	}
	if r.Available {
		reply.TotalDisplay = displayString(r.TotalDisplay)
	}
	for _, line := range r.AddOnLines {
		reply.AddOnLines = append(reply.AddOnLines, &AddOnLine{
			ID:        line.ID,
			Label:     line.Label,
			Kind:      string(line.Kind),
			Quantity:  line.Quantity.String(),
			UnitPrice: moneyString(line.UnitPrice),
			Amount:    moneyString(line.Amount),
		})
	}
	return reply
}

func toPromo(r *domain.PromoResult) *Promo {
	if r == nil {
		return nil
	}
	return &Promo{
		OK:                r.OK,
		Code:              r.Code,
		Name:              r.Name,
		Reason:            string(r.Reason),
		DiscountBase:      moneyString(r.DiscountBase),
		EffectiveDiscount: moneyString(r.EffectiveDiscount),
		FinalTotal:        moneyString(r.FinalTotal),
	}
}

func toPlanOptions(options []list_plan_options.PlanOption) []*PlanOption {
	out := make([]*PlanOption, 0, len(options))
	for _, o := range options {
		plan := &PlanOption{
			Years:           int32(o.Years),
			Label:           o.Label,
			Months:          int32(o.Months),
			Mode:            string(o.Mode),
			DiscountPercent: o.DiscountPercent.String(),
			Available:       o.Available,
			TotalBase:       moneyString(o.TotalBase),
			DisplayCurrency: o.DisplayCurrency,
		}
		if o.Available {
			plan.TotalDisplay = displayString(o.TotalDisplay)
		}
		out = append(out, plan)
	}
	return out
}

func toQuote(q *domain.Quote) *Quote {
	out := &Quote{
		QuoteID:         q.ID(),
		PackageID:       q.PackageID(),
		Months:          int32(q.Months()),
		AddOns:          q.Selections(),
		PromoCode:       q.PromoCode(),
		Mode:            string(q.Mode()),
		DiscountPercent: q.DiscountPercent().String(),
		TotalBase:       moneyString(q.TotalBase()),
		TotalDisplay:    displayString(q.TotalDisplay()),
		DisplayCurrency: q.DisplayCurrency(),
		Status:          string(q.Status()),
		PaymentRef:      q.PaymentRef(),
		Version:         q.Version(),
		CreatedAt:       q.CreatedAt().UTC().Format(time.RFC3339),
		ExpiresAt:       q.ExpiresAt().UTC().Format(time.RFC3339),
	}
	if at := q.ConsumedAt(); at != nil {
		out.ConsumedAt = at.UTC().Format(time.RFC3339)
	}
	return out
}
