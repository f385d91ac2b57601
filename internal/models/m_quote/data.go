package m_quote

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the quotes table. Base-currency amounts are
// stored as exact numerator/denominator pairs; the display total is already rounded.
type Data struct {
	QuoteID                  string             `spanner:"quote_id"`
	PackageID                string             `spanner:"package_id"`
	Months                   int64              `spanner:"months"`
	Selections               spanner.NullJSON   `spanner:"selections"`
	PromoCode                spanner.NullString `spanner:"promo_code"`
	Mode                     string             `spanner:"mode"`
	DiscountPercent          big.Rat            `spanner:"discount_percent"`
	SubtotalNumerator        int64              `spanner:"subtotal_numerator"`
	SubtotalDenominator      int64              `spanner:"subtotal_denominator"`
	AddOnsNumerator          int64              `spanner:"add_ons_numerator"`
	AddOnsDenominator        int64              `spanner:"add_ons_denominator"`
	DiscountAppliedNumerator int64              `spanner:"discount_applied_numerator"`
	DiscountAppliedDenom     int64              `spanner:"discount_applied_denominator"`
	TotalNumerator           int64              `spanner:"total_numerator"`
	TotalDenominator         int64              `spanner:"total_denominator"`
	TotalDisplay             big.Rat            `spanner:"total_display"`
	DisplayCurrency          string             `spanner:"display_currency"`
	Status                   string             `spanner:"status"`
	PaymentRef               spanner.NullString `spanner:"payment_ref"`
	Version                  int64              `spanner:"version"`
	CreatedAt                time.Time          `spanner:"created_at"`
	UpdatedAt                time.Time          `spanner:"updated_at"`
	ExpiresAt                time.Time          `spanner:"expires_at"`
	ConsumedAt               spanner.NullTime   `spanner:"consumed_at"`
}
