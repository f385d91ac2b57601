package m_quote

// Field name constants for the quotes table.
const (
	TableName = "quotes"

	QuoteID                  = "quote_id"
	PackageID                = "package_id"
	Months                   = "months"
	Selections               = "selections"
	PromoCode                = "promo_code"
	Mode                     = "mode"
	DiscountPercent          = "discount_percent"
	SubtotalNumerator        = "subtotal_numerator"
	SubtotalDenominator      = "subtotal_denominator"
	AddOnsNumerator          = "add_ons_numerator"
	AddOnsDenominator        = "add_ons_denominator"
	DiscountAppliedNumerator = "discount_applied_numerator"
	DiscountAppliedDenom     = "discount_applied_denominator"
	TotalNumerator           = "total_numerator"
	TotalDenominator         = "total_denominator"
	TotalDisplay             = "total_display"
	DisplayCurrency          = "display_currency"
	Status                   = "status"
	PaymentRef               = "payment_ref"
	Version                  = "version"
	CreatedAt                = "created_at"
	UpdatedAt                = "updated_at"
	ExpiresAt                = "expires_at"
	ConsumedAt               = "consumed_at"
)
