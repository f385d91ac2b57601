package m_promo_code

// Field name constants for the promo_codes table. Codes are stored normalized
// (trimmed, upper case).
const (
	TableName = "promo_codes"

	Code        = "code"
	PromoID     = "promo_id"
	Name        = "name"
	IsActive    = "is_active"
	RuleType    = "rule_type"
	RuleValue   = "rule_value"
	MinSubtotal = "min_subtotal"
	StartsAt    = "starts_at"
	EndsAt      = "ends_at"
)
