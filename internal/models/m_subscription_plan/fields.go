package m_subscription_plan

// Field name constants for the subscription_plans table.
const (
	TableName = "subscription_plans"

	PackageID     = "package_id"
	Years         = "years"
	Label         = "label"
	PriceOverride = "price_override"
	SortOrder     = "sort_order"
)
