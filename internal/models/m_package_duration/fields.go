package m_package_duration

// Field name constants for the package_durations table.
const (
	TableName = "package_durations"

	PackageID       = "package_id"
	DurationID      = "duration_id"
	DurationMonths  = "duration_months"
	DiscountPercent = "discount_percent"
	IsActive        = "is_active"
	SortOrder       = "sort_order"
)
