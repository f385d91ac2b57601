package m_package_pricing

// Field name constants for the package_pricing table.
const (
	TableName = "package_pricing"

	PackageID    = "package_id"
	DomainPrice  = "domain_price"
	PackagePrice = "package_price"
	UpdatedAt    = "updated_at"
)
