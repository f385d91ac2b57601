package m_add_on

// Field name constants for the add_ons table.
const (
	TableName = "add_ons"

	PackageID   = "package_id"
	AddOnID     = "add_on_id"
	Label       = "label"
	Kind        = "kind"
	Price       = "price"
	Unit        = "unit"
	UnitStep    = "unit_step"
	MaxQuantity = "max_quantity"
	SortOrder   = "sort_order"
	IsActive    = "is_active"
)
