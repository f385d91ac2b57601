package domain

import "errors"

// Domain errors as sentinel values
var (
	// Pricing errors
	ErrConfigurationUnavailable = errors.New("price configuration unavailable")
	ErrNonFiniteAmount          = errors.New("amount is not a finite number")
	ErrNegativeAmount           = errors.New("amount cannot be negative")
	ErrInvalidDuration          = errors.New("subscription duration must be a positive number of months")
	ErrInvalidDiscountPercent   = errors.New("discount percentage must be between 0 and 100")
	ErrMoneyOverflow            = errors.New("money value exceeds storage capacity")
	ErrEmptyPackageID           = errors.New("package id cannot be empty")

	// Add-on errors
	ErrInvalidAddOnKind = errors.New("add-on kind must be flat or per_unit")
	ErrEmptyAddOnID     = errors.New("add-on id cannot be empty")

	// Promo errors
	ErrInvalidPromoRule   = errors.New("promo rule must be flat or percent with a non-negative value")
	ErrPromoNotApplicable = errors.New("promo code cannot be applied to this order")

	// Quote errors
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrQuoteExpired         = errors.New("quote has expired")
	ErrQuoteAlreadyConsumed = errors.New("quote was already consumed")
	ErrVersionConflict      = errors.New("quote was modified concurrently")
	ErrInvalidQuoteTTL      = errors.New("quote lifetime must be positive")
)
