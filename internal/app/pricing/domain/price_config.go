package domain

import "fmt"

const monthsPerYear = 12

// PriceConfiguration holds the annual base prices of a package in the base currency.
// A nil price means the collaborator has not supplied it (yet).
type PriceConfiguration struct {
	PackageID    string `json:"package_id"`
	DomainPrice  *Money `json:"domain_price,omitempty"`
	PackagePrice *Money `json:"package_price,omitempty"`
}

// BaseAnnual is a resolved, sound pair of annual base prices.
type BaseAnnual struct {
	domainPrice  *Money
	packagePrice *Money
}

// ResolveBaseAnnual validates the configuration. Missing or negative prices make the
// package unavailable; they are never treated as zero.
func (c *PriceConfiguration) ResolveBaseAnnual() (*BaseAnnual, error) {
	if c == nil || c.DomainPrice == nil || c.PackagePrice == nil {
		return nil, ErrConfigurationUnavailable
	}
	if c.DomainPrice.IsNegative() || c.PackagePrice.IsNegative() {
		return nil, fmt.Errorf("%w: %w", ErrConfigurationUnavailable, ErrNegativeAmount)
	}
	return &BaseAnnual{
		domainPrice:  c.DomainPrice.Copy(),
		packagePrice: c.PackagePrice.Copy(),
	}, nil
}

// DomainPrice returns the annual domain price.
func (b *BaseAnnual) DomainPrice() *Money { return b.domainPrice.Copy() }

// PackagePrice returns the annual package price.
func (b *BaseAnnual) PackagePrice() *Money { return b.packagePrice.Copy() }

// Annual returns domain + package.
func (b *BaseAnnual) Annual() *Money {
	return b.domainPrice.Add(b.packagePrice)
}

// Monthly returns Annual / 12. This is the single unit price every duration is derived from.
func (b *BaseAnnual) Monthly() *Money {
	monthly, _ := b.Annual().DivideByInt(monthsPerYear)
	return monthly
}

// MonthsForYears converts a plan length in years to months.
func MonthsForYears(years int) int {
	return years * monthsPerYear
}
