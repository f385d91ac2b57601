// Package currency converts base-currency amounts to the display currency and formats
// them for a locale. It is the only place in the service where amounts are rounded.
package currency

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	ErrInvalidRate     = errors.New("exchange rate must be positive")
	ErrInvalidCurrency = errors.New("invalid ISO 4217 currency code")
	ErrInvalidDecimals = errors.New("display decimals must be between 0 and 8")
)

// MaxDecimals is the largest display precision a Converter accepts.
const MaxDecimals = 8

// Config describes one base to display conversion.
type Config struct {
	BaseCurrency    string
	DisplayCurrency string
	Locale          string
	Rate            decimal.Decimal
	Decimals        int32
}

// Converter multiplies by a fixed rate and rounds half away from zero to the display
// precision. Results are never negative.
type Converter struct {
	base     currency.Unit
	display  currency.Unit
	tag      language.Tag
	rate     decimal.Decimal
	rateRat  *big.Rat
	decimals int32
}

// NewConverter validates the configuration.
func NewConverter(cfg Config) (*Converter, error) {
	base, err := currency.ParseISO(cfg.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("%w: base %q", ErrInvalidCurrency, cfg.BaseCurrency)
	}
	display, err := currency.ParseISO(cfg.DisplayCurrency)
	if err != nil {
		return nil, fmt.Errorf("%w: display %q", ErrInvalidCurrency, cfg.DisplayCurrency)
	}
	if !cfg.Rate.IsPositive() {
		return nil, ErrInvalidRate
	}
	if cfg.Decimals < 0 || cfg.Decimals > MaxDecimals {
		return nil, ErrInvalidDecimals
	}

	tag := language.English
	if cfg.Locale != "" {
		parsed, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
		tag = parsed
	}

	return &Converter{
		base:     base,
		display:  display,
		tag:      tag,
		rate:     cfg.Rate,
		rateRat:  cfg.Rate.Rat(),
		decimals: cfg.Decimals,
	}, nil
}

// Currency returns the display currency code.
func (c *Converter) Currency() string {
	return c.display.String()
}

// BaseCurrency returns the base currency code.
func (c *Converter) BaseCurrency() string {
	return c.base.String()
}

// Rate returns the configured rate.
func (c *Converter) Rate() decimal.Decimal {
	return c.rate
}

// ToDisplay converts an exact base amount. A nil amount yields nil.
func (c *Converter) ToDisplay(amountBase *big.Rat) *big.Rat {
	if amountBase == nil {
		return nil
	}
	return c.ToDisplayDecimal(amountBase).Rat()
}

// ToDisplayDecimal converts an exact base amount and returns the rounded decimal.
func (c *Converter) ToDisplayDecimal(amountBase *big.Rat) decimal.Decimal {
	if amountBase == nil || amountBase.Sign() <= 0 {
		return decimal.Zero
	}
	product := new(big.Rat).Mul(amountBase, c.rateRat)
	num := decimal.NewFromBigInt(product.Num(), 0)
	den := decimal.NewFromBigInt(product.Denom(), 0)
	return num.DivRound(den, c.decimals)
}

// Format renders a display amount in the configured locale, e.g. "Rp 1.234.567" or
// "$1,234.56".
func (c *Converter) Format(amountDisplay *big.Rat) string {
	return Format(amountDisplay, c.display, c.tag, c.decimals)
}

// FormatBase converts and formats in one step.
func (c *Converter) FormatBase(amountBase *big.Rat) string {
	return c.Format(c.ToDisplay(amountBase))
}

// DisplayDecimal returns an amount already produced by ToDisplay as a decimal. It does
// not round, because display amounts never carry more than MaxDecimals digits.
func DisplayDecimal(amountDisplay *big.Rat) decimal.Decimal {
	return decimal.NewFromBigRat(amountDisplay, MaxDecimals)
}
