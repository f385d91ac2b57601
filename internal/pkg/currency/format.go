package currency

import (
	"math/big"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbols maps a display currency to the prefix shown before the grouped amount.
var symbols = map[string]string{
	"IDR": "Rp ",
	"USD": "$",
	"EUR": "€",
	"SGD": "S$",
	"MYR": "RM ",
	"JPY": "¥",
}

// separatorSample has enough integer digits to be grouped in every locale.
const separatorSample = 1234567.5

// Symbol returns the display prefix for a currency, falling back to "CODE ".
func Symbol(unit currency.Unit) string {
	if s, ok := symbols[unit.String()]; ok {
		return s
	}
	return unit.String() + " "
}

// Format renders amount with the locale's separators and the given number of decimals.
// Digits come from the exact amount, so values of any size print as charged. Groups are
// three digits wide. A nil amount renders as an empty string.
func Format(amount *big.Rat, unit currency.Unit, tag language.Tag, decimals int32) string {
	if amount == nil {
		return ""
	}
	d := decimal.NewFromBigRat(amount, decimals)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	group, point := separators(tag)
	intPart, frac, _ := strings.Cut(d.StringFixed(decimals), ".")
	out := groupDigits(intPart, group)
	if frac != "" {
		out += point + frac
	}
	return sign + Symbol(unit) + out
}

// separators returns the digit group and decimal separators of a locale, read from how
// x/text prints a sample number. A locale without grouping returns an empty group.
func separators(tag language.Tag) (group, point string) {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(separatorSample, number.Scale(1)))

	var seps []string
	var cur strings.Builder
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if cur.Len() > 0 {
				seps = append(seps, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}

	switch len(seps) {
	case 0:
		return ",", "."
	case 1:
		return "", seps[0]
	default:
		return seps[0], seps[len(seps)-1]
	}
}

func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
