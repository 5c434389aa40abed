package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = strings.NewReplacer("£", "", "$", "", "€", "", ",", "")

// ParseAmount reads a monetary value from record data. Stake columns arrive
// as plain numbers or as currency-annotated strings ("£10.00", "10.00 GBP"),
// so symbols, thousands separators and ISO code annotations are stripped
// before parsing.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(currencySymbols.Replace(s))

	// Trailing or leading ISO currency code annotation.
	for _, part := range strings.Fields(cleaned) {
		if len(part) == 3 && part == strings.ToUpper(part) && !strings.ContainsAny(part, "0123456789") {
			cleaned = strings.TrimSpace(strings.Replace(cleaned, part, "", 1))
		}
	}

	return decimal.NewFromString(cleaned)
}

// FormatGBP renders an amount as the fixed display format: pound sign plus
// exactly two decimal places.
func FormatGBP(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

// ParseGBP reverses FormatGBP. Formatted totals must survive the round trip
// cent for cent.
func ParseGBP(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "£"))
}
