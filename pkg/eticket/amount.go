package eticket

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// amountPattern matches "USD 1,234.56", "USD1234.56" and "EUR 250".
var amountPattern = regexp.MustCompile(`\b([A-Z]{3})[ \t]*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// ParseCurrencyAmount reads the first "CURRENCY AMOUNT" pair in s. The code
// must be a known ISO 4217 currency, so labels such as "TAX 49.99" are skipped.
// Thousands separators are dropped and the decimal keeps its written scale.
// Both results are nil when nothing matches.
func ParseCurrencyAmount(s string) (*string, *decimal.Decimal) {
	for _, m := range amountPattern.FindAllStringSubmatch(strings.ToUpper(s), -1) {
		unit, err := currency.ParseISO(m[1])
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
		if err != nil {
			continue
		}
		code := unit.String()
		return &code, &amount
	}
	return nil, nil
}

// MonetaryFrom wraps ParseCurrencyAmount into a MonetaryAmount.
func MonetaryFrom(s string) MonetaryAmount {
	code, amount := ParseCurrencyAmount(s)
	return MonetaryAmount{Currency: code, Amount: amount}
}

// formatDecimal renders d with the scale it carries, so "200.00" stays "200.00".
func formatDecimal(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	if exp := d.Exponent(); exp < 0 {
		return strPtr(d.StringFixed(-exp))
	}
	return strPtr(d.String())
}
