// Package currency formats decimal amounts for display.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const Default = "USD"

// Formatter renders amounts in one currency.
type Formatter struct {
	code     string
	fraction int32
	known    bool
}

// New returns a formatter for an ISO 4217 code. Unknown codes are rendered
// as "<amount> <code>" with two decimals.
func New(code string) Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = Default
	}

	c := money.GetCurrency(code)
	if c == nil {
		return Formatter{code: code, fraction: 2}
	}
	return Formatter{code: code, fraction: int32(c.Fraction), known: true}
}

func (f Formatter) Code() string {
	return f.code
}

// Format renders d with the currency symbol and grouping, e.g. "$1,234.50".
func (f Formatter) Format(d decimal.Decimal) string {
	if !f.known {
		return d.StringFixed(f.fraction) + " " + f.code
	}
	minor := d.Shift(f.fraction).Round(0).IntPart()
	return money.New(minor, f.code).Display()
}

// Plain renders d with the currency's decimal places and no symbol.
func (f Formatter) Plain(d decimal.Decimal) string {
	return d.StringFixed(f.fraction)
}
