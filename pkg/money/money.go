// Package money holds the decimal helpers shared by the catalog, cart and checkout.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is the storefront's display locale.
const DefaultLocale = "es-CO"

// LineTotal returns price × quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Sum adds every value; an empty input is zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Formatter renders amounts with locale grouping, e.g. "$25.000" for es-CO.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for the given BCP 47 tag, falling back to DefaultLocale.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders the amount with a leading currency sign. Whole amounts print without decimals.
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	if amount.IsInteger() {
		return sign + "$" + f.printer.Sprintf("%d", amount.IntPart())
	}
	return sign + "$" + f.printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}
