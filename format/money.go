// Package format renders money, percentages and dates the way Flotech documents print them.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// Rupiah renders d rounded to whole Rupiah with "." thousands separators, e.g. "Rp 271.950".
func Rupiah(d decimal.Decimal) string {
	r := d.Round(0)
	neg := r.IsNegative()
	s := "Rp " + Grouped(r.Abs().IntPart())
	if neg {
		return "-" + s
	}
	return s
}

// RupiahString parses s leniently and renders it with Rupiah. Unparsable input renders "Rp 0".
func RupiahString(s string) string {
	return Rupiah(ParseAmount(s))
}

// ParseAmount accepts "271950", "271950.5", " 1e3 " and returns zero for anything else.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Grouped renders a whole number with Indonesian "." thousands separators
func Grouped(n int64) string {
	return idPrinter.Sprintf("%d", n)
}

// Percent renders a discount column value. Absent or zero renders the em dash.
func Percent(d decimal.Decimal, present bool) string {
	if !present || d.IsZero() {
		return "—"
	}
	return d.String() + "%"
}

// Quantity renders a quantity without trailing zeros, e.g. "2" or "1.5".
func Quantity(d decimal.Decimal) string {
	return d.String()
}
