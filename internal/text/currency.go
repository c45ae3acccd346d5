// Package text holds the string-level helpers of the composer: word wrapping against
// measured widths and locale-aware amount formatting.
package text

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes how amounts are labelled.
type Currency struct {
	// Symbol prefixes every amount, e.g. "R".
	Symbol string
	// Code is used in column headers, e.g. "ZAR".
	Code string
}

// Format renders d with thousands separators and exactly two decimals, prefixed with the
// currency symbol: "R 2,100.00".
func (c Currency) Format(d decimal.Decimal) string {
	n := FormatNumber(d, 2)
	if c.Symbol == "" {
		return n
	}
	return c.Symbol + " " + n
}

// Label appends the currency code to a column title: "Rate (ZAR)".
func (c Currency) Label(title string) string {
	if c.Code == "" {
		return title
	}
	return title + " (" + c.Code + ")"
}

// FormatNumber renders d with English digit grouping and a fixed number of decimals.
func FormatNumber(d decimal.Decimal, places int32) string {
	p := message.NewPrinter(language.English)
	neg := d.IsNegative()
	// Group the integer part through x/text and keep the exact fraction from decimal.
	fixed := d.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")
	var out string
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		out = p.Sprintf("%d", n)
	} else {
		// beyond int64 the printer cannot take the value, group by hand
		out = groupThousands(intPart)
	}
	if places > 0 {
		out += "." + frac
	}
	if neg && !d.Round(places).IsZero() {
		out = "-" + out
	}
	return out
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatQuantity renders hours without trailing zeros: 2, 1.5, 0.25.
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}

// FormatPercent renders a fractional rate as a percentage: 0.15 -> "15%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
