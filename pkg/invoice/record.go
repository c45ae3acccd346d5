// Package invoice holds the invoice data model: profiles, line items, the computed
// record, request resolution and the error taxonomy shared by the composer.
package invoice

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one billable row.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal // hours
	Rate        decimal.Decimal
}

// NewLineItem builds a line item from float inputs, rejecting negative or non-finite values.
func NewLineItem(description string, hours, rate float64) (LineItem, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return LineItem{}, invalid("hours", "%q: must be a finite number", description)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return LineItem{}, invalid("rate", "must be a finite number")
	}
	item := LineItem{
		Description: description,
		Quantity:    decimal.NewFromFloat(hours),
		Rate:        decimal.NewFromFloat(rate),
	}
	return item, item.validate()
}

// Amount is quantity x rate rounded to cents.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.Rate).Round(2)
}

func (li LineItem) validate() error {
	if li.Quantity.IsNegative() {
		return invalid("hours", "%q: must not be negative", li.Description)
	}
	if li.Rate.IsNegative() {
		return invalid("rate", "%q: must not be negative", li.Description)
	}
	return nil
}

// Draft carries the resolved fields of an invoice before totals are computed.
type Draft struct {
	Number  string
	Date    string
	Student string
	Items   []LineItem
	TaxRate decimal.Decimal
	BillTo  ClientProfile
}

// Record is a fully computed invoice. It is not modified once built.
type Record struct {
	Number   string
	Date     string
	Student  string
	Items    []LineItem
	Subtotal decimal.Decimal
	TaxRate  decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	BillTo   ClientProfile
}

// NewRecord validates a draft and computes subtotal, tax and total.
func NewRecord(d Draft) (*Record, error) {
	if strings.TrimSpace(d.Number) == "" {
		return nil, invalid("number", "must not be empty")
	}
	if strings.TrimSpace(d.Student) == "" {
		return nil, invalid("student", "must not be empty")
	}
	if len(d.Items) == 0 {
		return nil, invalid("items", "at least one line item is required")
	}
	if d.TaxRate.IsNegative() {
		return nil, invalid("tax_rate", "must not be negative")
	}

	items := make([]LineItem, len(d.Items))
	subtotal := decimal.Zero
	for i, it := range d.Items {
		if err := it.validate(); err != nil {
			return nil, err
		}
		items[i] = it
		subtotal = subtotal.Add(it.Amount())
	}

	tax := subtotal.Mul(d.TaxRate).Round(2)
	return &Record{
		Number:   d.Number,
		Date:     d.Date,
		Student:  d.Student,
		Items:    items,
		Subtotal: subtotal,
		TaxRate:  d.TaxRate,
		Tax:      tax,
		Total:    subtotal.Add(tax),
		BillTo:   d.BillTo,
	}, nil
}

// HasTax reports whether a tax row is printed. A zero rate suppresses it.
func (r *Record) HasTax() bool {
	return r.TaxRate.IsPositive()
}

// Courses returns the distinct item descriptions in first-seen order.
func (r *Record) Courses() []string {
	seen := make(map[string]bool, len(r.Items))
	var out []string
	for _, it := range r.Items {
		if seen[it.Description] {
			continue
		}
		seen[it.Description] = true
		out = append(out, it.Description)
	}
	return out
}

// TotalHours sums the quantities of all line items.
func (r *Record) TotalHours() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range r.Items {
		sum = sum.Add(it.Quantity)
	}
	return sum
}
