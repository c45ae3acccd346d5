package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a (description, hours) pair billed at the request rate.
type Entry struct {
	Description string
	Hours       float64
}

// Request is the caller input for one invoice. Items may be given either as Entries or as
// parallel Courses/Hours slices, not both.
type Request struct {
	Student string
	Entries []Entry
	Courses []string
	Hours   []float64
	Rate    float64

	// Optional overrides.
	Number    string
	Date      string
	Client    *ClientProfile
	OutputDir string
}

// Defaults supplies the values a Request falls back to.
type Defaults struct {
	Now         func() time.Time
	Numbering   Numbering
	HouseClient *ClientProfile
	TaxRate     decimal.Decimal
}

// Resolve validates the request, fills the number, date and bill-to from defaults and
// computes the record.
func (r Request) Resolve(d Defaults) (*Record, error) {
	entries, err := r.entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, invalid("items", "at least one line item is required")
	}

	items := make([]LineItem, 0, len(entries))
	for _, e := range entries {
		item, err := NewLineItem(e.Description, e.Hours, r.Rate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	var t time.Time
	number := strings.TrimSpace(r.Number)
	date := strings.TrimSpace(r.Date)
	if number == "" || date == "" {
		t = now()
	}
	if number == "" {
		number = NextNumber(t, d.Numbering)
	}
	if date == "" {
		date = t.Format(DateLayout)
	}

	return NewRecord(Draft{
		Number:  number,
		Date:    date,
		Student: strings.TrimSpace(r.Student),
		Items:   items,
		TaxRate: d.TaxRate,
		BillTo:  SelectClient(r.Client, d.HouseClient),
	})
}

func (r Request) entries() ([]Entry, error) {
	parallel := len(r.Courses) > 0 || len(r.Hours) > 0
	if parallel && len(r.Entries) > 0 {
		return nil, invalid("items", "give either entries or courses/hours, not both")
	}
	if !parallel {
		return r.Entries, nil
	}
	if len(r.Courses) != len(r.Hours) {
		return nil, invalid("items", "%d courses but %d hour values", len(r.Courses), len(r.Hours))
	}
	out := make([]Entry, len(r.Courses))
	for i := range r.Courses {
		out[i] = Entry{Description: r.Courses[i], Hours: r.Hours[i]}
	}
	return out, nil
}
