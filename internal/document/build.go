// Package document turns a computed invoice record into the ordered story of styled
// layout blocks: title, parties, invoice details, service table, totals, payment terms,
// and on a new page the banking details and closing remark.
package document

import (
	"fmt"
	"strings"

	"github.com/gompdf/gominvoice/internal/layout"
	"github.com/gompdf/gominvoice/internal/markup"
	"github.com/gompdf/gominvoice/internal/style"
	"github.com/gompdf/gominvoice/internal/text"
	"github.com/gompdf/gominvoice/pkg/invoice"
)

// Logo is a decoded company logo.
type Logo struct {
	Name   string
	PNG    []byte
	Width  int
	Height int
}

// Input is everything the story is built from.
type Input struct {
	Record  *invoice.Record
	Company invoice.CompanyProfile
	Banking invoice.BankingProfile
	Theme   *style.Theme
	Logo    *Logo

	Currency      text.Currency
	TaxLabel      string
	PaymentTerms  []string
	ClosingRemark string
}

type builder struct {
	in     Input
	parser *markup.Parser
	blocks []layout.Block
}

// Build returns the blocks of the invoice in reading order. Payment terms and the
// closing remark are parsed as inline markup; data fields are taken literally.
func Build(in Input) ([]layout.Block, error) {
	if in.Record == nil {
		return nil, fmt.Errorf("no record")
	}
	if in.Theme == nil {
		in.Theme = style.NewTheme()
	}
	if in.TaxLabel == "" {
		in.TaxLabel = "Tax"
	}
	b := &builder{in: in, parser: markup.NewParser()}

	b.title()
	b.parties()
	b.heading("INVOICE DETAILS")
	b.details()
	b.heading("SERVICE DETAILS")
	b.service()
	b.totals()
	if err := b.terms(); err != nil {
		return nil, err
	}
	b.add(layout.PageBreak{})
	b.heading("BANKING DETAILS")
	b.banking()
	if err := b.closing(); err != nil {
		return nil, err
	}
	return b.blocks, nil
}

func (b *builder) add(blk layout.Block) { b.blocks = append(b.blocks, blk) }

func (b *builder) style(roles ...string) layout.Style {
	return layout.StyleFrom(b.in.Theme.Lookup(roles...))
}

func (b *builder) stylePtr(roles ...string) *layout.Style {
	st := b.style(roles...)
	return &st
}

func (b *builder) title() {
	if logo := b.in.Logo; logo != nil {
		props := b.in.Theme.Lookup("logo")
		b.add(&layout.Image{
			Tag:       "logo",
			Name:      logo.Name,
			Data:      logo.PNG,
			PixelW:    logo.Width,
			PixelH:    logo.Height,
			MaxWidth:  props.Float("max-width", 140),
			MaxHeight: props.Float("max-height", 60),
			Style:     layout.StyleFrom(props),
		})
	}
	b.add(layout.NewParagraph("title", []markup.Run{{Text: "INVOICE"}}, b.style("title")))
}

func (b *builder) heading(s string) {
	b.add(layout.NewParagraph("heading", []markup.Run{{Text: s}}, b.style("heading")))
}

// lines joins non-empty lines with breaks, the first in bold.
func lines(first string, rest ...string) []markup.Run {
	var runs []markup.Run
	if first = strings.TrimSpace(first); first != "" {
		runs = append(runs, markup.Run{Text: first, Bold: true})
	}
	for _, l := range rest {
		if l = strings.TrimSpace(l); l == "" {
			continue
		}
		if len(runs) > 0 {
			runs = append(runs, markup.Run{Break: true})
		}
		runs = append(runs, markup.Run{Text: l})
	}
	return runs
}

// labelled prefixes a value with its label, or returns "" for an empty value.
func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + " " + value
}

func (b *builder) parties() {
	c := b.in.Company
	from := lines(c.Name,
		labelled("Reg No:", c.RegistrationNumber),
		c.Address,
		labelled("Tel:", c.Contact),
		labelled("Email:", c.Email),
		c.Website,
	)

	to := b.in.Record.BillTo
	billTo := lines(to.Name,
		to.AddressLine1,
		to.AddressLine2,
		to.Locality(),
		labelled("Postal Code:", to.PostalCode),
		labelled("Email:", to.Email),
		labelled("Tax ID:", to.TaxID),
	)

	b.add(&layout.Table{
		Tag: "party",
		Columns: []layout.Column{
			{Weight: 1},
			{Weight: 1, Header: b.stylePtr("party-header", "bill-to", "bill-to-header"), Body: b.stylePtr("party", "bill-to")},
		},
		Header:      []layout.Cell{layout.TextCell("FROM:"), layout.TextCell("BILL TO:")},
		HeaderStyle: b.style("party-header"),
		BodyStyle:   b.style("party"),
		Rows:        []layout.Row{{Cells: []layout.Cell{{Runs: from}, {Runs: billTo}}}},
	})
}

// grid moves the border of st onto the table grid so cells are stroked once.
func grid(st *layout.Style) *layout.Border {
	border := st.Border
	st.Border = nil
	return border
}

func (b *builder) keyValueTable(role, labelRole string, pairs [][2]string) *layout.Table {
	body := b.style(role)
	label := b.style(role, labelRole)
	label.Border = nil
	t := &layout.Table{
		Tag:     role,
		Columns: []layout.Column{{Weight: 1, Body: &label}, {Weight: 2}},
		Grid:    grid(&body),
	}
	t.BodyStyle = body
	for _, p := range pairs {
		t.Rows = append(t.Rows, layout.Row{Cells: []layout.Cell{layout.TextCell(p[0]), layout.TextCell(p[1])}})
	}
	return t
}

func (b *builder) details() {
	r := b.in.Record
	courses := r.Courses()
	courseLabel := "Course:"
	if len(courses) != 1 {
		courseLabel = "Courses:"
	}
	b.add(b.keyValueTable("details", "details-label", [][2]string{
		{"Invoice Number:", r.Number},
		{"Invoice Date:", r.Date},
		{"Student Name:", r.Student},
		{courseLabel, strings.Join(courses, ", ")},
		{"Total Hours:", text.FormatQuantity(r.TotalHours())},
	}))
}

func (b *builder) service() {
	cur := b.in.Currency
	header := b.style("service", "service-header")
	body := b.style("service")
	header.Border = nil
	t := &layout.Table{
		Tag: "service",
		Columns: []layout.Column{
			{Weight: 3, Align: layout.AlignLeft},
			{Weight: 1, Align: layout.AlignRight},
			{Weight: 1.25, Align: layout.AlignRight},
			{Weight: 1.25, Align: layout.AlignRight},
		},
		Header: []layout.Cell{
			layout.TextCell("Description"),
			layout.TextCell("Hours"),
			layout.TextCell(cur.Label("Rate")),
			layout.TextCell(cur.Label("Amount")),
		},
		HeaderStyle: header,
		Grid:        grid(&body),
	}
	t.BodyStyle = body
	for _, it := range b.in.Record.Items {
		t.Rows = append(t.Rows, layout.Row{Cells: []layout.Cell{
			layout.TextCell(it.Description),
			layout.TextCell(text.FormatQuantity(it.Quantity)),
			layout.TextCell(cur.Format(it.Rate)),
			layout.TextCell(cur.Format(it.Amount())),
		}})
	}
	b.add(t)
}

func (b *builder) totals() {
	r := b.in.Record
	cur := b.in.Currency
	body := b.style("totals")
	body.Border = nil
	total := b.style("totals", "total")
	rule := total.Border
	total.Border = nil

	t := &layout.Table{
		Tag:       "totals",
		Columns:   []layout.Column{{Weight: 4.25, Align: layout.AlignRight}, {Weight: 1.75, Align: layout.AlignRight}},
		BodyStyle: body,
	}
	if r.HasTax() {
		t.Rows = append(t.Rows,
			layout.Row{Cells: []layout.Cell{layout.TextCell("Subtotal:"), layout.TextCell(cur.Format(r.Subtotal))}},
			layout.Row{Cells: []layout.Cell{
				layout.TextCell(fmt.Sprintf("%s (%s):", b.in.TaxLabel, text.FormatPercent(r.TaxRate))),
				layout.TextCell(cur.Format(r.Tax)),
			}},
		)
	}
	t.Rows = append(t.Rows, layout.Row{
		Cells:     []layout.Cell{layout.TextCell("TOTAL AMOUNT:"), layout.TextCell(cur.Format(r.Total))},
		Style:     &total,
		RuleAbove: rule,
	})
	b.add(t)
}

func (b *builder) terms() error {
	if len(b.in.PaymentTerms) == 0 {
		return nil
	}
	var src strings.Builder
	for i, term := range b.in.PaymentTerms {
		if i > 0 {
			src.WriteString("<br/>")
		}
		src.WriteString("• ")
		src.WriteString(term)
	}
	runs, err := b.parser.ParseString(src.String())
	if err != nil {
		return fmt.Errorf("failed to parse payment terms: %w", err)
	}
	b.heading("PAYMENT TERMS")
	b.add(layout.NewParagraph("terms", runs, b.style("terms")))
	return nil
}

func (b *builder) banking() {
	k := b.in.Banking
	t := b.keyValueTable("banking", "banking-label", [][2]string{
		{"Bank Name:", k.BankName},
		{"Account Name:", k.AccountName},
		{"Account Number:", k.AccountNumber},
		{"Branch:", k.Branch},
		{"Branch Code:", k.BranchCode},
		{"Account Type:", k.AccountType},
	})
	// rows alternate between the banking background and white
	if bg := t.BodyStyle.Background; bg != nil {
		t.Stripes = []style.Color{*bg, style.White}
		t.BodyStyle.Background = nil
		t.Columns[0].Body.Background = nil
	}
	b.add(t)
}

func (b *builder) closing() error {
	if strings.TrimSpace(b.in.ClosingRemark) == "" {
		return nil
	}
	runs, err := b.parser.ParseString(b.in.ClosingRemark)
	if err != nil {
		return fmt.Errorf("failed to parse closing remark: %w", err)
	}
	b.add(layout.NewParagraph("closing", runs, b.style("closing")))
	return nil
}
