package pdf

import (
	"bytes"

	"codeberg.org/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/gompdf/gominvoice/internal/layout"
	"github.com/gompdf/gominvoice/internal/pagination"
	"github.com/gompdf/gominvoice/internal/style"
)

func setTextColor(pdf *fpdf.Fpdf, c style.Color) { pdf.SetTextColor(c.R, c.G, c.B) }
func setFillColor(pdf *fpdf.Fpdf, c style.Color) { pdf.SetFillColor(c.R, c.G, c.B) }

// renderBox paints the background and border of a styled box.
func (r *Renderer) renderBox(f *frame, st layout.Style, x, y, w, h float64) {
	if r.RenderBackgrounds && st.Background != nil {
		setFillColor(f.pdf, *st.Background)
		f.pdf.Rect(x, y, w, h, "F")
	}
	if r.RenderBorders && st.Border != nil {
		r.stroke(f, st.Border)
		f.pdf.Rect(x, y, w, h, "D")
	}
}

func (r *Renderer) stroke(f *frame, b *layout.Border) {
	f.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
	f.pdf.SetLineWidth(b.Width)
}

// renderParagraph draws a paragraph with its box at (x, y).
func (r *Renderer) renderParagraph(f *frame, p *layout.Paragraph, x, y float64) {
	r.renderBox(f, p.Style, x, y, p.Width(), p.Height())
	r.renderLines(f, p, x, y)
}

// renderLines draws the wrapped lines of p inside its padding box.
func (r *Renderer) renderLines(f *frame, p *layout.Paragraph, x, y float64) {
	st := p.Style
	advance := st.LineAdvance()
	ascent := layout.Ascent(st.Font)
	leading := advance - st.Font.Size
	if leading < 0 {
		leading = 0
	}

	setTextColor(f.pdf, st.Color)
	for i, line := range p.Lines {
		top := y + st.Padding + float64(i)*advance
		baseline := top + ascent + leading/2
		startX := x + st.Padding + p.LineOffset(i)
		for _, seg := range line.Segments {
			f.pdf.SetFont(seg.Font.Family, seg.Font.Style, seg.Font.Size)
			f.pdf.Text(startX+seg.X, baseline, f.translate(seg.Text))
		}

		if r.DebugDrawBoxes {
			f.pdf.SetDrawColor(0, 180, 0)
			f.pdf.SetLineWidth(0.1)
			f.pdf.Line(startX, baseline, startX+line.Width, baseline)
		}
	}

	if r.DebugDrawBoxes {
		f.pdf.SetDrawColor(255, 0, 0)
		f.pdf.SetLineWidth(0.1)
		f.pdf.Rect(x, y, p.Width(), p.Height(), "D")
	}
}

// renderTable draws the header row, when placed, and the placed body row range.
func (r *Renderer) renderTable(f *frame, t *layout.Table, item pagination.Placement) {
	y := item.Y
	if item.Header && t.HasHeader() {
		r.renderRow(f, t, t.HeaderCells, nil, item.X, y, t.HeaderHeight)
		y += t.HeaderHeight
	}
	for i := item.FirstRow; i < item.LastRow; i++ {
		h := t.RowHeights[i]
		if rule := t.Rows[i].RuleAbove; rule != nil && r.RenderBorders {
			r.stroke(f, rule)
			f.pdf.Line(item.X, y, item.X+t.Width(), y)
		}
		r.renderRow(f, t, t.BodyCells[i], t.RowBackground(i), item.X, y, h)
		y += h
	}

	if r.Debug {
		r.log.WithFields(logrus.Fields{
			"role":  t.Role(),
			"first": item.FirstRow,
			"last":  item.LastRow,
		}).Debug("rendered table rows")
	}
}

func (r *Renderer) renderRow(f *frame, t *layout.Table, cells []*layout.Paragraph, stripe *style.Color, x, y, h float64) {
	if stripe != nil && r.RenderBackgrounds {
		setFillColor(f.pdf, *stripe)
		f.pdf.Rect(x, y, t.Width(), h, "F")
	}
	cx := x
	for ci, cell := range cells {
		w := t.ColumnWidths[ci]
		r.renderBox(f, cell.Style, cx, y, w, h)
		if t.Grid != nil && r.RenderBorders {
			r.stroke(f, t.Grid)
			f.pdf.Rect(cx, y, w, h, "D")
		}
		r.renderLines(f, cell, cx, y)
		cx += w
	}
}

// renderImage registers the image once per document and draws it.
func (r *Renderer) renderImage(f *frame, img *layout.Image, item pagination.Placement) {
	if img.W <= 0 || img.H <= 0 || len(img.Data) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if !f.images[img.Name] {
		f.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		f.images[img.Name] = true
	}
	x := item.X + img.Offset(item.Width)
	f.pdf.ImageOptions(img.Name, x, item.Y, img.W, img.H, false, opts, 0, "")
}
