package layout

import (
	"codeberg.org/go-pdf/fpdf"
)

// Measurer computes string widths with the same core-font metrics the renderer draws
// with. It is not safe for concurrent use; each composition creates its own.
type Measurer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewMeasurer creates a measurer backed by an off-screen fpdf document.
func NewMeasurer() *Measurer {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	return &Measurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Translate converts UTF-8 to the cp1252 encoding of the core fonts.
func (m *Measurer) Translate(s string) string {
	return m.translate(s)
}

// Width returns the width of s in points when set in f.
func (m *Measurer) Width(s string, f Font) float64 {
	if s == "" || f.Size <= 0 {
		return 0
	}
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	return m.pdf.GetStringWidth(m.translate(s))
}

// Ascent approximates the distance from the top of a line box to the baseline.
func Ascent(f Font) float64 { return 0.8 * f.Size }

// Descent approximates the distance from the baseline to the bottom of the glyphs.
func Descent(f Font) float64 { return 0.2 * f.Size }
