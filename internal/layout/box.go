package layout

import (
	"strings"

	"github.com/gompdf/gominvoice/internal/style"
)

// Block is a vertically stacked unit of the document story.
type Block interface {
	// Layout measures the block for a content width in points.
	Layout(m *Measurer, width float64)
	// Height is the laid-out height including padding but excluding margins.
	Height() float64
	// Margins returns the space kept above and below the block.
	Margins() (top, bottom float64)
	// Role is the theme role the block was styled under.
	Role() string
}

// Align is horizontal text alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ParseAlign maps a text-align value.
func ParseAlign(v string) Align {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left", "start":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	}
	return AlignDefault
}

// Font selects one of the PDF core fonts.
type Font struct {
	Family string // Helvetica, Times or Courier
	Style  string // "", "B", "I" or "BI"
	Size   float64
}

// With returns f with bold and italic added as requested.
func (f Font) With(bold, italic bool) Font {
	b := bold || strings.Contains(f.Style, "B")
	i := italic || strings.Contains(f.Style, "I")
	f.Style = ""
	if b {
		f.Style += "B"
	}
	if i {
		f.Style += "I"
	}
	return f
}

// Border is a stroked line style.
type Border struct {
	Color style.Color
	Width float64
}

// Style is the resolved presentation of a block or table cell.
type Style struct {
	Font         Font
	Color        style.Color
	Background   *style.Color
	Border       *Border
	Align        Align
	Padding      float64
	MarginTop    float64
	MarginBottom float64
	LineHeight   float64 // multiple of the font size
}

// LineAdvance is the distance between baselines.
func (s Style) LineAdvance() float64 {
	lh := s.LineHeight
	if lh <= 0 {
		lh = 1.25
	}
	return s.Font.Size * lh
}

// StyleFrom converts computed theme properties into a layout style.
func StyleFrom(p style.Props) Style {
	st := Style{
		Font: Font{
			Family: resolveFontFamily(p.String("font-family", "Helvetica")),
			Size:   p.Float("font-size", 10),
		},
		Color:        style.Black,
		Align:        ParseAlign(p.String("text-align", "")),
		Padding:      p.Float("padding", 0),
		MarginTop:    p.Float("margin-top", 0),
		MarginBottom: p.Float("margin-bottom", 0),
		LineHeight:   p.Float("line-height", 1.25),
	}

	switch w := strings.ToLower(p.String("font-weight", "")); w {
	case "bold", "bolder", "600", "700", "800", "900":
		st.Font.Style += "B"
	}
	if strings.EqualFold(p.String("font-style", ""), "italic") {
		st.Font.Style += "I"
	}
	if c, ok := p.Color("color"); ok {
		st.Color = c
	}
	if c, ok := p.Color("background-color"); ok {
		st.Background = &c
	}
	if c, ok := p.Color("border-color"); ok {
		if w := p.Float("border-width", 1); w > 0 {
			st.Border = &Border{Color: c, Width: w}
		}
	}
	return st
}

// resolveFontFamily maps the first CSS family to a core PDF font.
func resolveFontFamily(value string) string {
	first := strings.Split(value, ",")[0]
	first = strings.TrimSpace(strings.Trim(strings.TrimSpace(first), "'\""))
	switch strings.ToLower(first) {
	case "times", "times new roman", "serif":
		return "Times"
	case "courier", "courier new", "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}
