package layout

import (
	"strings"

	"github.com/gompdf/gominvoice/internal/markup"
	"github.com/gompdf/gominvoice/internal/text"
)

// Segment is a run of text on a line set in a single font.
type Segment struct {
	Text  string
	Font  Font
	X     float64 // offset from the start of the line
	Width float64
}

// Line is one wrapped line of a paragraph.
type Line struct {
	Segments []Segment
	Width    float64
}

// Paragraph is styled inline text wrapped to the available width.
type Paragraph struct {
	Tag   string
	Runs  []markup.Run
	Style Style

	Lines []Line
	width float64
}

// NewParagraph creates a paragraph block.
func NewParagraph(role string, runs []markup.Run, st Style) *Paragraph {
	return &Paragraph{Tag: role, Runs: runs, Style: st}
}

func (p *Paragraph) Role() string { return p.Tag }

func (p *Paragraph) Margins() (float64, float64) {
	return p.Style.MarginTop, p.Style.MarginBottom
}

// Width is the width the paragraph was laid out to.
func (p *Paragraph) Width() float64 { return p.width }

func (p *Paragraph) Height() float64 {
	return 2*p.Style.Padding + float64(len(p.Lines))*p.Style.LineAdvance()
}

// Layout wraps the runs into lines no wider than width minus padding.
func (p *Paragraph) Layout(m *Measurer, width float64) {
	p.width = width
	p.Lines = nil
	inner := width - 2*p.Style.Padding
	if inner <= 0 {
		inner = 1
	}

	var cur Line
	flush := func() {
		trimTrailingSpace(m, &cur)
		p.Lines = append(p.Lines, cur)
		cur = Line{}
	}
	add := func(tok string, f Font, w float64) {
		if n := len(cur.Segments); n > 0 && cur.Segments[n-1].Font == f {
			cur.Segments[n-1].Text += tok
			cur.Segments[n-1].Width += w
		} else {
			cur.Segments = append(cur.Segments, Segment{Text: tok, Font: f, X: cur.Width, Width: w})
		}
		cur.Width += w
	}

	for _, run := range p.Runs {
		if run.Break {
			flush()
			continue
		}
		font := p.Style.Font.With(run.Bold, run.Italic)
		for _, tok := range text.SplitTokens(run.Text) {
			if tok == " " {
				if len(cur.Segments) == 0 {
					continue
				}
				add(tok, font, m.Width(tok, font))
				continue
			}

			measure := func(s string) float64 { return m.Width(s, font) }
			w := measure(tok)
			if cur.Width+w > inner && hasInk(cur) {
				flush()
			}
			if w > inner {
				pieces := text.BreakWord(tok, measure, inner)
				for _, piece := range pieces[:len(pieces)-1] {
					add(piece, font, measure(piece))
					flush()
				}
				tok = pieces[len(pieces)-1]
				w = measure(tok)
			}
			add(tok, font, w)
		}
	}
	if len(cur.Segments) > 0 {
		flush()
	}
}

// LineOffset returns the horizontal offset of line i inside the padded box.
func (p *Paragraph) LineOffset(i int) float64 {
	inner := p.width - 2*p.Style.Padding
	free := inner - p.Lines[i].Width
	if free <= 0 {
		return 0
	}
	switch p.Style.Align {
	case AlignCenter:
		return free / 2
	case AlignRight:
		return free
	}
	return 0
}

// Text returns the plain text of the laid out lines joined by newlines.
func (p *Paragraph) Text() string {
	lines := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		var b strings.Builder
		for _, s := range l.Segments {
			b.WriteString(s.Text)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func hasInk(l Line) bool {
	for _, s := range l.Segments {
		if !text.IsAllSpace(s.Text) {
			return true
		}
	}
	return false
}

func trimTrailingSpace(m *Measurer, l *Line) {
	for len(l.Segments) > 0 {
		last := &l.Segments[len(l.Segments)-1]
		trimmed := strings.TrimRight(last.Text, " ")
		if trimmed == last.Text {
			break
		}
		cut := m.Width(last.Text[len(trimmed):], last.Font)
		last.Text = trimmed
		last.Width -= cut
		l.Width -= cut
		if trimmed != "" {
			break
		}
		l.Segments = l.Segments[:len(l.Segments)-1]
	}
}
