package layout

import (
	"github.com/gompdf/gominvoice/internal/markup"
	"github.com/gompdf/gominvoice/internal/style"
)

// Column describes one table column.
type Column struct {
	// Weight is the share of the table width; zero takes the average share.
	Weight float64
	Align  Align
	Header *Style
	Body   *Style
}

// Cell is one table cell of inline runs.
type Cell struct {
	Runs  []markup.Run
	Style *Style
}

// TextCell is a cell holding plain text.
func TextCell(s string) Cell {
	return Cell{Runs: []markup.Run{{Text: s}}}
}

// Row is one table body row.
type Row struct {
	Cells     []Cell
	Style     *Style
	RuleAbove *Border
}

// Table is a grid of cells with an optional header row repeated on every page the
// table spans.
type Table struct {
	Tag         string
	Columns     []Column
	Header      []Cell
	Rows        []Row
	HeaderStyle Style
	BodyStyle   Style
	// Stripes alternate as body row backgrounds when set.
	Stripes []style.Color
	// Grid strokes every cell when set.
	Grid *Border

	ColumnWidths []float64
	HeaderCells  []*Paragraph
	BodyCells    [][]*Paragraph
	HeaderHeight float64
	RowHeights   []float64
	width        float64
}

func (t *Table) Role() string { return t.Tag }

func (t *Table) Margins() (float64, float64) {
	return t.BodyStyle.MarginTop, t.BodyStyle.MarginBottom
}

func (t *Table) Width() float64 { return t.width }

func (t *Table) Height() float64 {
	return t.HeaderHeight + t.RowsHeight(0, len(t.Rows))
}

// RowsHeight is the height of body rows [first, last).
func (t *Table) RowsHeight(first, last int) float64 {
	h := 0.0
	for i := first; i < last && i < len(t.RowHeights); i++ {
		h += t.RowHeights[i]
	}
	return h
}

// HasHeader reports whether the table has a header row.
func (t *Table) HasHeader() bool { return len(t.Header) > 0 }

// RowBackground returns the stripe fill for body row i. Cell backgrounds paint over it.
func (t *Table) RowBackground(i int) *style.Color {
	if len(t.Stripes) == 0 {
		return nil
	}
	c := t.Stripes[i%len(t.Stripes)]
	return &c
}

func (t *Table) Layout(m *Measurer, width float64) {
	t.width = width
	t.ColumnWidths = computeColumnWidths(t.Columns, width)

	t.HeaderCells = nil
	t.HeaderHeight = 0
	if t.HasHeader() {
		t.HeaderCells = make([]*Paragraph, len(t.Columns))
		for ci := range t.Columns {
			p := NewParagraph(t.Tag, cellRuns(t.Header, ci), t.headerStyle(ci))
			p.Layout(m, t.ColumnWidths[ci])
			t.HeaderCells[ci] = p
			t.HeaderHeight = max(t.HeaderHeight, p.Height())
		}
	}

	t.BodyCells = make([][]*Paragraph, len(t.Rows))
	t.RowHeights = make([]float64, len(t.Rows))
	for ri, row := range t.Rows {
		cells := make([]*Paragraph, len(t.Columns))
		for ci := range t.Columns {
			var cell Cell
			if ci < len(row.Cells) {
				cell = row.Cells[ci]
			}
			p := NewParagraph(t.Tag, cell.Runs, t.bodyStyle(ci, row, cell))
			p.Layout(m, t.ColumnWidths[ci])
			cells[ci] = p
			t.RowHeights[ri] = max(t.RowHeights[ri], p.Height())
		}
		t.BodyCells[ri] = cells
	}
}

func (t *Table) headerStyle(ci int) Style {
	st := t.HeaderStyle
	col := t.Columns[ci]
	if col.Header != nil {
		st = *col.Header
	}
	if col.Align != AlignDefault {
		st.Align = col.Align
	}
	return st
}

func (t *Table) bodyStyle(ci int, row Row, cell Cell) Style {
	st := t.BodyStyle
	col := t.Columns[ci]
	if col.Body != nil {
		st = *col.Body
	}
	if row.Style != nil {
		st = *row.Style
	}
	if col.Align != AlignDefault {
		st.Align = col.Align
	}
	if cell.Style != nil {
		st = *cell.Style
	}
	return st
}

func cellRuns(cells []Cell, i int) []markup.Run {
	if i < len(cells) {
		return cells[i].Runs
	}
	return nil
}

// computeColumnWidths splits width by column weight.
func computeColumnWidths(cols []Column, width float64) []float64 {
	widths := make([]float64, len(cols))
	if len(cols) == 0 {
		return widths
	}

	total, declared := 0.0, 0
	for _, c := range cols {
		if c.Weight > 0 {
			total += c.Weight
			declared++
		}
	}
	avg := 1.0
	if declared > 0 {
		avg = total / float64(declared)
	}

	sum := 0.0
	weights := make([]float64, len(cols))
	for i, c := range cols {
		weights[i] = c.Weight
		if weights[i] <= 0 {
			weights[i] = avg
		}
		sum += weights[i]
	}
	for i := range cols {
		widths[i] = width * weights[i] / sum
	}
	return widths
}
