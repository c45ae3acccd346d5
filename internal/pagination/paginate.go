package pagination

import (
	"github.com/gompdf/gominvoice/internal/layout"
)

// Page represents a single page in the document
type Page struct {
	Number int
	Width  float64
	Height float64
	Items  []Placement
}

// Placement positions a laid-out block on a page. Tables carry the body row range
// placed on this page and whether the header row is drawn above it.
type Placement struct {
	Block    layout.Block
	X, Y     float64
	Width    float64
	FirstRow int
	LastRow  int
	Header   bool
}

// Height of the placed part of the block.
func (p Placement) Height() float64 {
	if t, ok := p.Block.(*layout.Table); ok {
		h := t.RowsHeight(p.FirstRow, p.LastRow)
		if p.Header {
			h += t.HeaderHeight
		}
		return h
	}
	return p.Block.Height()
}

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// LookupPageSize returns a standard size by case-sensitive name.
func LookupPageSize(name string) (PageSize, bool) {
	for _, s := range []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5} {
		if s.Name == name {
			return s, true
		}
	}
	return PageSize{}, false
}

// Landscape swaps width and height.
func (s PageSize) Landscape() PageSize {
	return PageSize{Width: s.Height, Height: s.Width, Name: s.Name}
}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Paginator handles breaking content into pages
type Paginator struct {
	PageSize PageSize
	Margins  Margins
	// Reserve is kept free above the bottom margin for the footer.
	Reserve float64
}

// NewPaginator creates a new paginator
func NewPaginator(pageSize PageSize, margins Margins) *Paginator {
	return &Paginator{
		PageSize: pageSize,
		Margins:  margins,
	}
}

// ContentWidth is the width between the side margins.
func (p *Paginator) ContentWidth() float64 {
	return p.PageSize.Width - p.Margins.Left - p.Margins.Right
}

type cursor struct {
	p          *Paginator
	pages      []*Page
	page       *Page
	y          float64
	prevBottom float64
}

func (c *cursor) newPage() {
	c.page = &Page{
		Number: len(c.pages) + 1,
		Width:  c.p.PageSize.Width,
		Height: c.p.PageSize.Height,
	}
	c.pages = append(c.pages, c.page)
	c.y = c.p.Margins.Top
	c.prevBottom = 0
}

func (c *cursor) limit() float64 {
	return c.p.PageSize.Height - c.p.Margins.Bottom - c.p.Reserve
}

func (c *cursor) empty() bool { return len(c.page.Items) == 0 }

// advance moves past the collapsed margin between the previous block and the next.
func (c *cursor) advance(top float64) {
	if c.empty() {
		return
	}
	c.y += max(c.prevBottom, top)
}

func (c *cursor) place(b layout.Block, first, last int, header bool) Placement {
	pl := Placement{
		Block:    b,
		X:        c.p.Margins.Left,
		Y:        c.y,
		Width:    c.p.ContentWidth(),
		FirstRow: first,
		LastRow:  last,
		Header:   header,
	}
	c.page.Items = append(c.page.Items, pl)
	c.y += pl.Height()
	return pl
}

// Paginate distributes laid-out blocks over pages. Blocks never split except tables,
// which break between body rows with the header repeated on each continuation page.
// A block taller than a page is placed alone and overflows.
func (p *Paginator) Paginate(blocks []layout.Block) []*Page {
	c := &cursor{p: p}
	c.newPage()

	for _, b := range blocks {
		switch b.(type) {
		case layout.PageBreak, *layout.PageBreak:
			if !c.empty() {
				c.newPage()
			}
			continue
		}

		top, bottom := b.Margins()
		if t, ok := b.(*layout.Table); ok {
			c.placeTable(t, top)
			c.prevBottom = bottom
			continue
		}

		c.advance(top)
		if c.y+b.Height() > c.limit() && !c.empty() {
			c.newPage()
		}
		c.place(b, 0, 0, false)
		c.prevBottom = bottom
	}
	return c.pages
}

func (c *cursor) placeTable(t *layout.Table, top float64) {
	header := t.HasHeader()
	headerH := 0.0
	if header {
		headerH = t.HeaderHeight
	}

	c.advance(top)
	if len(t.Rows) == 0 {
		if c.y+headerH > c.limit() && !c.empty() {
			c.newPage()
		}
		c.place(t, 0, 0, header)
		return
	}

	row := 0
	for row < len(t.Rows) {
		if c.y+headerH+t.RowHeights[row] > c.limit() && !c.empty() {
			c.newPage()
		}
		last := row + 1
		used := headerH + t.RowHeights[row]
		for last < len(t.Rows) && c.y+used+t.RowHeights[last] <= c.limit() {
			used += t.RowHeights[last]
			last++
		}
		c.place(t, row, last, header)
		row = last
		if row < len(t.Rows) {
			c.newPage()
		}
	}
}

// CalculatePageCount returns the number of pages blocks occupy.
func (p *Paginator) CalculatePageCount(blocks []layout.Block) int {
	return len(p.Paginate(blocks))
}
