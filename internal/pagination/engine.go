package pagination

import (
	"github.com/gompdf/gominvoice/internal/layout"
)

// Options represents options for the pagination engine
type Options struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	// FooterReserve is the space kept free at the bottom of each page.
	FooterReserve float64
}

// Engine handles the pagination process
type Engine struct {
	options Options
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			PageWidth:    PageSizeA4.Width,
			PageHeight:   PageSizeA4.Height,
			MarginTop:    72, // Default 1-inch margins
			MarginRight:  72,
			MarginBottom: 72,
			MarginLeft:   72,
		},
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// ContentWidth is the width available to blocks.
func (e *Engine) ContentWidth() float64 {
	return e.options.PageWidth - e.options.MarginLeft - e.options.MarginRight
}

// Paginate breaks laid-out blocks into pages
func (e *Engine) Paginate(blocks []layout.Block) []*Page {
	paginator := NewPaginator(
		PageSize{
			Width:  e.options.PageWidth,
			Height: e.options.PageHeight,
			Name:   "Custom",
		},
		Margins{
			Top:    e.options.MarginTop,
			Right:  e.options.MarginRight,
			Bottom: e.options.MarginBottom,
			Left:   e.options.MarginLeft,
		},
	)
	paginator.Reserve = e.options.FooterReserve

	return paginator.Paginate(blocks)
}
