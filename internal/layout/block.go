package layout

// Image is a raster image block. Data holds PNG bytes.
type Image struct {
	Tag       string
	Name      string
	Data      []byte
	PixelW    int
	PixelH    int
	MaxWidth  float64
	MaxHeight float64
	Style     Style

	W, H float64
}

func (i *Image) Role() string { return i.Tag }

func (i *Image) Margins() (float64, float64) {
	return i.Style.MarginTop, i.Style.MarginBottom
}

func (i *Image) Height() float64 { return i.H }

// Layout scales the image to fit the content width and its maximum box while keeping
// the aspect ratio.
func (i *Image) Layout(_ *Measurer, width float64) {
	if i.PixelW <= 0 || i.PixelH <= 0 {
		i.W, i.H = 0, 0
		return
	}
	w := float64(i.PixelW)
	h := float64(i.PixelH)
	scale := 1.0
	limitW := width
	if i.MaxWidth > 0 && i.MaxWidth < limitW {
		limitW = i.MaxWidth
	}
	if w > limitW {
		scale = limitW / w
	}
	if i.MaxHeight > 0 && h*scale > i.MaxHeight {
		scale = i.MaxHeight / h
	}
	i.W, i.H = w*scale, h*scale
}

// Offset returns the horizontal position of the image inside width.
func (i *Image) Offset(width float64) float64 {
	switch i.Style.Align {
	case AlignCenter:
		return (width - i.W) / 2
	case AlignRight:
		return width - i.W
	}
	return 0
}

// Spacer is fixed vertical space.
type Spacer struct {
	Size float64
}

func (s *Spacer) Role() string                  { return "spacer" }
func (s *Spacer) Margins() (float64, float64)   { return 0, 0 }
func (s *Spacer) Height() float64               { return s.Size }
func (s *Spacer) Layout(_ *Measurer, _ float64) {}

// PageBreak forces the following block onto a new page.
type PageBreak struct{}

func (PageBreak) Role() string                  { return "page-break" }
func (PageBreak) Margins() (float64, float64)   { return 0, 0 }
func (PageBreak) Height() float64               { return 0 }
func (PageBreak) Layout(_ *Measurer, _ float64) {}
