package pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/gompdf/gominvoice/internal/layout"
	"github.com/gompdf/gominvoice/internal/pagination"
)

// Renderer handles rendering to PDF
type Renderer struct {
	// FontDir is handed to fpdf for font definition files.
	FontDir string
	// Debug enables verbose logging
	Debug bool
	// RenderBackgrounds controls whether box backgrounds are painted
	RenderBackgrounds bool
	// RenderBorders controls whether box borders are painted
	RenderBorders bool
	// DebugDrawBoxes controls drawing of debug overlays (outlines and baselines)
	DebugDrawBoxes bool

	log logrus.FieldLogger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title       string
	Author      string
	Subject     string
	Keywords    string
	Creator     string
	Producer    string
	Orientation string // "P" for portrait, "L" for landscape
	PageSize    pagination.PageSize
	// CreationDate is written as both creation and modification date. A fixed value
	// makes output byte-for-byte reproducible.
	CreationDate time.Time
	Compress     bool
	Footer       *Footer
}

// Footer is a single line drawn centred at the bottom of every page.
type Footer struct {
	// Format receives the page number and page count, e.g. "Page %d of %d".
	Format string
	Style  layout.Style
	// Bottom is the distance from the bottom page edge to the baseline.
	Bottom float64
}

// NewRenderer creates a new PDF renderer
func NewRenderer(log logrus.FieldLogger) *Renderer {
	if log == nil {
		log = logrus.New()
	}
	return &Renderer{
		RenderBackgrounds: true,
		RenderBorders:     true,
		log:               log,
	}
}

// frame is the per-document drawing state.
type frame struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	images    map[string]bool
}

// Render draws pages and writes the finished document to w. Nothing is written when
// drawing fails.
func (r *Renderer) Render(pages []*pagination.Page, w io.Writer, options RenderOptions) error {
	orient := options.Orientation
	if orient == "" {
		orient = "P"
	}
	size := options.PageSize
	if size.Width <= 0 || size.Height <= 0 {
		size = pagination.PageSizeA4
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orient,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
		FontDirStr:     r.FontDir,
	})
	pdf.SetCompression(options.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	if !options.CreationDate.IsZero() {
		pdf.SetCreationDate(options.CreationDate)
		pdf.SetModificationDate(options.CreationDate)
	}
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	pdf.SetFont("Helvetica", "", 12)

	f := &frame{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		images:    make(map[string]bool),
	}

	if r.Debug {
		r.log.WithField("pages", len(pages)).Debug("rendering pages")
	}
	for _, page := range pages {
		pdf.AddPageFormat(orient, fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		for _, item := range page.Items {
			r.renderItem(f, item)
		}
		if options.Footer != nil {
			r.renderFooter(f, page, len(pages), options.Footer)
		}
		if pdf.Err() {
			return pdf.Error()
		}
	}
	if pdf.Err() {
		return pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) renderItem(f *frame, item pagination.Placement) {
	switch b := item.Block.(type) {
	case *layout.Paragraph:
		r.renderParagraph(f, b, item.X, item.Y)
	case *layout.Table:
		r.renderTable(f, b, item)
	case *layout.Image:
		r.renderImage(f, b, item)
	case *layout.Spacer:
	default:
		if r.Debug {
			r.log.WithField("type", fmt.Sprintf("%T", b)).Debug("unknown block type")
		}
	}
}

func (r *Renderer) renderFooter(f *frame, page *pagination.Page, total int, footer *Footer) {
	format := footer.Format
	if format == "" {
		format = "Page %d of %d"
	}
	text := f.translate(fmt.Sprintf(format, page.Number, total))
	st := footer.Style
	if st.Font.Size <= 0 {
		st.Font = layout.Font{Family: "Helvetica", Size: 8}
	}

	f.pdf.SetFont(st.Font.Family, st.Font.Style, st.Font.Size)
	setTextColor(f.pdf, st.Color)
	w := f.pdf.GetStringWidth(text)
	bottom := footer.Bottom
	if bottom <= 0 {
		bottom = 30
	}
	f.pdf.Text((page.Width-w)/2, page.Height-bottom, text)
}
