package api

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gompdf/gominvoice/internal/document"
	"github.com/gompdf/gominvoice/internal/layout"
	"github.com/gompdf/gominvoice/internal/pagination"
	"github.com/gompdf/gominvoice/internal/render/pdf"
	"github.com/gompdf/gominvoice/internal/res"
	"github.com/gompdf/gominvoice/internal/style"
	"github.com/gompdf/gominvoice/internal/text"
	"github.com/gompdf/gominvoice/pkg/invoice"
)

// Composer turns invoice records into PDF documents. It is immutable after construction
// and safe for concurrent use.
type Composer struct {
	options Options
	loader  *res.Loader
	log     logrus.FieldLogger
}

// Result describes a generated invoice.
type Result struct {
	Filename     string
	Number       string
	Date         string
	Student      string
	Items        []invoice.LineItem
	Subtotal     string
	TaxRate      string
	Tax          string
	Total        string
	BillTo       invoice.ClientProfile
	BytesWritten int64
	Record       *invoice.Record
}

// New creates a new composer with default options
func New() *Composer {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new composer with the specified options
func NewWithOptions(options Options) *Composer {
	log := options.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		if options.Debug {
			l.SetLevel(logrus.DebugLevel)
		}
		log = l
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	loader := res.NewLoader("")
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return &Composer{
		options: options,
		loader:  loader,
		log:     log,
	}
}

// Options returns a copy of the composer options.
func (c *Composer) Options() Options {
	return c.options
}

// Defaults returns the request defaults derived from the options.
func (c *Composer) Defaults() invoice.Defaults {
	return invoice.Defaults{
		Now:         c.options.Now,
		Numbering:   c.options.Numbering,
		HouseClient: c.options.HouseClient,
		TaxRate:     c.options.TaxRate,
	}
}

// Compose renders record into a complete PDF document.
func (c *Composer) Compose(record *invoice.Record, company invoice.CompanyProfile, banking invoice.BankingProfile) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.ComposeTo(&buf, record, company, banking); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ComposeTo renders record and writes the document to w, returning the number of bytes
// written. Nothing is written when rendering fails.
func (c *Composer) ComposeTo(w io.Writer, record *invoice.Record, company invoice.CompanyProfile, banking invoice.BankingProfile) (int64, error) {
	if record == nil {
		return 0, &invoice.ValidationError{Field: "record", Message: "must not be nil"}
	}
	data, err := c.render(record, company, banking)
	if err != nil {
		return 0, err
	}

	cw := NewCountWriter(w)
	if _, err := cw.Write(data); err != nil {
		return cw.BytesWritten(), &invoice.IOError{Op: "write", Path: "document", Err: err}
	}
	return cw.BytesWritten(), nil
}

// Generate resolves req against the composer defaults, renders it with the configured
// company and banking profiles, and publishes one file in the output directory.
func (c *Composer) Generate(req invoice.Request) (*Result, error) {
	record, err := req.Resolve(c.Defaults())
	if err != nil {
		return nil, err
	}

	data, err := c.render(record, c.options.Company, c.options.Banking)
	if err != nil {
		return nil, err
	}

	dir := req.OutputDir
	if dir == "" {
		dir = c.options.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, invoice.Filename(record, "pdf"))
	n, err := publish(path, data)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"file":   path,
		"number": record.Number,
		"total":  record.Total.StringFixed(2),
	}).Info("invoice written")

	return &Result{
		Filename:     path,
		Number:       record.Number,
		Date:         record.Date,
		Student:      record.Student,
		Items:        record.Items,
		Subtotal:     record.Subtotal.StringFixed(2),
		TaxRate:      record.TaxRate.String(),
		Tax:          record.Tax.StringFixed(2),
		Total:        record.Total.StringFixed(2),
		BillTo:       record.BillTo,
		BytesWritten: n,
		Record:       record,
	}, nil
}

// render runs the pipeline: theme, logo, story, layout, pagination and drawing.
func (c *Composer) render(record *invoice.Record, company invoice.CompanyProfile, banking invoice.BankingProfile) ([]byte, error) {
	log := c.log.WithField("number", record.Number)

	theme, err := c.theme()
	if err != nil {
		return nil, &invoice.RenderError{Stage: "theme", Err: err}
	}

	logo, err := c.logo(company.Logo)
	if err != nil {
		return nil, err
	}

	blocks, err := document.Build(document.Input{
		Record:        record,
		Company:       company,
		Banking:       banking,
		Theme:         theme,
		Logo:          logo,
		Currency:      text.Currency{Symbol: c.options.CurrencySymbol, Code: c.options.CurrencyCode},
		TaxLabel:      c.options.TaxLabel,
		PaymentTerms:  c.options.PaymentTerms,
		ClosingRemark: c.options.ClosingRemark,
	})
	if err != nil {
		return nil, &invoice.RenderError{Stage: "markup", Err: err}
	}
	log.WithField("blocks", len(blocks)).Debug("built document")

	pageWidth, pageHeight, orientationCode := c.pageGeometry()

	paginationEngine := pagination.NewEngine()
	paginationOptions := pagination.Options{
		PageWidth:    pageWidth,
		PageHeight:   pageHeight,
		MarginTop:    c.options.MarginTop,
		MarginRight:  c.options.MarginRight,
		MarginBottom: c.options.MarginBottom,
		MarginLeft:   c.options.MarginLeft,
	}

	var footer *pdf.Footer
	if c.options.Footer != "" {
		footer = &pdf.Footer{
			Format: c.options.Footer,
			Style:  layout.StyleFrom(theme.Lookup("footer")),
			Bottom: 20,
		}
		paginationOptions.FooterReserve = max(0, footer.Bottom+footer.Style.Font.Size+4-c.options.MarginBottom)
	}
	paginationEngine.SetOptions(paginationOptions)

	layoutEngine := layout.NewEngine(log)
	layoutEngine.SetOptions(layout.Options{
		Width: paginationEngine.ContentWidth(),
		Debug: c.options.Debug,
	})
	layoutEngine.Layout(blocks)

	pages := paginationEngine.Paginate(blocks)
	log.WithField("pages", len(pages)).Debug("paginated document")

	renderer := pdf.NewRenderer(log)
	renderer.Debug = c.options.Debug
	renderer.RenderBackgrounds = c.options.RenderBackgrounds
	renderer.RenderBorders = c.options.RenderBorders
	renderer.DebugDrawBoxes = c.options.DebugDrawBoxes
	renderer.FontDir = c.options.FontDirectory

	title := c.options.Title
	if title == "" {
		title = "Invoice " + record.Number
	}
	subject := c.options.Subject
	if subject == "" {
		subject = "Tutoring invoice for " + record.Student
	}
	renderOptions := pdf.RenderOptions{
		Title:        title,
		Author:       c.options.Author,
		Subject:      subject,
		Keywords:     c.options.Keywords,
		Creator:      c.options.Creator,
		Producer:     c.options.Producer,
		Orientation:  orientationCode,
		PageSize:     pagination.PageSize{Width: pageWidth, Height: pageHeight},
		CreationDate: creationDate(record.Date),
		Compress:     c.options.Compress,
		Footer:       footer,
	}

	var buf bytes.Buffer
	if err := renderer.Render(pages, &buf, renderOptions); err != nil {
		return nil, &invoice.RenderError{Stage: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

// pageGeometry returns page dimensions swapped to match the orientation.
func (c *Composer) pageGeometry() (float64, float64, string) {
	pageWidth := c.options.PageWidth
	pageHeight := c.options.PageHeight
	if pageWidth <= 0 || pageHeight <= 0 {
		pageWidth, pageHeight = PageSizeA4Width, PageSizeA4Height
	}

	switch c.options.PageOrientation {
	case PageOrientationLandscape:
		if pageWidth < pageHeight {
			pageWidth, pageHeight = pageHeight, pageWidth
		}
		return pageWidth, pageHeight, "L"
	default:
		if pageWidth > pageHeight {
			pageWidth, pageHeight = pageHeight, pageWidth
		}
		return pageWidth, pageHeight, "P"
	}
}

// theme parses the base theme and every appended stylesheet in cascade order.
func (c *Composer) theme() (*style.Theme, error) {
	cssParser := style.NewParser()
	base, err := cssParser.ParseString(c.options.Theme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	theme := style.NewTheme(base)

	for i, css := range c.options.Stylesheets {
		sheet, err := cssParser.ParseString(css)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stylesheet %d: %w", i+1, err)
		}
		theme.AddStylesheet(sheet)
	}
	for _, ref := range c.options.StylesheetFiles {
		resource, err := c.loader.LoadCSS(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load stylesheet %s: %w", ref, err)
		}
		sheet, err := cssParser.Parse(resource.GetReader())
		if err != nil {
			return nil, fmt.Errorf("failed to parse stylesheet %s: %w", ref, err)
		}
		theme.AddStylesheet(sheet)
	}
	return theme, nil
}

// logo loads and decodes the company logo. A missing file is an IOError, undecodable
// data a RenderError.
func (c *Composer) logo(ref string) (*document.Logo, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, nil
	}
	resource, err := c.loader.LoadImage(ref)
	if err != nil {
		return nil, &invoice.IOError{Op: "load logo", Path: ref, Err: err}
	}
	raster, err := pdf.DecodeImage(resource.Data, resource.IsSVG())
	if err != nil {
		return nil, &invoice.RenderError{Stage: "logo", Err: err}
	}
	return &document.Logo{
		Name:   "logo",
		PNG:    raster.PNG,
		Width:  raster.Width,
		Height: raster.Height,
	}, nil
}

// creationDate derives document timestamps from the invoice date so identical inputs
// produce identical bytes. Free-form dates fall back to the Unix epoch.
func creationDate(date string) time.Time {
	if t, err := time.Parse(invoice.DateLayout, strings.TrimSpace(date)); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// WithOptions returns a new composer with the specified options
func (c *Composer) WithOptions(options Options) *Composer {
	return NewWithOptions(options)
}

// WithOption returns a new composer with the specified options applied
func (c *Composer) WithOption(options ...Option) *Composer {
	newOptions := c.cloneOptions()
	for _, option := range options {
		option(&newOptions)
	}
	return NewWithOptions(newOptions)
}

// cloneOptions copies the options so builder methods never share slices.
func (c *Composer) cloneOptions() Options {
	o := c.options
	o.ResourcePaths = append([]string(nil), o.ResourcePaths...)
	o.Stylesheets = append([]string(nil), o.Stylesheets...)
	o.StylesheetFiles = append([]string(nil), o.StylesheetFiles...)
	o.PaymentTerms = append([]string(nil), o.PaymentTerms...)
	return o
}

// AddResourcePath adds a path to search for resources
func (c *Composer) AddResourcePath(path string) *Composer {
	newOptions := c.cloneOptions()
	newOptions.ResourcePaths = append(newOptions.ResourcePaths, path)
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (c *Composer) SetPageSize(width, height float64) *Composer {
	newOptions := c.cloneOptions()
	newOptions.PageWidth = width
	newOptions.PageHeight = height
	return NewWithOptions(newOptions)
}

// SetMargins sets the page margins
func (c *Composer) SetMargins(top, right, bottom, left float64) *Composer {
	newOptions := c.cloneOptions()
	newOptions.MarginTop = top
	newOptions.MarginRight = right
	newOptions.MarginBottom = bottom
	newOptions.MarginLeft = left
	return NewWithOptions(newOptions)
}

// SetDebug sets the debug mode
func (c *Composer) SetDebug(debug bool) *Composer {
	newOptions := c.cloneOptions()
	newOptions.Debug = debug
	return NewWithOptions(newOptions)
}

// SetTitle sets the document title
func (c *Composer) SetTitle(title string) *Composer {
	newOptions := c.cloneOptions()
	newOptions.Title = title
	return NewWithOptions(newOptions)
}

// SetOutputDir sets the directory Generate writes to
func (c *Composer) SetOutputDir(dir string) *Composer {
	newOptions := c.cloneOptions()
	newOptions.OutputDir = dir
	return NewWithOptions(newOptions)
}

// SetHouseClient sets the default bill-to client
func (c *Composer) SetHouseClient(client *invoice.ClientProfile) *Composer {
	newOptions := c.cloneOptions()
	newOptions.HouseClient = client
	return NewWithOptions(newOptions)
}
