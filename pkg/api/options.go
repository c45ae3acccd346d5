package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gompdf/gominvoice/internal/config"
	"github.com/gompdf/gominvoice/internal/pagination"
	"github.com/gompdf/gominvoice/pkg/invoice"
)

// Options represents configuration options for the invoice composer
type Options struct {
	// Page dimensions
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	Debug bool

	// Visual rendering toggles
	// When false, backgrounds will not be painted
	RenderBackgrounds bool
	// When false, borders will not be painted
	RenderBorders bool
	// When true, draw debug box overlays (outlines and baselines)
	DebugDrawBoxes bool
	// Compress enables PDF stream compression
	Compress bool

	// Resource paths searched for the logo and theme files
	ResourcePaths []string
	FontDirectory string

	// Document metadata. An empty title becomes "Invoice <number>".
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	// Theme is the base stylesheet; Stylesheets are appended in order and may be
	// inline CSS. StylesheetFiles are local paths or data URLs loaded per call.
	Theme           string
	Stylesheets     []string
	StylesheetFiles []string

	// House profiles
	Company     invoice.CompanyProfile
	Banking     invoice.BankingProfile
	HouseClient *invoice.ClientProfile

	TaxRate        decimal.Decimal
	TaxLabel       string
	CurrencySymbol string
	CurrencyCode   string
	PaymentTerms   []string
	ClosingRemark  string
	// Footer is the page footer format receiving page number and count; empty disables it.
	Footer string

	OutputDir string
	Numbering invoice.Numbering

	// Now is the clock used for default numbers and dates.
	Now func() time.Time
	// Logger receives pipeline logs; nil creates a logrus logger at warn level, or
	// debug level when Debug is set.
	Logger logrus.FieldLogger
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options seeded from the embedded house configuration
func DefaultOptions() Options {
	o := Options{
		// Default to A4 paper size (595.28 x 841.89 points)
		PageWidth:       PageSizeA4Width,
		PageHeight:      PageSizeA4Height,
		PageOrientation: PageOrientationPortrait,

		MarginTop:    72,
		MarginRight:  72,
		MarginBottom: 36,
		MarginLeft:   72,

		RenderBackgrounds: true,
		RenderBorders:     true,
		Compress:          true,

		Creator:  "gominvoice",
		Producer: "gominvoice",
		Theme:    DefaultTheme,
		Now:      time.Now,
	}
	applyConfig(&o, config.Default())
	return o
}

// applyConfig copies house settings onto o.
func applyConfig(o *Options, cfg *config.Config) {
	o.Company = cfg.Company
	o.Banking = cfg.Banking
	o.HouseClient = nil
	if cfg.Client != nil {
		client := *cfg.Client
		o.HouseClient = &client
	}
	o.TaxRate = decimal.NewFromFloat(cfg.TaxRate)
	o.TaxLabel = cfg.TaxLabel
	o.CurrencySymbol = cfg.Currency.Symbol
	o.CurrencyCode = cfg.Currency.Code
	o.PaymentTerms = append([]string(nil), cfg.PaymentTerms...)
	o.ClosingRemark = cfg.ClosingRemark
	o.Footer = cfg.Footer
	o.OutputDir = cfg.OutputDir
	o.Numbering = cfg.Numbering
	if cfg.Company.Name != "" {
		o.Author = cfg.Company.Name
	}
	if w, h, ok := lookupPageSize(cfg.PageSize); ok {
		o.PageWidth, o.PageHeight = w, h
	}
	if cfg.Stylesheet != "" {
		o.StylesheetFiles = append(o.StylesheetFiles, cfg.Stylesheet)
	}
	o.ResourcePaths = append(o.ResourcePaths, cfg.ResourcePaths...)
}

// LoadConfig reads a YAML house configuration and returns it as an option.
func LoadConfig(path string) (Option, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return func(o *Options) { applyConfig(o, cfg) }, nil
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithCompression toggles PDF stream compression
func WithCompression(compress bool) Option {
	return func(o *Options) {
		o.Compress = compress
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithFontDirectory sets the fpdf font definition directory
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectory = dir
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithStylesheet appends an inline theme stylesheet
func WithStylesheet(css string) Option {
	return func(o *Options) {
		o.Stylesheets = append(o.Stylesheets, css)
	}
}

// WithStylesheetFile appends a theme stylesheet loaded from a path or data URL
func WithStylesheetFile(ref string) Option {
	return func(o *Options) {
		o.StylesheetFiles = append(o.StylesheetFiles, ref)
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithCompany sets the issuing company
func WithCompany(company invoice.CompanyProfile) Option {
	return func(o *Options) {
		o.Company = company
	}
}

// WithBanking sets the payee banking details
func WithBanking(banking invoice.BankingProfile) Option {
	return func(o *Options) {
		o.Banking = banking
	}
}

// WithHouseClient sets the client billed when a request names none; nil disables it
func WithHouseClient(client *invoice.ClientProfile) Option {
	return func(o *Options) {
		o.HouseClient = client
	}
}

// WithTaxRate sets the tax rate as a fraction, e.g. 0.15
func WithTaxRate(rate decimal.Decimal) Option {
	return func(o *Options) {
		o.TaxRate = rate
	}
}

// WithCurrency sets the amount marker and the column header code
func WithCurrency(symbol, code string) Option {
	return func(o *Options) {
		o.CurrencySymbol = symbol
		o.CurrencyCode = code
	}
}

// WithPaymentTerms replaces the payment terms bullets
func WithPaymentTerms(terms ...string) Option {
	return func(o *Options) {
		o.PaymentTerms = terms
	}
}

// WithClosingRemark sets the closing remark
func WithClosingRemark(remark string) Option {
	return func(o *Options) {
		o.ClosingRemark = remark
	}
}

// WithFooter sets the page footer format
func WithFooter(format string) Option {
	return func(o *Options) {
		o.Footer = format
	}
}

// WithOutputDir sets the directory Generate writes to
func WithOutputDir(dir string) Option {
	return func(o *Options) {
		o.OutputDir = dir
	}
}

// WithNumbering selects how missing invoice numbers are generated
func WithNumbering(n invoice.Numbering) Option {
	return func(o *Options) {
		o.Numbering = n
	}
}

// WithClock sets the clock used for default numbers and dates
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

func lookupPageSize(name string) (float64, float64, bool) {
	size, ok := pagination.LookupPageSize(name)
	return size.Width, size.Height, ok
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}

// DefaultTheme is the built-in invoice stylesheet. Selectors are block roles.
const DefaultTheme = `
/* base */
* {
  font-family: Helvetica;
  font-size: 10;
  line-height: 1.25;
  color: #000000;
}

title {
  font-size: 28;
  font-weight: bold;
  color: darkblue;
  text-align: center;
  margin-bottom: 20;
}

logo {
  text-align: center;
  margin-bottom: 8;
  max-width: 140;
  max-height: 60;
}

heading {
  font-size: 12;
  font-weight: bold;
  color: darkblue;
  margin-top: 8;
  margin-bottom: 8;
}

party, party-header {
  padding: 10;
}

party-header {
  font-size: 12;
  font-weight: bold;
  color: darkblue;
}

party {
  margin-bottom: 22;
}

bill-to {
  border-color: darkblue;
  border-width: 2;
}

bill-to-header {
  background-color: lightblue;
}

details, banking, service, totals {
  font-size: 11;
  padding: 8;
}

details {
  background-color: lightyellow;
  border-color: lightgrey;
  border-width: 1;
  margin-bottom: 17;
}

details-label, banking-label {
  font-weight: bold;
}

service {
  border-color: black;
  border-width: 1;
  margin-bottom: 20;
}

service-header {
  background-color: darkblue;
  color: whitesmoke;
  font-weight: bold;
  text-align: center;
}

total {
  font-size: 14;
  font-weight: bold;
  background-color: lightgrey;
  border-color: black;
  border-width: 2;
}

totals {
  margin-bottom: 22;
}

terms, closing {
  margin-bottom: 6;
}

banking {
  padding: 10;
  background-color: aliceblue;
  border-color: darkblue;
  border-width: 1.5;
  margin-bottom: 20;
}

footer {
  font-size: 8;
  font-style: italic;
  color: grey;
}
`
