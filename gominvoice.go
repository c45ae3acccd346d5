package gominvoice

import (
	"github.com/gompdf/gominvoice/pkg/api"
	"github.com/gompdf/gominvoice/pkg/invoice"
)

type Composer = api.Composer
type Options = api.Options
type Option = api.Option
type Result = api.Result
type PageOrientation = api.PageOrientation

type Request = invoice.Request
type Entry = invoice.Entry
type Record = invoice.Record
type LineItem = invoice.LineItem
type CompanyProfile = invoice.CompanyProfile
type ClientProfile = invoice.ClientProfile
type BankingProfile = invoice.BankingProfile
type Numbering = invoice.Numbering

type ValidationError = invoice.ValidationError
type IOError = invoice.IOError
type RenderError = invoice.RenderError

var (
	ErrValidation = invoice.ErrValidation
	ErrIO         = invoice.ErrIO
	ErrRender     = invoice.ErrRender
)

func New() *Composer                           { return api.New() }
func NewWithOptions(options Options) *Composer { return api.NewWithOptions(options) }
func DefaultOptions() Options                  { return api.DefaultOptions() }
func LoadConfig(path string) (Option, error)   { return api.LoadConfig(path) }

// Generate renders req with the default options and writes it to the default output
// directory.
func Generate(req Request) (*Result, error) { return api.New().Generate(req) }

var (
	WithPageSize        = api.WithPageSize
	WithMargins         = api.WithMargins
	WithDebug           = api.WithDebug
	WithCompression     = api.WithCompression
	WithResourcePath    = api.WithResourcePath
	WithFontDirectory   = api.WithFontDirectory
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords
	WithStylesheet      = api.WithStylesheet
	WithStylesheetFile  = api.WithStylesheetFile
	WithPageSizeA4      = api.WithPageSizeA4
	WithPageSizeLetter  = api.WithPageSizeLetter
	WithPageSizeLegal   = api.WithPageSizeLegal
	WithPageOrientation = api.WithPageOrientation
	WithCompany         = api.WithCompany
	WithBanking         = api.WithBanking
	WithHouseClient     = api.WithHouseClient
	WithTaxRate         = api.WithTaxRate
	WithCurrency        = api.WithCurrency
	WithPaymentTerms    = api.WithPaymentTerms
	WithClosingRemark   = api.WithClosingRemark
	WithFooter          = api.WithFooter
	WithOutputDir       = api.WithOutputDir
	WithNumbering       = api.WithNumbering
	WithClock           = api.WithClock
	WithLogger          = api.WithLogger
)

const (
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape

	NumberingTimestamp = invoice.NumberingTimestamp
	NumberingUUID      = invoice.NumberingUUID
)
