package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/gominvoice/pkg/invoice"
)

var fixedNow = func() time.Time { return time.Date(2025, 9, 28, 10, 15, 0, 0, time.UTC) }

// testComposer writes uncompressed documents into a temporary directory so content
// streams can be searched.
func testComposer(t *testing.T, opts ...Option) (*Composer, string) {
	t.Helper()
	dir := t.TempDir()
	logger, _ := test.NewNullLogger()
	base := []Option{
		WithOutputDir(dir),
		WithClock(fixedNow),
		WithCompression(false),
		WithLogger(logger),
	}
	return New().WithOption(append(base, opts...)...), dir
}

func bella() invoice.Request {
	return invoice.Request{
		Student: "Bella Grasso",
		Entries: []invoice.Entry{{Description: "Algebra", Hours: 6}},
		Rate:    350,
	}
}

func dataURLPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerate_WritesInvoice(t *testing.T) {
	c, dir := testComposer(t)

	res, err := c.Generate(bella())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Invoice_INV-20250928-101500_Bella_Grasso.pdf"), res.Filename)
	assert.Equal(t, "INV-20250928-101500", res.Number)
	assert.Equal(t, "2025-09-28", res.Date)
	assert.Equal(t, "2100.00", res.Subtotal)
	assert.Equal(t, "0.00", res.Tax)
	assert.Equal(t, "2100.00", res.Total)
	assert.Equal(t, "TTI Bursary Management", res.BillTo.Name)

	data, err := os.ReadFile(res.Filename)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.EqualValues(t, len(data), res.BytesWritten)
	assert.Contains(t, string(data), "(TOTAL AMOUNT:)")
	assert.Contains(t, string(data), "(R 2,100.00)")
	assert.Contains(t, string(data), "(Page 2 of 2)")
	assert.NotContains(t, string(data), "VAT")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestGenerate_WithTax(t *testing.T) {
	c, _ := testComposer(t, WithTaxRate(decimal.RequireFromString("0.15")))

	res, err := c.Generate(bella())
	require.NoError(t, err)
	assert.Equal(t, "315.00", res.Tax)
	assert.Equal(t, "2415.00", res.Total)

	data, err := os.ReadFile(res.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(Subtotal:)")
	assert.Contains(t, string(data), `(VAT \(15%\):)`)
	assert.Contains(t, string(data), "(R 2,415.00)")
}

func TestGenerate_ValidationWritesNothing(t *testing.T) {
	c, dir := testComposer(t)

	for name, req := range map[string]invoice.Request{
		"no items":      {Student: "Bella Grasso", Rate: 350},
		"blank student": {Student: "  ", Entries: []invoice.Entry{{Description: "Algebra", Hours: 1}}, Rate: 350},
		"negative rate": {Student: "Bella Grasso", Entries: []invoice.Entry{{Description: "Algebra", Hours: 1}}, Rate: -1},
		"mismatched":    {Student: "Bella Grasso", Courses: []string{"A", "B"}, Hours: []float64{1}, Rate: 350},
	} {
		_, err := c.Generate(req)
		assert.ErrorIs(t, err, invoice.ErrValidation, name)
		var verr *invoice.ValidationError
		assert.True(t, errors.As(err, &verr), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_RequestOverrides(t *testing.T) {
	c, dir := testComposer(t)
	other := filepath.Join(dir, "nested", "out")

	req := bella()
	req.Number = "INV/42"
	req.Date = "12/09/2025"
	req.OutputDir = other
	req.Client = &invoice.ClientProfile{Name: "Rosaria Grasso", Email: "rosaria@example.com"}

	res, err := c.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(other, "Invoice_INV_42_Bella_Grasso.pdf"), res.Filename)
	assert.Equal(t, "Rosaria Grasso", res.BillTo.Name)

	data, err := os.ReadFile(res.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(Rosaria Grasso)")
	assert.Contains(t, string(data), "(12/09/2025)")
}

func TestGenerate_OutputDirIsAFile(t *testing.T) {
	c, dir := testComposer(t)
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	req := bella()
	req.OutputDir = filepath.Join(blocker, "sub")
	_, err := c.Generate(req)
	assert.ErrorIs(t, err, invoice.ErrIO)
}

func TestGenerate_Concurrent(t *testing.T) {
	c, dir := testComposer(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := bella()
			req.Student = fmt.Sprintf("Student %d", i)
			_, errs[i] = c.Generate(req)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestCompose_Deterministic(t *testing.T) {
	c, _ := testComposer(t)
	rec, err := bella().Resolve(c.Defaults())
	require.NoError(t, err)

	a, err := c.Compose(rec, c.Options().Company, c.Options().Banking)
	require.NoError(t, err)
	b, err := c.Compose(rec, c.Options().Company, c.Options().Banking)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComposeTo_CountsBytes(t *testing.T) {
	c, _ := testComposer(t)
	rec, err := bella().Resolve(c.Defaults())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.ComposeTo(&buf, rec, c.Options().Company, c.Options().Banking)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)

	_, err = c.ComposeTo(&buf, nil, c.Options().Company, c.Options().Banking)
	assert.ErrorIs(t, err, invoice.ErrValidation)
}

func TestCompose_BadMarkupIsRenderError(t *testing.T) {
	c, dir := testComposer(t, WithClosingRemark("<b>unclosed"))

	_, err := c.Generate(bella())
	assert.ErrorIs(t, err, invoice.ErrRender)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompose_BadStylesheetIsRenderError(t *testing.T) {
	c, _ := testComposer(t, WithStylesheet("title { color: }"))
	_, err := c.Generate(bella())
	var rerr *invoice.RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "theme", rerr.Stage)
}

func TestCompose_Logo(t *testing.T) {
	company := DefaultOptions().Company
	company.Logo = dataURLPNG(t, 40, 20)
	c, _ := testComposer(t, WithCompany(company))

	res, err := c.Generate(bella())
	require.NoError(t, err)
	data, err := os.ReadFile(res.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/Subtype /Image")
}

func TestCompose_MissingLogoIsIOError(t *testing.T) {
	company := DefaultOptions().Company
	company.Logo = filepath.Join(t.TempDir(), "missing.png")
	c, _ := testComposer(t, WithCompany(company))

	_, err := c.Generate(bella())
	assert.ErrorIs(t, err, invoice.ErrIO)
}

func TestCompose_Landscape(t *testing.T) {
	c, _ := testComposer(t, WithPageOrientation(PageOrientationLandscape))
	w, h, code := c.pageGeometry()
	assert.Equal(t, "L", code)
	assert.Greater(t, w, h)

	res, err := c.Generate(bella())
	require.NoError(t, err)
	assert.FileExists(t, res.Filename)
}

func TestNewWithOptions_DebugLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c, _ := testComposer(t, WithDebug(true), WithLogger(logger))

	_, err := c.Generate(bella())
	require.NoError(t, err)

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "built document")
	assert.Contains(t, messages, "invoice written")
}

func TestBuilders_CopyOnWrite(t *testing.T) {
	base := New()
	titled := base.SetTitle("Custom").SetMargins(10, 20, 30, 40).AddResourcePath("assets")

	assert.Empty(t, base.Options().Title)
	assert.Equal(t, "Custom", titled.Options().Title)
	assert.Equal(t, 40.0, titled.Options().MarginLeft)
	assert.NotContains(t, base.Options().ResourcePaths, "assets")
	assert.Contains(t, titled.Options().ResourcePaths, "assets")

	assert.Nil(t, base.SetHouseClient(nil).Options().HouseClient)
	assert.NotNil(t, base.Options().HouseClient)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tax_rate: 0.15
currency:
  symbol: "$"
  code: USD
page_size: Letter
`), 0o644))

	opt, err := LoadConfig(path)
	require.NoError(t, err)
	c := New().WithOption(opt)

	assert.True(t, c.Options().TaxRate.Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, "USD", c.Options().CurrencyCode)
	assert.Equal(t, float64(PageSizeLetterWidth), c.Options().PageWidth)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCreationDate(t *testing.T) {
	assert.Equal(t, time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC), creationDate("2025-09-28"))
	assert.Equal(t, time.Unix(0, 0).UTC(), creationDate("28 September"))
}

func TestPublish_NoPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b.pdf")

	n, err := publish(path, []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"))
	}
}

func TestCompose_StylesheetFile(t *testing.T) {
	c, _ := testComposer(t, WithStylesheetFile("data:text/css,title%20%7B%20color%3A%20red%20%7D"))
	_, err := c.Generate(bella())
	require.NoError(t, err)

	c, _ = testComposer(t, WithStylesheetFile("data:text/css,title%20%7B%20color%3A%20%7D"))
	_, err = c.Generate(bella())
	var rerr *invoice.RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "theme", rerr.Stage)
}
