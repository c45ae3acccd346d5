package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/gominvoice/internal/layout"
	"github.com/gompdf/gominvoice/internal/markup"
	"github.com/gompdf/gominvoice/internal/pagination"
	"github.com/gompdf/gominvoice/internal/style"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 0, G: 0, B: 139, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func samplePages(t *testing.T) []*pagination.Page {
	t.Helper()
	m := layout.NewMeasurer()
	st := layout.Style{Font: layout.Font{Family: "Helvetica", Size: 12}, Padding: 4}
	bg := style.Color{R: 240, G: 248, B: 255}
	st.Background = &bg
	st.Border = &layout.Border{Color: style.Color{B: 139}, Width: 1}

	title := layout.NewParagraph("title", []markup.Run{{Text: "INVOICE", Bold: true}}, st)
	title.Layout(m, 400)

	tbl := &layout.Table{
		Tag:         "service",
		Columns:     []layout.Column{{Weight: 3}, {Weight: 1, Align: layout.AlignRight}},
		Header:      []layout.Cell{layout.TextCell("Description"), layout.TextCell("Amount")},
		HeaderStyle: st,
		BodyStyle:   layout.Style{Font: layout.Font{Family: "Helvetica", Size: 10}, Padding: 3},
		Stripes:     []style.Color{style.White, {R: 245, G: 245, B: 245}},
		Grid:        &layout.Border{Color: style.Color{R: 211, G: 211, B: 211}, Width: 0.5},
		Rows: []layout.Row{
			{Cells: []layout.Cell{layout.TextCell("Math"), layout.TextCell("R 700.00")}},
			{Cells: []layout.Cell{layout.TextCell("Science"), layout.TextCell("R 1,400.00")}, RuleAbove: &layout.Border{Width: 1}},
		},
	}
	tbl.Layout(m, 400)

	data := samplePNG(t, 8, 4)
	logo := &layout.Image{Tag: "title", Name: "logo", Data: data, PixelW: 8, PixelH: 4, MaxWidth: 80}
	logo.Layout(m, 400)

	return []*pagination.Page{
		{Number: 1, Width: 500, Height: 700, Items: []pagination.Placement{
			{Block: logo, X: 50, Y: 40, Width: 400},
			{Block: title, X: 50, Y: 90, Width: 400},
			{Block: tbl, X: 50, Y: 130, Width: 400, FirstRow: 0, LastRow: 1, Header: true},
		}},
		{Number: 2, Width: 500, Height: 700, Items: []pagination.Placement{
			{Block: tbl, X: 50, Y: 40, Width: 400, FirstRow: 1, LastRow: 2, Header: true},
			{Block: logo, X: 50, Y: 200, Width: 400},
		}},
	}
}

func options() RenderOptions {
	return RenderOptions{
		Title:        "Invoice INV-1",
		Author:       "Yolymatics Tutorials",
		Creator:      "gominvoice",
		PageSize:     pagination.PageSize{Width: 500, Height: 700},
		CreationDate: time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC),
		Footer:       &Footer{Format: "Page %d of %d"},
	}
}

func TestRender_WritesDocument(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(nil).Render(samplePages(t), &buf, options())
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "(INVOICE)")
	assert.Contains(t, string(out), "(Page 1 of 2)")
	assert.Contains(t, string(out), "(Page 2 of 2)")
	assert.Contains(t, string(out), "(Description)")
	assert.Contains(t, string(out), "(R 1,400.00)")
	assert.Contains(t, string(out), "%%EOF")
}

func TestRender_Deterministic(t *testing.T) {
	render := func() []byte {
		var buf bytes.Buffer
		opts := options()
		opts.Compress = true
		require.NoError(t, NewRenderer(nil).Render(samplePages(t), &buf, opts))
		return buf.Bytes()
	}
	assert.Equal(t, render(), render())
}

func TestRender_DebugLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	r := NewRenderer(logger)
	r.Debug = true
	r.DebugDrawBoxes = true

	var buf bytes.Buffer
	require.NoError(t, r.Render(samplePages(t), &buf, options()))
	assert.NotEmpty(t, hook.AllEntries())
}

func TestRender_NoBackgroundsOrBorders(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderBackgrounds = false
	r.RenderBorders = false

	var buf bytes.Buffer
	require.NoError(t, r.Render(samplePages(t), &buf, options()))
	assert.Contains(t, buf.String(), "(INVOICE)")
}

func TestRender_BadImageFails(t *testing.T) {
	pages := samplePages(t)
	bad := &layout.Image{Name: "broken", Data: []byte("not a png"), W: 10, H: 10}
	pages[0].Items = append(pages[0].Items, pagination.Placement{Block: bad, X: 10, Y: 10, Width: 400})

	var buf bytes.Buffer
	err := NewRenderer(nil).Render(pages, &buf, options())
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestDecodeImage(t *testing.T) {
	r, err := DecodeImage(samplePNG(t, 12, 6), false)
	require.NoError(t, err)
	assert.Equal(t, 12, r.Width)
	assert.Equal(t, 6, r.Height)
	assert.True(t, bytes.HasPrefix(r.PNG, []byte("\x89PNG")))

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, image.NewRGBA(image.Rect(0, 0, 5, 7)), nil))
	r, err = DecodeImage(jpg.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, 7, r.Height)

	_, err = DecodeImage([]byte("garbage"), false)
	assert.Error(t, err)
}

func TestDecodeImage_SVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20"><rect width="10" height="20" fill="#00008b"/></svg>`
	r, err := DecodeImage([]byte(svg), true)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Width)
	assert.Equal(t, 40, r.Height)
	assert.True(t, bytes.HasPrefix(r.PNG, []byte("\x89PNG")))
}
