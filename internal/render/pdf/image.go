package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// svgScale rasterises SVG at twice its nominal size.
const svgScale = 2

// maxSVGSide bounds the rasterised SVG.
const maxSVGSide = 2048

// Raster is an image normalised to PNG.
type Raster struct {
	PNG    []byte
	Width  int
	Height int
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data, or rasterises SVG, and
// re-encodes the result as PNG for embedding.
func DecodeImage(data []byte, svg bool) (*Raster, error) {
	var (
		img image.Image
		err error
	)
	if svg {
		img, err = rasterizeSVG(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Raster{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = 256, 256
	}
	w := int(math.Ceil(vw * svgScale))
	h := int(math.Ceil(vh * svgScale))
	if side := max(w, h); side > maxSVGSide {
		w = w * maxSVGSide / side
		h = h * maxSVGSide / side
	}
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return rgba, nil
}
