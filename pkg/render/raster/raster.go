// Package raster renders pages by compositing each image onto a pixel
// canvas at the target DPI, then wraps the canvases into a PDF once the
// whole document is known. Pages come out pixel-exact at the chosen
// resolution, at the cost of holding every canvas until Finish.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"github.com/disintegration/imaging"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
	"github.com/pagebind/pagebind/pkg/render"
	"github.com/pagebind/pagebind/pkg/units"
)

// jpegQuality balances canvas size against visible artifacts for
// photographic scans.
const jpegQuality = 92

// page is one composited canvas plus its physical size in layout units.
type page struct {
	canvas *image.NRGBA
	size   fpdf.SizeType
}

// Renderer composites pages at a fixed DPI.
type Renderer struct {
	dpi   float64
	pages []page
}

// New creates a raster renderer. The DPI must already be validated by
// the settings resolver.
func New(dpi float64) *Renderer {
	return &Renderer{dpi: dpi}
}

// AddPage composites one image onto a fresh white canvas sized to the
// entry's page. The image is resampled with Lanczos to the placed
// rectangle.
func (r *Renderer) AddPage(entry layout.Entry, img *render.Image) error {
	pageW := units.LayoutToPixels(entry.Page.Width, r.dpi)
	pageH := units.LayoutToPixels(entry.Page.Height, r.dpi)
	if pageW <= 0 || pageH <= 0 {
		return errors.New(errors.ErrCodeInternal, "page %s rasterizes to %dx%d pixels", entry.Source, pageW, pageH)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, pageW, pageH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	dstW := units.LayoutToPixels(entry.Placed.Width, r.dpi)
	dstH := units.LayoutToPixels(entry.Placed.Height, r.dpi)
	if dstW > 0 && dstH > 0 {
		scaled := imaging.Resize(img.Pixels, dstW, dstH, imaging.Lanczos)
		offset := image.Pt(units.LayoutToPixels(entry.Placed.X, r.dpi), units.LayoutToPixels(entry.Placed.Y, r.dpi))
		draw.Draw(canvas, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(dstW, dstH))}, scaled, image.Point{}, draw.Over)
	}

	r.pages = append(r.pages, page{
		canvas: canvas,
		size:   fpdf.SizeType{Wd: entry.Page.Width, Ht: entry.Page.Height},
	})
	return nil
}

// Finish encodes every canvas and writes the document to w.
func (r *Renderer) Finish(w io.Writer) error {
	if len(r.pages) == 0 {
		return errors.New(errors.ErrCodeSourceEmpty, "no pages rendered")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: "JPEG"}
	for i, p := range r.pages {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, p.canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encoding page %d", i+1)
		}

		pdf.AddPageFormat("P", p.size)
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		// The canvas covers the whole page; margins are already baked in.
		pdf.ImageOptions(name, 0, 0, p.size.Wd, p.size.Ht, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "finalizing document")
	}
	return nil
}

var _ render.Renderer = (*Renderer)(nil)
