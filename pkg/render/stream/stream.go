// Package stream renders pages into a PDF incrementally. Each page is
// written as it arrives, so memory stays bounded by the largest single
// image rather than the whole document.
package stream

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
	"github.com/pagebind/pagebind/pkg/render"
)

// fpdf embeds JPEG and PNG bytes as-is; everything else is transcoded
// to PNG before registration.
var nativeImageTypes = map[string]string{
	"jpeg": "JPEG",
	"png":  "PNG",
}

// Renderer writes one PDF page per placed image using fpdf. Pages are
// emitted in call order and the document is finalized by Finish.
type Renderer struct {
	pdf   *fpdf.Fpdf
	pages int
}

// New creates an empty streaming renderer. Page sizes are set per page
// from the layout, so the document-level default is irrelevant.
func New() *Renderer {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &Renderer{pdf: pdf}
}

// AddPage appends one page sized to the entry and places the image at
// its computed rectangle. JPEG and PNG inputs that needed no rotation
// are embedded without re-encoding.
func (r *Renderer) AddPage(entry layout.Entry, img *render.Image) error {
	r.pages++
	r.pdf.AddPageFormat("P", fpdf.SizeType{Wd: entry.Page.Width, Ht: entry.Page.Height})

	data, imageType, err := encodedBytes(entry, img)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("page-%d", r.pages)
	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	r.pdf.ImageOptions(name, entry.Placed.X, entry.Placed.Y, entry.Placed.Width, entry.Placed.Height, false, opts, 0, "")

	if err := r.pdf.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing page %d (%s)", r.pages, entry.Source)
	}
	return nil
}

// Finish writes the assembled PDF to w.
func (r *Renderer) Finish(w io.Writer) error {
	if r.pages == 0 {
		return errors.New(errors.ErrCodeSourceEmpty, "no pages rendered")
	}
	if err := r.pdf.Output(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "finalizing document")
	}
	return nil
}

// encodedBytes picks the cheapest representation fpdf can embed.
func encodedBytes(entry layout.Entry, img *render.Image) ([]byte, string, error) {
	if t, ok := nativeImageTypes[img.Format]; ok && entry.RotationDeg == 0 {
		return img.Raw, t, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Pixels); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "transcoding %s", entry.Source)
	}
	return buf.Bytes(), "PNG", nil
}

var _ render.Renderer = (*Renderer)(nil)
