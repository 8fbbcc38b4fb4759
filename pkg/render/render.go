package render

import (
	"image"
	"io"

	"github.com/pagebind/pagebind/pkg/layout"
)

// Image carries one input image in both encoded and decoded form. The
// streaming backend embeds Raw directly when it can (JPEG and PNG with
// no rotation applied), so keeping the original bytes avoids a lossy
// re-encode; Pixels always reflect the final page orientation.
type Image struct {
	Raw    []byte      // original file bytes
	Format string      // decoder name: "jpeg", "png", "tiff", "bmp", "webp"
	Pixels image.Image // decoded pixels with rotation already applied
}

// Renderer accumulates placed pages and writes the finished PDF.
// Implementations are single-use: AddPage in page order, then Finish
// exactly once.
type Renderer interface {
	// AddPage renders one placed image onto a new page.
	AddPage(entry layout.Entry, img *Image) error

	// Finish writes the assembled document to w.
	Finish(w io.Writer) error
}
