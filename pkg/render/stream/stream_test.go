package stream

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
	"github.com/pagebind/pagebind/pkg/render"
)

func testImage(t *testing.T, w, h int) *render.Image {
	t.Helper()
	pixels := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, pixels); err != nil {
		t.Fatal(err)
	}
	return &render.Image{Raw: buf.Bytes(), Format: "png", Pixels: pixels}
}

func a4Entry(source string) layout.Entry {
	return layout.Entry{
		Source: source,
		Page:   layout.Page{Width: 595.28, Height: 841.89},
		Placed: layout.Rect{X: 28.35, Y: 28.35, Width: 538.58, Height: 404},
	}
}

func TestRendererProducesPDF(t *testing.T) {
	r := New()
	img := testImage(t, 80, 60)

	if err := r.AddPage(a4Entry("a.png"), img); err != nil {
		t.Fatalf("AddPage error = %v", err)
	}
	if err := r.AddPage(a4Entry("b.png"), img); err != nil {
		t.Fatalf("AddPage error = %v", err)
	}

	var out bytes.Buffer
	if err := r.Finish(&out); err != nil {
		t.Fatalf("Finish error = %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out.Bytes()[:8])
	}
}

func TestRendererRotatedInputIsTranscoded(t *testing.T) {
	r := New()
	img := testImage(t, 60, 80)
	entry := a4Entry("rotated.png")
	entry.RotationDeg = 90

	if err := r.AddPage(entry, img); err != nil {
		t.Fatalf("AddPage error = %v", err)
	}
	var out bytes.Buffer
	if err := r.Finish(&out); err != nil {
		t.Fatalf("Finish error = %v", err)
	}
}

func TestFinishWithoutPages(t *testing.T) {
	var out bytes.Buffer
	err := New().Finish(&out)
	if errors.GetCode(err) != errors.ErrCodeSourceEmpty {
		t.Fatalf("Finish error code = %v, want %v", errors.GetCode(err), errors.ErrCodeSourceEmpty)
	}
}
