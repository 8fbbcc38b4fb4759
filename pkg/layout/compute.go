package layout

import (
	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/units"
)

// Compute produces the layout plan entry for one image.
//
// The steps, in order:
//
//  1. Capture-orientation correction (when settings.Autorotate is set):
//     EXIF tag 3 adds 180, tag 6 adds 270, tag 8 adds 90; 90/270 swap
//     the effective pixel dimensions.
//  2. Explicit rotation override, composed after the correction in the
//     same rotation space.
//  3. Page size selection from the resolved settings (millimetres).
//  4. Auto-orient: when the image's aspect class (landscape vs portrait,
//     strict ratios) disagrees with the page's, the page axes swap.
//     Square images and square pages never trigger a swap.
//  5. Unit normalization: page, margins and effective pixel size are
//     converted to layout units (pixels via the resolved DPI).
//  6. Content box subtraction; a non-positive width or height fails with
//     MARGINS_EXCEED_PAGE naming the source image.
//  7. Target sizing by scaling mode (fit, fill, stretch, original). An
//     image height of zero falls back to an aspect ratio of 1.0.
//  8. Alignment against the content box; the placed rectangle is always
//     expressed from the top-left page origin.
//
// Compute never mutates its arguments and holds no state between calls.
func Compute(source string, in Intrinsics, s Settings) (Entry, error) {
	// Steps 1-2: effective rotation and pixel size.
	tag := 0
	if s.Autorotate {
		tag = in.Orientation
	}
	rotation := EffectiveRotation(tag, s.RotationDeg)
	pxW, pxH := EffectiveSize(in.Width, in.Height, rotation)

	// Steps 3-4: page size, possibly swapped by auto-orient.
	pageWmm, pageHmm := s.PageWidthMM, s.PageHeightMM
	if s.AutoOrient && shouldSwapPage(pxW, pxH, pageWmm, pageHmm) {
		pageWmm, pageHmm = pageHmm, pageWmm
	}

	// Step 5: normalize to layout units.
	page := Page{
		Width:  units.MMToLayout(pageWmm),
		Height: units.MMToLayout(pageHmm),
	}
	m := s.MarginsMM
	top := units.MMToLayout(m.Top)
	right := units.MMToLayout(m.Right)
	bottom := units.MMToLayout(m.Bottom)
	left := units.MMToLayout(m.Left)
	imgW := units.PixelsToLayout(float64(pxW), s.DPI)
	imgH := units.PixelsToLayout(float64(pxH), s.DPI)

	// Step 6: content box.
	content := Box{
		X0: left,
		Y0: top,
		X1: page.Width - right,
		Y1: page.Height - bottom,
	}
	if content.Width() <= 0 || content.Height() <= 0 {
		return Entry{}, errors.New(errors.ErrCodeMarginsExceedPage,
			"margins too large for page size for %s", source)
	}

	// Step 7: target size by scaling mode.
	targetW, targetH := targetSize(s.Scaling, imgW, imgH, content.Width(), content.Height())

	// Step 8: alignment.
	var x, y float64
	switch s.AlignH {
	case AlignLeft:
		x = content.X0
	case AlignRight:
		x = content.X1 - targetW
	default: // center
		x = content.X0 + (content.Width()-targetW)/2
	}
	switch s.AlignV {
	case AlignTop:
		y = content.Y0
	case AlignBottom:
		y = content.Y1 - targetH
	default: // center
		y = content.Y0 + (content.Height()-targetH)/2
	}

	return Entry{
		Source:      source,
		Page:        page,
		Content:     content,
		Placed:      Rect{X: x, Y: y, Width: targetW, Height: targetH},
		RotationDeg: rotation,
	}, nil
}

// shouldSwapPage reports whether auto-orient should exchange the page
// axes: true only when the image and page aspect classes strictly
// disagree. A ratio of exactly 1 belongs to neither class.
func shouldSwapPage(pxW, pxH int, pageWmm, pageHmm float64) bool {
	imgRatio := 1.0
	if pxH != 0 {
		imgRatio = float64(pxW) / float64(pxH)
	}
	pageRatio := 1.0
	if pageHmm != 0 {
		pageRatio = pageWmm / pageHmm
	}
	return (imgRatio > 1 && pageRatio < 1) || (imgRatio < 1 && pageRatio > 1)
}

// targetSize computes the placed width and height for a scaling mode.
// For fit, the binding axis is the one the image is proportionally wider
// on than the content box; fill binds the opposite axis so the box is
// covered rather than contained.
func targetSize(mode Scaling, imgW, imgH, contentW, contentH float64) (float64, float64) {
	switch mode {
	case ScalingOriginal:
		return imgW, imgH
	case ScalingStretch:
		return contentW, contentH
	}

	imgRatio := 1.0
	if imgH != 0 {
		imgRatio = imgW / imgH
	}
	contentRatio := 1.0
	if contentH != 0 {
		contentRatio = contentW / contentH
	}

	widthBound := imgRatio > contentRatio
	if mode == ScalingFill {
		widthBound = !widthBound
	}
	if widthBound {
		return contentW, contentW / imgRatio
	}
	return contentH * imgRatio, contentH
}
