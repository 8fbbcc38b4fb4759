// Package layout computes page placements for images.
//
// # Overview
//
// This package is the geometric core of pagebind. Given an image's
// intrinsic pixel size (plus its capture orientation) and one fully
// resolved settings value, [Compute] produces a single [Entry]: the page
// geometry, the content box left after margins, the placed image
// rectangle and the net rotation the renderer must apply to the pixels.
//
// The computation is a pure function. It performs no I/O, retains no
// references across calls, and emits value data only, so entries can be
// consumed by a streaming one-page-at-a-time renderer or collected for a
// whole-document batch encode with identical results.
//
// # Units and coordinates
//
// All lengths in an [Entry] are abstract layout units (typesetting
// points, see [github.com/pagebind/pagebind/pkg/units]). Coordinates use
// a top-left page origin with y increasing downward; both renderer
// backends share this convention.
//
// # Algorithm
//
// [Compute] applies, in order: capture-orientation correction, explicit
// rotation override, page size selection, auto-orient page swap, unit
// normalization, content box subtraction, scaling-mode target sizing,
// and alignment. See the documentation on [Compute] for the details of
// each step.
package layout

import (
	"fmt"

	"github.com/pagebind/pagebind/pkg/errors"
)

// Scaling selects how an image is sized relative to the content box.
type Scaling string

// Recognized scaling modes.
const (
	// ScalingFit preserves aspect ratio and keeps the image fully inside
	// the content box. Exactly one axis touches the box boundary.
	ScalingFit Scaling = "fit"

	// ScalingFill preserves aspect ratio and fully covers the content
	// box. One axis matches the box exactly; the other may overflow.
	ScalingFill Scaling = "fill"

	// ScalingStretch discards aspect ratio and matches the content box
	// exactly on both axes.
	ScalingStretch Scaling = "stretch"

	// ScalingOriginal places the image at its DPI-converted intrinsic
	// size, independent of the content box.
	ScalingOriginal Scaling = "original"
)

// ParseScaling validates a scaling mode string.
func ParseScaling(s string) (Scaling, error) {
	switch Scaling(s) {
	case ScalingFit, ScalingFill, ScalingStretch, ScalingOriginal:
		return Scaling(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidScaling,
		"unknown scaling mode %q (must be one of: fit, fill, stretch, original)", s)
}

// HAlign selects horizontal placement within the content box.
type HAlign string

// Recognized horizontal alignments.
const (
	AlignLeft    HAlign = "left"
	AlignHCenter HAlign = "center"
	AlignRight   HAlign = "right"
)

// ParseHAlign validates a horizontal alignment string.
func ParseHAlign(s string) (HAlign, error) {
	switch HAlign(s) {
	case AlignLeft, AlignHCenter, AlignRight:
		return HAlign(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidAlignment,
		"unknown horizontal alignment %q (must be one of: left, center, right)", s)
}

// VAlign selects vertical placement within the content box.
type VAlign string

// Recognized vertical alignments.
const (
	AlignTop     VAlign = "top"
	AlignVCenter VAlign = "center"
	AlignBottom  VAlign = "bottom"
)

// ParseVAlign validates a vertical alignment string.
func ParseVAlign(s string) (VAlign, error) {
	switch VAlign(s) {
	case AlignTop, AlignVCenter, AlignBottom:
		return VAlign(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidAlignment,
		"unknown vertical alignment %q (must be one of: top, center, bottom)", s)
}

// Margins holds the four page margins in millimetres.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns margins with the same value on all four sides.
func Uniform(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// Intrinsics describes an image as read from disk: its pixel dimensions
// and, when known, the EXIF capture orientation tag (1-8, 0 when absent).
// Intrinsics are immutable once probed.
type Intrinsics struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	Orientation int `json:"orientation,omitempty"`
}

// Settings is one fully resolved per-image configuration, produced by
// the settings resolver. Margins always carry exactly four non-negative
// values; DPI is validated positive before layout runs.
type Settings struct {
	PageWidthMM  float64 `json:"page_width_mm"`
	PageHeightMM float64 `json:"page_height_mm"`
	MarginsMM    Margins `json:"margins_mm"`
	RotationDeg  int     `json:"rotation_deg"`
	Scaling      Scaling `json:"scaling"`
	AlignH       HAlign  `json:"align_h"`
	AlignV       VAlign  `json:"align_v"`
	DPI          float64 `json:"dpi"`
	Autorotate   bool    `json:"autorotate"`
	AutoOrient   bool    `json:"auto_orient"`
}

// Page is the emitted page geometry in layout units. It may differ from
// the nominal page size when auto-orient swapped the axes.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box is the content region of a page: the page box minus margins.
// Coordinates are layout units from the top-left page origin.
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Rect is a placed rectangle: position and size in layout units relative
// to the top-left page origin.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether r lies fully inside the box on both axes,
// allowing for floating point slack.
func (b Box) Contains(r Rect) bool {
	const eps = 1e-9
	return r.X >= b.X0-eps && r.Y >= b.Y0-eps &&
		r.X+r.Width <= b.X1+eps && r.Y+r.Height <= b.Y1+eps
}

// Entry is one placement in a layout plan: everything a renderer needs
// to produce one finished page. Entries are value data with no backward
// references into source images, so a streaming renderer can release the
// image as soon as the page is written.
type Entry struct {
	Source      string `json:"source"`
	Page        Page   `json:"page"`
	Content     Box    `json:"content"`
	Placed      Rect   `json:"placed"`
	RotationDeg int    `json:"rotation_deg"`
}

// String returns a compact human-readable summary, used in logs.
func (e Entry) String() string {
	return fmt.Sprintf("%s: page %.1fx%.1f, placed %.1fx%.1f at (%.1f,%.1f), rotation %d",
		e.Source, e.Page.Width, e.Page.Height,
		e.Placed.Width, e.Placed.Height, e.Placed.X, e.Placed.Y, e.RotationDeg)
}
