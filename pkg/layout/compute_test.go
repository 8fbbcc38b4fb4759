package layout

import (
	"math"
	"testing"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/units"
)

const eps = 1e-9

func defaultSettings() Settings {
	return Settings{
		PageWidthMM:  210,
		PageHeightMM: 297,
		MarginsMM:    Uniform(10),
		Scaling:      ScalingFit,
		AlignH:       AlignHCenter,
		AlignV:       AlignVCenter,
		DPI:          300,
	}
}

func TestComputeStretchMatchesContentBox(t *testing.T) {
	tests := []struct {
		name string
		in   Intrinsics
	}{
		{name: "landscape", in: Intrinsics{Width: 1500, Height: 1000}},
		{name: "portrait", in: Intrinsics{Width: 1000, Height: 1500}},
		{name: "square", in: Intrinsics{Width: 800, Height: 800}},
		{name: "extreme panorama", in: Intrinsics{Width: 10000, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSettings()
			s.Scaling = ScalingStretch
			entry, err := Compute("img.jpg", tt.in, s)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if math.Abs(entry.Placed.Width-entry.Content.Width()) > eps {
				t.Errorf("width = %v, want content width %v", entry.Placed.Width, entry.Content.Width())
			}
			if math.Abs(entry.Placed.Height-entry.Content.Height()) > eps {
				t.Errorf("height = %v, want content height %v", entry.Placed.Height, entry.Content.Height())
			}
		})
	}
}

func TestComputeFitContainedWithOneBindingAxis(t *testing.T) {
	tests := []struct {
		name       string
		in         Intrinsics
		widthBound bool
	}{
		{name: "wide image binds width", in: Intrinsics{Width: 3000, Height: 1000}, widthBound: true},
		{name: "tall image binds height", in: Intrinsics{Width: 1000, Height: 3000}, widthBound: false},
		{name: "mild landscape binds width", in: Intrinsics{Width: 1500, Height: 1000}, widthBound: true},
		{name: "square on portrait page binds width", in: Intrinsics{Width: 800, Height: 800}, widthBound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Compute("img.jpg", tt.in, defaultSettings())
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if !entry.Content.Contains(entry.Placed) {
				t.Errorf("placed rect %+v not contained in content box %+v", entry.Placed, entry.Content)
			}
			touchesW := math.Abs(entry.Placed.Width-entry.Content.Width()) < eps
			touchesH := math.Abs(entry.Placed.Height-entry.Content.Height()) < eps
			if touchesW == touchesH {
				t.Errorf("want exactly one binding axis, got touchesW=%v touchesH=%v", touchesW, touchesH)
			}
			if touchesW != tt.widthBound {
				t.Errorf("width-bound = %v, want %v", touchesW, tt.widthBound)
			}
		})
	}
}

func TestComputeFillCoversWithOneMatchingAxis(t *testing.T) {
	tests := []struct {
		name string
		in   Intrinsics
	}{
		{name: "wide image overflows horizontally", in: Intrinsics{Width: 3000, Height: 1000}},
		{name: "tall image overflows vertically", in: Intrinsics{Width: 1000, Height: 3000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSettings()
			s.Scaling = ScalingFill
			entry, err := Compute("img.jpg", tt.in, s)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if entry.Placed.Width < entry.Content.Width()-eps {
				t.Errorf("width %v does not cover content width %v", entry.Placed.Width, entry.Content.Width())
			}
			if entry.Placed.Height < entry.Content.Height()-eps {
				t.Errorf("height %v does not cover content height %v", entry.Placed.Height, entry.Content.Height())
			}
			matchesW := math.Abs(entry.Placed.Width-entry.Content.Width()) < eps
			matchesH := math.Abs(entry.Placed.Height-entry.Content.Height()) < eps
			if matchesW == matchesH {
				t.Errorf("want exactly one matching axis, got matchesW=%v matchesH=%v", matchesW, matchesH)
			}
		})
	}
}

func TestComputeOriginalUsesIntrinsicSize(t *testing.T) {
	s := defaultSettings()
	s.Scaling = ScalingOriginal
	in := Intrinsics{Width: 600, Height: 450}

	entry, err := Compute("img.jpg", in, s)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	wantW := units.PixelsToLayout(600, s.DPI)
	wantH := units.PixelsToLayout(450, s.DPI)
	if math.Abs(entry.Placed.Width-wantW) > eps || math.Abs(entry.Placed.Height-wantH) > eps {
		t.Errorf("placed = %vx%v, want %vx%v", entry.Placed.Width, entry.Placed.Height, wantW, wantH)
	}
}

func TestComputeAutoOrient(t *testing.T) {
	tests := []struct {
		name          string
		in            Intrinsics
		autoOrient    bool
		wantLandscape bool
	}{
		{
			name:          "landscape image swaps portrait page",
			in:            Intrinsics{Width: 1500, Height: 1000},
			autoOrient:    true,
			wantLandscape: true,
		},
		{
			name:          "portrait image keeps portrait page",
			in:            Intrinsics{Width: 1000, Height: 1500},
			autoOrient:    true,
			wantLandscape: false,
		},
		{
			name:          "square image never swaps",
			in:            Intrinsics{Width: 800, Height: 800},
			autoOrient:    true,
			wantLandscape: false,
		},
		{
			name:          "disabled keeps nominal page",
			in:            Intrinsics{Width: 1500, Height: 1000},
			autoOrient:    false,
			wantLandscape: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSettings()
			s.AutoOrient = tt.autoOrient
			entry, err := Compute("img.jpg", tt.in, s)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			gotLandscape := entry.Page.Width > entry.Page.Height
			if gotLandscape != tt.wantLandscape {
				t.Errorf("page %vx%v, want landscape=%v", entry.Page.Width, entry.Page.Height, tt.wantLandscape)
			}
		})
	}
}

func TestComputeRotationComposition(t *testing.T) {
	// Intrinsic 800x600 with EXIF tag 6 needs a 270 correction, which
	// swaps to 600x800; a 90 override swaps back to 800x600 and the net
	// rotation cancels to 0.
	s := defaultSettings()
	s.Autorotate = true
	s.RotationDeg = 90
	s.Scaling = ScalingOriginal
	in := Intrinsics{Width: 800, Height: 600, Orientation: 6}

	entry, err := Compute("img.jpg", in, s)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if entry.RotationDeg != 0 {
		t.Errorf("RotationDeg = %v, want 0", entry.RotationDeg)
	}
	wantW := units.PixelsToLayout(800, s.DPI)
	wantH := units.PixelsToLayout(600, s.DPI)
	if math.Abs(entry.Placed.Width-wantW) > eps || math.Abs(entry.Placed.Height-wantH) > eps {
		t.Errorf("placed = %vx%v, want %vx%v", entry.Placed.Width, entry.Placed.Height, wantW, wantH)
	}
}

func TestComputeRotationSwapsDimensions(t *testing.T) {
	tests := []struct {
		name        string
		orientation int
		autorotate  bool
		override    int
		wantSwap    bool
		wantDeg     int
	}{
		{name: "tag 6 alone", orientation: 6, autorotate: true, wantSwap: true, wantDeg: 270},
		{name: "tag 8 alone", orientation: 8, autorotate: true, wantSwap: true, wantDeg: 90},
		{name: "tag 3 alone", orientation: 3, autorotate: true, wantSwap: false, wantDeg: 180},
		{name: "tag ignored without autorotate", orientation: 6, wantSwap: false, wantDeg: 0},
		{name: "override 90", override: 90, wantSwap: true, wantDeg: 90},
		{name: "override 180", override: 180, wantSwap: false, wantDeg: 180},
		{name: "tag 3 plus override 180", orientation: 3, autorotate: true, override: 180, wantSwap: false, wantDeg: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSettings()
			s.Autorotate = tt.autorotate
			s.RotationDeg = tt.override
			s.Scaling = ScalingOriginal
			in := Intrinsics{Width: 800, Height: 600, Orientation: tt.orientation}

			entry, err := Compute("img.jpg", in, s)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if entry.RotationDeg != tt.wantDeg {
				t.Errorf("RotationDeg = %v, want %v", entry.RotationDeg, tt.wantDeg)
			}
			wantW, wantH := 800, 600
			if tt.wantSwap {
				wantW, wantH = 600, 800
			}
			gotW := units.LayoutToPixels(entry.Placed.Width, s.DPI)
			gotH := units.LayoutToPixels(entry.Placed.Height, s.DPI)
			if gotW != wantW || gotH != wantH {
				t.Errorf("placed = %vx%v px, want %vx%v", gotW, gotH, wantW, wantH)
			}
		})
	}
}

func TestComputeMarginsExceedPage(t *testing.T) {
	tests := []struct {
		name    string
		margins Margins
		wantErr bool
	}{
		{name: "fits", margins: Uniform(10)},
		{name: "horizontal collapse", margins: Margins{Left: 110, Right: 110}, wantErr: true},
		{name: "vertical collapse", margins: Margins{Top: 150, Bottom: 150}, wantErr: true},
		{name: "exact collapse is fatal", margins: Margins{Left: 105, Right: 105}, wantErr: true},
		{name: "tight but positive", margins: Margins{Left: 104, Right: 105, Top: 1, Bottom: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSettings()
			s.MarginsMM = tt.margins
			_, err := Compute("big-margins.png", Intrinsics{Width: 100, Height: 100}, s)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeMarginsExceedPage) {
					t.Fatalf("err = %v, want MARGINS_EXCEED_PAGE", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
		})
	}
}

func TestComputeAlignment(t *testing.T) {
	s := defaultSettings()
	s.Scaling = ScalingOriginal
	s.DPI = 300
	in := Intrinsics{Width: 300, Height: 300} // 72x72 layout units

	tests := []struct {
		name   string
		alignH HAlign
		alignV VAlign
		wantX  func(e Entry) float64
		wantY  func(e Entry) float64
	}{
		{
			name:   "left top",
			alignH: AlignLeft,
			alignV: AlignTop,
			wantX:  func(e Entry) float64 { return e.Content.X0 },
			wantY:  func(e Entry) float64 { return e.Content.Y0 },
		},
		{
			name:   "right bottom",
			alignH: AlignRight,
			alignV: AlignBottom,
			wantX:  func(e Entry) float64 { return e.Content.X1 - e.Placed.Width },
			wantY:  func(e Entry) float64 { return e.Content.Y1 - e.Placed.Height },
		},
		{
			name:   "center center",
			alignH: AlignHCenter,
			alignV: AlignVCenter,
			wantX:  func(e Entry) float64 { return e.Content.X0 + (e.Content.Width()-e.Placed.Width)/2 },
			wantY:  func(e Entry) float64 { return e.Content.Y0 + (e.Content.Height()-e.Placed.Height)/2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.AlignH = tt.alignH
			s.AlignV = tt.alignV
			entry, err := Compute("img.jpg", in, s)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if math.Abs(entry.Placed.X-tt.wantX(entry)) > eps {
				t.Errorf("X = %v, want %v", entry.Placed.X, tt.wantX(entry))
			}
			if math.Abs(entry.Placed.Y-tt.wantY(entry)) > eps {
				t.Errorf("Y = %v, want %v", entry.Placed.Y, tt.wantY(entry))
			}
		})
	}
}

func TestComputeZeroHeightFallsBack(t *testing.T) {
	// Degenerate images must not divide by zero; aspect falls back to 1.
	entry, err := Compute("degenerate.png", Intrinsics{Width: 100, Height: 0}, defaultSettings())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if math.IsNaN(entry.Placed.Width) || math.IsInf(entry.Placed.Width, 0) {
		t.Errorf("placed width = %v", entry.Placed.Width)
	}
	if math.IsNaN(entry.Placed.Height) || math.IsInf(entry.Placed.Height, 0) {
		t.Errorf("placed height = %v", entry.Placed.Height)
	}
}

func TestComputeA4DefaultPlan(t *testing.T) {
	// The reference scenario: four images, A4, 10mm uniform margin, fit,
	// centered. Image 2 (landscape) is the only width-bound placement.
	images := []struct {
		w, h       int
		widthBound bool
	}{
		{1000, 1500, false},
		{1500, 1000, true},
		{800, 800, false},
		{1200, 900, false},
	}

	wantPageW := units.MMToLayout(210)
	wantPageH := units.MMToLayout(297)
	wantContentW := units.MMToLayout(190)
	wantContentH := units.MMToLayout(277)

	for i, img := range images {
		entry, err := Compute("img.jpg", Intrinsics{Width: img.w, Height: img.h}, defaultSettings())
		if err != nil {
			t.Fatalf("image %d: %v", i, err)
		}
		if math.Abs(entry.Page.Width-wantPageW) > eps || math.Abs(entry.Page.Height-wantPageH) > eps {
			t.Errorf("image %d: page = %vx%v, want %vx%v", i, entry.Page.Width, entry.Page.Height, wantPageW, wantPageH)
		}
		if math.Abs(entry.Content.Width()-wantContentW) > eps || math.Abs(entry.Content.Height()-wantContentH) > eps {
			t.Errorf("image %d: content = %vx%v, want %vx%v", i,
				entry.Content.Width(), entry.Content.Height(), wantContentW, wantContentH)
		}
		if !entry.Content.Contains(entry.Placed) {
			t.Errorf("image %d: placed %+v outside content %+v", i, entry.Placed, entry.Content)
		}
		gotWidthBound := math.Abs(entry.Placed.Width-entry.Content.Width()) < eps
		if gotWidthBound != img.widthBound {
			t.Errorf("image %d: width-bound = %v, want %v", i, gotWidthBound, img.widthBound)
		}
		// Centered: equal slack on both sides.
		leftGap := entry.Placed.X - entry.Content.X0
		rightGap := entry.Content.X1 - (entry.Placed.X + entry.Placed.Width)
		if math.Abs(leftGap-rightGap) > eps {
			t.Errorf("image %d: not horizontally centered (gaps %v, %v)", i, leftGap, rightGap)
		}
	}
}

func TestParseScaling(t *testing.T) {
	for _, valid := range []string{"fit", "fill", "stretch", "original"} {
		if _, err := ParseScaling(valid); err != nil {
			t.Errorf("ParseScaling(%q) = %v", valid, err)
		}
	}
	if _, err := ParseScaling("zoom"); !errors.Is(err, errors.ErrCodeInvalidScaling) {
		t.Errorf("ParseScaling(zoom) err = %v, want INVALID_SCALING", err)
	}
}

func TestParseAlign(t *testing.T) {
	if _, err := ParseHAlign("middle"); !errors.Is(err, errors.ErrCodeInvalidAlignment) {
		t.Errorf("ParseHAlign(middle) err = %v, want INVALID_ALIGNMENT", err)
	}
	if _, err := ParseVAlign("middle"); !errors.Is(err, errors.ErrCodeInvalidAlignment) {
		t.Errorf("ParseVAlign(middle) err = %v, want INVALID_ALIGNMENT", err)
	}
	if a, err := ParseHAlign("left"); err != nil || a != AlignLeft {
		t.Errorf("ParseHAlign(left) = %v, %v", a, err)
	}
	if a, err := ParseVAlign("bottom"); err != nil || a != AlignBottom {
		t.Errorf("ParseVAlign(bottom) = %v, %v", a, err)
	}
}
