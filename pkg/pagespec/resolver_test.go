package pagespec

import (
	"testing"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
)

func TestNewResolverValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Defaults)
		wantErr errors.Code
	}{
		{name: "builtin defaults valid", mutate: func(d *Defaults) {}},
		{name: "zero dpi", mutate: func(d *Defaults) { d.DPI = 0 }, wantErr: errors.ErrCodeInvalidDPI},
		{name: "negative dpi", mutate: func(d *Defaults) { d.DPI = -300 }, wantErr: errors.ErrCodeInvalidDPI},
		{name: "zero page width", mutate: func(d *Defaults) { d.PageSize.WidthMM = 0 }, wantErr: errors.ErrCodeInvalidPageSize},
		{name: "bad scaling", mutate: func(d *Defaults) { d.Scaling = "cover" }, wantErr: errors.ErrCodeInvalidScaling},
		{name: "bad alignment", mutate: func(d *Defaults) { d.AlignV = "middle" }, wantErr: errors.ErrCodeInvalidAlignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuiltinDefaults()
			tt.mutate(&d)
			_, err := NewResolver(d, Overrides{})
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewResolver error = %v", err)
				}
				return
			}
			if errors.GetCode(err) != tt.wantErr {
				t.Fatalf("NewResolver error code = %v, want %v", errors.GetCode(err), tt.wantErr)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	r, err := NewResolver(BuiltinDefaults(), Overrides{})
	if err != nil {
		t.Fatal(err)
	}

	s := r.Resolve("/photos/scan.jpg")
	if s.PageWidthMM != 210 || s.PageHeightMM != 297 {
		t.Errorf("page = %vx%v, want 210x297", s.PageWidthMM, s.PageHeightMM)
	}
	if s.MarginsMM != layout.Uniform(10) {
		t.Errorf("margins = %+v, want uniform 10", s.MarginsMM)
	}
	if s.RotationDeg != 0 {
		t.Errorf("rotation = %d, want 0", s.RotationDeg)
	}
	if s.DPI != 300 {
		t.Errorf("dpi = %v, want 300", s.DPI)
	}
	if s.Scaling != layout.ScalingFit || s.AlignH != layout.AlignHCenter || s.AlignV != layout.AlignVCenter {
		t.Errorf("scaling/alignment = %v/%v/%v, want fit/center/center", s.Scaling, s.AlignH, s.AlignV)
	}
}

func TestResolveOverridesByBasename(t *testing.T) {
	overrides := Overrides{
		Sizes:     map[string]Size{"cover.png": {WidthMM: 148, HeightMM: 210}},
		Margins:   map[string]layout.Margins{"cover.png": layout.Uniform(0)},
		Rotations: map[string]int{"cover.png": 90},
	}
	r, err := NewResolver(BuiltinDefaults(), overrides)
	if err != nil {
		t.Fatal(err)
	}

	// Lookup is by basename, so the directory part is irrelevant.
	s := r.Resolve("/any/dir/cover.png")
	if s.PageWidthMM != 148 || s.PageHeightMM != 210 {
		t.Errorf("page = %vx%v, want 148x210", s.PageWidthMM, s.PageHeightMM)
	}
	if s.MarginsMM != (layout.Margins{}) {
		t.Errorf("margins = %+v, want zero", s.MarginsMM)
	}
	if s.RotationDeg != 90 {
		t.Errorf("rotation = %d, want 90", s.RotationDeg)
	}

	// A different image falls back to the defaults.
	other := r.Resolve("/any/dir/page2.png")
	if other.PageWidthMM != 210 || other.RotationDeg != 0 {
		t.Errorf("page2.png picked up overrides: %+v", other)
	}
}
