package pagespec

import (
	"path/filepath"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
)

// Defaults are the run-level settings applied to every image that has
// no per-image override.
type Defaults struct {
	PageSize   Size
	MarginMM   layout.Margins
	Scaling    layout.Scaling
	AlignH     layout.HAlign
	AlignV     layout.VAlign
	DPI        float64
	Autorotate bool
	AutoOrient bool
}

// BuiltinDefaults returns the defaults used when neither flags nor a
// config file override them: A4, 300 DPI, 10mm margins, fit, centered.
func BuiltinDefaults() Defaults {
	return Defaults{
		PageSize: Size{WidthMM: 210, HeightMM: 297},
		MarginMM: layout.Uniform(10),
		Scaling:  layout.ScalingFit,
		AlignH:   layout.AlignHCenter,
		AlignV:   layout.AlignVCenter,
		DPI:      300,
	}
}

// Overrides are the per-image mapping tables, keyed by basename.
type Overrides struct {
	Sizes     map[string]Size
	Margins   map[string]layout.Margins
	Rotations map[string]int
}

// Resolver merges defaults with per-image overrides into one effective
// settings value per image. It is mechanical and stateless beyond its
// construction inputs.
type Resolver struct {
	defaults  Defaults
	overrides Overrides
}

// NewResolver validates the defaults and builds a resolver.
// DPI must be positive: the layout engine's unit conversions divide by
// it, and the original behavior of letting zero flow through silently
// is rejected here at the configuration boundary.
func NewResolver(defaults Defaults, overrides Overrides) (*Resolver, error) {
	if defaults.DPI <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDPI, "dpi must be positive, got %v", defaults.DPI)
	}
	if defaults.PageSize.WidthMM <= 0 || defaults.PageSize.HeightMM <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidPageSize,
			"page size must be positive, got %vx%v", defaults.PageSize.WidthMM, defaults.PageSize.HeightMM)
	}
	if _, err := layout.ParseScaling(string(defaults.Scaling)); err != nil {
		return nil, err
	}
	if _, err := layout.ParseHAlign(string(defaults.AlignH)); err != nil {
		return nil, err
	}
	if _, err := layout.ParseVAlign(string(defaults.AlignV)); err != nil {
		return nil, err
	}
	return &Resolver{defaults: defaults, overrides: overrides}, nil
}

// DPI returns the validated run-level DPI. Raster backends size their
// canvases with it.
func (r *Resolver) DPI() float64 {
	return r.defaults.DPI
}

// Resolve returns the effective settings for one image. Lookup is by
// exact basename match; any absent key falls back to the run default.
func (r *Resolver) Resolve(path string) layout.Settings {
	base := filepath.Base(path)
	d := r.defaults

	size := d.PageSize
	if s, ok := r.overrides.Sizes[base]; ok {
		size = s
	}
	margins := d.MarginMM
	if m, ok := r.overrides.Margins[base]; ok {
		margins = m
	}
	rotation := 0
	if deg, ok := r.overrides.Rotations[base]; ok {
		rotation = deg
	}

	return layout.Settings{
		PageWidthMM:  size.WidthMM,
		PageHeightMM: size.HeightMM,
		MarginsMM:    margins,
		RotationDeg:  rotation,
		Scaling:      d.Scaling,
		AlignH:       d.AlignH,
		AlignV:       d.AlignV,
		DPI:          d.DPI,
		Autorotate:   d.Autorotate,
		AutoOrient:   d.AutoOrient,
	}
}
