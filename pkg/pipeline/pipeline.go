// Package pipeline provides the core conversion pipeline for Pagebind.
//
// This package implements the complete probe → layout → render pipeline
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Probe: read each input image's dimensions and EXIF orientation
//  2. Layout: compute one page plan entry per image (page size, content
//     box, placement rectangle, net rotation)
//  3. Render: feed the plan through a backend (streaming or raster)
//     to produce the PDF
//
// The plan is computed in full before any rendering starts, so errors
// surface before a partial document is written, and the same plan can
// be inspected without rendering at all.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "./scans",
//	    Sorted:  true,
//	    Backend: pipeline.BackendStream,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.pdf", result.Output, 0644)
//
// Plan without rendering:
//
//	plan, err := runner.Plan(ctx, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pagebind/pagebind/pkg/layout"
	"github.com/pagebind/pagebind/pkg/pagespec"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBackend is the rendering backend used when none is chosen.
	DefaultBackend = BackendStream

	// TTLProbe is how long probed image properties stay cached. Keyed
	// by content hash, so entries never go stale; the TTL only bounds
	// disk usage.
	TTLProbe = 30 * 24 * time.Hour

	// TTLRender is how long finished documents stay cached.
	TTLRender = 7 * 24 * time.Hour
)

// Rendering backend names.
const (
	BackendStream = "stream"
	BackendRaster = "raster"
)

// ValidBackends is the set of supported rendering backends.
var ValidBackends = map[string]bool{
	BackendStream: true,
	BackendRaster: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline.
// This struct supports JSON serialization for API requests. String
// fields use the same syntax as the CLI flags; empty fields fall back
// to Base (or the built-in defaults when Base is nil).
type Options struct {
	// Input selection
	Input  string `json:"input"`            // directory, file, or comma-separated list
	Sorted bool   `json:"sorted,omitempty"` // sort directory listings by name

	// Run-level layout settings
	PageSize   string  `json:"page_size,omitempty"` // named size or WIDTHxHEIGHT in mm
	DPI        float64 `json:"dpi,omitempty"`
	Margin     string  `json:"margin,omitempty"` // 1, 2 or 4 numbers in mm
	Scaling    string  `json:"scaling,omitempty"`
	AlignH     string  `json:"align_h,omitempty"`
	AlignV     string  `json:"align_v,omitempty"`
	Autorotate bool    `json:"autorotate,omitempty"`
	AutoOrient bool    `json:"auto_orient,omitempty"`

	// Per-image overrides: mapping files or inline "name:value" lists
	Sizes     string `json:"sizes,omitempty"`
	Margins   string `json:"margins,omitempty"`
	Rotations string `json:"rotations,omitempty"`

	// Render options
	Backend string `json:"backend,omitempty"`

	// Refresh bypasses cached probe and render results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Base   *pagespec.Defaults `json:"-"` // settings base, e.g. from the config file
	Logger *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the computed page plan, one entry per input image.
	Plan []layout.Entry

	// Output is the finished PDF.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	PageCount  int
	PlanTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per pipeline stage.
type CacheInfo struct {
	ProbeHits int  // images whose intrinsics came from cache
	RenderHit bool // whole document came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateBackend checks that a backend name is valid.
func ValidateBackend(backend string) error {
	if !ValidBackends[backend] {
		return fmt.Errorf("invalid backend: %q (must be one of: stream, raster)", backend)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if err := ValidateBackend(o.Backend); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Resolver builds the per-image settings resolver from the options.
// Base settings come from o.Base (or the built-ins), string fields
// override them, and the mapping fields populate per-image overrides.
func (o *Options) Resolver() (*pagespec.Resolver, error) {
	base := pagespec.BuiltinDefaults()
	if o.Base != nil {
		base = *o.Base
	}

	if o.PageSize != "" {
		size, err := pagespec.ParseSize(o.PageSize)
		if err != nil {
			return nil, err
		}
		base.PageSize = size
	}
	if o.DPI != 0 {
		base.DPI = o.DPI
	}
	if o.Margin != "" {
		margins, err := pagespec.ParseMargins(o.Margin)
		if err != nil {
			return nil, err
		}
		base.MarginMM = margins
	}
	if o.Scaling != "" {
		scaling, err := layout.ParseScaling(o.Scaling)
		if err != nil {
			return nil, err
		}
		base.Scaling = scaling
	}
	if o.AlignH != "" {
		alignH, err := layout.ParseHAlign(o.AlignH)
		if err != nil {
			return nil, err
		}
		base.AlignH = alignH
	}
	if o.AlignV != "" {
		alignV, err := layout.ParseVAlign(o.AlignV)
		if err != nil {
			return nil, err
		}
		base.AlignV = alignV
	}
	if o.Autorotate {
		base.Autorotate = true
	}
	if o.AutoOrient {
		base.AutoOrient = true
	}

	sizes, err := pagespec.ParseMapping(o.Sizes, pagespec.ParseSize)
	if err != nil {
		return nil, err
	}
	margins, err := pagespec.ParseMapping(o.Margins, pagespec.ParseMargins)
	if err != nil {
		return nil, err
	}
	rotations, err := pagespec.ParseMapping(o.Rotations, pagespec.ParseRotation)
	if err != nil {
		return nil, err
	}

	return pagespec.NewResolver(base, pagespec.Overrides{
		Sizes:     sizes,
		Margins:   margins,
		Rotations: rotations,
	})
}
