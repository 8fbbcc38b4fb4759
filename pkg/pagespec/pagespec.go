// Package pagespec resolves per-image layout settings.
//
// # Overview
//
// The layout engine wants one fully resolved [layout.Settings] per
// image. This package produces it by merging, in priority order:
//
//  1. Per-image overrides keyed by basename (page size, margins,
//     rotation), supplied as CSV mapping files or inline strings
//  2. Run-level defaults from command flags
//  3. The user's TOML configuration file
//  4. Built-in defaults (A4, 300 DPI, 10mm margins, fit, centered)
//
// # Mapping format
//
// Mapping sources accept either a path to a CSV file or an inline
// comma-separated string. Each entry is "basename:value" (a comma also
// separates key from value in CSV lines). Files may contain blank lines
// and # comments. Parsing is permissive: a line that fails to parse is
// skipped and the default stays in effect for that key; a malformed
// value in a required run-level setting is fatal.
//
// # Values
//
//   - Page sizes: a named size (A3, A4, A5, LETTER) or WIDTHxHEIGHT in
//     millimetres ("210x297")
//   - Margins: 1, 2 or 4 numbers in millimetres ("10", "8x12",
//     "8x12x8x12"), expanded to (top, right, bottom, left)
//   - Rotation: degrees, a multiple of 90, reduced modulo 360
package pagespec

import (
	"strconv"
	"strings"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
)

// Named page sizes in millimetres (width, height).
var namedSizes = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {216, 279},
}

// Size is a page size in millimetres.
type Size struct {
	WidthMM  float64
	HeightMM float64
}

// ParseSize parses a named page size or a WIDTHxHEIGHT value in mm.
func ParseSize(s string) (Size, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return Size{}, errors.New(errors.ErrCodeInvalidPageSize, "empty page size")
	}
	if wh, ok := namedSizes[v]; ok {
		return Size{WidthMM: wh[0], HeightMM: wh[1]}, nil
	}
	parts := strings.Split(v, "X")
	if len(parts) == 2 {
		w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return Size{WidthMM: w, HeightMM: h}, nil
		}
		return Size{}, errors.New(errors.ErrCodeInvalidPageSize, "invalid page size numbers: %q", s)
	}
	return Size{}, errors.New(errors.ErrCodeInvalidPageSize, "unknown page size: %q", s)
}

// ParseMargins parses a margin value of 1, 2 or 4 numbers in mm,
// separated by 'x' or ','. Expansion: one value applies to all sides;
// two values are (vertical, horizontal); four are used verbatim as
// (top, right, bottom, left). All values must be finite and
// non-negative.
func ParseMargins(s string) (layout.Margins, error) {
	raw := strings.TrimSpace(s)
	var parts []string
	switch {
	case strings.ContainsAny(raw, "xX"):
		parts = strings.FieldsFunc(raw, func(r rune) bool { return r == 'x' || r == 'X' })
	case strings.Contains(raw, ","):
		parts = strings.Split(raw, ",")
	default:
		parts = []string{raw}
	}

	vals := make([]float64, 0, 4)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return layout.Margins{}, errors.New(errors.ErrCodeInvalidMargins, "invalid margin number: %q", p)
		}
		vals = append(vals, v)
	}

	switch len(vals) {
	case 1:
		return layout.Uniform(vals[0]), nil
	case 2:
		return layout.Margins{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 4:
		return layout.Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return layout.Margins{}, errors.New(errors.ErrCodeInvalidMargins,
		"margins must be 1, 2 or 4 numbers (mm), got %d", len(vals))
}

// ParseRotation parses a rotation override in degrees. Only multiples
// of 90 are accepted; the result is reduced to 0, 90, 180 or 270.
func ParseRotation(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidRotation, "invalid rotation value: %q", s)
	}
	if v%90 != 0 {
		return 0, errors.New(errors.ErrCodeInvalidRotation, "rotation must be a multiple of 90: %d", v)
	}
	v %= 360
	if v < 0 {
		v += 360
	}
	return v, nil
}
