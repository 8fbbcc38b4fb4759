// Package units converts between the three length systems the layout
// pipeline touches: physical millimetres, device pixels (meaningful only
// at a given DPI), and the abstract layout unit used everywhere inside
// the engine.
//
// One layout unit is one typesetting point (1/72 inch). Vector backends
// can consume layout units directly; raster backends convert to pixels
// at their own DPI boundary. The layout engine itself never sees either
// backend vocabulary.
//
// All functions are pure and total over finite, non-negative inputs.
// Callers are responsible for rejecting dpi <= 0 before converting; the
// settings resolver enforces this at the configuration boundary.
package units

import "math"

// PointsPerInch is the number of layout units (points) per inch.
const PointsPerInch = 72.0

// MMPerInch is the number of millimetres per inch.
const MMPerInch = 25.4

// MMToLayout converts millimetres to layout units.
func MMToLayout(mm float64) float64 {
	return mm / MMPerInch * PointsPerInch
}

// LayoutToMM converts layout units to millimetres.
func LayoutToMM(u float64) float64 {
	return u / PointsPerInch * MMPerInch
}

// MMToPixels converts millimetres to whole device pixels at the given DPI.
// The result is rounded to the nearest pixel.
func MMToPixels(mm, dpi float64) int {
	return int(math.Round(mm / MMPerInch * dpi))
}

// PixelsToLayout converts a device pixel length to layout units at the
// given DPI.
func PixelsToLayout(px, dpi float64) float64 {
	return px / dpi * PointsPerInch
}

// LayoutToPixels converts layout units to whole device pixels at the
// given DPI. The result is rounded to the nearest pixel.
func LayoutToPixels(u, dpi float64) int {
	return int(math.Round(u / PointsPerInch * dpi))
}
