// Package units converts physical lengths to device pixels.
//
// Every physical-to-pixel conversion in the module routes through this
// package. Computing scale factors anywhere else causes rounding drift that
// misaligns barcode quiet zones, so drawing code must never hand-compute
// pixel values from millimeters or points.
package units

import "math"

// MMPerInch is the number of millimeters in one inch.
const MMPerInch = 25.4

// pointsPerInch is the number of typographic points in one inch.
const pointsPerInch = 72

// ToPixels converts a length in millimeters to device pixels at the given
// resolution. The result is rounded to the nearest integer pixel, so
// ToPixels(25.4, dpi) == dpi holds exactly for any dpi.
func ToPixels(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / MMPerInch))
}

// PointsToPixels converts a font size in typographic points (1/72 inch) to
// device pixels at the given resolution.
func PointsToPixels(pt float64, dpi int) int {
	return int(math.Round(pt * float64(dpi) / pointsPerInch))
}
