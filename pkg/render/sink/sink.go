package sink

import (
	"image"
	"image/color"

	"github.com/valorem-chem/milabel/pkg/fonts"
)

// Canvas is the drawing surface the label composer targets. Coordinates are
// pixels with the origin at the top left; text is positioned by its
// baseline.
type Canvas interface {
	// Size returns the canvas dimensions in pixels.
	Size() (widthPx, heightPx int)

	// DPI returns the physical resolution the canvas was created for.
	DPI() int

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)

	// StrokeRect outlines an axis-aligned rectangle.
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)

	// Line draws a straight line segment.
	Line(x1, y1, x2, y2, lineWidth float64, c color.Color)

	// DashedLine draws a line segment with the given on/off dash pattern in
	// pixels.
	DashedLine(x1, y1, x2, y2, lineWidth float64, dashes []float64, c color.Color)

	// Text draws a string with its left edge at x and its baseline at y.
	Text(s string, x, baseline float64, style fonts.Style, c color.Color)

	// PasteBitmap places a pre-rendered bitmap with its top-left corner at
	// the given pixel position, without resampling.
	PasteBitmap(im image.Image, x, y int)

	// Encode finalizes the canvas into its output format.
	Encode() ([]byte, error)
}

// Standard label colors.
var (
	Black = color.Gray{Y: 0}
	White = color.Gray{Y: 255}
)
