// Package scale maps physical label sizes to a uniform scale factor and the
// resolved font and symbol metrics for a render.
//
// A single clamped factor drives every font size and barcode height on the
// label. Per-field scale tuning is deliberately impossible: inconsistent
// scaling is the classic source of overlapping fields, so the policy is
// enforced by construction rather than by review.
package scale

import (
	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/units"
)

// Size is a named physical label size.
type Size struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// Reference is the baseline size the scale factor is computed against:
// 4"x6", the default thermal label stock.
var Reference = Size{Name: `4"x6"`, WidthMM: 101.6, HeightMM: 152.4}

// Scale factor bounds. Below 0.4 the body fonts drop under the legibility
// floor and the Code 39 quiet zone collapses; above 1.5 the barcode rows
// outgrow their anchor grid.
const (
	MinFactor = 0.4
	MaxFactor = 1.5
)

// table is the built-in size table, ordered small to large.
var table = []Size{
	{Name: `2"x1"`, WidthMM: 50.8, HeightMM: 25.4},
	{Name: `3"x2"`, WidthMM: 76.2, HeightMM: 50.8},
	{Name: `4"x2"`, WidthMM: 101.6, HeightMM: 50.8},
	{Name: `4"x3"`, WidthMM: 101.6, HeightMM: 76.2},
	{Name: `4"x4"`, WidthMM: 101.6, HeightMM: 101.6},
	{Name: `4"x6"`, WidthMM: 101.6, HeightMM: 152.4},
	{Name: "A6", WidthMM: 105, HeightMM: 148},
	{Name: "A5", WidthMM: 148, HeightMM: 210},
	{Name: "A4", WidthMM: 210, HeightMM: 297},
}

// Table returns the built-in size table in a stable small-to-large order.
func Table() []Size {
	out := make([]Size, len(table))
	copy(out, table)
	return out
}

// Lookup finds a built-in size by name.
func Lookup(name string) (Size, error) {
	for _, s := range table {
		if s.Name == name {
			return s, nil
		}
	}
	return Size{}, errors.New(errors.ErrCodeInvalidSize, "unknown label size %q", name)
}

// Factor computes the uniform scale factor for a size against [Reference],
// clamped to [MinFactor, MaxFactor].
func Factor(s Size) float64 {
	return FactorAgainst(s, Reference)
}

// FactorAgainst computes the clamped scale factor for a size against an
// explicit reference.
func FactorAgainst(s, ref Size) float64 {
	f := min(s.WidthMM/ref.WidthMM, s.HeightMM/ref.HeightMM)
	if f < MinFactor {
		return MinFactor
	}
	if f > MaxFactor {
		return MaxFactor
	}
	return f
}

// Base font sizes in points at scale 1.0, one per text role.
const (
	baseLargePt  = 18 // product name
	baseHeaderPt = 12 // primary identifier
	baseDataPt   = 10 // field values
	baseBodyPt   = 9  // general text
	baseSmallPt  = 7  // field labels
	baseTinyPt   = 6  // badge captions
)

// Base symbol dimensions in millimeters at scale 1.0.
const (
	baseBarcodeHeightMM = 15 // linear barcode bar height
	baseMatrixSideMM    = 20 // data matrix side
)

// minFontPx is the pixel floor for any resolved font size.
const minFontPx = 4

// Metrics holds every resolved dimension for one render: the scale factor,
// the pixel font size per role, and the symbol dimensions. All values are
// derived through pkg/units so rounding stays consistent across the label.
type Metrics struct {
	Factor float64
	DPI    int

	// Font pixel sizes per role.
	LargePx  int
	HeaderPx int
	DataPx   int
	BodyPx   int
	SmallPx  int
	TinyPx   int

	// Symbol dimensions.
	BarcodeHeightPx int
	MatrixSidePx    int
}

// Resolve computes the metrics for a size at the given resolution.
func Resolve(s Size, dpi int) Metrics {
	f := Factor(s)

	fontPx := func(pt float64) int {
		px := units.PointsToPixels(pt*f, dpi)
		if px < minFontPx {
			px = minFontPx
		}
		return px
	}

	return Metrics{
		Factor:          f,
		DPI:             dpi,
		LargePx:         fontPx(baseLargePt),
		HeaderPx:        fontPx(baseHeaderPt),
		DataPx:          fontPx(baseDataPt),
		BodyPx:          fontPx(baseBodyPt),
		SmallPx:         fontPx(baseSmallPt),
		TinyPx:          fontPx(baseTinyPt),
		BarcodeHeightPx: units.ToPixels(baseBarcodeHeightMM*f, dpi),
		MatrixSidePx:    units.ToPixels(baseMatrixSideMM*f, dpi),
	}
}
