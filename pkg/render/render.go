// Package render composes validated label records onto an output canvas.
//
// The layout is a single downward pass with a cursor: header, identifier
// barcode row, lot/expiry barcode row, attribute table, safety block,
// contractor block. Every dimension is derived from one uniform scale
// factor, so the same record keeps its proportions across the whole size
// table.
package render

import (
	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/fonts"
	"github.com/valorem-chem/milabel/pkg/label"
	"github.com/valorem-chem/milabel/pkg/render/sink"
	"github.com/valorem-chem/milabel/pkg/scale"
	"github.com/valorem-chem/milabel/pkg/units"
)

// Format selects the output backend.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Defaults applied by Render when the corresponding option is zero.
const (
	DefaultDPI     = 600
	DefaultBleedMM = 5
)

// Options configures a single render.
type Options struct {
	Size    scale.Size
	DPI     int     // defaults to DefaultDPI
	BleedMM float64 // print bleed per side; zero means none, negative means DefaultBleedMM
	Format  Format  // defaults to FormatPNG

	// Fonts overrides the font set, mainly for tests. When nil the set is
	// resolved from the host via FontPath.
	Fonts    *fonts.Set
	FontPath string
}

// Render draws a record at the given size and returns the encoded output.
// Validation has already happened in label.Build; errors here are encode
// failures, and no partial output is returned on error.
func Render(rec *label.Record, opts Options) ([]byte, error) {
	if rec == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil record")
	}
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	if opts.DPI < 72 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dpi %d below minimum 72", opts.DPI)
	}
	if opts.BleedMM < 0 {
		opts.BleedMM = DefaultBleedMM
	}
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	if opts.Size.WidthMM <= 0 || opts.Size.HeightMM <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize, "label size %q has no dimensions", opts.Size.Name)
	}

	m := scale.Resolve(opts.Size, opts.DPI)

	fs := opts.Fonts
	if fs == nil {
		var err error
		fs, err = fonts.Load(m, opts.FontPath)
		if err != nil {
			return nil, err
		}
	}

	totalW := units.ToPixels(opts.Size.WidthMM+2*opts.BleedMM, opts.DPI)
	totalH := units.ToPixels(opts.Size.HeightMM+2*opts.BleedMM, opts.DPI)

	var canvas sink.Canvas
	switch opts.Format {
	case FormatPNG:
		canvas = sink.NewRaster(totalW, totalH, opts.DPI)
	case FormatSVG:
		canvas = sink.NewVector(totalW, totalH, opts.DPI)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown output format %q", opts.Format)
	}

	if err := Compose(rec, opts.Size, m, opts.BleedMM, canvas, fs); err != nil {
		return nil, err
	}
	return canvas.Encode()
}
