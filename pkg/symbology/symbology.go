// Package symbology encodes label payloads into machine-readable symbols.
//
// Three symbologies are supported:
//   - Code 128: alphanumeric, continuous, self-checking. Carries the lot
//     identifier and the 6-digit expiry date.
//   - Code 39: restricted alphabet, discrete. Carries the 9-digit secondary
//     identifier. No checksum character by default; the downstream
//     verification equipment does not expect one.
//   - Data Matrix (ECC 200): carries the grouped identifier payload with
//     0x1D group separators.
//
// Symbol generation is delegated to github.com/boombuler/barcode; this
// package owns payload validation, quiet zones, and the resize policy.
// Encoders return the symbol at one pixel per module; scaling to the page
// goes through [ScaleLinear] or [ScaleMatrix], never ad hoc resampling.
package symbology

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/boombuler/barcode"

	"github.com/valorem-chem/milabel/pkg/errors"
)

// defaultQuietZone is the default blank margin on each side of a symbol, in
// module multiples. Code 39 readers need at least ten narrow elements of
// quiet zone; Code 128 tolerates less but gets the same default.
const defaultQuietZone = 10

// matrixQuietZone is the quiet zone around a Data Matrix symbol in modules.
const matrixQuietZone = 2

// Bitmap is an encoded symbol at one pixel per module, including its quiet
// zone. Modules gives the intrinsic symbol grid excluding the quiet zone.
type Bitmap struct {
	img      image.Image
	modW     int
	modH     int
	quiet    int
	discrete bool
}

// Image returns the symbol pixels (white background, black modules).
func (b *Bitmap) Image() image.Image { return b.img }

// Modules returns the intrinsic module grid of the symbol, excluding the
// quiet zone.
func (b *Bitmap) Modules() (w, h int) { return b.modW, b.modH }

// QuietZone returns the quiet zone width in modules.
func (b *Bitmap) QuietZone() int { return b.quiet }

// Option configures an encoder.
type Option func(*options)

type options struct {
	quietZone int
	checksum  bool
}

// WithQuietZone sets the quiet zone width in module multiples.
func WithQuietZone(modules int) Option {
	return func(o *options) { o.quietZone = modules }
}

// WithChecksum enables the optional Code 39 checksum character. It is off
// by default and must stay off for fixed-length numeric payloads.
func WithChecksum() Option {
	return func(o *options) { o.checksum = true }
}

func buildOptions(opts []Option) options {
	o := options{quietZone: defaultQuietZone}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// frame composes an encoded symbol onto a white background with the given
// quiet zone. Linear symbols get horizontal margins only; matrix symbols
// get margins on all four sides.
func frame(bc barcode.Barcode, quiet int, matrix bool) *Bitmap {
	b := bc.Bounds()
	w, h := b.Dx(), b.Dy()

	marginY := 0
	if matrix {
		marginY = quiet
	}
	out := image.NewGray(image.Rect(0, 0, w+2*quiet, h+2*marginY))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(quiet, marginY, quiet+w, marginY+h), bc, b.Min, draw.Src)

	return &Bitmap{img: out, modW: w, modH: h, quiet: quiet, discrete: !matrix}
}

// encodeErr wraps a library encode failure as a typed encoding error.
func encodeErr(err error, kind, payload string) error {
	return errors.Wrap(errors.ErrCodeEncodeFailed, err, "%s encode of %q failed", kind, payload)
}
