package sink

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/fogleman/gg"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/fonts"
)

// rasterCanvas draws into a pixel buffer and encodes PNG.
type rasterCanvas struct {
	dc  *gg.Context
	dpi int
}

// NewRaster creates a white raster canvas of the given pixel size.
func NewRaster(widthPx, heightPx, dpi int) Canvas {
	dc := gg.NewContext(widthPx, heightPx)
	dc.SetColor(White)
	dc.Clear()
	return &rasterCanvas{dc: dc, dpi: dpi}
}

func (r *rasterCanvas) Size() (int, int) { return r.dc.Width(), r.dc.Height() }
func (r *rasterCanvas) DPI() int         { return r.dpi }

func (r *rasterCanvas) FillRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *rasterCanvas) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Stroke()
}

func (r *rasterCanvas) Line(x1, y1, x2, y2, lineWidth float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *rasterCanvas) DashedLine(x1, y1, x2, y2, lineWidth float64, dashes []float64, c color.Color) {
	r.dc.SetDash(dashes...)
	r.Line(x1, y1, x2, y2, lineWidth, c)
	r.dc.SetDash()
}

func (r *rasterCanvas) Text(s string, x, baseline float64, style fonts.Style, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetFontFace(style.Face)
	r.dc.DrawString(s, x, baseline)
}

func (r *rasterCanvas) PasteBitmap(im image.Image, x, y int) {
	r.dc.DrawImage(im, x, y)
}

func (r *rasterCanvas) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.dc.Image()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding png")
	}
	out, err := spliceDPI(buf.Bytes(), r.dpi)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// pngHeaderLen is the fixed prefix of every PNG file: the 8-byte signature
// plus the 25-byte IHDR chunk. The pHYs chunk must appear before IDAT, so
// it is inserted directly after IHDR.
const pngHeaderLen = 8 + 4 + 4 + 13 + 4

// spliceDPI inserts a pHYs chunk carrying the physical resolution. The
// stdlib encoder never writes one, and without it print drivers fall back
// to 72 dpi and mis-size the label.
func spliceDPI(data []byte, dpi int) ([]byte, error) {
	if len(data) < pngHeaderLen {
		return nil, errors.New(errors.ErrCodeInternal, "png output shorter than its header")
	}

	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	chunk := make([]byte, 0, 21)
	chunk = append(chunk, 0, 0, 0, 9)
	chunk = append(chunk, 'p', 'H', 'Y', 's')
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit: meter
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:pngHeaderLen]...)
	out = append(out, chunk...)
	out = append(out, data[pngHeaderLen:]...)
	return out, nil
}
