package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/fonts"
	"github.com/valorem-chem/milabel/pkg/units"
)

// vectorCanvas accumulates SVG elements in draw order.
type vectorCanvas struct {
	body     bytes.Buffer
	widthPx  int
	heightPx int
	dpi      int
	err      error
}

// NewVector creates a white vector canvas of the given pixel size. The
// output declares its physical size in millimeters with a pixel viewBox, so
// one user unit equals one pixel at the requested resolution.
func NewVector(widthPx, heightPx, dpi int) Canvas {
	v := &vectorCanvas{widthPx: widthPx, heightPx: heightPx, dpi: dpi}
	v.FillRect(0, 0, float64(widthPx), float64(heightPx), White)
	return v
}

func (v *vectorCanvas) Size() (int, int) { return v.widthPx, v.heightPx }
func (v *vectorCanvas) DPI() int         { return v.dpi }

func (v *vectorCanvas) FillRect(x, y, w, h float64, c color.Color) {
	fmt.Fprintf(&v.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		f2(x), f2(y), f2(w), f2(h), hex(c))
}

func (v *vectorCanvas) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	fmt.Fprintf(&v.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		f2(x), f2(y), f2(w), f2(h), hex(c), f2(lineWidth))
}

func (v *vectorCanvas) Line(x1, y1, x2, y2, lineWidth float64, c color.Color) {
	fmt.Fprintf(&v.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		f2(x1), f2(y1), f2(x2), f2(y2), hex(c), f2(lineWidth))
}

func (v *vectorCanvas) DashedLine(x1, y1, x2, y2, lineWidth float64, dashes []float64, c color.Color) {
	parts := make([]string, len(dashes))
	for i, d := range dashes {
		parts[i] = f2(d)
	}
	fmt.Fprintf(&v.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-dasharray="%s"/>`+"\n",
		f2(x1), f2(y1), f2(x2), f2(y2), hex(c), f2(lineWidth), strings.Join(parts, " "))
}

func (v *vectorCanvas) Text(s string, x, baseline float64, style fonts.Style, c color.Color) {
	weight := ""
	if style.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&v.body, `  <text x="%s" y="%s" font-family="%s" font-size="%d"%s fill="%s">%s</text>`+"\n",
		f2(x), f2(baseline), escape(style.Family), style.SizePx, weight, hex(c), escape(s))
}

func (v *vectorCanvas) PasteBitmap(im image.Image, x, y int) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, im); err != nil {
		if v.err == nil {
			v.err = errors.Wrap(errors.ErrCodeInternal, err, "encoding embedded bitmap")
		}
		return
	}
	b := im.Bounds()
	// Pixelated rendering keeps barcode module edges sharp when the SVG is
	// scaled by a viewer.
	fmt.Fprintf(&v.body, `  <image x="%d" y="%d" width="%d" height="%d" style="image-rendering:pixelated" href="data:image/png;base64,%s"/>`+"\n",
		x, y, b.Dx(), b.Dy(), base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (v *vectorCanvas) Encode() ([]byte, error) {
	if v.err != nil {
		return nil, v.err
	}

	widthMM := float64(v.widthPx) * units.MMPerInch / float64(v.dpi)
	heightMM := float64(v.heightPx) * units.MMPerInch / float64(v.dpi)

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%smm" height="%smm" viewBox="0 0 %d %d">`+"\n",
		f2(widthMM), f2(heightMM), v.widthPx, v.heightPx)
	out.Write(v.body.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes(), nil
}

// f2 formats a coordinate with two decimal places.
func f2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// hex formats a color as an SVG hex triplet.
func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
