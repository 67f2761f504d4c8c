package sink

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/valorem-chem/milabel/pkg/fonts"
)

func testStyle() fonts.Style {
	return fonts.Style{Face: basicfont.Face7x13, SizePx: 13, Family: "fixed"}
}

func drawSample(c Canvas) {
	c.FillRect(10, 10, 40, 20, Black)
	c.StrokeRect(5, 5, 90, 50, 2, Black)
	c.Line(0, 30, 100, 30, 1, Black)
	c.DashedLine(0, 40, 100, 40, 1, []float64{4, 2}, Black)
	c.Text("660357879", 12, 25, testStyle(), Black)

	bm := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range bm.Pix {
		if i%2 == 0 {
			bm.Pix[i] = 255
		}
	}
	c.PasteBitmap(bm, 60, 10)
}

func TestRasterEncodeValidPNG(t *testing.T) {
	c := NewRaster(100, 60, 600)
	drawSample(c)

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not decodable png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 60 {
		t.Errorf("decoded size = %v, want 100x60", b)
	}
}

func TestRasterEmbedsResolution(t *testing.T) {
	c := NewRaster(10, 10, 600)
	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// The pHYs chunk sits directly after IHDR.
	chunk := data[pngHeaderLen:]
	if got := string(chunk[4:8]); got != "pHYs" {
		t.Fatalf("chunk after IHDR is %q, want pHYs", got)
	}
	// 600 dpi is 23622 pixels per meter.
	if ppm := binary.BigEndian.Uint32(chunk[8:12]); ppm != 23622 {
		t.Errorf("x resolution = %d ppm, want 23622", ppm)
	}
	if ppm := binary.BigEndian.Uint32(chunk[12:16]); ppm != 23622 {
		t.Errorf("y resolution = %d ppm, want 23622", ppm)
	}
	if unit := chunk[16]; unit != 1 {
		t.Errorf("unit = %d, want 1 (meter)", unit)
	}

	// Splicing must not break decoding.
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("png with pHYs chunk is not decodable: %v", err)
	}
}

func TestRasterBackgroundIsWhite(t *testing.T) {
	c := NewRaster(20, 20, 300)
	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("background pixel = %v %v %v, want white", r, g, b)
	}
}

func TestRasterDeterministic(t *testing.T) {
	render := func() []byte {
		c := NewRaster(100, 60, 600)
		drawSample(c)
		data, err := c.Encode()
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		return data
	}

	if !bytes.Equal(render(), render()) {
		t.Error("identical draw sequences produced different png bytes")
	}
}

func TestVectorStructure(t *testing.T) {
	c := NewVector(2362, 1181, 600)
	drawSample(c)

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	svg := string(data)

	// 2362px at 600 dpi is 99.99mm, 1181px rounds to 50.00mm.
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="99.99mm" height="50.00mm" viewBox="0 0 2362 1181">`) {
		t.Errorf("unexpected svg header: %.120s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}

	for _, want := range []string{
		`<rect `,
		`stroke-dasharray="4.00 2.00"`,
		`<text x="12.00" y="25.00" font-family="fixed" font-size="13" fill="#000000">660357879</text>`,
		`data:image/png;base64,`,
		`image-rendering:pixelated`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestVectorEscapesText(t *testing.T) {
	c := NewVector(100, 100, 300)
	c.Text(`<Oil & "Grease">`, 0, 10, testStyle(), Black)

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "&lt;Oil &amp; &quot;Grease&quot;&gt;") {
		t.Errorf("text not escaped: %s", svg)
	}
	if strings.Contains(svg, `<Oil`) {
		t.Error("raw markup leaked into svg")
	}
}

func TestVectorDeterministic(t *testing.T) {
	render := func() []byte {
		c := NewVector(200, 100, 300)
		drawSample(c)
		data, err := c.Encode()
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		return data
	}

	if !bytes.Equal(render(), render()) {
		t.Error("identical draw sequences produced different svg bytes")
	}
}

func TestVectorBoldWeight(t *testing.T) {
	c := NewVector(100, 100, 300)
	bold := testStyle()
	bold.Bold = true
	c.Text("NSN", 0, 10, bold, Black)

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `font-weight="bold"`) {
		t.Error("bold style not reflected in svg")
	}
}
