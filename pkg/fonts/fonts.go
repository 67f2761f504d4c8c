// Package fonts resolves the typefaces used on a label.
//
// Fonts are discovered on the host system rather than embedded: compliance
// print shops mandate specific typefaces per site, so the loader searches a
// candidate list and accepts an explicit override path. All faces are built
// at DPI 72 so a point equals a pixel and sizing stays in the render's pixel
// space.
package fonts

import (
	"os"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/scale"
)

// Candidate font file names, tried in order. DejaVu ships with most Linux
// print servers, Arial with Windows, Liberation is the metric-compatible
// substitute.
var (
	regularCandidates = []string{"DejaVuSans.ttf", "Arial.ttf", "arial.ttf", "LiberationSans-Regular.ttf"}
	boldCandidates    = []string{"DejaVuSans-Bold.ttf", "Arial-Bold.ttf", "arialbd.ttf", "LiberationSans-Bold.ttf"}
)

// Style is one resolved text role: a sized face plus the metadata the
// vector sink needs to reproduce it.
type Style struct {
	Face   font.Face
	SizePx int
	Family string
	Bold   bool
}

// Measure returns the advance width of text in pixels.
func (s Style) Measure(text string) int {
	return font.MeasureString(s.Face, text).Ceil()
}

// Ascent returns the distance from baseline to the top of the face in
// pixels.
func (s Style) Ascent() int {
	return s.Face.Metrics().Ascent.Ceil()
}

// Descent returns the distance from baseline to the bottom of the face in
// pixels.
func (s Style) Descent() int {
	return s.Face.Metrics().Descent.Ceil()
}

// Height returns the full line height of the face in pixels.
func (s Style) Height() int {
	return s.Ascent() + s.Descent()
}

// Set holds one Style per text role on the label.
type Set struct {
	Large  Style // product name
	Header Style // primary identifier line
	Data   Style // field values
	Body   Style // general text
	Small  Style // field captions
	Tiny   Style // badge captions
}

// Load resolves the font set for the given metrics. When overridePath is
// non-empty that file serves every role, bold and regular alike; otherwise
// the candidate lists are searched, with bold falling back to the regular
// face when no bold variant exists on the host.
func Load(m scale.Metrics, overridePath string) (*Set, error) {
	var regular, bold *parsedFont
	var err error

	if overridePath != "" {
		regular, err = parseFile(overridePath)
		if err != nil {
			return nil, err
		}
		bold = regular
	} else {
		regular, err = findFirst(regularCandidates)
		if err != nil {
			return nil, err
		}
		bold, err = findFirst(boldCandidates)
		if err != nil {
			// No bold variant installed. Regular is close enough for
			// scanning purposes; only the visual weight differs.
			bold = regular
		}
	}

	style := func(p *parsedFont, px int, isBold bool) Style {
		return Style{
			Face: truetype.NewFace(p.font, &truetype.Options{
				Size: float64(px),
				DPI:  72,
			}),
			SizePx: px,
			Family: p.family,
			Bold:   isBold,
		}
	}

	return &Set{
		Large:  style(bold, m.LargePx, true),
		Header: style(bold, m.HeaderPx, true),
		Data:   style(regular, m.DataPx, false),
		Body:   style(regular, m.BodyPx, false),
		Small:  style(regular, m.SmallPx, false),
		Tiny:   style(regular, m.TinyPx, false),
	}, nil
}

type parsedFont struct {
	font   *truetype.Font
	family string
}

func parseFile(path string) (*parsedFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "reading font file %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parsing font file %s", path)
	}
	family := f.Name(truetype.NameIDFontFamily)
	if family == "" {
		family = "sans-serif"
	}
	return &parsedFont{font: f, family: family}, nil
}

func findFirst(candidates []string) (*parsedFont, error) {
	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		p, err := parseFile(path)
		if err != nil {
			continue
		}
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeFontNotFound,
		"no usable font found among %v", candidates)
}
