package fonts

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/scale"
)

func TestStyleMetrics(t *testing.T) {
	s := Style{Face: basicfont.Face7x13, SizePx: 13, Family: "fixed"}

	// Face7x13 advances 7px per glyph.
	if got := s.Measure("hello"); got != 35 {
		t.Errorf("Measure(hello) = %d, want 35", got)
	}
	if got := s.Measure(""); got != 0 {
		t.Errorf("Measure(\"\") = %d, want 0", got)
	}
	if s.Ascent() <= 0 {
		t.Errorf("Ascent() = %d, want > 0", s.Ascent())
	}
	if s.Height() != s.Ascent()+s.Descent() {
		t.Errorf("Height() = %d, want ascent+descent %d", s.Height(), s.Ascent()+s.Descent())
	}
}

func TestLoadOverrideMissingFile(t *testing.T) {
	m := scale.Resolve(scale.Reference, 300)
	_, err := Load(m, "/nonexistent/font.ttf")
	if err == nil {
		t.Fatal("Load with missing override succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("error code = %v, want FONT_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadSystem(t *testing.T) {
	m := scale.Resolve(scale.Reference, 300)
	set, err := Load(m, "")
	if err != nil {
		if errors.Is(err, errors.ErrCodeFontNotFound) {
			t.Skip("no candidate font installed on this host")
		}
		t.Fatalf("Load: %v", err)
	}

	if set.Large.SizePx != m.LargePx {
		t.Errorf("Large.SizePx = %d, want %d", set.Large.SizePx, m.LargePx)
	}
	if !set.Large.Bold {
		t.Error("Large style is not bold")
	}
	if set.Data.Bold {
		t.Error("Data style is bold, want regular")
	}
	if set.Data.Face == nil {
		t.Fatal("Data style has no face")
	}
	if w := set.Data.Measure("660357879"); w <= 0 {
		t.Errorf("Measure returned %d, want > 0", w)
	}
}
