package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/valorem-chem/milabel/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "milabel.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "output" || cfg.DPI != 600 || cfg.BleedMM != 5 || cfg.CatalogPath != "products.json" {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.Sizes) != 0 {
		t.Errorf("default custom sizes = %v, want none", cfg.Sizes)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
dpi = 300
output_dir = "/srv/labels"
catalog_path = "/etc/milabel/products.json"

[[sizes]]
name = "drum"
width_mm = 120
height_mm = 90
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.DPI)
	}
	if cfg.OutputDir != "/srv/labels" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	// Unset keys keep their defaults.
	if cfg.BleedMM != 5 {
		t.Errorf("BleedMM = %v, want default 5", cfg.BleedMM)
	}

	s, err := cfg.LookupSize("drum")
	if err != nil {
		t.Fatalf("LookupSize(drum): %v", err)
	}
	if s.WidthMM != 120 || s.HeightMM != 90 {
		t.Errorf("drum = %vx%v, want 120x90", s.WidthMM, s.HeightMM)
	}
}

func TestLoadKeepsBuiltinSizes(t *testing.T) {
	cfg := Default()
	if _, err := cfg.LookupSize("A5"); err != nil {
		t.Errorf("built-in A5 not resolvable: %v", err)
	}
	if _, err := cfg.LookupSize("letter"); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("unknown size error = %v, want INVALID_SIZE", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "dpi below floor", content: "dpi = 30"},
		{name: "negative bleed", content: "bleed_mm = -1"},
		{name: "nameless size", content: "[[sizes]]\nwidth_mm = 100\nheight_mm = 100"},
		{name: "zero dimension size", content: `[[sizes]]` + "\n" + `name = "bad"` + "\nwidth_mm = 0\nheight_mm = 50"},
		{name: "broken toml", content: "dpi = ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing file error = %v, want INVALID_CONFIG", err)
	}
}
