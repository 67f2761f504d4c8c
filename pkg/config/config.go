// Package config loads the tool configuration. Defaults are compiled in;
// a TOML file refines them and may add custom label sizes to the built-in
// table.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/scale"
)

// SizeConfig is a user-defined label size in the config file.
type SizeConfig struct {
	Name     string  `toml:"name"`
	WidthMM  float64 `toml:"width_mm"`
	HeightMM float64 `toml:"height_mm"`
}

// Config holds the resolved tool configuration.
type Config struct {
	OutputDir   string       `toml:"output_dir"`
	DPI         int          `toml:"dpi"`
	BleedMM     float64      `toml:"bleed_mm"`
	CatalogPath string       `toml:"catalog_path"`
	FontPath    string       `toml:"font_path"`
	Sizes       []SizeConfig `toml:"sizes"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		OutputDir:   "output",
		DPI:         600,
		BleedMM:     5,
		CatalogPath: "products.json",
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DPI < 72 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi %d below minimum 72", c.DPI)
	}
	if c.BleedMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "bleed %v mm is negative", c.BleedMM)
	}
	for _, s := range c.Sizes {
		if s.Name == "" || s.WidthMM <= 0 || s.HeightMM <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"custom size %q needs a name and positive dimensions", s.Name)
		}
	}
	return nil
}

// SizeTable returns the built-in size table followed by the custom sizes.
func (c Config) SizeTable() []scale.Size {
	out := scale.Table()
	for _, s := range c.Sizes {
		out = append(out, scale.Size{Name: s.Name, WidthMM: s.WidthMM, HeightMM: s.HeightMM})
	}
	return out
}

// LookupSize resolves a size name against the full table, custom sizes
// included.
func (c Config) LookupSize(name string) (scale.Size, error) {
	for _, s := range c.SizeTable() {
		if s.Name == name {
			return s, nil
		}
	}
	return scale.Size{}, errors.New(errors.ErrCodeInvalidSize, "unknown label size %q", name)
}
