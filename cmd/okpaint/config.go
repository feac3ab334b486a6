package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/coords"
	"github.com/benoitkugler/okpaint/painting"
	"github.com/benoitkugler/okpaint/svgpath"
	"github.com/pelletier/go-toml/v2"
)

type axisConfig struct {
	Min     float64 `toml:"min"`
	Max     float64 `toml:"max"`
	Log     bool    `toml:"log"`
	Reverse bool    `toml:"reverse"`
}

type frameConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type precisionConfig struct {
	Round  bool `toml:"round"`
	Digits int  `toml:"digits"`
}

type paintingConfig struct {
	SplitOnStyleChange bool   `toml:"split_on_style_change"`
	ErrorMode          string `toml:"error_mode"`
	NDC                bool   `toml:"ndc"`
}

// config is the content of the TOML configuration file.
type config struct {
	Format      string  `toml:"format"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	OutputDir   string  `toml:"output_dir"`
	Concurrency int     `toml:"concurrency"`

	Frame     frameConfig     `toml:"frame"`
	XAxis     axisConfig      `toml:"x_axis"`
	YAxis     axisConfig      `toml:"y_axis"`
	Precision precisionConfig `toml:"precision"`
	Painting  paintingConfig  `toml:"painting"`

	// Palette overrides ROOT color indices, with
	// names or hexadecimal values.
	Palette map[string]string `toml:"palette"`
}

func defaultConfig() config {
	return config{
		Format:      "svg",
		Width:       800,
		Height:      600,
		OutputDir:   ".",
		Concurrency: runtime.NumCPU(),
		XAxis:       axisConfig{Min: 0, Max: 1},
		YAxis:       axisConfig{Min: 0, Max: 1},
		Painting:    paintingConfig{ErrorMode: painting.WarnErrorMode.String()},
	}
}

// loadConfig reads `filename` over the default values.
// An empty filename returns the defaults.
func loadConfig(filename string) (config, error) {
	cfg := defaultConfig()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration %s: %w", filename, err)
	}
	return cfg, cfg.validate()
}

func (cfg config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid pad size %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.Concurrency <= 0 {
		return fmt.Errorf("invalid concurrency %d", cfg.Concurrency)
	}
	if _, err := painting.ParseErrorMode(cfg.Painting.ErrorMode); err != nil {
		return err
	}
	_, err := cfg.palette()
	return err
}

func (a axisConfig) axis() coords.Axis {
	return coords.Axis{Min: a.Min, Max: a.Max, Log: a.Log, Reverse: a.Reverse}
}

func (cfg config) mapper() *coords.Mapper {
	return &coords.Mapper{
		X:      cfg.XAxis.axis(),
		Y:      cfg.YAxis.axis(),
		Width:  cfg.Width,
		Height: cfg.Height,
		Frame:  coords.Rect(cfg.Frame),
	}
}

func (cfg config) precision() svgpath.Precision {
	return svgpath.Precision{Round: cfg.Precision.Round, Digits: cfg.Precision.Digits}
}

func (cfg config) paintingOptions() (painting.Options, error) {
	opts := painting.DefaultOptions()
	mode, err := painting.ParseErrorMode(cfg.Painting.ErrorMode)
	if err != nil {
		return opts, err
	}
	opts.ErrorMode = mode
	opts.SplitOnStyleChange = cfg.Painting.SplitOnStyleChange
	opts.NDC = cfg.Painting.NDC
	return opts, nil
}

// palette returns the ROOT palette with the overrides applied.
func (cfg config) palette() (*attr.Palette, error) {
	pal := attr.DefaultPalette()
	for key, value := range cfg.Palette {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid palette index %q", key)
		}
		if err := pal.SetNamed(index, value); err != nil {
			return nil, fmt.Errorf("palette index %d: %w", index, err)
		}
	}
	return pal, nil
}
