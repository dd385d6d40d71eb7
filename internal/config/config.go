// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. "127.0.0.1:8050".
	Addr string `koanf:"addr"`

	// DatasetPath is the launch dataset read once at startup (.csv, .tsv or .xlsx).
	DatasetPath string `koanf:"dataset_path"`

	// DatasetSheet names the worksheet read from .xlsx datasets. Empty means the first sheet.
	DatasetSheet string `koanf:"dataset_sheet"`

	// Title is the dashboard page heading.
	Title string `koanf:"title"`

	// SliderMin, SliderMax and SliderStep define the payload slider domain in kg.
	SliderMin  float64 `koanf:"slider_min"`
	SliderMax  float64 `koanf:"slider_max"`
	SliderStep float64 `koanf:"slider_step"`

	// ChartWidth and ChartHeight size rendered charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Addr:        "127.0.0.1:8050",
		DatasetPath: "spacex_launch_dash.csv",
		Title:       "SpaceX Launch Records Dashboard",
		SliderMin:   0,
		SliderMax:   10000,
		SliderStep:  1000,
		ChartWidth:  800,
		ChartHeight: 480,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DatasetPath == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case c.SliderMin >= c.SliderMax:
		return fmt.Errorf("%w: slider_min must be below slider_max", ErrInvalidConfig)
	case c.SliderStep <= 0:
		return fmt.Errorf("%w: slider_step must be positive", ErrInvalidConfig)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart dimensions must be positive", ErrInvalidConfig)
	}
	return nil
}
