package config

import (
	"fmt"

	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/session"
)

// Config holds the complete application configuration
type Config struct {
	Version  string        `yaml:"version" json:"version"`
	Data     DataConfig    `yaml:"data" json:"data"`
	Plot     PlotConfig    `yaml:"plot" json:"plot"`
	Hotspots HotspotConfig `yaml:"hotspots" json:"hotspots"`
	UI       UIConfig      `yaml:"ui" json:"ui"`
	Server   ServerConfig  `yaml:"server" json:"server"`
	Output   OutputConfig  `yaml:"output" json:"output"`
}

// DataConfig configures where points come from
type DataConfig struct {
	Path            string `yaml:"path" json:"path"`                         // CSV file
	DimensionPrefix string `yaml:"dimension_prefix" json:"dimension_prefix"` // columns treated as dimensions
	Watch           bool   `yaml:"watch" json:"watch"`                       // reload on change
}

// PlotConfig places the plot in screen units
type PlotConfig struct {
	Left      float64 `yaml:"left" json:"left"`
	Top       float64 `yaml:"top" json:"top"`
	Size      float64 `yaml:"size" json:"size"`
	HitRadius float64 `yaml:"hit_radius" json:"hit_radius"` // hover tolerance
	PointSize float64 `yaml:"point_size" json:"point_size"` // drawn diameter
}

// HotspotConfig configures clustering and zoom
type HotspotConfig struct {
	Threshold      float64 `yaml:"threshold" json:"threshold"`
	ThresholdMin   float64 `yaml:"threshold_min" json:"threshold_min"`
	ThresholdMax   float64 `yaml:"threshold_max" json:"threshold_max"`
	ThresholdStep  float64 `yaml:"threshold_step" json:"threshold_step"`
	MinClusterSize int     `yaml:"min_cluster_size" json:"min_cluster_size"`
	ZoomPadding    float64 `yaml:"zoom_padding" json:"zoom_padding"`
}

// UIConfig configures the terminal explorer
type UIConfig struct {
	Theme         string  `yaml:"theme" json:"theme"`             // default|high-contrast|minimal
	CellWidth     float64 `yaml:"cell_width" json:"cell_width"`   // screen units per terminal column
	CellHeight    float64 `yaml:"cell_height" json:"cell_height"` // screen units per terminal row
	GridTextLines int     `yaml:"grid_text_lines" json:"grid_text_lines"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address string `yaml:"address" json:"address"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|csv|markdown|svg
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	LogFile       string `yaml:"log_file" json:"log_file"` // TUI log destination, empty discards
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Data: DataConfig{
			DimensionPrefix: "d",
		},
		Plot: PlotConfig{
			Left:      100,
			Top:       100,
			Size:      600,
			HitRadius: 6,
			PointSize: 5,
		},
		Hotspots: HotspotConfig{
			Threshold:      40,
			ThresholdMin:   20,
			ThresholdMax:   80,
			ThresholdStep:  5,
			MinClusterSize: 10,
			ZoomPadding:    0.1,
		},
		UI: UIConfig{
			Theme:         "default",
			CellWidth:     8,
			CellHeight:    16,
			GridTextLines: 4,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
		},
	}
}

// SessionOptions converts the plot and hotspot sections into session options.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Screen:         projection.ScreenRect{Left: c.Plot.Left, Top: c.Plot.Top, Size: c.Plot.Size},
		Threshold:      c.Hotspots.Threshold,
		ThresholdMin:   c.Hotspots.ThresholdMin,
		ThresholdMax:   c.Hotspots.ThresholdMax,
		ThresholdStep:  c.Hotspots.ThresholdStep,
		MinClusterSize: c.Hotspots.MinClusterSize,
		HitRadius:      c.Plot.HitRadius,
		ZoomPadding:    c.Hotspots.ZoomPadding,
	}
}

// IsVerbose lets a Config act as the logger's verbosity source
func (c *Config) IsVerbose() bool {
	return c != nil && c.Output.Verbose
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateDataConfig(); err != nil {
		return err
	}
	if err := c.validatePlotConfig(); err != nil {
		return err
	}
	if err := c.SessionOptions().Validate(); err != nil {
		return fmt.Errorf("hotspots: %w", err)
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateDataConfig validates data-related configuration
func (c *Config) validateDataConfig() error {
	if c.Data.DimensionPrefix == "" {
		return fmt.Errorf("dimension_prefix must not be empty")
	}
	return nil
}

// validatePlotConfig validates plot geometry
func (c *Config) validatePlotConfig() error {
	if c.Plot.Size <= 0 {
		return fmt.Errorf("plot size must be greater than 0")
	}
	if c.Plot.Left < 0 || c.Plot.Top < 0 {
		return fmt.Errorf("plot left and top must be non-negative")
	}
	if c.Plot.HitRadius <= 0 {
		return fmt.Errorf("hit_radius must be greater than 0")
	}
	if c.Plot.PointSize <= 0 {
		return fmt.Errorf("point_size must be greater than 0")
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.CellWidth <= 0 || c.UI.CellHeight <= 0 {
		return fmt.Errorf("cell_width and cell_height must be greater than 0")
	}
	if c.UI.GridTextLines < 1 {
		return fmt.Errorf("grid_text_lines must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
			"svg":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, csv, markdown, svg)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
