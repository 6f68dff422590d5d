// Package config handles texset configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Assets  AssetsConfig  `yaml:"assets"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig holds the content-scale divisors applied to pixel coordinates.
type ContentConfig struct {
	HiResScale   float32 `yaml:"hires_scale"`   // divisor for atlas map coordinates
	CurrentScale float32 `yaml:"current_scale"` // divisor for standalone image sizes
}

// HiResContentScale returns the divisor used for atlas map files.
func (c ContentConfig) HiResContentScale() float32 {
	return c.HiResScale
}

// CurrentContentScale returns the divisor used for standalone images.
func (c ContentConfig) CurrentContentScale() float32 {
	return c.CurrentScale
}

// AssetsConfig holds resource lookup settings.
type AssetsConfig struct {
	Roots      []string `yaml:"roots"`       // search directories, last wins; empty reads paths as given
	Encoding   string   `yaml:"encoding"`    // charset of list and map files, empty for UTF-8
	MagentaKey bool     `yaml:"magenta_key"` // make magenta pixels transparent on load
	MapExt     string   `yaml:"map_ext"`     // map file extension for directory texture sets
}

// ViewerConfig holds texview window settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			HiResScale:   1,
			CurrentScale: 1,
		},
		Assets: AssetsConfig{
			MapExt: ".txt",
		},
		Viewer: ViewerConfig{
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that would make texture set construction fail.
func (c *Config) Validate() error {
	if !(c.Content.HiResScale > 0) {
		return fmt.Errorf("%w: content.hires_scale must be positive, got %v", ErrInvalidConfig, c.Content.HiResScale)
	}
	if !(c.Content.CurrentScale > 0) {
		return fmt.Errorf("%w: content.current_scale must be positive, got %v", ErrInvalidConfig, c.Content.CurrentScale)
	}
	if c.Assets.MapExt == "" || c.Assets.MapExt[0] != '.' {
		return fmt.Errorf("%w: assets.map_ext must start with '.', got %q", ErrInvalidConfig, c.Assets.MapExt)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer size must be positive, got %dx%d", ErrInvalidConfig, c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}
