package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/analogstick/internal/logger"
	"github.com/san-kum/analogstick/internal/stick"
)

const (
	DefaultOuterRadius = 60.0
	DefaultInnerRadius = 30.0
	DefaultTapArea     = 250.0
	DefaultFPS         = 60
	DefaultHistory     = 120
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultSpeed       = 120.0
)

type Config struct {
	Stick StickConfig   `yaml:"stick"`
	Log   logger.Config `yaml:"log"`
	TUI   TUIConfig     `yaml:"tui"`
	GUI   GUIConfig     `yaml:"gui"`
	Drive DriveConfig   `yaml:"drive"`
}

type StickConfig struct {
	OuterRadius float64 `yaml:"outer_radius"`
	InnerRadius float64 `yaml:"inner_radius"`
	// TapArea is the half-size of the square hit area around the centre.
	TapArea float64 `yaml:"tap_area"`
}

type TUIConfig struct {
	FPS     int `yaml:"fps"`
	History int `yaml:"history"`
}

type GUIConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type DriveConfig struct {
	Speed float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Stick: StickConfig{
			OuterRadius: DefaultOuterRadius,
			InnerRadius: DefaultInnerRadius,
			TapArea:     DefaultTapArea,
		},
		Log: logger.DefaultConfig(),
		TUI: TUIConfig{
			FPS:     DefaultFPS,
			History: DefaultHistory,
		},
		GUI: GUIConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Drive: DriveConfig{Speed: DefaultSpeed},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path over a copy of base, so a file can refine a preset.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOver(data, base)
}

func Parse(data []byte) (*Config, error) {
	return ParseOver(data, DefaultConfig())
}

// ParseOver decodes data over a copy of base and validates the result.
// Keys missing from data keep base's values; base itself is not modified.
func ParseOver(data []byte, base *Config) (*Config, error) {
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the stick geometry and frame settings.
// Geometry errors wrap stick.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := stick.ValidateRadii(c.Stick.OuterRadius, c.Stick.InnerRadius); err != nil {
		return err
	}
	if c.Stick.TapArea < c.Stick.OuterRadius {
		return fmt.Errorf("%w: tap_area %v must cover outer_radius %v",
			stick.ErrInvalidConfiguration, c.Stick.TapArea, c.Stick.OuterRadius)
	}
	if c.TUI.FPS <= 0 || c.GUI.FPS <= 0 {
		return fmt.Errorf("fps must be positive")
	}
	if c.TUI.History < 0 {
		return fmt.Errorf("history must not be negative")
	}
	if c.Drive.Speed < 0 {
		return fmt.Errorf("drive speed must not be negative")
	}
	return nil
}

// NewController builds a stick controller from the stick section.
func (c *Config) NewController(opts ...stick.Option) (*stick.Controller, error) {
	return stick.New(c.Stick.OuterRadius, c.Stick.InnerRadius, opts...)
}
