package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDemo           = "cube_rotate"
	DefaultWidth          = 800
	DefaultHeight         = 600
	DefaultFrames         = 300
	DefaultFPS            = 60.0
	DefaultFormat         = "png"
	DefaultCaptureEvery   = 30
	DefaultMaxFrameErrors = 3
	DefaultLineMode       = "LINES"
	DefaultPopulationCap  = 5000
	DefaultBoundaryTop    = 250.0
	DefaultSpawnTop       = 300.0
)

// Capture formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
	FormatGIF  = "gif"
	FormatNone = "none"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Demo           string     `yaml:"demo"`
	Width          int        `yaml:"width"`
	Height         int        `yaml:"height"`
	Frames         int        `yaml:"frames"`
	FPS            float64    `yaml:"fps"`
	Seed           int64      `yaml:"seed"`
	Format         string     `yaml:"format"`
	CaptureEvery   int        `yaml:"capture_every"`
	Realtime       bool       `yaml:"realtime"`
	MaxFrameErrors int        `yaml:"max_frame_errors"`
	Params         DemoParams `yaml:"params"`
}

type DemoParams struct {
	LineMode      string  `yaml:"line_mode"`
	PopulationCap int     `yaml:"population_cap"`
	BoundaryTop   float64 `yaml:"boundary_top"`
	SpawnTop      float64 `yaml:"spawn_top"`
	TimeScaled    bool    `yaml:"time_scaled"`
}

func DefaultConfig() *Config {
	return &Config{
		Demo:           DefaultDemo,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Frames:         DefaultFrames,
		FPS:            DefaultFPS,
		Seed:           1,
		Format:         DefaultFormat,
		CaptureEvery:   DefaultCaptureEvery,
		MaxFrameErrors: DefaultMaxFrameErrors,
		Params: DemoParams{
			LineMode:      DefaultLineMode,
			PopulationCap: DefaultPopulationCap,
			BoundaryTop:   DefaultBoundaryTop,
			SpawnTop:      DefaultSpawnTop,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadOverrides reads a config file without filling defaults, so only
// the keys present in the file are non-zero. Use it with Overlay.
func ReadOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %g", ErrInvalid, c.FPS)
	case c.CaptureEvery < 0:
		return fmt.Errorf("%w: capture_every %d", ErrInvalid, c.CaptureEvery)
	case c.MaxFrameErrors < 0:
		return fmt.Errorf("%w: max_frame_errors %d", ErrInvalid, c.MaxFrameErrors)
	case c.Params.PopulationCap < 0:
		return fmt.Errorf("%w: population_cap %d", ErrInvalid, c.Params.PopulationCap)
	case c.Params.SpawnTop < c.Params.BoundaryTop:
		return fmt.Errorf("%w: spawn_top %g above boundary_top %g", ErrInvalid, c.Params.SpawnTop, c.Params.BoundaryTop)
	}
	switch c.Format {
	case FormatPNG, FormatWebP, FormatGIF, FormatNone:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	return nil
}

// Overlay copies every non-zero field of o onto c. Boolean fields are
// only ever switched on.
func (c *Config) Overlay(o *Config) {
	if o.Demo != "" {
		c.Demo = o.Demo
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Frames != 0 {
		c.Frames = o.Frames
	}
	if o.FPS != 0 {
		c.FPS = o.FPS
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.CaptureEvery != 0 {
		c.CaptureEvery = o.CaptureEvery
	}
	if o.MaxFrameErrors != 0 {
		c.MaxFrameErrors = o.MaxFrameErrors
	}
	c.Realtime = c.Realtime || o.Realtime

	p := o.Params
	if p.LineMode != "" {
		c.Params.LineMode = p.LineMode
	}
	if p.PopulationCap != 0 {
		c.Params.PopulationCap = p.PopulationCap
	}
	if p.BoundaryTop != 0 {
		c.Params.BoundaryTop = p.BoundaryTop
	}
	if p.SpawnTop != 0 {
		c.Params.SpawnTop = p.SpawnTop
	}
	c.Params.TimeScaled = c.Params.TimeScaled || p.TimeScaled
}
