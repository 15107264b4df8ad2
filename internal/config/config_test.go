package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Demo != "cube_rotate" {
		t.Errorf("expected demo cube_rotate, got %s", cfg.Demo)
	}
	if cfg.Params.PopulationCap != 5000 {
		t.Errorf("expected population cap 5000, got %d", cfg.Params.PopulationCap)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative frames", func(c *Config) { c.Frames = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad format", func(c *Config) { c.Format = "bmp" }},
		{"negative capture", func(c *Config) { c.CaptureEvery = -2 }},
		{"negative errors", func(c *Config) { c.MaxFrameErrors = -1 }},
		{"negative cap", func(c *Config) { c.Params.PopulationCap = -1 }},
		{"spawn above boundary", func(c *Config) { c.Params.SpawnTop = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.apply(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("demo: canvas_stress\nframes: 42\nparams:\n  time_scaled: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Demo != "canvas_stress" || cfg.Frames != 42 || !cfg.Params.TimeScaled {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Width != DefaultWidth || cfg.Params.SpawnTop != DefaultSpawnTop {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Demo = "draw_line"
	cfg.Params.LineMode = "LINE_LOOP"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("canvas_stress", "smooth")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Params.TimeScaled {
		t.Error("expected time scaled preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("cube_rotate", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "preview"); cfg != nil {
		t.Error("expected nil for nonexistent demo")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("draw_line")
	if len(presets) != 3 || presets[0] != "fan" {
		t.Errorf("unexpected presets: %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent demo")
	}
}

func TestOverlay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overlay(GetPreset("draw_line", "loop"))

	if cfg.Demo != "draw_line" || cfg.Params.LineMode != "LINE_LOOP" || cfg.Frames != 1 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.Params.PopulationCap != DefaultPopulationCap || cfg.MaxFrameErrors != DefaultMaxFrameErrors {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for demo, presets := range Presets {
		for name, p := range presets {
			cfg := DefaultConfig()
			cfg.Overlay(p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", demo, name, err)
			}
			if cfg.Demo != demo {
				t.Errorf("%s/%s names demo %s", demo, name, cfg.Demo)
			}
		}
	}
}

func TestReadOverridesKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("frames: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	o, err := ReadOverrides(path)
	if err != nil {
		t.Fatalf("ReadOverrides: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Overlay(GetPreset("cube_rotate", "preview"))
	cfg.Overlay(o)

	if cfg.Frames != 7 {
		t.Errorf("expected frames 7 from file, got %d", cfg.Frames)
	}
	if cfg.Width != 320 || cfg.Format != FormatGIF {
		t.Errorf("preset values lost: %+v", cfg)
	}
}
