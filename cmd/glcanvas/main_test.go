package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/glcanvas/internal/automation"
	"github.com/san-kum/glcanvas/internal/config"
)

func newTestCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	addRunFlags(cmd)
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("frames: 50\nwidth: 640\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCmd(t, "--preset", "preview", "--config", path, "--width", "100")
	cfg, err := resolveConfig(cmd, "cube_rotate")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Width != 100 {
		t.Errorf("flag should win, got width %d", cfg.Width)
	}
	if cfg.Frames != 50 {
		t.Errorf("config file should beat preset, got frames %d", cfg.Frames)
	}
	if cfg.Height != 240 || cfg.Format != config.FormatGIF {
		t.Errorf("preset values lost: %+v", cfg)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := newTestCmd(t, "--preset", "nope")
	if _, err := resolveConfig(cmd, "cube_rotate"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	cmd := newTestCmd(t, "--fps", "0")
	if _, err := resolveConfig(cmd, "cube_rotate"); err == nil {
		t.Error("expected validation error")
	}
}

func TestDemoParams(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Params.SpawnTop = 320
	p := automation.Params(cfg)
	if p.Width != cfg.Width || p.SpawnTop != 320 || p.PopulationCap != config.DefaultPopulationCap {
		t.Errorf("unexpected params %+v", p)
	}
}
