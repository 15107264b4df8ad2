package config

import "sort"

var Presets = map[string]map[string]*Config{
	"cube_rotate": {
		"preview": {
			Demo: "cube_rotate", Width: 320, Height: 240, Frames: 120, FPS: 30,
			Format: FormatGIF, CaptureEvery: 2,
		},
		"hd": {
			Demo: "cube_rotate", Width: 1280, Height: 720, Frames: 600, FPS: 60,
			Format: FormatPNG, CaptureEvery: 60,
		},
	},
	"triangle_rotate": {
		"preview": {
			Demo: "triangle_rotate", Width: 320, Height: 240, Frames: 120, FPS: 30,
			Format: FormatGIF, CaptureEvery: 2,
		},
	},
	"canvas_stress": {
		"ramp": {
			Demo: "canvas_stress", Width: 800, Height: 600, Frames: 600, FPS: 60,
			Format: FormatNone,
			Params: DemoParams{PopulationCap: 5000, BoundaryTop: 250, SpawnTop: 300},
		},
		"saturate": {
			Demo: "canvas_stress", Width: 800, Height: 600, Frames: 5400, FPS: 60,
			Format: FormatWebP, CaptureEvery: 600,
			Params: DemoParams{PopulationCap: 5000, BoundaryTop: 250, SpawnTop: 300},
		},
		"smooth": {
			Demo: "canvas_stress", Width: 800, Height: 600, Frames: 600, FPS: 30,
			Format: FormatNone,
			Params: DemoParams{PopulationCap: 1000, BoundaryTop: 250, SpawnTop: 300, TimeScaled: true},
		},
	},
	"draw_line": {
		"strip": {
			Demo: "draw_line", Width: 400, Height: 400, Frames: 1, FPS: 60,
			Format: FormatPNG, CaptureEvery: 1,
			Params: DemoParams{LineMode: "LINE_STRIP"},
		},
		"loop": {
			Demo: "draw_line", Width: 400, Height: 400, Frames: 1, FPS: 60,
			Format: FormatPNG, CaptureEvery: 1,
			Params: DemoParams{LineMode: "LINE_LOOP"},
		},
		"fan": {
			Demo: "draw_line", Width: 400, Height: 400, Frames: 1, FPS: 60,
			Format: FormatPNG, CaptureEvery: 1,
			Params: DemoParams{LineMode: "TRIANGLE_FAN"},
		},
	},
}

func GetPreset(demo, preset string) *Config {
	demoPresets, ok := Presets[demo]
	if !ok {
		return nil
	}
	cfg, ok := demoPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(demo string) []string {
	demoPresets, ok := Presets[demo]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(demoPresets))
	for name := range demoPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
