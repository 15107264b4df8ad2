// Package automation records demo runs from scripted scenarios and
// parameter sweeps.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/glcanvas/internal/config"
	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/export"
	"github.com/san-kum/glcanvas/internal/metrics"
	"github.com/san-kum/glcanvas/internal/session"
	"github.com/san-kum/glcanvas/internal/storage"
	"github.com/san-kum/glcanvas/internal/swarm"
)

// Recorded is one stored run.
type Recorded struct {
	RunID  string
	Result *session.Result
	// Err is the error that ended the run early, if any. The run is
	// still stored.
	Err error
}

// Params converts the demo settings of cfg.
func Params(cfg *config.Config) demos.Params {
	return demos.Params{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Seed:          cfg.Seed,
		LineMode:      cfg.Params.LineMode,
		PopulationCap: cfg.Params.PopulationCap,
		BoundaryTop:   float32(cfg.Params.BoundaryTop),
		SpawnTop:      float32(cfg.Params.SpawnTop),
		TimeScaled:    cfg.Params.TimeScaled,
	}
}

// Record runs the demo cfg names and stores it: samples, captured
// frames, the final swarm as SVG when there is one, and the metrics.
// A setup failure returns an error; an interrupted or aborted run is
// stored and reported in Recorded.Err.
func Record(ctx context.Context, cfg *config.Config, store *storage.Store, log *slog.Logger) (*Recorded, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := demos.NewRegistry().Get(cfg.Demo, Params(cfg))
	if err != nil {
		return nil, err
	}

	if err := store.Init(); err != nil {
		return nil, err
	}
	run, err := store.Create(storage.MetadataFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	r := session.New(d, log)
	for _, m := range metrics.Defaults(cfg.FPS) {
		r.AddMetric(m)
	}
	r.AddObserver(run.Observer(cfg.CaptureEvery))

	result, runErr := r.Run(ctx, session.Config{
		Frames:         cfg.Frames,
		FPS:            cfg.FPS,
		Realtime:       cfg.Realtime,
		MaxFrameErrors: cfg.MaxFrameErrors,
	})
	if result == nil {
		return nil, errors.Join(runErr, run.Close())
	}

	if src, ok := d.(demos.SwarmSource); ok && src.Swarm() != nil {
		if err := run.WriteSVG(export.SwarmToSVG(src.Swarm(), swarm.HUDColor)); err != nil {
			log.Warn("swarm svg not written", "run", run.ID(), "err", err)
		}
	}

	if err := run.Finish(result.Frames, result.Failures, result.Metrics); err != nil {
		return nil, err
	}

	return &Recorded{RunID: run.ID(), Result: result, Err: runErr}, nil
}

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from the defaults, applies the named preset and
// then every key set on the step itself.
type ScenarioStep struct {
	Preset        string `yaml:"preset"`
	config.Config `yaml:",inline"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve builds the full config of a step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	if s.Demo == "" {
		return nil, fmt.Errorf("%w: step without demo", config.ErrInvalid)
	}
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p := config.GetPreset(s.Demo, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets(s.Demo))
		}
		cfg.Overlay(p)
	}
	step := s.Config
	cfg.Overlay(&step)
	return cfg, cfg.Validate()
}

// RunScenario records every step in order and stops at the first step
// that cannot be set up or is cancelled.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, log *slog.Logger) ([]*Recorded, error) {
	if log == nil {
		log = slog.Default()
	}
	results := make([]*Recorded, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "demo", cfg.Demo)

		rec, err := Record(ctx, cfg, store, log)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, rec)

		if errors.Is(rec.Err, context.Canceled) {
			return results, rec.Err
		}
	}

	return results, nil
}
