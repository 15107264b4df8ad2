package automation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/glcanvas/internal/config"
	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/metrics"
	"github.com/san-kum/glcanvas/internal/session"
)

// sweepParams maps a sweepable name onto the config field it sets.
var sweepParams = map[string]func(*config.Config, float64){
	"width":          func(c *config.Config, v float64) { c.Width = int(v) },
	"height":         func(c *config.Config, v float64) { c.Height = int(v) },
	"fps":            func(c *config.Config, v float64) { c.FPS = v },
	"population_cap": func(c *config.Config, v float64) { c.Params.PopulationCap = int(v) },
	"boundary_top":   func(c *config.Config, v float64) { c.Params.BoundaryTop = v },
	"spawn_top":      func(c *config.Config, v float64) { c.Params.SpawnTop = v },
}

// SweepParams lists the names ParameterSweep accepts.
func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs one demo for each value of a single parameter.
type ParameterSweep struct {
	Base   config.Config
	Param  string
	Values []float64
}

type SweepResult struct {
	Value    float64
	Frames   int
	Failures int
	Metrics  map[string]float64
}

// RunSweep runs every value in order without storing the runs.
func RunSweep(ctx context.Context, sweep *ParameterSweep, log *slog.Logger) ([]SweepResult, error) {
	if log == nil {
		log = slog.Default()
	}
	set, ok := sweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("cannot sweep %q (available: %v)", sweep.Param, SweepParams())
	}

	reg := demos.NewRegistry()
	results := make([]SweepResult, 0, len(sweep.Values))

	for i, v := range sweep.Values {
		cfg := sweep.Base
		set(&cfg, v)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		d, err := reg.Get(cfg.Demo, Params(&cfg))
		if err != nil {
			return results, err
		}

		r := session.New(d, log)
		for _, m := range metrics.Defaults(cfg.FPS) {
			r.AddMetric(m)
		}

		res, err := r.Run(ctx, session.Config{
			Frames:         cfg.Frames,
			FPS:            cfg.FPS,
			Realtime:       cfg.Realtime,
			MaxFrameErrors: cfg.MaxFrameErrors,
		})
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		results = append(results, SweepResult{
			Value:    v,
			Frames:   res.Frames,
			Failures: res.Failures,
			Metrics:  res.Metrics,
		})

		log.Debug("sweep point", "step", i+1, "of", len(sweep.Values), sweep.Param, v)
	}

	return results, nil
}
