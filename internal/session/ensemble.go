package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/metrics"
)

// Builder constructs a fresh demo for one seed.
type Builder func(seed int64) (demos.Demo, error)

// Ensemble runs the same demo under consecutive seeds in parallel.
// Each run gets its own demo and metric instances.
type Ensemble struct {
	build     Builder
	metrics   func() []metrics.Metric
	numRuns   int
	seedStart int64
	log       *slog.Logger
}

func NewEnsemble(build Builder, newMetrics func() []metrics.Metric, numRuns int, seedStart int64, log *slog.Logger) *Ensemble {
	return &Ensemble{
		build:     build,
		metrics:   newMetrics,
		numRuns:   numRuns,
		seedStart: seedStart,
		log:       log,
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			d, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			r := New(d, e.log)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Mean averages one metric across results.
func Mean(results []*Result, name string) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Metrics[name]
	}
	return sum / float64(len(results))
}
