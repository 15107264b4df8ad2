// Package metrics summarises per-frame samples of a run.
package metrics

import "github.com/san-kum/glcanvas/internal/frame"

type Metric interface {
	Name() string
	Observe(s frame.Sample)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run. target is the
// frame rate used by the stability metric.
func Defaults(target float64) []Metric {
	return []Metric{
		NewMeanFPS(),
		NewMinFPS(),
		NewStability(target),
		NewUndefinedFPS(),
		NewFinalPopulation(),
	}
}
