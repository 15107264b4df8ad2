// Package session drives a demo through its frames and records what
// happened on each one.
package session

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/frame"
	"github.com/san-kum/glcanvas/internal/metrics"
)

// Observer sees every completed frame together with the page it drew on.
type Observer interface {
	OnFrame(s frame.Sample, doc *canvas.Document) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s frame.Sample, doc *canvas.Document) error

func (f ObserverFunc) OnFrame(s frame.Sample, doc *canvas.Document) error { return f(s, doc) }

type Config struct {
	Frames         int
	FPS            float64
	Realtime       bool
	MaxFrameErrors int
}

type Result struct {
	Demo     string
	Kind     demos.Kind
	Samples  []frame.Sample
	Metrics  map[string]float64
	Frames   int
	Failures int
	Snapshot image.Image
}

type Runner struct {
	demo      demos.Demo
	metrics   []metrics.Metric
	observers []Observer
	log       *slog.Logger
}

func New(d demos.Demo, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		demo:      d,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %f", cfg.FPS)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if cfg.Frames == 0 && !cfg.Realtime {
		return fmt.Errorf("an unbounded run needs realtime pacing")
	}
	if cfg.MaxFrameErrors < 0 {
		return fmt.Errorf("max frame errors must not be negative, got %d", cfg.MaxFrameErrors)
	}
	return nil
}

// Start builds the demo's page and runs its setup. One-shot demos are
// complete when Start returns; animated ones advance with Session.Tick.
func (r *Runner) Start(cfg Config) (*Session, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	doc, err := demos.NewPage(r.demo)
	if err != nil {
		return nil, err
	}
	if err := r.demo.Setup(doc); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := &Session{
		runner:  r,
		doc:     doc,
		samples: make([]frame.Sample, 0, cfg.Frames),
	}

	anim, ok := r.demo.(demos.Animator)
	if !ok {
		s.done = true
		if err := s.record(0, 0); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.anim = anim
	s.loop = frame.NewLoop(s.step,
		frame.WithLogger(r.log.With("demo", r.demo.Name())),
		frame.WithMaxFrames(cfg.Frames),
		frame.WithMaxErrors(cfg.MaxFrameErrors),
	)
	return s, nil
}

// Run starts the demo and, for animated demos, drives it with a
// synthetic clock or the wall clock until cfg.Frames have run. A
// cancelled run still returns what it recorded.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	s, err := r.Start(cfg)
	if err != nil {
		return nil, err
	}
	if s.Done() {
		return s.Result(), nil
	}

	var sched frame.Scheduler
	if cfg.Realtime {
		t, err := frame.NewTicker(cfg.FPS)
		if err != nil {
			return nil, err
		}
		defer t.Close()
		sched = t
	} else {
		c, err := frame.NewClock(cfg.FPS)
		if err != nil {
			return nil, err
		}
		sched = c
	}

	r.log.Debug("run started", "demo", r.demo.Name(), "frames", cfg.Frames, "fps", cfg.FPS, "realtime", cfg.Realtime)
	err = s.loop.Run(ctx, sched)
	res := s.Result()
	r.log.Debug("run finished", "demo", r.demo.Name(), "frames", res.Frames, "failures", res.Failures)
	return res, err
}

// Session is a started demo. It is not safe for concurrent use.
type Session struct {
	runner  *Runner
	doc     *canvas.Document
	anim    demos.Animator
	loop    *frame.Loop
	timer   frame.Timer
	samples []frame.Sample
	done    bool
}

func (s *Session) Document() *canvas.Document { return s.doc }
func (s *Session) Demo() demos.Demo           { return s.runner.demo }

// Done reports whether no further frame will run.
func (s *Session) Done() bool {
	return s.done || s.loop == nil || s.loop.Stopped()
}

// Stop ends an animated session after the frame in progress.
func (s *Session) Stop() {
	if s.loop != nil {
		s.loop.Stop()
	}
}

// Tick runs one frame stamped ts in milliseconds.
func (s *Session) Tick(ts float64) (frame.Control, error) {
	if s.loop == nil {
		return frame.Stop, nil
	}
	return s.loop.Tick(ts)
}

// Latest returns the most recent recorded frame.
func (s *Session) Latest() (frame.Sample, bool) {
	if len(s.samples) == 0 {
		return frame.Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

func (s *Session) Samples() []frame.Sample { return s.samples }

func (s *Session) step(ts float64) (frame.Control, error) {
	if err := s.anim.Frame(ts); err != nil {
		s.timer.Tick(ts)
		return frame.Continue, err
	}
	return frame.Continue, s.record(ts, s.timer.Tick(ts))
}

func (s *Session) record(ts, dt float64) error {
	pop := 0
	if p, ok := s.runner.demo.(demos.Populated); ok {
		pop = p.Population()
	}
	smp := frame.NewSample(len(s.samples), ts, dt, pop)
	s.samples = append(s.samples, smp)

	for _, m := range s.runner.metrics {
		m.Observe(smp)
	}
	for _, o := range s.runner.observers {
		if err := o.OnFrame(smp, s.doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) Result() *Result {
	res := &Result{
		Demo:    s.runner.demo.Name(),
		Kind:    demos.OneShot,
		Samples: s.samples,
		Metrics: make(map[string]float64),
		Frames:  len(s.samples),
	}
	if s.loop != nil {
		res.Kind = demos.Animated
		res.Frames = s.loop.Frames()
		res.Failures = s.loop.Failures()
	}
	for _, m := range s.runner.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Snapshot = s.doc.Snapshot()
	return res
}
