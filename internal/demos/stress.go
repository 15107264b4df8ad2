package demos

import (
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/frame"
	"github.com/san-kum/glcanvas/internal/swarm"
)

// painter is the part of the 2D context the stress demo draws with.
type painter interface {
	ClearRect(x, y, w, h float64)
	BeginPath()
	Arc(x, y, r, startAngle, endAngle float64)
	Fill() error
	SetFillStyle(style string) error
	SetFont(font string) error
	FillText(s string, x, y float64) error
}

// Stress animates a growing swarm of balls on a 2D canvas with a
// population and frame-rate readout.
type Stress struct {
	width  int
	height int
	opts   swarm.Options

	ctx   painter
	sw    *swarm.Swarm
	timer frame.Timer
}

func newStress(p Params) Demo {
	opts := swarm.DefaultOptions()
	opts.Cap = p.PopulationCap
	opts.Top = p.BoundaryTop
	opts.SpawnTop = p.SpawnTop
	opts.TimeScaled = p.TimeScaled
	opts.Rand = rand.New(rand.NewSource(p.Seed))
	return &Stress{width: p.Width, height: p.Height, opts: opts}
}

func (s *Stress) Name() string { return "canvas_stress" }

func (s *Stress) Canvases() []CanvasSpec {
	return []CanvasSpec{{ID: StressCanvasID, Width: s.width, Height: s.height}}
}

func (s *Stress) Setup(doc *canvas.Document) error {
	ctx, el, err := acquire2D(doc, StressCanvasID)
	if err != nil {
		return setupErr(s.Name(), "canvas", err)
	}
	sw, err := swarm.New(float32(el.Width), float32(el.Height), s.opts)
	if err != nil {
		return setupErr(s.Name(), "swarm", err)
	}
	s.ctx, s.sw = ctx, sw
	s.width, s.height = el.Width, el.Height
	s.timer = frame.Timer{}
	return nil
}

func (s *Stress) Population() int     { return s.sw.Len() }
func (s *Stress) Swarm() *swarm.Swarm { return s.sw }

// Frame clears the canvas, moves and draws every ball, prints the
// readout, then spawns one ball. A ball spawned here is first drawn
// after the next frame's update. The swarm advances a whole step even
// when drawing fails, so the population still tracks the frame count.
func (s *Stress) Frame(ts float64) error {
	s.ctx.ClearRect(0, 0, float64(s.width), float64(s.height))

	dt := s.timer.Tick(ts)
	fps, ok := frame.Rate(dt)

	s.sw.Update(dt)
	err := s.draw(fps, ok)
	s.sw.Grow()
	return err
}

func (s *Stress) draw(fps float64, ok bool) error {
	ctx := s.ctx
	if err := ctx.SetFillStyle(swarm.HUDColor); err != nil {
		return err
	}
	for _, b := range s.sw.Balls {
		ctx.BeginPath()
		ctx.Arc(float64(b.X), float64(b.Y), float64(swarm.Radius), 0, 2*math.Pi)
		if err := ctx.Fill(); err != nil {
			return err
		}
	}
	ctx.BeginPath()

	return errors.Join(
		ctx.SetFont(swarm.HUDFont),
		ctx.FillText(swarm.BallsLine(s.sw.Len()), swarm.HUDX, swarm.HUDLine1),
		ctx.FillText(swarm.RateLine(fps, ok), swarm.HUDX, swarm.HUDLine2),
	)
}
