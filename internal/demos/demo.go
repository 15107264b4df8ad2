package demos

import (
	"fmt"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/swarm"
)

// Element ids used by the demo pages.
const (
	GLCanvasID     = "wasm_canvas"
	StressCanvasID = "my_Canvas"
	TextCanvasID   = "my_canvas3"
	ClearCanvasID  = "my_canvas4"
)

type Kind int

const (
	OneShot Kind = iota
	Animated
)

func (k Kind) String() string {
	if k == Animated {
		return "animated"
	}
	return "one-shot"
}

type CanvasSpec struct {
	ID     string
	Width  int
	Height int
}

type Demo interface {
	Name() string
	Canvases() []CanvasSpec
	Setup(doc *canvas.Document) error
}

// Animator is a demo with a per-frame callback. ts is the frame
// timestamp in milliseconds.
type Animator interface {
	Demo
	Frame(ts float64) error
}

// Populated reports an entity count for statistics.
type Populated interface {
	Population() int
}

// SwarmSource exposes the stress demo's entities for export.
type SwarmSource interface {
	Swarm() *swarm.Swarm
}

// Params configures demo construction.
type Params struct {
	Width  int
	Height int
	Seed   int64

	LineMode      string
	PopulationCap int
	BoundaryTop   float32
	SpawnTop      float32
	TimeScaled    bool
}

func DefaultParams() Params {
	return Params{
		Width:         800,
		Height:        600,
		Seed:          1,
		LineMode:      "LINES",
		PopulationCap: swarm.DefaultCap,
		BoundaryTop:   swarm.DefaultTop,
		SpawnTop:      swarm.DefaultSpawnTop,
	}
}

// SetupError reports a demo that failed before its first frame.
type SetupError struct {
	Demo  string
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("demo %s: %s: %v", e.Demo, e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

func setupErr(demo, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &SetupError{Demo: demo, Stage: stage, Err: err}
}

// NewPage builds a document holding the canvases d asks for.
func NewPage(d Demo) (*canvas.Document, error) {
	doc := canvas.NewDocument()
	for _, c := range d.Canvases() {
		if _, err := doc.AddCanvas(c.ID, c.Width, c.Height); err != nil {
			return nil, setupErr(d.Name(), "page", err)
		}
	}
	return doc, nil
}
