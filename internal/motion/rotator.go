// Package motion advances the model transform of the rotating demos.
package motion

import "github.com/san-kum/glcanvas/internal/gfx"

// AxisRate is an angular speed about one axis in radians per millisecond.
type AxisRate struct {
	Axis gfx.Axis
	Rate float32
}

// Rates applied each frame, in order.
var (
	CubeRates = []AxisRate{
		{Axis: gfx.AxisZ, Rate: 0.005},
		{Axis: gfx.AxisY, Rate: 0.002},
		{Axis: gfx.AxisX, Rate: 0.003},
	}
	TriangleRates = []AxisRate{
		{Axis: gfx.AxisZ, Rate: 0.002},
	}
)

// Rotator accumulates rotation into a model matrix in proportion to
// elapsed time, so the spin speed does not depend on the frame rate.
type Rotator struct {
	Model gfx.Mat4
	rates []AxisRate
}

func NewRotator(rates []AxisRate) *Rotator {
	r := make([]AxisRate, len(rates))
	copy(r, rates)
	return &Rotator{Model: gfx.Identity(), rates: r}
}

// Advance applies one rotation per configured axis, each by dt*rate,
// in the configured order. dt is in milliseconds.
func (r *Rotator) Advance(dt float64) {
	for _, ar := range r.rates {
		r.Model.Rotate(ar.Axis, float32(dt)*ar.Rate)
	}
}

func (r *Rotator) Rates() []AxisRate {
	out := make([]AxisRate, len(r.rates))
	copy(out, r.rates)
	return out
}

func (r *Rotator) Reset() { r.Model = gfx.Identity() }
