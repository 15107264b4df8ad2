package metrics

import (
	"math"

	"github.com/san-kum/glcanvas/internal/frame"
)

// MeanFPS averages the frame rate over frames where it is defined.
type MeanFPS struct {
	name    string
	sum     float64
	samples int
}

func NewMeanFPS() *MeanFPS {
	return &MeanFPS{name: "mean_fps"}
}

func (m *MeanFPS) Name() string {
	return m.name
}

func (m *MeanFPS) Observe(s frame.Sample) {
	if !s.FPSValid {
		return
	}
	m.sum += s.FPS
	m.samples++
}

func (m *MeanFPS) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanFPS) Reset() {
	m.sum = 0
	m.samples = 0
}

type MinFPS struct {
	name string
	min  float64
}

func NewMinFPS() *MinFPS {
	return &MinFPS{name: "min_fps", min: math.Inf(1)}
}

func (m *MinFPS) Name() string {
	return m.name
}

func (m *MinFPS) Observe(s frame.Sample) {
	if s.FPSValid && s.FPS < m.min {
		m.min = s.FPS
	}
}

func (m *MinFPS) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinFPS) Reset() {
	m.min = math.Inf(1)
}

// Stability is the fraction of defined frames that kept up with the
// target rate, within 5%.
type Stability struct {
	name    string
	target  float64
	slow    int
	samples int
}

func NewStability(target float64) *Stability {
	return &Stability{
		name:   "stability",
		target: target,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(smp frame.Sample) {
	if !smp.FPSValid {
		return
	}
	s.samples++
	if smp.FPS < s.target*0.95 {
		s.slow++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.slow)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.slow = 0
	s.samples = 0
}

// UndefinedFPS counts frames whose interval gave no frame rate.
type UndefinedFPS struct {
	name  string
	count int
}

func NewUndefinedFPS() *UndefinedFPS {
	return &UndefinedFPS{name: "undefined_fps_frames"}
}

func (u *UndefinedFPS) Name() string { return u.name }

func (u *UndefinedFPS) Observe(s frame.Sample) {
	if !s.FPSValid {
		u.count++
	}
}

func (u *UndefinedFPS) Value() float64 { return float64(u.count) }
func (u *UndefinedFPS) Reset()         { u.count = 0 }
