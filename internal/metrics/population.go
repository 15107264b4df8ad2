package metrics

import "github.com/san-kum/glcanvas/internal/frame"

// FinalPopulation keeps the entity count of the last observed frame.
type FinalPopulation struct {
	name string
	last int
}

func NewFinalPopulation() *FinalPopulation {
	return &FinalPopulation{name: "final_population"}
}

func (p *FinalPopulation) Name() string { return p.name }

func (p *FinalPopulation) Observe(s frame.Sample) {
	p.last = s.Population
}

func (p *FinalPopulation) Value() float64 { return float64(p.last) }
func (p *FinalPopulation) Reset()         { p.last = 0 }
