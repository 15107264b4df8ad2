package swarm

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	DefaultCap      = 5000
	DefaultTop      = 250
	DefaultSpawnTop = 300

	// refFrameMs is the frame length velocities are expressed against
	// in time-scaled mode.
	refFrameMs = 1000.0 / 60
)

var ErrInvalidArena = errors.New("swarm: arena must have positive size")

// Rand is the uniform [0,1) source consumed when spawning.
type Rand interface {
	Float32() float32
}

type Options struct {
	Cap        int
	Top        float32
	SpawnTop   float32
	TimeScaled bool
	Rand       Rand
}

func DefaultOptions() Options {
	return Options{
		Cap:      DefaultCap,
		Top:      DefaultTop,
		SpawnTop: DefaultSpawnTop,
	}
}

type Swarm struct {
	Balls []Ball

	arena      Arena
	cap        int
	spawnTop   float32
	timeScaled bool
	rng        Rand
}

func New(width, height float32, opts Options) (*Swarm, error) {
	if width <= 2*Radius || height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidArena, width, height)
	}
	if opts.Cap < 0 {
		return nil, fmt.Errorf("swarm: negative population cap %d", opts.Cap)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Swarm{
		Balls:      make([]Ball, 0, min(opts.Cap, 1024)),
		arena:      Arena{Width: width, Height: height, Top: opts.Top},
		cap:        opts.Cap,
		spawnTop:   opts.SpawnTop,
		timeScaled: opts.TimeScaled,
		rng:        rng,
	}, nil
}

func (s *Swarm) Arena() Arena { return s.arena }
func (s *Swarm) Cap() int     { return s.cap }
func (s *Swarm) Len() int     { return len(s.Balls) }

// Spawn creates a ball inside the spawn band. Four draws are taken from
// the random source, in order: x, y, x speed, y speed.
func (s *Swarm) Spawn() Ball {
	rx := s.rng.Float32()
	ry := s.rng.Float32()
	rvx := s.rng.Float32()
	rvy := s.rng.Float32()

	bottom := s.arena.Height - Radius
	band := bottom - s.spawnTop
	if band < 0 {
		band = 0
	}

	return Ball{
		X:      rx*(s.arena.Width-2*Radius) + Radius,
		Y:      ry*band + s.spawnTop,
		XSpeed: rvx * MaxSpeed,
		YSpeed: rvy * MaxSpeed,
	}
}

// Step advances one frame: Update, then Grow.
func (s *Swarm) Step(dt float64) {
	s.Update(dt)
	s.Grow()
}

// Update moves and reflects every ball. dt is the frame interval in
// milliseconds and only matters in time-scaled mode.
func (s *Swarm) Update(dt float64) {
	k := float32(1)
	if s.timeScaled {
		k = float32(dt / refFrameMs)
	}
	for i := range s.Balls {
		b := &s.Balls[i]
		b.Move(k)
		b.Reflect(s.arena)
	}
}

// Grow spawns one ball if the population is below the cap. It reports
// whether a ball was added.
func (s *Swarm) Grow() bool {
	if len(s.Balls) >= s.cap {
		return false
	}
	s.Balls = append(s.Balls, s.Spawn())
	return true
}
