package frame

import (
	"context"
	"time"
)

// Scheduler hands out display frames. Next blocks until the next frame is
// due and returns its timestamp in milliseconds. Timestamps are
// non-decreasing.
type Scheduler interface {
	Next(ctx context.Context) (float64, error)
}

// Script replays a fixed timestamp sequence.
type Script struct {
	stamps []float64
	pos    int
}

func NewScript(stamps ...float64) *Script {
	s := make([]float64, len(stamps))
	copy(s, stamps)
	return &Script{stamps: s}
}

func (s *Script) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.pos >= len(s.stamps) {
		return 0, ErrExhausted
	}
	ts := s.stamps[s.pos]
	s.pos++
	return ts, nil
}

// Remaining reports how many timestamps have not been handed out yet.
func (s *Script) Remaining() int { return len(s.stamps) - s.pos }

// Clock is a synthetic refresh signal: frame i is stamped i*1000/fps.
// It never waits, so a run renders as fast as the steps allow.
type Clock struct {
	interval float64
	frame    int
}

func NewClock(fps float64) (*Clock, error) {
	if fps <= 0 {
		return nil, ErrInvalidRate
	}
	return &Clock{interval: 1000 / fps}, nil
}

func (c *Clock) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.frame++
	return float64(c.frame) * c.interval, nil
}

// Ticker delivers frames on the wall clock.
type Ticker struct {
	ticker *time.Ticker
	start  time.Time
}

func NewTicker(fps float64) (*Ticker, error) {
	if fps <= 0 {
		return nil, ErrInvalidRate
	}
	interval := time.Duration(float64(time.Second) / fps)
	return &Ticker{ticker: time.NewTicker(interval), start: time.Now()}, nil
}

func (t *Ticker) Next(ctx context.Context) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case now := <-t.ticker.C:
		return float64(now.Sub(t.start).Microseconds()) / 1000, nil
	}
}

func (t *Ticker) Close() { t.ticker.Stop() }
