package frame

import "math"

// Timer remembers the previous frame timestamp. The zero value starts
// at 0, so the first frame's dt is its own timestamp.
type Timer struct {
	last float64
}

// Tick records ts and returns the milliseconds elapsed since the previous call.
func (t *Timer) Tick(ts float64) float64 {
	dt := ts - t.last
	t.last = ts
	return dt
}

func (t *Timer) Last() float64 { return t.last }

// Rate converts a frame interval in milliseconds to frames per second.
// ok is false when the interval is zero, negative, or the result is not
// finite; callers should show the rate as unknown.
func Rate(dt float64) (fps float64, ok bool) {
	if dt <= 0 {
		return 0, false
	}
	fps = 1000 / dt
	if math.IsInf(fps, 0) || math.IsNaN(fps) {
		return 0, false
	}
	return fps, true
}
