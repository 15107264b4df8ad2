package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted is returned by a Scheduler that has no more frames.
	ErrExhausted = errors.New("frame: scheduler exhausted")

	// ErrTooManyErrors aborts a loop after consecutive failing frames.
	ErrTooManyErrors = errors.New("frame: too many consecutive frame errors")

	// ErrInvalidRate indicates a non-positive refresh rate.
	ErrInvalidRate = errors.New("frame: refresh rate must be positive")
)

// StepError wraps a failing iteration with its position in the loop.
type StepError struct {
	Frame     int
	Timestamp float64
	Wrapped   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d (t=%.2fms): %v", e.Frame, e.Timestamp, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
