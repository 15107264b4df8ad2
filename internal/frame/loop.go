package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Control tells the loop whether to request another frame.
type Control int

const (
	Continue Control = iota
	Stop
)

func (c Control) String() string {
	if c == Stop {
		return "stop"
	}
	return "continue"
}

// Step runs one iteration for the frame stamped ts (milliseconds).
type Step func(ts float64) (Control, error)

// DefaultMaxErrors is the number of consecutive failing frames tolerated
// before a loop gives up.
const DefaultMaxErrors = 3

type Option func(*Loop)

// WithLogger sets the logger used to report failing frames.
func WithLogger(l *slog.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.log = l
		}
	}
}

// WithMaxFrames stops the loop after n iterations. Zero means unbounded.
func WithMaxFrames(n int) Option {
	return func(lp *Loop) { lp.maxFrames = n }
}

// WithMaxErrors aborts after n consecutive failing frames. Zero disables
// the limit and every failing frame is skipped.
func WithMaxErrors(n int) Option {
	return func(lp *Loop) { lp.maxErrors = n }
}

// Loop owns a step function and runs it once per scheduled frame.
// It is not safe for concurrent use except for Stop and Stopped.
type Loop struct {
	step      Step
	log       *slog.Logger
	maxFrames int
	maxErrors int

	frames      int
	failures    int
	consecutive int
	stopped     atomic.Bool
}

func NewLoop(step Step, opts ...Option) *Loop {
	l := &Loop{
		step:      step,
		log:       slog.Default(),
		maxErrors: DefaultMaxErrors,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stop requests that no further iteration runs. The iteration in
// progress, if any, completes normally.
func (l *Loop) Stop() { l.stopped.Store(true) }

func (l *Loop) Stopped() bool { return l.stopped.Load() }

// Frames returns the number of iterations executed so far.
func (l *Loop) Frames() int { return l.frames }

// Failures returns the total number of iterations that returned an error.
func (l *Loop) Failures() int { return l.failures }

// Tick runs a single iteration synchronously. It returns Stop once the
// loop is finished; the error is non-nil only when the loop aborted.
func (l *Loop) Tick(ts float64) (Control, error) {
	if l.stopped.Load() {
		return Stop, nil
	}

	idx := l.frames
	l.frames++

	ctl, err := l.step(ts)
	if err != nil {
		l.failures++
		l.consecutive++
		serr := &StepError{Frame: idx, Timestamp: ts, Wrapped: err}
		l.log.Warn("frame failed, skipping", "frame", idx, "ts", ts, "err", err)

		if l.maxErrors > 0 && l.consecutive >= l.maxErrors {
			l.stopped.Store(true)
			return Stop, fmt.Errorf("%w: %w", ErrTooManyErrors, serr)
		}
	} else {
		l.consecutive = 0
	}

	if ctl == Stop {
		l.stopped.Store(true)
		return Stop, nil
	}
	if l.maxFrames > 0 && l.frames >= l.maxFrames {
		l.stopped.Store(true)
		return Stop, nil
	}
	return Continue, nil
}

// Run drives the loop until it stops. Exhausting the scheduler is a
// normal end; a cancelled context is reported as ctx.Err().
func (l *Loop) Run(ctx context.Context, sched Scheduler) error {
	for !l.stopped.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}

		ts, err := sched.Next(ctx)
		if errors.Is(err, ErrExhausted) {
			return nil
		}
		if err != nil {
			return err
		}

		ctl, err := l.Tick(ts)
		if err != nil {
			return err
		}
		if ctl == Stop {
			return nil
		}
	}
	return nil
}
