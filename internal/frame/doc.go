// Package frame drives per-frame animation callbacks.
//
// A [Loop] repeatedly asks a [Scheduler] for the next display frame and
// runs one [Step] with that frame's timestamp in milliseconds. Iterations
// never overlap: each runs to completion before the next timestamp is
// requested.
//
//   - [Script]: replays a fixed list of timestamps (tests, replays)
//   - [Clock]: synthetic refresh at a fixed rate, no waiting
//   - [Ticker]: wall-clock refresh backed by time.Ticker
//
// # Cancellation
//
// The loop stops when a step returns [Stop], when [Loop.Stop] is called
// from any goroutine, when the context is done, when the frame limit is
// reached, or when the scheduler runs out of frames.
package frame
