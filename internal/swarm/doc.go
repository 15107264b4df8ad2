// Package swarm models the bouncing-ball stress test.
//
// A [Swarm] owns a growing slice of [Ball]s. Each [Swarm.Step] moves every
// ball by its velocity, flips velocity components whose bounding circle
// has left the [Arena], and then spawns one new ball while the population
// is below the cap. Balls are never removed.
//
// Velocities are in canvas units per frame, so apparent speed follows
// the achieved frame rate. [Options.TimeScaled] switches to units per
// 1/60 s instead.
package swarm
