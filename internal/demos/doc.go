// Package demos holds the catalogue of canvas and WebGL demos.
//
// Every demo names the canvas elements its page needs, acquires its
// context during Setup and, for one-shot demos, draws once. Animated
// demos also implement Frame, which the frame loop calls once per
// display refresh. Demos share no state with each other.
package demos
