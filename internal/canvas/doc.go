// Package canvas is a headless stand-in for an HTML page with canvas
// elements.
//
// A [Document] holds elements by id. Each [Element] hands out at most one
// kind of rendering context: a [Context2D] drawn with gogpu/gg, or a
// software WebGL device from package raster. Asking for the other kind
// afterwards fails with [ErrContextType], as getContext returns null in a
// browser.
package canvas
