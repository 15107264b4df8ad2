// Package raster is a CPU implementation of the subset of the WebGL 1
// pipeline the demos use.
//
// A [Device] keeps the same bind-then-operate state machine as a WebGL
// context: buffers are bound to targets, shader stages are compiled and
// linked into programs, attribute pointers read from the bound array
// buffer and draws rasterize into a [FrameBuffer]. Shader stages are Go
// values ([VertexShader], [FragmentShader]) whose Main functions stand in
// for GLSL.
//
// Coordinates follow GL: clip space is divided by w, mapped through the
// viewport with the origin at the bottom-left, and depth lands in [0,1].
// Framebuffer rows are stored top-down so ToImage needs no flip.
package raster
