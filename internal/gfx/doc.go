// Package gfx provides the float32 transform math shared by the WebGL demos.
//
// Matrices are stored column-major in a [16]float32, the layout expected by
// a mat4 uniform upload:
//
//	m[0] m[4] m[8]  m[12]
//	m[1] m[5] m[9]  m[13]
//	m[2] m[6] m[10] m[14]
//	m[3] m[7] m[11] m[15]
//
// The Rotate* methods mutate a matrix in place by left-multiplying the
// rotation into the upper 3x3 block, so successive calls compose as
// R_n · ... · R_1 · M. The translation column is left untouched.
package gfx
