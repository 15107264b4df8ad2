package gfx

import "github.com/chewxy/math32"

// Mat4 is a column-major 4x4 matrix.
type Mat4 [16]float32

// Vec4 is a homogeneous coordinate.
type Vec4 [4]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m *Mat4) At(r, c int) float32 { return m[c*4+r] }

// Set assigns the element at row r, column c.
func (m *Mat4) Set(r, c int, v float32) { m[c*4+r] = v }

// RotateX rotates the upper 3x3 block about the x axis by angle radians.
func (m *Mat4) RotateX(angle float32) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	mv1, mv5, mv9 := m[1], m[5], m[9]

	m[1] = m[1]*c - m[2]*s
	m[5] = m[5]*c - m[6]*s
	m[9] = m[9]*c - m[10]*s

	m[2] = m[2]*c + mv1*s
	m[6] = m[6]*c + mv5*s
	m[10] = m[10]*c + mv9*s
}

// RotateY rotates the upper 3x3 block about the y axis by angle radians.
func (m *Mat4) RotateY(angle float32) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	mv0, mv4, mv8 := m[0], m[4], m[8]

	m[0] = c*m[0] + s*m[2]
	m[4] = c*m[4] + s*m[6]
	m[8] = c*m[8] + s*m[10]

	m[2] = c*m[2] - s*mv0
	m[6] = c*m[6] - s*mv4
	m[10] = c*m[10] - s*mv8
}

// RotateZ rotates the upper 3x3 block about the z axis by angle radians.
func (m *Mat4) RotateZ(angle float32) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	mv0, mv4, mv8 := m[0], m[4], m[8]

	m[0] = c*m[0] - s*m[1]
	m[4] = c*m[4] - s*m[5]
	m[8] = c*m[8] - s*m[9]

	m[1] = c*m[1] + s*mv0
	m[5] = c*m[5] + s*mv4
	m[9] = c*m[9] + s*mv8
}

// Rotate dispatches to the rotation about axis.
func (m *Mat4) Rotate(axis Axis, angle float32) {
	switch axis {
	case AxisX:
		m.RotateX(angle)
	case AxisY:
		m.RotateY(angle)
	case AxisZ:
		m.RotateZ(angle)
	}
}

// Translate adds (x, y, z) to the translation column.
func (m *Mat4) Translate(x, y, z float32) {
	m[12] += x
	m[13] += y
	m[14] += z
}

// Mul returns a · b.
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 returns m · v.
func (m *Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := 0; r < 4; r++ {
		out[r] = m[r]*v[0] + m[4+r]*v[1] + m[8+r]*v[2] + m[12+r]*v[3]
	}
	return out
}

// Scaling returns a matrix scaling by (sx, sy, sz).
func Scaling(sx, sy, sz float32) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Projection builds the perspective matrix used by the rotation demos.
// angle is the field of view in degrees and a the aspect ratio. The 0.5
// scale on both axes is part of the demos' framing and is kept as is.
func Projection(angle, a, zMin, zMax float32) Mat4 {
	ang := math32.Tan(angle * 0.5 * math32.Pi / 180)
	return Mat4{
		0.5 / ang, 0, 0, 0,
		0, 0.5 * a / ang, 0, 0,
		0, 0, -(zMax + zMin) / (zMax - zMin), -1,
		0, 0, -2 * zMax * zMin / (zMax - zMin), 0,
	}
}

// IsOrthonormal reports whether the upper 3x3 block has unit-length,
// mutually orthogonal columns within tol.
func (m *Mat4) IsOrthonormal(tol float32) bool {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			var dot float32
			for k := 0; k < 3; k++ {
				dot += m[i*4+k] * m[j*4+k]
			}
			want := float32(0)
			if i == j {
				want = 1
			}
			if math32.Abs(dot-want) > tol {
				return false
			}
		}
	}
	return true
}

// ApproxEqual compares two matrices element-wise within tol.
func ApproxEqual(a, b Mat4, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
