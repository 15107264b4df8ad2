package gfx

import (
	"fmt"

	"github.com/chewxy/math32"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Rotation returns the standalone 4x4 rotation about axis by angle radians.
func Rotation(axis Axis, angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	switch axis {
	case AxisX:
		m.Set(1, 1, c)
		m.Set(1, 2, -s)
		m.Set(2, 1, s)
		m.Set(2, 2, c)
	case AxisY:
		m.Set(0, 0, c)
		m.Set(0, 2, s)
		m.Set(2, 0, -s)
		m.Set(2, 2, c)
	case AxisZ:
		m.Set(0, 0, c)
		m.Set(0, 1, -s)
		m.Set(1, 0, s)
		m.Set(1, 1, c)
	}
	return m
}
