package demos

import (
	"github.com/san-kum/glcanvas/internal/gfx"
	"github.com/san-kum/glcanvas/internal/raster"
)

// positionShader passes coordinates straight through.
func positionShader(pointSize float32) *raster.VertexShader {
	return &raster.VertexShader{
		Attributes: []raster.Attribute{{Name: "coordinates", Size: 3}},
		Main: func(a [][4]float32, _ raster.Uniforms) raster.VertexOut {
			return raster.VertexOut{Position: a[0], PointSize: pointSize}
		},
	}
}

// translucentShader paints everything black at 10% alpha.
var translucentShader = &raster.FragmentShader{
	Main: func(_ [4]float32, _ raster.Uniforms) [4]float32 {
		return [4]float32{0, 0, 0, 0.1}
	},
}

// varyingColorShader outputs the interpolated vertex color, opaque.
var varyingColorShader = &raster.FragmentShader{
	Varyings: 3,
	Main: func(v [4]float32, _ raster.Uniforms) [4]float32 {
		return [4]float32{v[0], v[1], v[2], 1}
	},
}

var colorShader = &raster.VertexShader{
	Attributes: []raster.Attribute{
		{Name: "coordinates", Size: 3},
		{Name: "color", Size: 3},
	},
	Varyings: 3,
	Main: func(a [][4]float32, _ raster.Uniforms) raster.VertexOut {
		return raster.VertexOut{Position: a[0], Varying: a[1]}
	},
}

var translateShader = &raster.VertexShader{
	Attributes: []raster.Attribute{{Name: "coordinates", Size: 4}},
	Uniforms:   []raster.Uniform{{Name: "translation", Type: raster.Vec4}},
	Main: func(a [][4]float32, u raster.Uniforms) raster.VertexOut {
		t := u.Vec4("translation")
		p := a[0]
		return raster.VertexOut{Position: [4]float32{p[0] + t[0], p[1] + t[1], p[2] + t[2], p[3] + t[3]}}
	},
}

var transformShader = &raster.VertexShader{
	Attributes: []raster.Attribute{{Name: "coordinates", Size: 4}},
	Uniforms:   []raster.Uniform{{Name: "u_xformMatrix", Type: raster.Mat4}},
	Main: func(a [][4]float32, u raster.Uniforms) raster.VertexOut {
		m := u.Mat4("u_xformMatrix")
		return raster.VertexOut{Position: m.MulVec4(gfx.Vec4(a[0]))}
	},
}

// mvpShader applies Pmatrix * Vmatrix * Mmatrix and forwards color.
var mvpShader = &raster.VertexShader{
	Attributes: []raster.Attribute{
		{Name: "position", Size: 3},
		{Name: "color", Size: 3},
	},
	Uniforms: []raster.Uniform{
		{Name: "Pmatrix", Type: raster.Mat4},
		{Name: "Vmatrix", Type: raster.Mat4},
		{Name: "Mmatrix", Type: raster.Mat4},
	},
	Varyings: 3,
	Main: func(a [][4]float32, u raster.Uniforms) raster.VertexOut {
		mvp := gfx.Mul(gfx.Mul(u.Mat4("Pmatrix"), u.Mat4("Vmatrix")), u.Mat4("Mmatrix"))
		return raster.VertexOut{Position: mvp.MulVec4(gfx.Vec4(a[0])), Varying: a[1]}
	},
}
