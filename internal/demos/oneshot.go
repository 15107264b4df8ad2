package demos

import (
	"errors"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/gfx"
	"github.com/san-kum/glcanvas/internal/raster"
)

// scene is a single WebGL draw on the GL canvas: upload, link, clear,
// draw.
type scene struct {
	vertices []float32
	size     int // floats per vertex in the buffer
	colors   []float32
	indices  []uint16

	vs *raster.VertexShader
	fs *raster.FragmentShader

	uniforms  func(gl *raster.Device, prog *raster.Program) error
	clearMask raster.Enum
	mode      raster.Enum
}

// recipe is a one-shot demo.
type recipe struct {
	name     string
	canvases []CanvasSpec
	setup    func(doc *canvas.Document) error
}

func (r *recipe) Name() string                     { return r.name }
func (r *recipe) Canvases() []CanvasSpec           { return r.canvases }
func (r *recipe) Setup(doc *canvas.Document) error { return r.setup(doc) }

func glRecipe(name string, p Params, s scene) *recipe {
	return &recipe{
		name:     name,
		canvases: []CanvasSpec{{ID: GLCanvasID, Width: p.Width, Height: p.Height}},
		setup:    func(doc *canvas.Document) error { return s.render(name, doc) },
	}
}

func (s scene) render(name string, doc *canvas.Document) error {
	gl, el, err := acquireGL(doc, GLCanvasID)
	if err != nil {
		return setupErr(name, "canvas", err)
	}

	vbuf, err := floatBuffer(gl, s.vertices)
	if err != nil {
		return setupErr(name, "buffers", err)
	}
	var cbuf, ibuf *raster.Buffer
	if s.colors != nil {
		if cbuf, err = floatBuffer(gl, s.colors); err != nil {
			return setupErr(name, "buffers", err)
		}
	}
	if s.indices != nil {
		if ibuf, err = indexBuffer(gl, s.indices); err != nil {
			return setupErr(name, "buffers", err)
		}
	}

	prog, err := buildProgram(gl, s.vs, s.fs)
	if err != nil {
		return setupErr(name, "shaders", err)
	}
	if err := gl.UseProgram(prog); err != nil {
		return setupErr(name, "shaders", err)
	}

	if err := pointAttrib(gl, prog, vbuf, "coordinates", s.size); err != nil {
		return setupErr(name, "attributes", err)
	}
	if cbuf != nil {
		if err := pointAttrib(gl, prog, cbuf, "color", 3); err != nil {
			return setupErr(name, "attributes", err)
		}
	}
	if s.uniforms != nil {
		if err := s.uniforms(gl, prog); err != nil {
			return setupErr(name, "uniforms", err)
		}
	}

	c := glClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	err = errors.Join(
		gl.Enable(raster.DepthTest),
		gl.Clear(s.clearMask),
		gl.Viewport(0, 0, el.Width, el.Height),
	)
	if err != nil {
		return setupErr(name, "draw", err)
	}

	if ibuf != nil {
		err = errors.Join(
			gl.BindBuffer(raster.ElementArrayBuffer, ibuf),
			gl.DrawElements(s.mode, len(s.indices), raster.UnsignedShort, 0),
		)
	} else {
		err = gl.DrawArrays(s.mode, 0, len(s.vertices)/s.size)
	}
	return setupErr(name, "draw", err)
}

var quadVertices = []float32{
	-0.5, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.5, 0.5, 0.0,
}

var quadIndices = []uint16{3, 2, 1, 3, 1, 0}

var lineVertices = []float32{
	-0.7, -0.1, 0,
	-0.3, 0.6, 0,
	-0.3, -0.3, 0,
	0.2, 0.6, 0,
	0.3, -0.3, 0,
	0.7, 0.6, 0,
}

func newDrawPoint(p Params) Demo {
	return glRecipe("draw_point", p, scene{
		vertices:  []float32{-0.5, 0.5, 0.0, 0.0, 0.5, 0.0, -0.25, 0.25, 0.0},
		size:      3,
		vs:        positionShader(10),
		fs:        translucentShader,
		clearMask: raster.ColorBufferBit,
		mode:      raster.Points,
	})
}

func newDrawTriangle(p Params) Demo {
	vs := &raster.VertexShader{
		Attributes: []raster.Attribute{{Name: "coordinates", Size: 2}},
		Main: func(a [][4]float32, _ raster.Uniforms) raster.VertexOut {
			return raster.VertexOut{Position: [4]float32{a[0][0], a[0][1], 0, 1}}
		},
	}
	return glRecipe("draw_triangle", p, scene{
		vertices:  []float32{-0.5, 0.5, -0.5, -0.5, 0.0, -0.5},
		size:      2,
		vs:        vs,
		fs:        translucentShader,
		clearMask: raster.ColorBufferBit,
		mode:      raster.Triangles,
	})
}

// LineMode resolves a draw_line mode name. Unknown names, and POINTS,
// fall back to LINES.
func LineMode(name string) raster.Enum {
	mode, ok := raster.ParseMode(name)
	if !ok || mode == raster.Points {
		return raster.Lines
	}
	return mode
}

func newDrawLine(p Params) Demo {
	return glRecipe("draw_line", p, scene{
		vertices:  lineVertices,
		size:      3,
		vs:        positionShader(1),
		fs:        translucentShader,
		clearMask: raster.ColorBufferBit | raster.DepthBufferBit,
		mode:      LineMode(p.LineMode),
	})
}

func newDrawSquare(p Params) Demo {
	return glRecipe("draw_square", p, scene{
		vertices:  quadVertices,
		size:      3,
		indices:   quadIndices,
		vs:        positionShader(1),
		fs:        translucentShader,
		clearMask: raster.ColorBufferBit,
		mode:      raster.Triangles,
	})
}

func newDrawColor(p Params) Demo {
	return glRecipe("draw_color", p, scene{
		vertices:  quadVertices,
		size:      3,
		colors:    []float32{0, 0, 1, 1, 0, 0, 0, 1, 0, 1, 0, 1},
		indices:   quadIndices,
		vs:        colorShader,
		fs:        varyingColorShader,
		clearMask: raster.ColorBufferBit,
		mode:      raster.Triangles,
	})
}

func newDrawTriangleTrans(p Params) Demo {
	return glRecipe("draw_triangle_trans", p, scene{
		vertices: []float32{-0.5, 0.5, 0.0, -0.5, -0.5, 0.0, 0.5, -0.5, 0.0},
		size:     3,
		vs:       translateShader,
		fs:       translucentShader,
		uniforms: func(gl *raster.Device, prog *raster.Program) error {
			loc, err := gl.GetUniformLocation(prog, "translation")
			if err != nil {
				return err
			}
			return gl.Uniform4f(loc, 0.5, 0.5, 0.0, 0.0)
		},
		clearMask: raster.ColorBufferBit,
		mode:      raster.Triangles,
	})
}

func newDrawTriangleScale(p Params) Demo {
	return glRecipe("draw_triangle_scale", p, scene{
		vertices: []float32{-0.5, 0.5, 0.0, -0.5, -0.5, 0.0, 0.5, -0.5, 0.0},
		size:     3,
		vs:       transformShader,
		fs:       translucentShader,
		uniforms: func(gl *raster.Device, prog *raster.Program) error {
			loc, err := gl.GetUniformLocation(prog, "u_xformMatrix")
			if err != nil {
				return err
			}
			return gl.UniformMatrix4fv(loc, false, gfx.Scaling(1.0, 1.5, 1.0))
		},
		clearMask: raster.ColorBufferBit,
		mode:      raster.Triangles,
	})
}

const (
	welcomeText = "Welcome to Tutorialspoint"
	welcomeFont = "20pt Calibri"
)

// newCanvasCreate draws text on one canvas and clears a second with
// WebGL.
func newCanvasCreate(p Params) Demo {
	const name = "canvas_create"
	return &recipe{
		name: name,
		canvases: []CanvasSpec{
			{ID: TextCanvasID, Width: p.Width, Height: p.Height},
			{ID: ClearCanvasID, Width: p.Width, Height: p.Height},
		},
		setup: func(doc *canvas.Document) error {
			ctx, _, err := acquire2D(doc, TextCanvasID)
			if err != nil {
				return setupErr(name, "canvas", err)
			}
			err = errors.Join(
				ctx.SetFont(welcomeFont),
				ctx.SetFillStyle("green"),
			)
			if err == nil {
				err = ctx.FillText(welcomeText, 70, 70)
			}
			if err != nil {
				return setupErr(name, "draw", err)
			}

			gl, _, err := acquireGL(doc, ClearCanvasID)
			if err != nil {
				return setupErr(name, "canvas", err)
			}
			gl.ClearColor(0.9, 0.9, 0.8, 1.0)
			return setupErr(name, "draw", gl.Clear(raster.ColorBufferBit))
		},
	}
}
