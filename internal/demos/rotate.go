package demos

import (
	"errors"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/frame"
	"github.com/san-kum/glcanvas/internal/gfx"
	"github.com/san-kum/glcanvas/internal/motion"
	"github.com/san-kum/glcanvas/internal/raster"
)

// Camera setup shared by the rotating demos.
const (
	fieldOfView = 40
	zNear       = 1
	zFar        = 100
	viewZ       = -6
)

type mesh struct {
	vertices []float32
	colors   []float32
	indices  []uint16
}

var triangleMesh = mesh{
	vertices: []float32{
		-1, -1, 0,
		1, -1, 0,
		1, 1, 0,
	},
	colors: []float32{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	},
	indices: []uint16{0, 1, 2},
}

var cubeMesh = mesh{
	vertices: []float32{
		-1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
		-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1,
		-1, -1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
		1, -1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1,
		-1, -1, -1, -1, -1, 1, 1, -1, 1, 1, -1, -1,
		-1, 1, -1, -1, 1, 1, 1, 1, 1, 1, 1, -1,
	},
	colors: []float32{
		5, 3, 7, 5, 3, 7, 5, 3, 7, 5, 3, 7,
		1, 1, 3, 1, 1, 3, 1, 1, 3, 1, 1, 3,
		0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1,
		1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0,
		1, 1, 0, 1, 1, 0, 1, 1, 0, 1, 1, 0,
		0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0,
	},
	indices: []uint16{
		0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7,
		8, 9, 10, 8, 10, 11, 12, 13, 14, 12, 14, 15,
		16, 17, 18, 16, 18, 19, 20, 21, 22, 20, 22, 23,
	},
}

// Rotating is an animated demo spinning a colored mesh about fixed axes
// at rates proportional to elapsed time.
type Rotating struct {
	name      string
	mesh      mesh
	intAspect bool
	width     int
	height    int

	gl       *raster.Device
	indexBuf *raster.Buffer
	pLoc     *raster.UniformLocation
	vLoc     *raster.UniformLocation
	mLoc     *raster.UniformLocation

	proj  gfx.Mat4
	view  gfx.Mat4
	rot   *motion.Rotator
	timer frame.Timer
}

func newTriangleRotate(p Params) Demo {
	return &Rotating{
		name:   "triangle_rotate",
		mesh:   triangleMesh,
		width:  p.Width,
		height: p.Height,
		rot:    motion.NewRotator(motion.TriangleRates),
	}
}

// The cube's aspect ratio is the integer quotient of the canvas size.
func newCubeRotate(p Params) Demo {
	return &Rotating{
		name:      "cube_rotate",
		mesh:      cubeMesh,
		intAspect: true,
		width:     p.Width,
		height:    p.Height,
		rot:       motion.NewRotator(motion.CubeRates),
	}
}

func (r *Rotating) Name() string { return r.name }

func (r *Rotating) Canvases() []CanvasSpec {
	return []CanvasSpec{{ID: GLCanvasID, Width: r.width, Height: r.height}}
}

// Model returns the accumulated model matrix.
func (r *Rotating) Model() gfx.Mat4 { return r.rot.Model }

func (r *Rotating) Setup(doc *canvas.Document) error {
	gl, el, err := acquireGL(doc, GLCanvasID)
	if err != nil {
		return setupErr(r.name, "canvas", err)
	}
	r.gl = gl
	r.width, r.height = el.Width, el.Height

	vbuf, err := floatBuffer(gl, r.mesh.vertices)
	if err != nil {
		return setupErr(r.name, "buffers", err)
	}
	cbuf, err := floatBuffer(gl, r.mesh.colors)
	if err != nil {
		return setupErr(r.name, "buffers", err)
	}
	if r.indexBuf, err = indexBuffer(gl, r.mesh.indices); err != nil {
		return setupErr(r.name, "buffers", err)
	}

	prog, err := buildProgram(gl, mvpShader, varyingColorShader)
	if err != nil {
		return setupErr(r.name, "shaders", err)
	}

	for _, u := range []struct {
		name string
		loc  **raster.UniformLocation
	}{{"Pmatrix", &r.pLoc}, {"Vmatrix", &r.vLoc}, {"Mmatrix", &r.mLoc}} {
		if *u.loc, err = gl.GetUniformLocation(prog, u.name); err != nil {
			return setupErr(r.name, "uniforms", err)
		}
	}

	if err := pointAttrib(gl, prog, vbuf, "position", 3); err != nil {
		return setupErr(r.name, "attributes", err)
	}
	if err := pointAttrib(gl, prog, cbuf, "color", 3); err != nil {
		return setupErr(r.name, "attributes", err)
	}
	if err := gl.UseProgram(prog); err != nil {
		return setupErr(r.name, "shaders", err)
	}

	aspect := float32(r.width) / float32(r.height)
	if r.intAspect {
		aspect = float32(r.width / r.height)
	}
	r.proj = gfx.Projection(fieldOfView, aspect, zNear, zFar)
	r.view = gfx.Identity()
	r.view[14] += viewZ
	r.rot.Reset()
	r.timer = frame.Timer{}
	return nil
}

// Frame advances the rotation by the time since the previous frame and
// redraws.
func (r *Rotating) Frame(ts float64) error {
	r.rot.Advance(r.timer.Tick(ts))

	gl := r.gl
	c := glClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.ClearDepth(1)
	return errors.Join(
		gl.Enable(raster.DepthTest),
		gl.DepthFunc(raster.LEqual),
		gl.Viewport(0, 0, r.width, r.height),
		gl.Clear(raster.ColorBufferBit|raster.DepthBufferBit),
		gl.UniformMatrix4fv(r.pLoc, false, r.proj),
		gl.UniformMatrix4fv(r.vLoc, false, r.view),
		gl.UniformMatrix4fv(r.mLoc, false, r.rot.Model),
		gl.BindBuffer(raster.ElementArrayBuffer, r.indexBuf),
		gl.DrawElements(raster.Triangles, len(r.mesh.indices), raster.UnsignedShort, 0),
	)
}
