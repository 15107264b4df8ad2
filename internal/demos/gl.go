package demos

import (
	"fmt"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/raster"
)

// Clear color shared by the WebGL demos.
var glClearColor = [4]float32{0.5, 0.5, 0.5, 0.9}

func acquireGL(doc *canvas.Document, id string) (*raster.Device, *canvas.Element, error) {
	el, err := doc.GetElementByID(id)
	if err != nil {
		return nil, nil, err
	}
	gl, err := el.WebGL()
	if err != nil {
		return nil, nil, err
	}
	return gl, el, nil
}

func acquire2D(doc *canvas.Document, id string) (*canvas.Context2D, *canvas.Element, error) {
	el, err := doc.GetElementByID(id)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := el.Context2D()
	if err != nil {
		return nil, nil, err
	}
	return ctx, el, nil
}

func floatBuffer(gl *raster.Device, data []float32) (*raster.Buffer, error) {
	buf := gl.CreateBuffer()
	if err := gl.BindBuffer(raster.ArrayBuffer, buf); err != nil {
		return nil, err
	}
	if err := gl.BufferData(raster.ArrayBuffer, data, raster.StaticDraw); err != nil {
		return nil, err
	}
	return buf, gl.BindBuffer(raster.ArrayBuffer, nil)
}

func indexBuffer(gl *raster.Device, data []uint16) (*raster.Buffer, error) {
	buf := gl.CreateBuffer()
	if err := gl.BindBuffer(raster.ElementArrayBuffer, buf); err != nil {
		return nil, err
	}
	return buf, gl.BufferData(raster.ElementArrayBuffer, data, raster.StaticDraw)
}

func buildProgram(gl *raster.Device, vs *raster.VertexShader, fs *raster.FragmentShader) (*raster.Program, error) {
	vert, err := gl.CreateShader(raster.VertexShaderType)
	if err != nil {
		return nil, err
	}
	gl.ShaderSource(vert, vs)
	if err := gl.CompileShader(vert); err != nil {
		return nil, err
	}

	frag, err := gl.CreateShader(raster.FragmentShaderType)
	if err != nil {
		return nil, err
	}
	gl.ShaderSource(frag, fs)
	if err := gl.CompileShader(frag); err != nil {
		return nil, err
	}

	prog := gl.CreateProgram()
	if err := gl.AttachShader(prog, vert); err != nil {
		return nil, err
	}
	if err := gl.AttachShader(prog, frag); err != nil {
		return nil, err
	}
	if err := gl.LinkProgram(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// pointAttrib feeds attribute name from buf, size floats per vertex.
func pointAttrib(gl *raster.Device, prog *raster.Program, buf *raster.Buffer, name string, size int) error {
	loc := gl.GetAttribLocation(prog, name)
	if loc < 0 {
		return fmt.Errorf("attribute %q not found", name)
	}
	if err := gl.BindBuffer(raster.ArrayBuffer, buf); err != nil {
		return err
	}
	if err := gl.VertexAttribPointer(loc, size, raster.Float, false, 0, 0); err != nil {
		return err
	}
	return gl.EnableVertexAttribArray(loc)
}
