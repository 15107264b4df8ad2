package raster

import (
	"fmt"

	"github.com/san-kum/glcanvas/internal/gfx"
)

// MaxVertexAttribs is the number of attribute slots a device exposes.
const MaxVertexAttribs = 8

// Buffer holds either vertex data or indices, depending on what was
// last uploaded.
type Buffer struct {
	id      int
	floats  []float32
	indices []uint16
}

func (b *Buffer) ID() int { return b.id }

type attribPointer struct {
	buf     *Buffer
	size    int
	stride  int // in floats
	offset  int // in floats
	enabled bool
}

type viewport struct {
	x, y, w, h int
}

// Device is a software rendering context bound to one framebuffer.
type Device struct {
	fb *FrameBuffer

	nextID       int
	arrayBuf     *Buffer
	elementBuf   *Buffer
	attribs      [MaxVertexAttribs]attribPointer
	program      *Program
	depthTest    bool
	depthFunc    Enum
	clearColor   [4]float32
	clearDepth   float32
	viewport     viewport
	drawCalls    int
	fragsWritten int
}

func NewDevice(width, height int) *Device {
	return &Device{
		fb:         NewFrameBuffer(width, height),
		depthFunc:  Less,
		clearDepth: 1,
		viewport:   viewport{0, 0, width, height},
	}
}

func (d *Device) FrameBuffer() *FrameBuffer { return d.fb }
func (d *Device) DrawingBufferWidth() int   { return d.fb.Width }
func (d *Device) DrawingBufferHeight() int  { return d.fb.Height }

// DrawCalls returns the number of draws issued since the device was made.
func (d *Device) DrawCalls() int { return d.drawCalls }

// FragmentsWritten returns the number of fragments that passed all tests.
func (d *Device) FragmentsWritten() int { return d.fragsWritten }

func (d *Device) CreateBuffer() *Buffer {
	d.nextID++
	return &Buffer{id: d.nextID}
}

func (d *Device) BindBuffer(target Enum, b *Buffer) error {
	switch target {
	case ArrayBuffer:
		d.arrayBuf = b
	case ElementArrayBuffer:
		d.elementBuf = b
	default:
		return fmt.Errorf("%w: buffer target %v", ErrInvalidEnum, target)
	}
	return nil
}

// BufferData uploads data to the buffer bound at target. Array buffers
// take []float32, element array buffers take []uint16.
func (d *Device) BufferData(target Enum, data any, usage Enum) error {
	if usage != StaticDraw {
		return fmt.Errorf("%w: usage %v", ErrInvalidEnum, usage)
	}
	var b *Buffer
	switch target {
	case ArrayBuffer:
		b = d.arrayBuf
	case ElementArrayBuffer:
		b = d.elementBuf
	default:
		return fmt.Errorf("%w: buffer target %v", ErrInvalidEnum, target)
	}
	if b == nil {
		return fmt.Errorf("%w: target %v", ErrNoBuffer, target)
	}

	switch v := data.(type) {
	case []float32:
		if target != ArrayBuffer {
			return fmt.Errorf("%w: float data for index buffer", ErrInvalidValue)
		}
		b.floats = append(b.floats[:0], v...)
		b.indices = nil
	case []uint16:
		if target != ElementArrayBuffer {
			return fmt.Errorf("%w: index data for vertex buffer", ErrInvalidValue)
		}
		b.indices = append(b.indices[:0], v...)
		b.floats = nil
	default:
		return fmt.Errorf("%w: unsupported buffer data %T", ErrInvalidValue, data)
	}
	return nil
}

func (d *Device) CreateShader(kind Enum) (*Shader, error) {
	if kind != VertexShaderType && kind != FragmentShaderType {
		return nil, fmt.Errorf("%w: shader type %v", ErrInvalidEnum, kind)
	}
	return &Shader{kind: kind}, nil
}

// ShaderSource sets the stage a shader object will compile. src must be
// a *VertexShader or *FragmentShader.
func (d *Device) ShaderSource(s *Shader, src any) {
	s.vertex, s.fragment = nil, nil
	s.compiled = false
	switch v := src.(type) {
	case *VertexShader:
		s.vertex = v
	case *FragmentShader:
		s.fragment = v
	}
}

func (d *Device) CompileShader(s *Shader) error {
	var err error
	switch {
	case s.kind == VertexShaderType && s.vertex != nil:
		err = compileVertex(s.vertex)
	case s.kind == FragmentShaderType && s.fragment != nil:
		err = compileFragment(s.fragment)
	default:
		err = fmt.Errorf("no source of the right kind for %v shader", s.kind)
	}

	s.compiled = err == nil
	if err != nil {
		s.log = err.Error()
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}
	s.log = ""
	return nil
}

func (d *Device) CreateProgram() *Program {
	return &Program{}
}

func (d *Device) AttachShader(p *Program, s *Shader) error {
	switch s.kind {
	case VertexShaderType:
		if p.vs != nil {
			return fmt.Errorf("%w: vertex shader already attached", ErrInvalidOperation)
		}
		p.vs = s
	case FragmentShaderType:
		if p.fs != nil {
			return fmt.Errorf("%w: fragment shader already attached", ErrInvalidOperation)
		}
		p.fs = s
	default:
		return fmt.Errorf("%w: shader type %v", ErrInvalidEnum, s.kind)
	}
	return nil
}

func (d *Device) LinkProgram(p *Program) error {
	err := p.link()
	p.linked = err == nil
	if err != nil {
		p.log = err.Error()
		return fmt.Errorf("%w: %w", ErrLink, err)
	}
	p.log = ""
	return nil
}

// UseProgram installs p for subsequent draws. A nil program uninstalls.
func (d *Device) UseProgram(p *Program) error {
	if p != nil && !p.linked {
		return fmt.Errorf("%w: program not linked", ErrInvalidOperation)
	}
	d.program = p
	return nil
}

// GetAttribLocation returns the slot of an active attribute, or -1.
func (d *Device) GetAttribLocation(p *Program, name string) int {
	if p == nil || !p.linked {
		return -1
	}
	return p.attribLocation(name)
}

func (d *Device) GetUniformLocation(p *Program, name string) (*UniformLocation, error) {
	if p == nil || !p.linked {
		return nil, fmt.Errorf("%w: program not linked", ErrInvalidOperation)
	}
	t, ok := p.uniforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoUniform, name)
	}
	return &UniformLocation{prog: p, name: name, typ: t}, nil
}

// VertexAttribPointer binds slot loc to the current array buffer.
// stride and offset are in bytes, as in WebGL.
func (d *Device) VertexAttribPointer(loc, size int, typ Enum, normalized bool, stride, offset int) error {
	if loc < 0 || loc >= MaxVertexAttribs {
		return fmt.Errorf("%w: attribute location %d", ErrInvalidValue, loc)
	}
	if typ != Float {
		return fmt.Errorf("%w: attribute type %v", ErrInvalidEnum, typ)
	}
	if size < 1 || size > 4 || stride < 0 || offset < 0 || stride%4 != 0 || offset%4 != 0 {
		return fmt.Errorf("%w: size %d stride %d offset %d", ErrInvalidValue, size, stride, offset)
	}
	if d.arrayBuf == nil {
		return fmt.Errorf("%w: attribute %d", ErrNoBuffer, loc)
	}
	a := &d.attribs[loc]
	a.buf = d.arrayBuf
	a.size = size
	a.stride = stride / 4
	a.offset = offset / 4
	return nil
}

func (d *Device) EnableVertexAttribArray(loc int) error {
	if loc < 0 || loc >= MaxVertexAttribs {
		return fmt.Errorf("%w: attribute location %d", ErrInvalidValue, loc)
	}
	d.attribs[loc].enabled = true
	return nil
}

func (d *Device) DisableVertexAttribArray(loc int) error {
	if loc < 0 || loc >= MaxVertexAttribs {
		return fmt.Errorf("%w: attribute location %d", ErrInvalidValue, loc)
	}
	d.attribs[loc].enabled = false
	return nil
}

func (d *Device) setUniform(loc *UniformLocation, typ UniformType, v []float32) error {
	if loc == nil {
		return nil
	}
	if d.program == nil || d.program != loc.prog {
		return fmt.Errorf("%w: location %q does not belong to the current program", ErrInvalidOperation, loc.name)
	}
	if loc.typ != typ {
		return fmt.Errorf("%w: %q is %s, not %s", ErrInvalidOperation, loc.name, loc.typ, typ)
	}
	loc.prog.values[loc.name] = append(loc.prog.values[loc.name][:0], v...)
	return nil
}

func (d *Device) Uniform4f(loc *UniformLocation, x, y, z, w float32) error {
	return d.setUniform(loc, Vec4, []float32{x, y, z, w})
}

// UniformMatrix4fv uploads a column-major matrix. transpose must be false.
func (d *Device) UniformMatrix4fv(loc *UniformLocation, transpose bool, m gfx.Mat4) error {
	if transpose {
		return fmt.Errorf("%w: transpose must be false", ErrInvalidValue)
	}
	return d.setUniform(loc, Mat4, m[:])
}

func (d *Device) Enable(c Enum) error {
	if c != DepthTest {
		return fmt.Errorf("%w: capability %v", ErrInvalidEnum, c)
	}
	d.depthTest = true
	return nil
}

func (d *Device) Disable(c Enum) error {
	if c != DepthTest {
		return fmt.Errorf("%w: capability %v", ErrInvalidEnum, c)
	}
	d.depthTest = false
	return nil
}

func (d *Device) DepthFunc(fn Enum) error {
	if !isDepthFunc(fn) {
		return fmt.Errorf("%w: depth func %v", ErrInvalidEnum, fn)
	}
	d.depthFunc = fn
	return nil
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Device) ClearDepth(depth float32) {
	d.clearDepth = clamp01(depth)
}

func (d *Device) Viewport(x, y, w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidValue, w, h)
	}
	d.viewport = viewport{x, y, w, h}
	return nil
}

// Clear fills the buffers selected by mask. It ignores the viewport.
func (d *Device) Clear(mask Enum) error {
	if mask&^(ColorBufferBit|DepthBufferBit) != 0 {
		return fmt.Errorf("%w: clear mask %v", ErrInvalidValue, mask)
	}
	if mask&ColorBufferBit != 0 {
		d.fb.ClearColor(toRGBA8(d.clearColor))
	}
	if mask&DepthBufferBit != 0 {
		d.fb.ClearDepth(d.clearDepth)
	}
	return nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
