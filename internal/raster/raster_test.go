package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flatVertex = &VertexShader{
	Attributes: []Attribute{{Name: "coordinates", Size: 3}},
	Uniforms:   []Uniform{{Name: "color", Type: Vec4}},
	Main: func(a [][4]float32, _ Uniforms) VertexOut {
		return VertexOut{Position: a[0], PointSize: 10}
	},
}

var flatFragment = &FragmentShader{
	Uniforms: []Uniform{{Name: "color", Type: Vec4}},
	Main: func(_ [4]float32, u Uniforms) [4]float32 {
		return u.Vec4("color")
	},
}

func buildProgram(t *testing.T, d *Device, vs *VertexShader, fs *FragmentShader) *Program {
	t.Helper()
	v, err := d.CreateShader(VertexShaderType)
	require.NoError(t, err)
	d.ShaderSource(v, vs)
	require.NoError(t, d.CompileShader(v))

	f, err := d.CreateShader(FragmentShaderType)
	require.NoError(t, err)
	d.ShaderSource(f, fs)
	require.NoError(t, d.CompileShader(f))

	p := d.CreateProgram()
	require.NoError(t, d.AttachShader(p, v))
	require.NoError(t, d.AttachShader(p, f))
	require.NoError(t, d.LinkProgram(p))
	require.NoError(t, d.UseProgram(p))
	return p
}

func upload(t *testing.T, d *Device, p *Program, verts []float32) {
	t.Helper()
	buf := d.CreateBuffer()
	require.NoError(t, d.BindBuffer(ArrayBuffer, buf))
	require.NoError(t, d.BufferData(ArrayBuffer, verts, StaticDraw))
	loc := d.GetAttribLocation(p, "coordinates")
	require.Equal(t, 0, loc)
	require.NoError(t, d.VertexAttribPointer(loc, 3, Float, false, 0, 0))
	require.NoError(t, d.EnableVertexAttribArray(loc))
}

func setColor(t *testing.T, d *Device, p *Program, r, g, b, a float32) {
	t.Helper()
	loc, err := d.GetUniformLocation(p, "color")
	require.NoError(t, err)
	require.NoError(t, d.Uniform4f(loc, r, g, b, a))
}

func TestClear(t *testing.T) {
	d := NewDevice(4, 3)
	d.ClearColor(0.5, 0.5, 0.5, 0.5)
	d.ClearDepth(0.25)
	require.NoError(t, d.Clear(ColorBufferBit|DepthBufferBit))

	fb := d.FrameBuffer()
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.NRGBA{128, 128, 128, 128}, fb.At(x, y))
			assert.Equal(t, float32(0.25), fb.DepthAt(x, y))
		}
	}

	assert.ErrorIs(t, d.Clear(Enum(0x1)), ErrInvalidValue)
}

func TestTriangleCoverage(t *testing.T) {
	d := NewDevice(100, 100)
	p := buildProgram(t, d, flatVertex, flatFragment)
	upload(t, d, p, []float32{-0.5, 0.5, 0, -0.5, -0.5, 0, 0.5, -0.5, 0})
	setColor(t, d, p, 1, 0, 0, 1)

	require.NoError(t, d.DrawArrays(Triangles, 0, 3))

	fb := d.FrameBuffer()
	red := color.NRGBA{255, 0, 0, 255}
	// lower-left half of the centered square, in image coordinates
	assert.Equal(t, red, fb.At(30, 70))
	assert.Equal(t, red, fb.At(26, 30))
	assert.Equal(t, color.NRGBA{}, fb.At(70, 30))
	assert.Equal(t, color.NRGBA{}, fb.At(5, 5))
	assert.Equal(t, 1, d.DrawCalls())
	assert.InDelta(t, 1250, d.FragmentsWritten(), 100)
}

func TestDepthTest(t *testing.T) {
	quad := func(z float32) []float32 {
		return []float32{-1, -1, z, 1, -1, z, 1, 1, z, -1, -1, z, 1, 1, z, -1, 1, z}
	}

	tests := []struct {
		name  string
		depth bool
		fn    Enum
		want  color.NRGBA
	}{
		{"lequal keeps nearer", true, LEqual, color.NRGBA{255, 0, 0, 255}},
		{"greater keeps farther", true, Greater, color.NRGBA{0, 0, 255, 255}},
		{"disabled draws in order", false, Less, color.NRGBA{0, 0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDevice(8, 8)
			p := buildProgram(t, d, flatVertex, flatFragment)
			if tt.depth {
				require.NoError(t, d.Enable(DepthTest))
			}
			require.NoError(t, d.DepthFunc(tt.fn))
			d.ClearDepth(1)
			if tt.fn == Greater {
				d.ClearDepth(0)
			}
			require.NoError(t, d.Clear(ColorBufferBit|DepthBufferBit))

			upload(t, d, p, quad(-0.5))
			setColor(t, d, p, 1, 0, 0, 1)
			require.NoError(t, d.DrawArrays(Triangles, 0, 6))

			upload(t, d, p, quad(0.5))
			setColor(t, d, p, 0, 0, 1, 1)
			require.NoError(t, d.DrawArrays(Triangles, 0, 6))

			assert.Equal(t, tt.want, d.FrameBuffer().At(4, 4))
		})
	}
}

func TestVaryingInterpolation(t *testing.T) {
	vs := &VertexShader{
		Attributes: []Attribute{{Name: "coordinates", Size: 3}, {Name: "color", Size: 3}},
		Varyings:   3,
		Main: func(a [][4]float32, _ Uniforms) VertexOut {
			return VertexOut{Position: a[0], Varying: a[1]}
		},
	}
	fs := &FragmentShader{
		Varyings: 3,
		Main: func(v [4]float32, _ Uniforms) [4]float32 {
			return [4]float32{v[0], v[1], v[2], 1}
		},
	}

	d := NewDevice(64, 64)
	p := buildProgram(t, d, vs, fs)
	upload(t, d, p, []float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0})

	colors := d.CreateBuffer()
	require.NoError(t, d.BindBuffer(ArrayBuffer, colors))
	require.NoError(t, d.BufferData(ArrayBuffer, []float32{1, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1}, StaticDraw))
	loc := d.GetAttribLocation(p, "color")
	require.Equal(t, 1, loc)
	require.NoError(t, d.VertexAttribPointer(loc, 3, Float, false, 0, 0))
	require.NoError(t, d.EnableVertexAttribArray(loc))

	idx := d.CreateBuffer()
	require.NoError(t, d.BindBuffer(ElementArrayBuffer, idx))
	require.NoError(t, d.BufferData(ElementArrayBuffer, []uint16{0, 1, 2, 0, 2, 3}, StaticDraw))
	require.NoError(t, d.DrawElements(Triangles, 6, UnsignedShort, 0))

	fb := d.FrameBuffer()
	bottom := fb.At(32, 62)
	top := fb.At(32, 1)
	assert.Greater(t, bottom.R, uint8(240))
	assert.Less(t, bottom.B, uint8(15))
	assert.Greater(t, top.B, uint8(240))
	assert.Less(t, top.R, uint8(15))
}

func TestPointSize(t *testing.T) {
	d := NewDevice(50, 50)
	p := buildProgram(t, d, flatVertex, flatFragment)
	upload(t, d, p, []float32{0, 0, 0})
	setColor(t, d, p, 0, 1, 0, 1)

	require.NoError(t, d.DrawArrays(Points, 0, 1))
	assert.Equal(t, 100, d.FragmentsWritten())
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, d.FrameBuffer().At(25, 25))
}

func TestLineModes(t *testing.T) {
	verts := []float32{-0.5, 0, 0, 0.5, 0, 0, 0.5, 0.5, 0}

	count := func(mode Enum) int {
		d := NewDevice(40, 40)
		p := buildProgram(t, d, flatVertex, flatFragment)
		upload(t, d, p, verts)
		setColor(t, d, p, 1, 1, 1, 1)
		require.NoError(t, d.DrawArrays(mode, 0, 3))
		return d.FragmentsWritten()
	}

	lines := count(Lines)
	strip := count(LineStrip)
	loop := count(LineLoop)
	assert.Greater(t, lines, 0)
	assert.Greater(t, strip, lines)
	assert.Greater(t, loop, strip)
}

func TestCompileErrors(t *testing.T) {
	d := NewDevice(1, 1)

	tests := []struct {
		name string
		kind Enum
		src  any
	}{
		{"no main", VertexShaderType, &VertexShader{}},
		{"bad size", VertexShaderType, &VertexShader{
			Attributes: []Attribute{{Name: "a", Size: 5}},
			Main:       flatVertex.Main,
		}},
		{"duplicate attribute", VertexShaderType, &VertexShader{
			Attributes: []Attribute{{Name: "a", Size: 2}, {Name: "a", Size: 2}},
			Main:       flatVertex.Main,
		}},
		{"too many varyings", FragmentShaderType, &FragmentShader{Varyings: 5, Main: flatFragment.Main}},
		{"wrong kind", FragmentShaderType, flatVertex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := d.CreateShader(tt.kind)
			require.NoError(t, err)
			d.ShaderSource(s, tt.src)
			err = d.CompileShader(s)
			assert.ErrorIs(t, err, ErrCompile)
			assert.False(t, s.Compiled())
			assert.NotEmpty(t, s.InfoLog())
		})
	}

	_, err := d.CreateShader(Triangles)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestLinkErrors(t *testing.T) {
	d := NewDevice(1, 1)

	v, _ := d.CreateShader(VertexShaderType)
	d.ShaderSource(v, flatVertex)
	f, _ := d.CreateShader(FragmentShaderType)
	d.ShaderSource(f, &FragmentShader{Varyings: 2, Main: flatFragment.Main})

	p := d.CreateProgram()
	require.NoError(t, d.AttachShader(p, v))
	require.NoError(t, d.AttachShader(p, f))
	assert.ErrorIs(t, d.LinkProgram(p), ErrLink, "uncompiled stages")

	require.NoError(t, d.CompileShader(v))
	require.NoError(t, d.CompileShader(f))
	assert.ErrorIs(t, d.LinkProgram(p), ErrLink, "varying mismatch")
	assert.ErrorIs(t, d.UseProgram(p), ErrInvalidOperation)
	assert.ErrorIs(t, d.AttachShader(p, v), ErrInvalidOperation)

	lone := d.CreateProgram()
	require.NoError(t, d.AttachShader(lone, v))
	assert.ErrorIs(t, d.LinkProgram(lone), ErrLink)
}

func TestLookupAndBindErrors(t *testing.T) {
	d := NewDevice(4, 4)

	assert.ErrorIs(t, d.DrawArrays(Triangles, 0, 3), ErrNoProgram)
	assert.ErrorIs(t, d.VertexAttribPointer(0, 3, Float, false, 0, 0), ErrNoBuffer)
	assert.ErrorIs(t, d.BufferData(ArrayBuffer, []float32{1}, StaticDraw), ErrNoBuffer)

	p := buildProgram(t, d, flatVertex, flatFragment)
	assert.Equal(t, -1, d.GetAttribLocation(p, "missing"))
	_, err := d.GetUniformLocation(p, "missing")
	assert.ErrorIs(t, err, ErrNoUniform)

	upload(t, d, p, []float32{0, 0, 0, 1, 1, 0})
	assert.ErrorIs(t, d.DrawArrays(Triangles, 0, 3), ErrInvalidOperation)
	assert.ErrorIs(t, d.DrawArrays(Enum(42), 0, 3), ErrInvalidEnum)

	assert.ErrorIs(t, d.DrawElements(Triangles, 3, UnsignedShort, 0), ErrNoBuffer)
	idx := d.CreateBuffer()
	require.NoError(t, d.BindBuffer(ElementArrayBuffer, idx))
	assert.ErrorIs(t, d.BufferData(ElementArrayBuffer, []float32{0}, StaticDraw), ErrInvalidValue)
	require.NoError(t, d.BufferData(ElementArrayBuffer, []uint16{0, 1}, StaticDraw))
	assert.ErrorIs(t, d.DrawElements(Triangles, 3, UnsignedShort, 0), ErrInvalidOperation)

	loc, err := d.GetUniformLocation(p, "color")
	require.NoError(t, err)
	assert.ErrorIs(t, d.UniformMatrix4fv(loc, false, [16]float32{}), ErrInvalidOperation)
	assert.ErrorIs(t, d.UniformMatrix4fv(loc, true, [16]float32{}), ErrInvalidValue)
}

func TestEnabledAttributeWithoutBuffer(t *testing.T) {
	d := NewDevice(4, 4)
	p := buildProgram(t, d, flatVertex, flatFragment)
	loc := d.GetAttribLocation(p, "coordinates")
	require.Equal(t, 0, loc)
	require.NoError(t, d.EnableVertexAttribArray(loc))

	assert.ErrorIs(t, d.DrawArrays(Triangles, 0, 3), ErrInvalidOperation)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("line_strip")
	assert.True(t, ok)
	assert.Equal(t, LineStrip, m)
	assert.Equal(t, "TRIANGLE_FAN", TriangleFan.String())

	_, ok = ParseMode("QUADS")
	assert.False(t, ok)
}

func TestToImage(t *testing.T) {
	d := NewDevice(3, 2)
	d.ClearColor(1, 0.5, 0, 1)
	require.NoError(t, d.Clear(ColorBufferBit))
	img := d.FrameBuffer().ToImage()
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{255, 128, 0, 255}, img.NRGBAAt(2, 1))
}
