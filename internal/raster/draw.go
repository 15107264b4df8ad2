package raster

import (
	"fmt"

	"github.com/chewxy/math32"
)

// vertex is a processed vertex in window space. y grows downwards.
type vertex struct {
	x, y, z float32
	invW    float32
	size    float32
	varying [4]float32
	clipped bool
}

func (d *Device) DrawArrays(mode Enum, first, count int) error {
	if !isMode(mode) {
		return fmt.Errorf("%w: draw mode %v", ErrInvalidEnum, mode)
	}
	if first < 0 || count < 0 {
		return fmt.Errorf("%w: first %d count %d", ErrInvalidValue, first, count)
	}
	idx := make([]int, count)
	for i := range idx {
		idx[i] = first + i
	}
	return d.draw(mode, idx)
}

// DrawElements draws count indices read from the element array buffer
// starting at byte offset.
func (d *Device) DrawElements(mode Enum, count int, typ Enum, offset int) error {
	if !isMode(mode) {
		return fmt.Errorf("%w: draw mode %v", ErrInvalidEnum, mode)
	}
	if typ != UnsignedShort {
		return fmt.Errorf("%w: index type %v", ErrInvalidEnum, typ)
	}
	if count < 0 || offset < 0 || offset%2 != 0 {
		return fmt.Errorf("%w: count %d offset %d", ErrInvalidValue, count, offset)
	}
	if d.elementBuf == nil {
		return fmt.Errorf("%w: element array", ErrNoBuffer)
	}
	start := offset / 2
	if start+count > len(d.elementBuf.indices) {
		return fmt.Errorf("%w: %d indices from %d, buffer holds %d",
			ErrInvalidOperation, count, start, len(d.elementBuf.indices))
	}
	idx := make([]int, count)
	for i, v := range d.elementBuf.indices[start : start+count] {
		idx[i] = int(v)
	}
	return d.draw(mode, idx)
}

func (d *Device) draw(mode Enum, idx []int) error {
	p := d.program
	if p == nil {
		return ErrNoProgram
	}
	d.drawCalls++

	verts, err := d.processVertices(p, idx)
	if err != nil {
		return err
	}

	u := Uniforms{values: p.values}
	fs := p.fs.fragment
	switch mode {
	case Points:
		for _, v := range verts {
			d.point(v, fs, u)
		}
	case Lines:
		for i := 0; i+1 < len(verts); i += 2 {
			d.line(verts[i], verts[i+1], fs, u)
		}
	case LineStrip, LineLoop:
		for i := 0; i+1 < len(verts); i++ {
			d.line(verts[i], verts[i+1], fs, u)
		}
		if mode == LineLoop && len(verts) > 2 {
			d.line(verts[len(verts)-1], verts[0], fs, u)
		}
	case Triangles:
		for i := 0; i+2 < len(verts); i += 3 {
			d.triangle(verts[i], verts[i+1], verts[i+2], fs, u)
		}
	case TriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			if i%2 == 0 {
				d.triangle(verts[i], verts[i+1], verts[i+2], fs, u)
			} else {
				d.triangle(verts[i+1], verts[i], verts[i+2], fs, u)
			}
		}
	case TriangleFan:
		for i := 1; i+1 < len(verts); i++ {
			d.triangle(verts[0], verts[i], verts[i+1], fs, u)
		}
	}
	return nil
}

func (d *Device) processVertices(p *Program, idx []int) ([]vertex, error) {
	vs := p.vs.vertex
	u := Uniforms{values: p.values}
	attrs := make([][4]float32, len(vs.Attributes))
	out := make([]vertex, len(idx))

	for n, i := range idx {
		for loc := range attrs {
			v, err := d.fetch(loc, i)
			if err != nil {
				return nil, err
			}
			attrs[loc] = v
		}
		out[n] = d.toWindow(vs.Main(attrs, u))
	}
	return out, nil
}

func (d *Device) fetch(loc, i int) ([4]float32, error) {
	v := [4]float32{0, 0, 0, 1}
	if loc >= MaxVertexAttribs {
		return v, nil
	}
	a := d.attribs[loc]
	if !a.enabled {
		return v, nil
	}
	if a.buf == nil {
		return v, fmt.Errorf("%w: attribute %d has no buffer", ErrInvalidOperation, loc)
	}
	stride := a.stride
	if stride == 0 {
		stride = a.size
	}
	base := a.offset + i*stride
	if i < 0 || base+a.size > len(a.buf.floats) {
		return v, fmt.Errorf("%w: vertex %d past end of attribute %d buffer", ErrInvalidOperation, i, loc)
	}
	copy(v[:a.size], a.buf.floats[base:base+a.size])
	return v, nil
}

func (d *Device) toWindow(o VertexOut) vertex {
	w := o.Position[3]
	if w <= 0 {
		return vertex{clipped: true}
	}
	invW := 1 / w
	nx := o.Position[0] * invW
	ny := o.Position[1] * invW
	nz := o.Position[2] * invW

	vp := d.viewport
	wx := float32(vp.x) + (nx+1)*0.5*float32(vp.w)
	wy := float32(vp.y) + (ny+1)*0.5*float32(vp.h)

	size := o.PointSize
	if size < 1 {
		size = 1
	}
	return vertex{
		x:       wx,
		y:       float32(d.fb.Height) - wy,
		z:       (nz + 1) * 0.5,
		invW:    invW,
		size:    size,
		varying: o.Varying,
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func (d *Device) triangle(a, b, c vertex, fs *FragmentShader, u Uniforms) {
	if a.clipped || b.clipped || c.clipped {
		return
	}
	area := edge(a.x, a.y, b.x, b.y, c.x, c.y)
	if math32.Abs(area) < 1e-8 {
		return
	}
	inv := 1 / area

	minX := clampInt(int(math32.Floor(math32.Min(a.x, math32.Min(b.x, c.x)))), 0, d.fb.Width-1)
	maxX := clampInt(int(math32.Ceil(math32.Max(a.x, math32.Max(b.x, c.x)))), 0, d.fb.Width-1)
	minY := clampInt(int(math32.Floor(math32.Min(a.y, math32.Min(b.y, c.y)))), 0, d.fb.Height-1)
	maxY := clampInt(int(math32.Ceil(math32.Max(a.y, math32.Max(b.y, c.y)))), 0, d.fb.Height-1)

	for sy := minY; sy <= maxY; sy++ {
		py := float32(sy) + 0.5
		for sx := minX; sx <= maxX; sx++ {
			px := float32(sx) + 0.5
			w0 := edge(b.x, b.y, c.x, c.y, px, py) * inv
			w1 := edge(c.x, c.y, a.x, a.y, px, py) * inv
			w2 := edge(a.x, a.y, b.x, b.y, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.z + w1*b.z + w2*c.z

			// Varyings are interpolated in clip space, not screen space.
			pa, pb, pc := w0*a.invW, w1*b.invW, w2*c.invW
			norm := 1 / (pa + pb + pc)
			var vary [4]float32
			for k := range vary {
				vary[k] = (pa*a.varying[k] + pb*b.varying[k] + pc*c.varying[k]) * norm
			}
			d.fragment(sx, sy, z, vary, fs, u)
		}
	}
}

func (d *Device) line(a, b vertex, fs *FragmentShader, u Uniforms) {
	if a.clipped || b.clipped {
		return
	}
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := int(math32.Floor(a.x + t*dx))
		y := int(math32.Floor(a.y + t*dy))
		if x < 0 || y < 0 || x >= d.fb.Width || y >= d.fb.Height {
			continue
		}
		var vary [4]float32
		for k := range vary {
			vary[k] = a.varying[k] + t*(b.varying[k]-a.varying[k])
		}
		d.fragment(x, y, a.z+t*(b.z-a.z), vary, fs, u)
	}
}

// point draws a size×size square centered on the vertex.
func (d *Device) point(v vertex, fs *FragmentShader, u Uniforms) {
	if v.clipped {
		return
	}
	n := int(math32.Round(v.size))
	left := int(math32.Floor(v.x - float32(n)/2 + 0.5))
	top := int(math32.Floor(v.y - float32(n)/2 + 0.5))
	for y := top; y < top+n; y++ {
		if y < 0 || y >= d.fb.Height {
			continue
		}
		for x := left; x < left+n; x++ {
			if x < 0 || x >= d.fb.Width {
				continue
			}
			d.fragment(x, y, v.z, v.varying, fs, u)
		}
	}
}

func (d *Device) fragment(x, y int, z float32, vary [4]float32, fs *FragmentShader, u Uniforms) {
	if z < 0 || z > 1 {
		return
	}
	i := y*d.fb.Width + x
	if d.depthTest {
		if !depthPass(d.depthFunc, z, d.fb.Depth[i]) {
			return
		}
		d.fb.Depth[i] = z
	}

	c := toRGBA8(fs.Main(vary, u))
	o := i * 4
	d.fb.Color[o] = c[0]
	d.fb.Color[o+1] = c[1]
	d.fb.Color[o+2] = c[2]
	d.fb.Color[o+3] = c[3]
	d.fragsWritten++
}

func depthPass(fn Enum, z, stored float32) bool {
	switch fn {
	case Never:
		return false
	case Less:
		return z < stored
	case Equal:
		return z == stored
	case LEqual:
		return z <= stored
	case Greater:
		return z > stored
	case NotEqual:
		return z != stored
	case GEqual:
		return z >= stored
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
