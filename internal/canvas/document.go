package canvas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/san-kum/glcanvas/internal/raster"
)

// ContextKind records which rendering context an element carries.
type ContextKind int

const (
	NoContext ContextKind = iota
	Context2DKind
	WebGLKind
)

func (k ContextKind) String() string {
	switch k {
	case Context2DKind:
		return "2d"
	case WebGLKind:
		return "webgl"
	}
	return "none"
}

type Element struct {
	ID     string
	Width  int
	Height int

	kind ContextKind
	ctx  *Context2D
	gl   *raster.Device
}

func (e *Element) Kind() ContextKind { return e.kind }

// Context2D returns the element's 2D context, creating it on first use.
func (e *Element) Context2D() (*Context2D, error) {
	switch e.kind {
	case Context2DKind:
		return e.ctx, nil
	case WebGLKind:
		return nil, fmt.Errorf("%w: %q has %s, want 2d", ErrContextType, e.ID, e.kind)
	}
	e.ctx = newContext2D(e.Width, e.Height)
	e.kind = Context2DKind
	return e.ctx, nil
}

// WebGL returns the element's software WebGL device, creating it on
// first use.
func (e *Element) WebGL() (*raster.Device, error) {
	switch e.kind {
	case WebGLKind:
		return e.gl, nil
	case Context2DKind:
		return nil, fmt.Errorf("%w: %q has %s, want webgl", ErrContextType, e.ID, e.kind)
	}
	e.gl = raster.NewDevice(e.Width, e.Height)
	e.kind = WebGLKind
	return e.gl, nil
}

// Snapshot returns the element's current pixels. An element without a
// context is fully transparent.
func (e *Element) Snapshot() image.Image {
	switch e.kind {
	case Context2DKind:
		return e.ctx.Image()
	case WebGLKind:
		return e.gl.FrameBuffer().ToImage()
	}
	return image.NewNRGBA(image.Rect(0, 0, e.Width, e.Height))
}

// Document is the set of canvas elements a demo can look up.
type Document struct {
	elements map[string]*Element
	order    []string
}

func NewDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// AddCanvas inserts a canvas element of the given size.
func (d *Document) AddCanvas(id string, width, height int) (*Element, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %q is %dx%d", ErrBadSize, id, width, height)
	}
	if _, ok := d.elements[id]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	e := &Element{ID: id, Width: width, Height: height}
	d.elements[id] = e
	d.order = append(d.order, id)
	return e, nil
}

func (d *Document) GetElementByID(id string) (*Element, error) {
	e, ok := d.elements[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	return e, nil
}

// Elements returns the elements in insertion order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.elements[id])
	}
	return out
}

// Snapshot lays every element's pixels out left to right, top-aligned,
// in insertion order.
func (d *Document) Snapshot() image.Image {
	els := d.Elements()
	if len(els) == 1 {
		return els[0].Snapshot()
	}
	w, h := 0, 0
	for _, e := range els {
		w += e.Width
		h = max(h, e.Height)
	}
	out := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	x := 0
	for _, e := range els {
		r := image.Rect(x, 0, x+e.Width, e.Height)
		draw.Draw(out, r, e.Snapshot(), image.Point{}, draw.Src)
		x += e.Width
	}
	return out
}
