package canvas

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Context2D is the immediate-mode 2D context of a canvas element.
// Methods mirror CanvasRenderingContext2D; drawing goes to a gg context.
type Context2D struct {
	dc     *gg.Context
	width  int
	height int

	fillStyle string
	font      string
	face      text.Face
}

const (
	defaultFillStyle = "black"
	defaultFont      = "10px sans-serif"
)

func newContext2D(w, h int) *Context2D {
	c := &Context2D{dc: gg.NewContext(w, h), width: w, height: h}
	_ = c.SetFillStyle(defaultFillStyle)
	c.font = defaultFont
	return c
}

func (c *Context2D) FillStyle() string { return c.fillStyle }
func (c *Context2D) Font() string      { return c.font }

// ClearRect makes the rectangle transparent.
func (c *Context2D) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= float64(c.width) && y+h >= float64(c.height) {
		c.dc.Clear()
		return
	}
	x0, y0 := max(int(x), 0), max(int(y), 0)
	x1, y1 := min(int(x+w), c.width), min(int(y+h), c.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (c *Context2D) BeginPath() {
	c.dc.ClearPath()
}

// Arc adds a clockwise circular arc to the current path. Angles are in
// radians.
func (c *Context2D) Arc(x, y, r, startAngle, endAngle float64) {
	c.dc.DrawArc(x, y, r, startAngle, endAngle)
}

// Fill fills the current path with the fill style. The path is kept.
func (c *Context2D) Fill() error {
	return c.dc.FillPreserve()
}

func (c *Context2D) SetFillStyle(style string) error {
	col, err := ParseColor(style)
	if err != nil {
		return err
	}
	c.fillStyle = style
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	return nil
}

// SetFont parses CSS font shorthand. Only the size is honoured.
func (c *Context2D) SetFont(font string) error {
	size, err := ParseFontSize(font)
	if err != nil {
		return err
	}
	f, err := face(size)
	if err != nil {
		return err
	}
	c.font = font
	c.face = f
	c.dc.SetFont(f)
	return nil
}

// FillText draws s with its baseline at y. Without a prior SetFont the
// default 10px face is used.
func (c *Context2D) FillText(s string, x, y float64) error {
	if c.face == nil {
		if err := c.SetFont(c.font); err != nil {
			return err
		}
	}
	c.dc.DrawString(s, x, y)
	return nil
}

func (c *Context2D) Image() image.Image {
	return c.dc.Image()
}
