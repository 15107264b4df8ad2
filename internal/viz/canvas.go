package viz

import (
	"image"
	"image/color"
	"math/bits"
	"strings"
)

// blank is the empty braille cell. A cell's dots are the low eight bits
// above it.
const blank = 0x2800

// dotBit maps a sub-pixel inside a 2x4 cell to its braille dot:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBit = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a terminal raster of Width x Height braille cells, so
// 2*Width x 4*Height sub-pixels.
type Canvas struct {
	Width, Height int
	cells         []uint8
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Width: w, Height: h, cells: make([]uint8, w*h)}
}

// Set inks the sub-pixel (x, y). Points outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.cells[(y/4)*c.Width+x/2] |= dotBit[y%4][x%2]
}

// Cell returns the rune drawn at character cell (col, row).
func (c *Canvas) Cell(col, row int) rune {
	return blank + rune(c.cells[row*c.Width+col])
}

func (c *Canvas) Clear() {
	clear(c.cells)
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width*3 + 1) * c.Height)
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteRune(c.Cell(col, row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// inkThreshold is the summed 16-bit channel difference above which a
// pixel counts as drawn.
const inkThreshold = 0x3000

// FromImage redraws the canvas from img, nearest-neighbour sampled to
// the sub-pixel grid. A sub-pixel is set when its source pixel differs
// from the image's top-left pixel, which stands in for the background.
func (c *Canvas) FromImage(img image.Image) {
	c.Clear()
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}

	cw, ch := c.Width*2, c.Height*4
	bg := img.At(b.Min.X, b.Min.Y)
	for sy := 0; sy < ch; sy++ {
		y := b.Min.Y + sy*b.Dy()/ch
		for sx := 0; sx < cw; sx++ {
			x := b.Min.X + sx*b.Dx()/cw
			if inked(img.At(x, y), bg) {
				c.Set(sx, sy)
			}
		}
	}
}

func inked(px, bg color.Color) bool {
	r1, g1, b1, a1 := px.RGBA()
	r2, g2, b2, a2 := bg.RGBA()
	d := absInt(int(r1)-int(r2)) + absInt(int(g1)-int(g2)) +
		absInt(int(b1)-int(b2)) + absInt(int(a1)-int(a2))
	return d > inkThreshold
}

// Dots counts the set sub-pixels.
func (c *Canvas) Dots() int {
	n := 0
	for _, m := range c.cells {
		n += bits.OnesCount8(m)
	}
	return n
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
