package raster

import (
	"image"
	"image/color"
)

// FrameBuffer holds the render target as flat slices, rows top-down.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float32 // per pixel, len = W*H
}

// NewFrameBuffer allocates a transparent color buffer with depth 1.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		Depth:  make([]float32, n),
	}
	fb.ClearDepth(1)
	return fb
}

func (fb *FrameBuffer) ClearColor(c [4]uint8) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = c[0]
		fb.Color[i+1] = c[1]
		fb.Color[i+2] = c[2]
		fb.Color[i+3] = c[3]
	}
}

func (fb *FrameBuffer) ClearDepth(d float32) {
	for i := range fb.Depth {
		fb.Depth[i] = d
	}
}

// At returns the color at image coordinates (x, y), y growing downwards.
func (fb *FrameBuffer) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.NRGBA{}
	}
	i := (y*fb.Width + x) * 4
	return color.NRGBA{R: fb.Color[i], G: fb.Color[i+1], B: fb.Color[i+2], A: fb.Color[i+3]}
}

// DepthAt returns the stored depth at image coordinates (x, y).
func (fb *FrameBuffer) DepthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

// ToImage copies the color buffer into a new image.
func (fb *FrameBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func toRGBA8(c [4]float32) [4]uint8 {
	return [4]uint8{toByte(c[0]), toByte(c[1]), toByte(c[2]), toByte(c[3])}
}
