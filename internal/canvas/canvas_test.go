package canvas

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/san-kum/glcanvas/internal/raster"
)

func newDoc(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument()
	if _, err := doc.AddCanvas("a", 64, 48); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AddCanvas("b", 32, 32); err != nil {
		t.Fatal(err)
	}
	return doc
}

func rgba8(img image.Image, x, y int) [4]uint8 {
	r, g, b, a := img.At(x, y).RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestGetElementByID(t *testing.T) {
	doc := newDoc(t)

	e, err := doc.GetElementByID("a")
	if err != nil {
		t.Fatalf("GetElementByID: %v", err)
	}
	if e.Width != 64 || e.Height != 48 {
		t.Errorf("size = %dx%d", e.Width, e.Height)
	}

	if _, err := doc.GetElementByID("missing"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("err = %v, want ErrElementNotFound", err)
	}

	if got := len(doc.Elements()); got != 2 {
		t.Errorf("Elements() len = %d", got)
	}
	if doc.Elements()[0].ID != "a" {
		t.Errorf("order not preserved")
	}
}

func TestAddCanvasErrors(t *testing.T) {
	doc := newDoc(t)
	if _, err := doc.AddCanvas("a", 10, 10); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate: err = %v", err)
	}
	if _, err := doc.AddCanvas("c", 0, 10); !errors.Is(err, ErrBadSize) {
		t.Errorf("zero width: err = %v", err)
	}
}

func TestContextKindIsExclusive(t *testing.T) {
	doc := newDoc(t)
	a, _ := doc.GetElementByID("a")
	b, _ := doc.GetElementByID("b")

	c1, err := a.Context2D()
	if err != nil {
		t.Fatal(err)
	}
	c2, _ := a.Context2D()
	if c1 != c2 {
		t.Error("Context2D should return the same context")
	}
	if _, err := a.WebGL(); !errors.Is(err, ErrContextType) {
		t.Errorf("WebGL on 2d element: err = %v", err)
	}

	if _, err := b.WebGL(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Context2D(); !errors.Is(err, ErrContextType) {
		t.Errorf("Context2D on webgl element: err = %v", err)
	}
	if b.Kind() != WebGLKind || a.Kind() != Context2DKind {
		t.Errorf("kinds = %v, %v", a.Kind(), b.Kind())
	}
}

func TestSnapshotWithoutContext(t *testing.T) {
	doc := newDoc(t)
	e, _ := doc.GetElementByID("b")
	img := e.Snapshot()
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if px := rgba8(img, 5, 5); px[3] != 0 {
		t.Errorf("pixel = %v, want transparent", px)
	}
}

func TestArcFill(t *testing.T) {
	doc := newDoc(t)
	e, _ := doc.GetElementByID("a")
	ctx, _ := e.Context2D()

	if err := ctx.SetFillStyle("green"); err != nil {
		t.Fatal(err)
	}
	ctx.BeginPath()
	ctx.Arc(32, 24, 20, 0, 2*math.Pi)
	if err := ctx.Fill(); err != nil {
		t.Fatal(err)
	}

	img := e.Snapshot()
	center := rgba8(img, 32, 24)
	if !near(center[0], 0) || !near(center[1], 128) || !near(center[2], 0) || center[3] != 255 {
		t.Errorf("center = %v, want green", center)
	}
	if corner := rgba8(img, 1, 1); corner[3] != 0 {
		t.Errorf("corner = %v, want transparent", corner)
	}
}

func TestClearRect(t *testing.T) {
	doc := newDoc(t)
	e, _ := doc.GetElementByID("a")
	ctx, _ := e.Context2D()

	_ = ctx.SetFillStyle("#ff0000")
	ctx.BeginPath()
	ctx.Arc(32, 24, 60, 0, 2*math.Pi)
	if err := ctx.Fill(); err != nil {
		t.Fatal(err)
	}

	ctx.ClearRect(0, 0, 10, 10)
	img := e.Snapshot()
	if px := rgba8(img, 5, 5); px[3] != 0 {
		t.Errorf("cleared pixel = %v", px)
	}
	if px := rgba8(img, 30, 30); px[3] != 255 {
		t.Errorf("kept pixel = %v", px)
	}

	ctx.ClearRect(0, 0, 64, 48)
	if px := rgba8(e.Snapshot(), 30, 30); px[3] != 0 {
		t.Errorf("after full clear pixel = %v", px)
	}
}

func TestFillText(t *testing.T) {
	doc := newDoc(t)
	e, _ := doc.GetElementByID("a")
	ctx, _ := e.Context2D()

	if err := ctx.SetFont("24px Arial"); err != nil {
		t.Fatal(err)
	}
	_ = ctx.SetFillStyle("green")
	if err := ctx.FillText("Balls: 1", 2, 30); err != nil {
		t.Fatal(err)
	}

	img := e.Snapshot()
	inked := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgba8(img, x, y)[3] > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("FillText drew nothing")
	}
	if ctx.Font() != "24px Arial" {
		t.Errorf("Font() = %q", ctx.Font())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b float64
		wantErr bool
	}{
		{"green", 0, 128.0 / 255, 0, false},
		{"RED", 1, 0, 0, false},
		{"#00f", 0, 0, 1, false},
		{"#ffffff", 1, 1, 1, false},
		{"#12", 0, 0, 0, true},
		{"#gggggg", 0, 0, 0, true},
		{"chartreuse-ish", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadColor) {
					t.Errorf("err = %v, want ErrBadColor", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(c.R-tt.r) > 1e-3 || math.Abs(c.G-tt.g) > 1e-3 || math.Abs(c.B-tt.b) > 1e-3 {
				t.Errorf("got %+v", c)
			}
		})
	}

	if c, err := ParseColor("transparent"); err != nil || c.A != 0 {
		t.Errorf("transparent = %+v, %v", c, err)
	}
}

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"24px Arial", 24, false},
		{"20pt Calibri", 80.0 / 3, false},
		{"bold 12px serif", 12, false},
		{"Arial", 0, true},
		{"-3px Arial", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFontSize(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadFont) {
					t.Errorf("err = %v, want ErrBadFont", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentSnapshotComposes(t *testing.T) {
	doc := newDoc(t)
	b, _ := doc.GetElementByID("b")
	gl, err := b.WebGL()
	if err != nil {
		t.Fatal(err)
	}
	gl.ClearColor(1, 0, 0, 1)
	if err := gl.Clear(raster.ColorBufferBit); err != nil {
		t.Fatal(err)
	}

	img := doc.Snapshot()
	if img.Bounds().Dx() != 96 || img.Bounds().Dy() != 48 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if px := rgba8(img, 70, 10); px != [4]uint8{255, 0, 0, 255} {
		t.Errorf("webgl pixel = %v", px)
	}
	if px := rgba8(img, 70, 40); px[3] != 0 {
		t.Errorf("padding pixel = %v", px)
	}
}
