package gfx

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func TestRotateMatchesRotationProduct(t *testing.T) {
	tests := []struct {
		axis  Axis
		angle float32
	}{
		{AxisX, 0.3},
		{AxisY, -1.2},
		{AxisZ, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			start := Mul(Rotation(AxisY, 0.4), Rotation(AxisX, 0.9))

			got := start
			got.Rotate(tt.axis, tt.angle)
			want := Mul(Rotation(tt.axis, tt.angle), start)

			if !ApproxEqual(got, want, 1e-6) {
				t.Errorf("in-place rotation differs from product:\n got %v\nwant %v", got, want)
			}
		})
	}
}

func TestRotateKeepsTranslation(t *testing.T) {
	m := Identity()
	m.Translate(1, 2, -6)
	m.RotateZ(0.7)
	m.RotateY(0.2)
	m.RotateX(1.1)

	if m[12] != 1 || m[13] != 2 || m[14] != -6 {
		t.Errorf("translation changed: %v %v %v", m[12], m[13], m[14])
	}
}

func TestRotationsStayOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		m := Identity()
		for i := 0; i < 200; i++ {
			angle := (rng.Float32() - 0.5) * 0.2
			m.Rotate(Axis(rng.Intn(3)), angle)
		}
		if !m.IsOrthonormal(1e-4) {
			t.Fatalf("trial %d: matrix lost orthonormality: %v", trial, m)
		}
	}
}

func TestProjection(t *testing.T) {
	p := Projection(40, 1, 1, 100)
	ang := math32.Tan(20 * math32.Pi / 180)

	if math32.Abs(p[0]-0.5/ang) > 1e-6 {
		t.Errorf("expected p[0]=%f, got %f", 0.5/ang, p[0])
	}
	if p[11] != -1 {
		t.Errorf("expected p[11]=-1, got %f", p[11])
	}
	if math32.Abs(p[10]+101.0/99.0) > 1e-6 {
		t.Errorf("expected p[10]=%f, got %f", -101.0/99.0, p[10])
	}
	if math32.Abs(p[14]+200.0/99.0) > 1e-5 {
		t.Errorf("expected p[14]=%f, got %f", -200.0/99.0, p[14])
	}
}

func TestMulVec4(t *testing.T) {
	m := Identity()
	m.Translate(0, 0, -6)

	got := m.MulVec4(Vec4{1, -1, 0, 1})
	want := Vec4{1, -1, -6, 1}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	s := Scaling(1, 1.5, 1)
	got = s.MulVec4(Vec4{-0.5, 0.5, 0, 1})
	if got[1] != 0.75 {
		t.Errorf("expected scaled y 0.75, got %f", got[1])
	}
}
