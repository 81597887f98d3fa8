package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 3 (indices 12, 13, 14)
	if m.Translation() != (Vec3{5, 10, 15}) {
		t.Errorf("Translate: got %v, want (5, 10, 15)", m.Translation())
	}
	if m.At(0, 3) != 5 || m.At(2, 3) != 15 {
		t.Errorf("At(row, 3) should read the translation column")
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	if result != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want (11, 22, 33)", result)
	}

	scaled := Scale(2, 2, 2).TransformPoint(Vec3{1, 2, 3})
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("TransformPoint with scale: got %v, want (2, 4, 6)", scaled)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) rotates to approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestProjectionMatchesMathgl(t *testing.T) {
	tests := []struct {
		name string
		got  Mat4
		want mgl32.Mat4
	}{
		{
			name: "perspective",
			got:  Perspective(1, 1, 0.1, 100),
			want: mgl32.Perspective(1, 1, 0.1, 100),
		},
		{
			name: "perspective wide",
			got:  Perspective(float32(math.Pi/3), 16.0/9.0, 0.5, 50),
			want: mgl32.Perspective(float32(math.Pi/3), 16.0/9.0, 0.5, 50),
		},
		{
			name: "ortho image",
			got:  Ortho(0, 640, 0, 480, 0.01, 10),
			want: mgl32.Ortho(0, 640, 0, 480, 0.01, 10),
		},
		{
			name: "look at",
			got:  LookAt(Vec3{0, 5, 5}, Vec3{}, Vec3{0, 1, 0}),
			want: mgl32.LookAtV(mgl32.Vec3{0, 5, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqual(Mat4(tt.want), 1e-5) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMulMatchesMathgl(t *testing.T) {
	a := LookAt(Vec3{1, 2, 3}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	b := Perspective(0.8, 1.5, 0.1, 10)

	got := b.Mul(a)
	want := mgl32.Mat4(b).Mul4(mgl32.Mat4(a))
	if !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateX(0.3)).Mul(RotateZ(-1.1)).Mul(Scale(2, 2, 2))

	inv := m.Inverse()
	if !m.Mul(inv).ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * M^-1 should be identity, got %v", m.Mul(inv))
	}
	if !inv.ApproxEqual(Mat4(mgl32.Mat4(m).Inv()), 1e-5) {
		t.Errorf("Inverse disagrees with mathgl: %v", inv)
	}
}

func TestInverseSingular(t *testing.T) {
	if (Mat4{}).Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestTranspose(t *testing.T) {
	m := Perspective(1, 1, 0.1, 100)
	if m.Transpose().Transpose() != m {
		t.Error("double transpose should be identity operation")
	}
	if m.Transpose().At(3, 2) != m.At(2, 3) {
		t.Error("transpose should swap rows and columns")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
