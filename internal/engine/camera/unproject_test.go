package camera

import (
	"errors"
	"testing"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu/gputest"
)

func unitCamera(t *testing.T) *Camera {
	t.Helper()
	c := New(gputest.New())
	if err := c.SetImageSize(2, 2); err != nil {
		t.Fatal(err)
	}
	c.SetIntrinsics(1, 1, 0, 0)
	return c
}

func TestUnprojectDepthImage(t *testing.T) {
	c := unitCamera(t)
	depth := []float32{1, 1, 1, 1}
	xyz := make([]float32, 12)

	if err := c.UnprojectDepthImage(depth, xyz, 3); err != nil {
		t.Fatal(err)
	}
	want := []float32{
		0.5, -0.5, 1,
		1.5, -0.5, 1,
		0.5, -1.5, 1,
		1.5, -1.5, 1,
	}
	for i := range want {
		if xyz[i] != want[i] {
			t.Fatalf("xyz = %v, want %v", xyz, want)
		}
	}
}

func TestUnprojectScalesWithDepth(t *testing.T) {
	c := unitCamera(t)
	depth := []float32{2, 0, 0, 0}
	xyz := make([]float32, 12)

	if err := c.UnprojectDepthImage(depth, xyz, 3); err != nil {
		t.Fatal(err)
	}
	if xyz[0] != 1 || xyz[1] != -1 || xyz[2] != 2 {
		t.Errorf("first point = %v", xyz[:3])
	}
	if xyz[3] != 0 || xyz[5] != 0 {
		t.Errorf("zero depth should give the origin, got %v", xyz[3:6])
	}
}

func TestUnprojectStride(t *testing.T) {
	c := unitCamera(t)
	xyz := make([]float32, 3*4+3)
	for i := range xyz {
		xyz[i] = -7
	}

	if err := c.UnprojectDepthImage([]float32{1, 1, 1, 1}, xyz, 4); err != nil {
		t.Fatal(err)
	}
	if xyz[4] != 1.5 || xyz[6] != 1 {
		t.Errorf("second point = %v", xyz[4:7])
	}
	// padding between points is left alone
	if xyz[3] != -7 || xyz[7] != -7 {
		t.Errorf("padding overwritten: %v", xyz)
	}
}

func TestUnprojectInvalid(t *testing.T) {
	c := unitCamera(t)
	cases := []struct {
		name   string
		depth  int
		xyz    int
		stride int
	}{
		{"stride", 4, 12, 2},
		{"short depth", 3, 12, 3},
		{"short output", 4, 11, 3},
		{"short strided output", 4, 14, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.UnprojectDepthImage(make([]float32, tc.depth), make([]float32, tc.xyz), tc.stride)
			if !errors.Is(err, errs.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
