package camera

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/errs"
)

// UnprojectDepthImage turns a depth image into camera-space points using the
// intrinsics. depth holds w*h values row by row; the first row is sampled at
// pixel row h-0.5 and each following row one pixel lower, columns left to
// right from 0.5. Each point (x, y, z) is written to xyz at stride-float
// spacing, in the same order.
func (c *Camera) UnprojectDepthImage(depth, xyz []float32, stride int) error {
	if stride < 3 {
		return fmt.Errorf("unproject stride %d < 3: %w", stride, errs.ErrInvalidParameter)
	}
	n := c.width * c.height
	if len(depth) < n {
		return fmt.Errorf("unproject: depth has %d values, need %d: %w", len(depth), n, errs.ErrInvalidParameter)
	}
	if need := (n-1)*stride + 3; len(xyz) < need {
		return fmt.Errorf("unproject: output has %d floats, need %d: %w", len(xyz), need, errs.ErrInvalidParameter)
	}

	h, w := float32(c.height), float32(c.width)
	in, out := 0, 0
	for y := h - 0.5; y > 0; y-- {
		ry := (y - h + c.cy) / c.fy
		for x := float32(0.5); x < w; x++ {
			z := depth[in]
			in++
			xyz[out] = z * (x - c.cx) / c.fx
			xyz[out+1] = z * ry
			xyz[out+2] = z
			out += stride
		}
	}
	return nil
}
