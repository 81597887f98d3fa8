// Package camera provides the offscreen camera: a pinhole or conventional
// projection, a pose, and the render targets the scene draws into.
package camera

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/pkg/math"
)

// DefaultSamples is the requested MSAA sample count. It is clamped to the
// device's MAX_SAMPLES when the targets are created.
const DefaultSamples = 16

// Camera owns three offscreen render targets sized to its image and produces
// the view and projection matrices for a render pass. It is not safe for
// concurrent use and must be driven from the GL context's thread.
type Camera struct {
	dev gpu.Device

	fx, fy, cx, cy float32
	width, height  int
	near, far      float32

	view       math.Mat4
	projection math.Mat4

	// intrinsics selects the pinhole projection; dirty marks the cached
	// projection stale.
	intrinsics bool
	dirty      bool

	samples int32
	targets *renderTargets // nil until the first activation
	current Target
}

// Option configures a Camera at construction.
type Option func(*Camera)

// WithSamples sets the requested MSAA sample count.
func WithSamples(n int) Option {
	return func(c *Camera) {
		if n > 0 {
			c.samples = int32(n)
		}
	}
}

// WithImageSize sets the initial image size. Non-positive sizes are ignored.
func WithImageSize(width, height int) Option {
	return func(c *Camera) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// New returns a camera at (0,5,5) looking at the origin with a 1000x1000
// image, fx=fy=1000, cx=cy=500, clip 0.01..10 and a conventional
// perspective(1 rad, 1, 0.1, 100) projection.
func New(dev gpu.Device, opts ...Option) *Camera {
	c := &Camera{
		dev:        dev,
		fx:         1000,
		fy:         1000,
		cx:         500,
		cy:         500,
		width:      1000,
		height:     1000,
		near:       0.01,
		far:        10,
		projection: math.Perspective(1, 1, 0.1, 100),
		samples:    DefaultSamples,
	}
	c.LookAt(math.Vec3{X: 0, Y: 5, Z: 5}, math.Vec3{}, math.Vec3{X: 0, Y: 1, Z: 0})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetIntrinsics switches to the pinhole projection with the given focal
// lengths and principal point, in pixels.
func (c *Camera) SetIntrinsics(fx, fy, cx, cy float32) {
	c.fx, c.fy, c.cx, c.cy = fx, fy, cx, cy
	c.intrinsics = true
	c.dirty = true
}

// IntrinsicMatrix returns K = [[fx 0 cx] [0 fy cy] [0 0 1]].
func (c *Camera) IntrinsicMatrix() math.Mat3 {
	return math.Mat3FromRows([9]float32{
		c.fx, 0, c.cx,
		0, c.fy, c.cy,
		0, 0, 1,
	})
}

// SetIntrinsicMatrix reads fx, fy, cx and cy from K. A non-zero skew
// element K(0,1) is rejected and leaves the camera unchanged.
func (c *Camera) SetIntrinsicMatrix(k math.Mat3) error {
	if skew := k.At(0, 1); skew != 0 {
		return fmt.Errorf("axis skew %g not supported: %w", skew, errs.ErrInvalidParameter)
	}
	c.SetIntrinsics(k.At(0, 0), k.At(1, 1), k.At(0, 2), k.At(1, 2))
	return nil
}

// PrincipalPoint returns (cx, cy).
func (c *Camera) PrincipalPoint() math.Vec2 {
	return math.Vec2{X: c.cx, Y: c.cy}
}

// FocalLength returns (fx, fy).
func (c *Camera) FocalLength() math.Vec2 {
	return math.Vec2{X: c.fx, Y: c.fy}
}

// ImageSize returns the render target size in pixels.
func (c *Camera) ImageSize() (width, height int) {
	return c.width, c.height
}

// SetImageSize resizes the image. A changed size destroys the render
// targets; they are recreated at the new size on the next activation.
func (c *Camera) SetImageSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("image size %dx%d: %w", width, height, errs.ErrInvalidParameter)
	}
	if width == c.width && height == c.height {
		return nil
	}
	c.width, c.height = width, height
	c.dirty = true
	c.destroyTargets()
	return nil
}

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float32 {
	return float32(c.width) / float32(c.height)
}

// ClipNearFar returns the clip distances used by the pinhole projection.
func (c *Camera) ClipNearFar() (near, far float32) {
	return c.near, c.far
}

// SetClipNearFar sets the clip distances used by the pinhole projection.
func (c *Camera) SetClipNearFar(near, far float32) {
	c.near, c.far = near, far
	c.dirty = true
}

// ProjectionMatrix returns the current projection. In pinhole mode it is
// rebuilt from the intrinsics when stale.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	c.updateProjection()
	return c.projection
}

// SetProjectionMatrix switches to a conventional projection used as given.
func (c *Camera) SetProjectionMatrix(m math.Mat4) {
	c.projection = m
	c.intrinsics = false
	c.dirty = false
}

// IntrinsicsProjection reports whether the pinhole projection is active.
func (c *Camera) IntrinsicsProjection() bool {
	return c.intrinsics
}

// updateProjection maps the calibrated pinhole into clip space: the
// perspective part keeps pixel units, the orthographic part maps pixels and
// the near..far range to normalized device coordinates.
func (c *Camera) updateProjection() {
	if !c.dirty {
		return
	}
	if c.intrinsics {
		persp := math.Mat4{
			c.fx, 0, 0, 0,
			0, c.fy, 0, 0,
			-c.cx, -c.cy, c.near + c.far, -1,
			0, 0, c.near * c.far, 0,
		}
		ndc := math.Ortho(0, float32(c.width), 0, float32(c.height), c.near, c.far)
		c.projection = ndc.Mul(persp)
	}
	c.dirty = false
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return c.view
}

// SetViewMatrix sets the world-to-camera transform.
func (c *Camera) SetViewMatrix(v math.Mat4) {
	c.view = v
}

// LookAt places the camera at eye looking at at.
func (c *Camera) LookAt(eye, at, up math.Vec3) {
	c.view = math.LookAt(eye, at, up)
}

// Pose returns the camera-to-world transform, the inverse of the view.
func (c *Camera) Pose() math.Mat4 {
	return c.view.Inverse()
}

// SetPose sets the camera-to-world transform.
func (c *Camera) SetPose(pose math.Mat4) {
	c.view = pose.Inverse()
}

// Position returns the camera origin in world space.
func (c *Camera) Position() math.Vec3 {
	return c.Pose().Translation()
}
