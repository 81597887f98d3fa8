package camera

import (
	gomath "math"

	"github.com/Faultbox/xgl/pkg/math"
)

// Orbit positions a camera on a sphere around a center point.
type Orbit struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // elevation above the XZ plane, radians
	Yaw      float32 // rotation around +Y, radians; 0 looks down -Z
}

// NewOrbit returns an orbit matching the camera's default placement at
// (0,5,5) around the origin.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance: float32(gomath.Sqrt(50)),
		Pitch:    gomath.Pi / 4,
	}
}

// Eye returns the camera position in world space.
func (o *Orbit) Eye() math.Vec3 {
	x := o.Distance * float32(gomath.Cos(float64(o.Pitch))*gomath.Sin(float64(o.Yaw)))
	y := o.Distance * float32(gomath.Sin(float64(o.Pitch)))
	z := o.Distance * float32(gomath.Cos(float64(o.Pitch))*gomath.Cos(float64(o.Yaw)))

	return o.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// Apply points c at the orbit center from the orbit eye.
func (o *Orbit) Apply(c *Camera) {
	c.LookAt(o.Eye(), o.Center, math.Vec3{X: 0, Y: 1, Z: 0})
}

// FitToBounds centers the orbit on a bounding box and backs off far enough
// that a camera with the given vertical field of view sees all of it.
func (o *Orbit) FitToBounds(lo, hi math.Vec3, fovY float32) {
	o.Center = lo.Add(hi).Scale(0.5)

	radius := hi.Sub(lo).Length() / 2
	if radius == 0 {
		radius = 1
	}
	o.Distance = radius / float32(gomath.Sin(float64(fovY)/2))
}
