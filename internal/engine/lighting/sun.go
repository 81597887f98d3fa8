package lighting

import (
	gomath "math"

	"github.com/Faultbox/xgl/pkg/math"
)

// SunDirection converts compass angles in degrees to the unit vector
// pointing from the scene towards the sun. Longitude rotates around +Y
// starting at +Z; latitude is the elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	// Spherical to Cartesian
	x := float32(gomath.Cos(latRad) * gomath.Sin(lonRad))
	y := float32(gomath.Sin(latRad))
	z := float32(gomath.Cos(latRad) * gomath.Cos(lonRad))

	return math.Vec3{X: x, Y: y, Z: z}
}

// Sun returns a directional light shining from the sun position given by
// longitude and latitude in degrees.
func Sun(longitude, latitude float32, color math.Vec4) Directional {
	return Directional{
		Direction: SunDirection(longitude, latitude).Scale(-1),
		Color:     color,
	}
}
