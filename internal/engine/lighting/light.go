// Package lighting defines the light sources a scene renders with.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/xgl/pkg/math"
)

// Kind is the light type the shaders switch on, uploaded as lightType.
type Kind int32

const (
	KindPoint       Kind = 1
	KindDirectional Kind = 2
	KindSpot        Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindDirectional:
		return "directional"
	case KindSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is one of Point, Directional or Spot.
type Light interface {
	Kind() Kind
	light()
}

// Point emits from Position in every direction. Color is RGBA; shaders use
// the RGB part.
type Point struct {
	Position math.Vec3
	Color    math.Vec4
}

// Directional lights every surface from Direction, like the sun.
type Directional struct {
	Direction math.Vec3
	Color     math.Vec4
}

// Spot emits a cone from Position along Direction. CutOff and OuterCutOff
// are cosines of the inner and outer cone half-angles; intensity fades
// between them.
type Spot struct {
	Position    math.Vec3
	Direction   math.Vec3
	Color       math.Vec4
	CutOff      float32
	OuterCutOff float32
}

func (Point) Kind() Kind { return KindPoint }
func (Directional) Kind() Kind { return KindDirectional }
func (Spot) Kind() Kind { return KindSpot }

func (Point) light() {}
func (Directional) light() {}
func (Spot) light() {}

// White is full-intensity white light.
var White = math.Vec4{X: 1, Y: 1, Z: 1, W: 1}

// DefaultPoint is the light a scene uses when it has none: white, at
// (3, -5, -2).
func DefaultPoint() Point {
	return Point{Position: math.Vec3{X: 3, Y: -5, Z: -2}, Color: White}
}

// NewSpot builds a spot light from cone half-angles in radians.
func NewSpot(position, direction math.Vec3, color math.Vec4, inner, outer float32) Spot {
	return Spot{
		Position:    position,
		Direction:   direction.Normalize(),
		Color:       color,
		CutOff:      float32(gomath.Cos(float64(inner))),
		OuterCutOff: float32(gomath.Cos(float64(outer))),
	}
}
