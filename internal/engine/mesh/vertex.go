package mesh

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/pkg/math"
)

// Vertex is the interleaved layout every mesh uploads: 12 floats, 48 bytes.
type Vertex struct {
	Position  [3]float32 // location 0
	Normal    [3]float32 // location 1
	TexCoords [2]float32 // location 2
	Color     [4]float32 // location 3
}

// Floats per vertex and the attribute offsets in bytes.
const (
	vertexFloats = 12
	vertexStride = vertexFloats * 4

	normalOffset   = 12
	texCoordOffset = 24
	colorOffset    = 32
)

// Column counts of flat vertex tables: position, then normal, texture
// coordinates and color.
const (
	ColsPosition = 3
	ColsNormal   = 6
	ColsTexCoord = 8
	ColsColor    = 12
)

// VerticesFromFloats reads rows of cols floats. Columns 0-2 are the
// position; 3-5 the normal when cols >= 6; 6-7 texture coordinates when
// cols >= 8; 8-11 the color when cols >= 12. Extra columns are ignored.
func VerticesFromFloats(data []float32, cols int) ([]Vertex, error) {
	if cols < ColsPosition {
		return nil, fmt.Errorf("vertex table needs at least 3 columns, got %d: %w", cols, errs.ErrInvalidParameter)
	}
	if len(data)%cols != 0 {
		return nil, fmt.Errorf("%d floats do not form rows of %d: %w", len(data), cols, errs.ErrInvalidParameter)
	}

	vertices := make([]Vertex, len(data)/cols)
	for i := range vertices {
		row := data[i*cols : (i+1)*cols]
		v := &vertices[i]
		copy(v.Position[:], row[0:3])
		if cols >= ColsNormal {
			copy(v.Normal[:], row[3:6])
		}
		if cols >= ColsTexCoord {
			copy(v.TexCoords[:], row[6:8])
		}
		if cols >= ColsColor {
			copy(v.Color[:], row[8:12])
		}
	}
	return vertices, nil
}

// PackVertices writes vertices as rows of cols floats, the inverse of
// VerticesFromFloats for cols 3, 6, 8 or 12.
func PackVertices(vertices []Vertex, cols int) ([]float32, error) {
	switch cols {
	case ColsPosition, ColsNormal, ColsTexCoord, ColsColor:
	default:
		return nil, fmt.Errorf("vertex table with %d columns: %w", cols, errs.ErrInvalidParameter)
	}

	out := make([]float32, 0, len(vertices)*cols)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		if cols >= ColsNormal {
			out = append(out, v.Normal[:]...)
		}
		if cols >= ColsTexCoord {
			out = append(out, v.TexCoords[:]...)
		}
		if cols >= ColsColor {
			out = append(out, v.Color[:]...)
		}
	}
	return out, nil
}

// IndicesFromInt32 converts signed indices; negative values are rejected.
func IndicesFromInt32(data []int32) ([]uint32, error) {
	out := make([]uint32, len(data))
	for i, v := range data {
		if v < 0 {
			return nil, fmt.Errorf("index %d is %d: %w", i, v, errs.ErrInvalidParameter)
		}
		out[i] = uint32(v)
	}
	return out, nil
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extend grows b to contain o.
func (b Bounds) Extend(o Bounds) Bounds {
	return Bounds{
		Min: math.Vec3{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y), Z: min(b.Min.Z, o.Min.Z)},
		Max: math.Vec3{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y), Z: max(b.Max.Z, o.Max.Z)},
	}
}

// BoundsOf returns the box around the vertex positions, zero for no vertices.
func BoundsOf(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	p := vertices[0].Position
	b := Bounds{Min: math.Vec3{X: p[0], Y: p[1], Z: p[2]}, Max: math.Vec3{X: p[0], Y: p[1], Z: p[2]}}
	for _, v := range vertices[1:] {
		p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		b = b.Extend(Bounds{Min: p, Max: p})
	}
	return b
}

func flatten(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*vertexFloats)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoords[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}
