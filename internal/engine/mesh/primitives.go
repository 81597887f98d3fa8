package mesh

import (
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/material"
)

// QuadVertices returns a w by h rectangle in the XY plane centered on the
// origin, facing +Z, with texture coordinates covering [0,1].
func QuadVertices(w, h float32) ([]Vertex, []uint32) {
	x, y := w*0.5, h*0.5
	n := [3]float32{0, 0, 1}
	vertices := []Vertex{
		{Position: [3]float32{-x, y, 0}, Normal: n, TexCoords: [2]float32{0, 1}},
		{Position: [3]float32{-x, -y, 0}, Normal: n, TexCoords: [2]float32{0, 0}},
		{Position: [3]float32{x, y, 0}, Normal: n, TexCoords: [2]float32{1, 1}},
		{Position: [3]float32{x, -y, 0}, Normal: n, TexCoords: [2]float32{1, 0}},
	}
	return vertices, []uint32{0, 1, 2, 2, 1, 3}
}

// NewQuad uploads QuadVertices(w, h) with mat.
func NewQuad(dev gpu.Device, w, h float32, mat *material.Material) (*Mesh, error) {
	vertices, indices := QuadVertices(w, h)
	return New(dev, vertices, indices, mat)
}

// axisBar is one unit-long bar made of two crossed quads along axis, 0.2
// wide, colored c.
func axisBar(axis int, c [4]float32) []Vertex {
	// Offsets of the two crossed quads, perpendicular to the bar.
	var across [2][3]float32
	switch axis {
	case 0: // X
		across = [2][3]float32{{0, 0.1, 0}, {0, 0, 0.1}}
	case 1: // Y
		across = [2][3]float32{{0.1, 0, 0}, {0, 0, 0.1}}
	default: // Z
		across = [2][3]float32{{0, 0.1, 0}, {0.1, 0, 0}}
	}

	var tip [3]float32
	tip[axis] = 1

	vertices := make([]Vertex, 0, 8)
	for _, a := range across {
		for _, side := range []float32{-1, 1} {
			for _, along := range []float32{0, 1} {
				var p [3]float32
				for i := range p {
					p[i] = side*a[i] + along*tip[i]
				}
				vertices = append(vertices, Vertex{Position: p, Color: c})
			}
		}
	}
	return vertices
}

// AxisVertices returns colored bars along +X (red), +Y (green) and +Z
// (blue), one unit long.
func AxisVertices() ([]Vertex, []uint32) {
	colors := [3][4]float32{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}

	var vertices []Vertex
	var indices []uint32
	for axis, c := range colors {
		base := uint32(len(vertices))
		vertices = append(vertices, axisBar(axis, c)...)
		for q := uint32(0); q < 2; q++ {
			o := base + q*4
			indices = append(indices, o, o+1, o+2, o+2, o+3, o+1)
		}
	}
	return vertices, indices
}

// NewAxis uploads AxisVertices with mat. The geometry is drawn with its
// vertex colors, so mat is normally an unlit material.
func NewAxis(dev gpu.Device, mat *material.Material) (*Mesh, error) {
	vertices, indices := AxisVertices()
	return New(dev, vertices, indices, mat)
}
