package mesh

import "testing"

func TestComputeNormals(t *testing.T) {
	vertices, indices := QuadVertices(2, 2)
	for i := range vertices {
		vertices[i].Normal = [3]float32{}
	}

	ComputeNormals(vertices, indices)
	for i, v := range vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	vertices := []Vertex{{}, {}, {}}
	ComputeNormals(vertices, []uint32{0, 1, 2})
	if vertices[0].Normal != [3]float32{0, 1, 0} {
		t.Errorf("degenerate triangle normal = %v, want +Y fallback", vertices[0].Normal)
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	SmoothNormals(vertices)

	if vertices[0].Normal != vertices[1].Normal {
		t.Error("shared position should share a normal")
	}
	n := vertices[0].Normal
	if d := n[0] - n[1]; d > 1e-6 || d < -1e-6 || n[2] != 0 {
		t.Errorf("averaged normal = %v", n)
	}
	if vertices[2].Normal != [3]float32{0, 0, 1} {
		t.Error("lone vertex normal should be untouched")
	}
}
