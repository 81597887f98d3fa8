package mesh

import "github.com/Faultbox/xgl/pkg/math"

// ComputeNormals sets each vertex normal to the area-weighted average of
// the triangles that use it. Degenerate triangles contribute nothing.
func ComputeNormals(vertices []Vertex, indices []uint32) {
	sums := make([]math.Vec3, len(vertices))
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			continue
		}
		v0, v1, v2 := vec3(vertices[a].Position), vec3(vertices[b].Position), vec3(vertices[c].Position)

		// Cross product length is twice the triangle area
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if n.Length() < 1e-10 {
			continue
		}
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}

	for i, s := range sums {
		vertices[i].Normal = normalOrUp(s)
	}
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on meshes whose faces do not share vertices.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vec3(vertices[idx].Normal))
		}

		avg := normalOrUp(sum)
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func normalOrUp(v math.Vec3) [3]float32 {
	if v.Length() < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return v.Normalize().Array()
}
