package mesh

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/gpu/gputest"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/shader"
	"github.com/Faultbox/xgl/pkg/math"
)

func TestVertexLayout(t *testing.T) {
	var v Vertex
	if unsafe.Sizeof(v) != vertexStride {
		t.Errorf("Vertex is %d bytes, want %d", unsafe.Sizeof(v), vertexStride)
	}
	if unsafe.Offsetof(v.Normal) != normalOffset || unsafe.Offsetof(v.TexCoords) != texCoordOffset || unsafe.Offsetof(v.Color) != colorOffset {
		t.Error("attribute offsets do not match the struct layout")
	}
}

func TestNewUploadsOnce(t *testing.T) {
	dev := gputest.New()
	vertices, indices := QuadVertices(2, 1)

	m, err := New(dev, vertices, indices, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(dev.VertexArrays) != 1 || len(dev.Buffers) != 2 {
		t.Errorf("vao=%d buffers=%d", len(dev.VertexArrays), len(dev.Buffers))
	}
	data := dev.CallsNamed("BufferDataFloat32")
	if len(data) != 1 || data[0].Args[1] != 4*12 || data[0].Args[2] != gpu.StaticDraw {
		t.Errorf("vertex upload = %v", data)
	}

	attribs := dev.CallsNamed("VertexAttribPointer")
	want := [][]any{
		{uint32(0), int32(3), int32(48), 0},
		{uint32(1), int32(3), int32(48), 12},
		{uint32(2), int32(2), int32(48), 24},
		{uint32(3), int32(4), int32(48), 32},
	}
	if len(attribs) != len(want) {
		t.Fatalf("got %d attribute pointers", len(attribs))
	}
	for i, w := range want {
		for j := range w {
			if attribs[i].Args[j] != w[j] {
				t.Errorf("attribute %d = %v, want %v", i, attribs[i].Args, w)
				break
			}
		}
	}

	m.Vertices()[0].Position[0] = 42
	m.Draw(nil)
	if dev.Count("BufferDataFloat32") != 1 {
		t.Error("host edits must not be re-uploaded")
	}
}

func TestNewInvalid(t *testing.T) {
	dev := gputest.New()
	vertices, _ := QuadVertices(1, 1)

	cases := map[string]struct {
		vertices []Vertex
		indices  []uint32
	}{
		"no vertices":  {nil, []uint32{0}},
		"no indices":   {vertices, nil},
		"index bounds": {vertices, []uint32{0, 1, 4}},
	}
	for name, tc := range cases {
		if _, err := New(dev, tc.vertices, tc.indices, nil); !errors.Is(err, errs.ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", name, err)
		}
	}
	if len(dev.VertexArrays) != 0 || len(dev.Buffers) != 0 {
		t.Error("rejected meshes must not allocate buffers")
	}
}

func TestDrawWithMaterial(t *testing.T) {
	dev := gputest.New()
	sh, err := shader.Compile(dev, "v", "f")
	if err != nil {
		t.Fatal(err)
	}
	own := material.New(dev, sh)
	m, err := NewQuad(dev, 1, 1, own)
	if err != nil {
		t.Fatal(err)
	}

	m.Draw(nil)
	if len(dev.Draws) != 1 || dev.Draws[0].Count != 6 || dev.Draws[0].Program != sh.Program() {
		t.Fatalf("draws = %+v", dev.Draws)
	}
	if dev.VertexArray != 0 {
		t.Error("Draw should unbind the vertex array")
	}

	other, err := shader.Compile(dev, "v", "f")
	if err != nil {
		t.Fatal(err)
	}
	override := material.New(dev, other)
	m.Draw(override)
	if dev.Draws[1].Program != other.Program() {
		t.Error("override material should win")
	}
}

func TestDrawWithoutMaterial(t *testing.T) {
	dev := gputest.New()
	m, err := NewQuad(dev, 1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.UseProgram(77)
	m.Draw(nil)
	if dev.Draws[0].Program != 77 {
		t.Error("without a material the current program should be used")
	}
}

func TestSharedOwnership(t *testing.T) {
	dev := gputest.New()
	mat := material.New(dev, nil)
	m, err := NewQuad(dev, 1, 1, mat)
	if err != nil {
		t.Fatal(err)
	}
	if mat.Refs() != 2 {
		t.Fatalf("material refs = %d, want 2", mat.Refs())
	}

	m.Retain()
	m.Release()
	if len(dev.VertexArrays) != 1 {
		t.Fatal("buffers deleted while an owner remains")
	}
	m.Release()
	if len(dev.VertexArrays) != 0 || len(dev.Buffers) != 0 {
		t.Error("last release should delete the buffers")
	}
	if mat.Refs() != 1 {
		t.Errorf("material refs = %d after mesh release, want 1", mat.Refs())
	}

	m.Release()
	if mat.Refs() != 1 {
		t.Error("releasing a dead mesh must not release its material again")
	}
}

func TestSetMaterial(t *testing.T) {
	dev := gputest.New()
	a := material.New(dev, nil)
	b := material.New(dev, nil)
	m, err := NewQuad(dev, 1, 1, a)
	if err != nil {
		t.Fatal(err)
	}
	m.SetMaterial(b)
	if a.Refs() != 1 || b.Refs() != 2 || m.Material() != b {
		t.Errorf("refs a=%d b=%d", a.Refs(), b.Refs())
	}
}

func TestQuadVertices(t *testing.T) {
	vertices, indices := QuadVertices(4, 2)
	wantPos := [][3]float32{{-2, 1, 0}, {-2, -1, 0}, {2, 1, 0}, {2, -1, 0}}
	wantUV := [][2]float32{{0, 1}, {0, 0}, {1, 1}, {1, 0}}
	for i, v := range vertices {
		if v.Position != wantPos[i] || v.TexCoords != wantUV[i] || v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d = %+v", i, v)
		}
	}
	if len(indices) != 6 || indices[3] != 2 || indices[5] != 3 {
		t.Errorf("indices = %v", indices)
	}
}

func TestAxisVertices(t *testing.T) {
	vertices, indices := AxisVertices()
	if len(vertices) != 24 || len(indices) != 36 {
		t.Fatalf("axis has %d vertices and %d indices", len(vertices), len(indices))
	}
	// X bar first, then Y
	if vertices[8].Position != [3]float32{-0.1, 0, 0} || vertices[9].Position != [3]float32{-0.1, 1, 0} {
		t.Errorf("Y bar starts at %v %v", vertices[8].Position, vertices[9].Position)
	}
	if vertices[0].Color != [4]float32{1, 0, 0, 1} || vertices[23].Color != [4]float32{0, 0, 1, 1} {
		t.Error("bars should be colored X red and Z blue")
	}
	b := BoundsOf(vertices)
	if b.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) || b.Min != (math.Vec3{X: -0.1, Y: -0.1, Z: -0.1}) {
		t.Errorf("axis bounds = %+v", b)
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}
