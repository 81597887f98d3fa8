// Package mesh uploads indexed triangle geometry and draws it with a material.
package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/resource"
	"github.com/Faultbox/xgl/internal/logger"
)

// Mesh is geometry uploaded once at construction. The host copy of the
// vertices stays readable but edits are never re-uploaded.
type Mesh struct {
	dev gpu.Device

	vertices []Vertex
	indices  []uint32
	material *material.Material

	vao, vbo, ebo uint32
	refs          resource.RefCount
}

// New uploads vertices and indices. A non-nil material is retained.
func New(dev gpu.Device, vertices []Vertex, indices []uint32, mat *material.Material) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh with %d vertices and %d indices: %w", len(vertices), len(indices), errs.ErrInvalidParameter)
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("index %d refers to vertex %d of %d: %w", i, idx, len(vertices), errs.ErrInvalidParameter)
		}
	}

	m := &Mesh{
		dev:      dev,
		vertices: vertices,
		indices:  indices,
		refs:     resource.NewRefCount(),
	}
	if err := m.upload(); err != nil {
		m.deleteBuffers()
		return nil, err
	}
	m.SetMaterial(mat)
	return m, nil
}

func (m *Mesh) upload() error {
	m.vao = m.dev.GenVertexArray()
	m.vbo = m.dev.GenBuffer()
	m.ebo = m.dev.GenBuffer()
	if m.vao == 0 || m.vbo == 0 || m.ebo == 0 {
		return fmt.Errorf("generating mesh buffers: %w", errs.ErrResourceCreation)
	}

	m.dev.BindVertexArray(m.vao)

	m.dev.BindBuffer(gpu.ArrayBuffer, m.vbo)
	m.dev.BufferDataFloat32(gpu.ArrayBuffer, flatten(m.vertices), gpu.StaticDraw)

	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.ebo)
	m.dev.BufferDataUint32(gpu.ElementArrayBuffer, m.indices, gpu.StaticDraw)

	// Position
	m.dev.EnableVertexAttribArray(0)
	m.dev.VertexAttribPointer(0, 3, vertexStride, 0)
	// Normal
	m.dev.EnableVertexAttribArray(1)
	m.dev.VertexAttribPointer(1, 3, vertexStride, normalOffset)
	// TexCoords
	m.dev.EnableVertexAttribArray(2)
	m.dev.VertexAttribPointer(2, 2, vertexStride, texCoordOffset)
	// Color
	m.dev.EnableVertexAttribArray(3)
	m.dev.VertexAttribPointer(3, 4, vertexStride, colorOffset)

	m.dev.BindVertexArray(0)

	logger.Named("mesh").Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(m.vertices)),
		zap.Int("indices", len(m.indices)),
	)
	return nil
}

// Draw binds override, or the mesh material when override is nil, and
// draws every index as triangles. With neither, whatever program is
// current is used.
func (m *Mesh) Draw(override *material.Material) {
	mat := override
	if mat == nil {
		mat = m.material
	}
	if mat != nil {
		mat.Bind()
	}

	m.dev.BindVertexArray(m.vao)
	m.dev.DrawElements(gpu.Triangles, int32(len(m.indices)), gpu.UnsignedInt)
	m.dev.BindVertexArray(0)

	if mat != nil {
		mat.Unbind()
	}
}

func (m *Mesh) Vertices() []Vertex { return m.vertices }
func (m *Mesh) Indices() []uint32 { return m.indices }

// Bounds returns the box around the vertex positions.
func (m *Mesh) Bounds() Bounds {
	return BoundsOf(m.vertices)
}

// Material returns the mesh material, or nil.
func (m *Mesh) Material() *material.Material {
	return m.material
}

// SetMaterial retains mat and releases the previous material.
func (m *Mesh) SetMaterial(mat *material.Material) {
	if mat == m.material {
		return
	}
	if mat != nil {
		mat.Retain()
	}
	if m.material != nil {
		m.material.Release()
	}
	m.material = mat
}

// Retain adds an owner.
func (m *Mesh) Retain() {
	m.refs.Retain()
}

// Release drops an owner. The last release deletes the GPU buffers and
// releases the material.
func (m *Mesh) Release() {
	if !m.refs.Release() {
		return
	}
	m.deleteBuffers()
	m.SetMaterial(nil)
}

// Refs returns the number of owners.
func (m *Mesh) Refs() int {
	return m.refs.Refs()
}

func (m *Mesh) deleteBuffers() {
	if m.vao != 0 {
		m.dev.DeleteVertexArray(m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		m.dev.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		m.dev.DeleteBuffer(m.ebo)
		m.ebo = 0
	}
}
