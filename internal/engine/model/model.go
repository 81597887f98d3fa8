// Package model groups meshes under one pose and uploads the per-draw
// transform and light uniforms.
package model

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/lighting"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/mesh"
	"github.com/Faultbox/xgl/internal/engine/shader"
	"github.com/Faultbox/xgl/pkg/math"
)

// Model is a flat list of meshes drawn with one pose. Meshes whose
// material has no shader are drawn with the default shader.
type Model struct {
	dev           gpu.Device
	name          string
	defaultShader *shader.Shader

	pose   math.Mat4
	meshes []*mesh.Mesh

	// GPU textures uploaded by LoadFile, keyed by asset texture key.
	textures map[string]uint32
}

// New returns an empty model at the identity pose. defaultShader is
// retained when non-nil.
func New(dev gpu.Device, name string, defaultShader *shader.Shader) *Model {
	if defaultShader != nil {
		defaultShader.Retain()
	}
	return &Model{
		dev:           dev,
		name:          name,
		defaultShader: defaultShader,
		pose:          math.Identity(),
		textures:      make(map[string]uint32),
	}
}

func (m *Model) Name() string { return m.name }
func (m *Model) Pose() math.Mat4 { return m.pose }
func (m *Model) SetPose(pose math.Mat4) { m.pose = pose }
func (m *Model) MeshCount() int { return len(m.meshes) }

// DefaultShader returns the shader used for meshes without one.
func (m *Model) DefaultShader() *shader.Shader {
	return m.defaultShader
}

// AddMesh appends and retains msh.
func (m *Model) AddMesh(msh *mesh.Mesh) {
	msh.Retain()
	m.meshes = append(m.meshes, msh)
}

// MeshAt returns mesh i.
func (m *Model) MeshAt(i int) (*mesh.Mesh, error) {
	if i < 0 || i >= len(m.meshes) {
		return nil, fmt.Errorf("mesh %d of %d: %w", i, len(m.meshes), errs.ErrOutOfRange)
	}
	return m.meshes[i], nil
}

// AddMeshData uploads a mesh with a new material of the given diffuse
// color. A nil shader leaves the default shader in charge.
func (m *Model) AddMeshData(vertices []mesh.Vertex, indices []uint32, sh *shader.Shader, color math.Vec4) error {
	mat := material.New(m.dev, sh)
	mat.SetDiffuse(color)
	defer mat.Release()

	msh, err := mesh.New(m.dev, vertices, indices, mat)
	if err != nil {
		return err
	}
	m.AddMesh(msh)
	msh.Release()
	return nil
}

// Bounds returns the box around all meshes in model space.
func (m *Model) Bounds() mesh.Bounds {
	var b mesh.Bounds
	for i, msh := range m.meshes {
		if i == 0 {
			b = msh.Bounds()
		} else {
			b = b.Extend(msh.Bounds())
		}
	}
	return b
}

// Draw draws every mesh with override, or with its own material when
// override is nil.
func (m *Model) Draw(view, projection math.Mat4, light lighting.Light, override *material.Material) error {
	for i, msh := range m.meshes {
		mat := override
		if mat == nil {
			mat = msh.Material()
		}
		if err := m.prepareShader(mat, view, projection, light); err != nil {
			return fmt.Errorf("model %s mesh %d: %w", m.name, i, err)
		}
		msh.Draw(override)
	}
	return nil
}

// prepareShader makes the mesh's program current and uploads the transform
// and light uniforms. Programs ignore uniforms they do not declare.
func (m *Model) prepareShader(mat *material.Material, view, projection math.Mat4, light lighting.Light) error {
	var sh *shader.Shader
	if mat != nil {
		sh = mat.Shader()
	}
	if sh == nil {
		sh = m.defaultShader
	}
	if sh == nil {
		return fmt.Errorf("no shader: %w", errs.ErrInvalidParameter)
	}

	sh.Use()
	sh.SetMat4("model", m.pose)
	sh.SetMat4("view", view)
	sh.SetMat4("projection", projection)
	sh.SetVec3("viewPos", view.Inverse().Translation().Array())

	switch l := light.(type) {
	case lighting.Point:
		sh.SetInt("lightType", int32(l.Kind()))
		sh.SetVec3("lightPos", l.Position.Array())
		sh.SetVec3("lightColor", l.Color.Vec3().Array())
	case lighting.Directional:
		sh.SetInt("lightType", int32(l.Kind()))
		sh.SetVec3("lightDir", l.Direction.Array())
		sh.SetVec3("lightColor", l.Color.Vec3().Array())
	case lighting.Spot:
		sh.SetInt("lightType", int32(l.Kind()))
		sh.SetVec3("lightPos", l.Position.Array())
		sh.SetVec3("lightDir", l.Direction.Array())
		sh.SetVec3("lightColor", l.Color.Vec3().Array())
		sh.SetFloat("lightCutOff", l.CutOff)
		sh.SetFloat("lightOuterCutOff", l.OuterCutOff)
	default:
		return fmt.Errorf("light %T: %w", light, errs.ErrInvalidParameter)
	}
	return nil
}

// Destroy releases every mesh and deletes the textures LoadFile uploaded.
// The model is empty afterwards.
func (m *Model) Destroy() {
	for _, msh := range m.meshes {
		msh.Release()
	}
	m.meshes = nil
	for key, id := range m.textures {
		m.dev.DeleteTexture(id)
		delete(m.textures, key)
	}
	if m.defaultShader != nil {
		m.defaultShader.Release()
		m.defaultShader = nil
	}
}
