package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/assets"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/mesh"
	"github.com/Faultbox/xgl/internal/engine/texture"
	"github.com/Faultbox/xgl/internal/logger"
)

// LoadFile imports a model file and appends one mesh per primitive, each
// with its own material using the default shader. Textures are uploaded
// once per key for the lifetime of the model, so loading files that share
// images does not upload them again.
func (m *Model) LoadFile(im *assets.Importer, path string) error {
	meshes, err := im.Import(path)
	if err != nil {
		return err
	}

	for _, md := range meshes {
		if err := m.addImported(md); err != nil {
			return fmt.Errorf("loading %s mesh %s: %w", path, md.Name, err)
		}
	}

	logger.Named("model").Info("model loaded",
		zap.String("model", m.name),
		zap.String("path", path),
		zap.Int("meshes", len(meshes)),
		zap.Int("textures", len(m.textures)),
	)
	return nil
}

func (m *Model) addImported(md assets.MeshData) error {
	mat := material.New(m.dev, m.defaultShader)
	defer mat.Release()

	mat.SetDiffuse(md.Material.Diffuse)
	mat.SetOpacity(md.Material.Opacity)
	mat.SetShininess(md.Material.Shininess)

	for _, ref := range md.Material.Textures {
		id, err := m.texture(ref)
		if err != nil {
			return err
		}
		mat.AddTexture(material.Texture{ID: id, Role: ref.Role, Path: ref.Key})
	}

	msh, err := mesh.New(m.dev, md.Vertices, md.Indices, mat)
	if err != nil {
		return err
	}
	m.AddMesh(msh)
	msh.Release()
	return nil
}

func (m *Model) texture(ref assets.TextureRef) (uint32, error) {
	if id, ok := m.textures[ref.Key]; ok {
		return id, nil
	}
	id, err := texture.Upload(m.dev, ref.Image, true)
	if err != nil {
		return 0, fmt.Errorf("uploading %s: %w", ref.Key, err)
	}
	m.textures[ref.Key] = id
	return id, nil
}

// TextureCount returns the number of textures LoadFile uploaded.
func (m *Model) TextureCount() int {
	return len(m.textures)
}
