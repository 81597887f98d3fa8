// Package assets imports glTF 2.0 models into host-side mesh data ready for
// upload.
package assets

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/mesh"
	"github.com/Faultbox/xgl/internal/engine/texture"
	"github.com/Faultbox/xgl/internal/logger"
	"github.com/Faultbox/xgl/pkg/math"
)

// TextureRef is an image a material samples. Key identifies the image
// across imports: the resolved file path, or "<model path>#image<N>" for
// images stored inside the model file.
type TextureRef struct {
	Key   string
	Role  material.Role
	Image *texture.Image
}

// MaterialData are the surface constants of one imported mesh.
type MaterialData struct {
	Name      string
	Diffuse   math.Vec4
	Opacity   float32
	Shininess float32
	Textures  []TextureRef
}

// MeshData is one triangle primitive.
type MeshData struct {
	Name     string
	Vertices []mesh.Vertex
	Indices  []uint32
	Material MaterialData
}

// Importer reads .gltf and .glb files. Decoded images are cached by key,
// so importing the same model twice decodes its textures once.
type Importer struct {
	cache *Cache

	// FlipTextures reverses image rows before they are handed out.
	FlipTextures bool
}

// NewImporter returns an importer with an empty image cache.
func NewImporter() *Importer {
	return &Importer{cache: NewCache()}
}

// Cache returns the image cache.
func (im *Importer) Cache() *Cache {
	return im.cache
}

// Import returns every triangle primitive of the file, flattened in node
// order. Node transforms are ignored.
func (im *Importer) Import(path string) ([]MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %v: %w", path, err, errs.ErrAssetImport)
	}
	log := logger.Named("assets")

	var out []MeshData
	for _, mi := range meshOrder(doc) {
		gm := doc.Meshes[mi]
		if gm == nil {
			continue
		}
		for pi, prim := range gm.Primitives {
			if prim == nil {
				continue
			}
			if prim.Mode != gltf.PrimitiveTriangles {
				log.Warn("skipping non-triangle primitive",
					zap.String("mesh", gm.Name),
					zap.Int("primitive", pi),
				)
				continue
			}
			md, err := im.primitive(doc, path, prim)
			if err != nil {
				return nil, fmt.Errorf("importing %s mesh %d primitive %d: %v: %w", path, mi, pi, err, errs.ErrAssetImport)
			}
			md.Name = primitiveName(gm.Name, mi, pi, len(gm.Primitives))
			out = append(out, md)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("importing %s: no triangle meshes: %w", path, errs.ErrAssetImport)
	}

	hits, misses := im.cache.Stats()
	log.Debug("model imported",
		zap.String("path", path),
		zap.Int("meshes", len(out)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return out, nil
}

// meshOrder lists mesh indices as nodes reference them. Meshes no node
// references follow in document order.
func meshOrder(doc *gltf.Document) []int {
	seen := make([]bool, len(doc.Meshes))
	var order []int
	for _, n := range doc.Nodes {
		if n == nil || n.Mesh == nil || *n.Mesh < 0 || *n.Mesh >= len(doc.Meshes) || seen[*n.Mesh] {
			continue
		}
		seen[*n.Mesh] = true
		order = append(order, *n.Mesh)
	}
	for i := range doc.Meshes {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order
}

func primitiveName(meshName string, mi, pi, count int) string {
	if meshName == "" {
		meshName = fmt.Sprintf("mesh%d", mi)
	}
	if count == 1 {
		return meshName
	}
	return fmt.Sprintf("%s_p%d", meshName, pi)
}

func (im *Importer) primitive(doc *gltf.Document, path string, prim *gltf.Primitive) (MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return MeshData{}, fmt.Errorf("no POSITION attribute")
	}
	acr, err := accessor(doc, posIdx)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = accessor(doc, idx); err == nil {
			normals, err = modeler.ReadNormal(doc, acr, nil)
		}
		if err != nil {
			return MeshData{}, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = accessor(doc, idx); err == nil {
			uvs, err = modeler.ReadTextureCoord(doc, acr, nil)
		}
		if err != nil {
			return MeshData{}, fmt.Errorf("texture coordinates: %w", err)
		}
	}
	var colors [][4]uint8
	if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		if acr, err = accessor(doc, idx); err == nil {
			colors, err = modeler.ReadColor(doc, acr, nil)
		}
		if err != nil {
			return MeshData{}, fmt.Errorf("colors: %w", err)
		}
	}

	vertices := make([]mesh.Vertex, len(positions))
	for i, p := range positions {
		v := mesh.Vertex{Position: p}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoords = uvs[i]
		}
		if i < len(colors) {
			c := colors[i]
			v.Color = [4]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
		}
		vertices[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		if acr, err = accessor(doc, *prim.Indices); err == nil {
			indices, err = modeler.ReadIndices(doc, acr, nil)
		}
		if err != nil {
			return MeshData{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if normals == nil {
		mesh.ComputeNormals(vertices, indices)
	}

	md := MeshData{
		Vertices: vertices,
		Indices:  indices,
		Material: defaultMaterial(),
	}
	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(doc.Materials) && doc.Materials[*prim.Material] != nil {
		if md.Material, err = im.material(doc, path, doc.Materials[*prim.Material]); err != nil {
			return MeshData{}, err
		}
	}
	return md, nil
}

// accessor returns accessor idx after checking that it and the buffer
// data it reads exist. The glTF reader does not validate indices.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	acr := doc.Accessors[idx]
	if acr.BufferView != nil {
		if _, err := bufferView(doc, *acr.BufferView); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", idx, err)
		}
	}
	return acr, nil
}

func bufferView(doc *gltf.Document, idx int) (*gltf.BufferView, error) {
	if idx < 0 || idx >= len(doc.BufferViews) || doc.BufferViews[idx] == nil {
		return nil, fmt.Errorf("buffer view %d out of range (%d views)", idx, len(doc.BufferViews))
	}
	bv := doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || doc.Buffers[bv.Buffer] == nil {
		return nil, fmt.Errorf("buffer view %d: buffer %d out of range (%d buffers)", idx, bv.Buffer, len(doc.Buffers))
	}
	return bv, nil
}

func defaultMaterial() MaterialData {
	return MaterialData{
		Diffuse:   math.Vec4{X: 0.7, Y: 0.7, Z: 0.7, W: 1},
		Opacity:   1,
		Shininess: 16,
	}
}

// material maps metallic-roughness onto the phong constants: base color to
// diffuse, its alpha to opacity, roughness to shininess.
func (im *Importer) material(doc *gltf.Document, path string, gm *gltf.Material) (MaterialData, error) {
	md := defaultMaterial()
	md.Name = gm.Name

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		// Alpha goes to Opacity only.
		md.Diffuse = math.Vec4{X: float32(cf[0]), Y: float32(cf[1]), Z: float32(cf[2]), W: 1}
		md.Opacity = float32(cf[3])

		if pbr.RoughnessFactor != nil {
			r := float32(*pbr.RoughnessFactor)
			md.Shininess = (1-r)*(1-r)*128 + 1
		}

		if pbr.BaseColorTexture != nil {
			ref, err := im.textureRef(doc, path, pbr.BaseColorTexture.Index, material.Diffuse)
			if err != nil {
				return md, err
			}
			md.Textures = append(md.Textures, ref)
		}
	}

	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		ref, err := im.textureRef(doc, path, *gm.NormalTexture.Index, material.Normal)
		if err != nil {
			return md, err
		}
		md.Textures = append(md.Textures, ref)
	}
	return md, nil
}

func (im *Importer) textureRef(doc *gltf.Document, path string, texIdx int, role material.Role) (TextureRef, error) {
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx] == nil || doc.Textures[texIdx].Source == nil {
		return TextureRef{}, fmt.Errorf("texture %d has no image", texIdx)
	}
	imgIdx := *doc.Textures[texIdx].Source
	if imgIdx < 0 || imgIdx >= len(doc.Images) || doc.Images[imgIdx] == nil {
		return TextureRef{}, fmt.Errorf("texture %d refers to missing image %d", texIdx, imgIdx)
	}
	gi := doc.Images[imgIdx]

	key := fmt.Sprintf("%s#image%d", path, imgIdx)
	external := gi.BufferView == nil && gi.URI != "" && !gi.IsEmbeddedResource()
	if external {
		key = resolve(filepath.Join(filepath.Dir(path), gi.URI))
	}

	if img, ok := im.cache.Get(key); ok {
		return TextureRef{Key: key, Role: role, Image: img}, nil
	}

	var img *texture.Image
	var err error
	switch {
	case external:
		img, err = texture.LoadFile(key, im.FlipTextures)
	case gi.BufferView != nil:
		var bv *gltf.BufferView
		var raw []byte
		if bv, err = bufferView(doc, *gi.BufferView); err == nil {
			raw, err = modeler.ReadBufferView(doc, bv)
		}
		if err == nil {
			img, err = im.decode(raw, gi)
		}
	default:
		var raw []byte
		if raw, err = gi.MarshalData(); err == nil {
			img, err = im.decode(raw, gi)
		}
	}
	if err != nil {
		return TextureRef{}, fmt.Errorf("image %d: %w", imgIdx, err)
	}

	im.cache.Set(key, img)
	return TextureRef{Key: key, Role: role, Image: img}, nil
}

func (im *Importer) decode(raw []byte, gi *gltf.Image) (*texture.Image, error) {
	img, err := texture.DecodeBytes(raw, gi.Name)
	if err != nil {
		return nil, err
	}
	if im.FlipTextures {
		texture.FlipV(img.Pix, img.Width, img.Height, 3)
	}
	return img, nil
}

func resolve(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
