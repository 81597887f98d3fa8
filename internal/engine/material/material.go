// Package material binds a shader with its textures, surface constants and
// the fixed-function state a mesh is drawn with.
package material

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/resource"
	"github.com/Faultbox/xgl/internal/engine/shader"
	"github.com/Faultbox/xgl/internal/engine/texture"
	"github.com/Faultbox/xgl/internal/logger"
	"github.com/Faultbox/xgl/pkg/math"
)

// Material is shared by meshes through Retain and Release.
type Material struct {
	dev      gpu.Device
	shader   *shader.Shader
	textures []Texture

	diffuse   math.Vec4
	opacity   float32
	shininess float32

	facetCulling bool
	depthTest    bool
	depthWrite   bool

	refs resource.RefCount
}

// New returns a material with diffuse (0.7, 0.7, 0.7, 1), opacity 1,
// shininess 16, no culling, depth test and depth write on. A non-nil
// shader is retained.
func New(dev gpu.Device, sh *shader.Shader) *Material {
	m := &Material{
		dev:        dev,
		diffuse:    math.Vec4{X: 0.7, Y: 0.7, Z: 0.7, W: 1},
		opacity:    1,
		shininess:  16,
		depthTest:  true,
		depthWrite: true,
		refs:       resource.NewRefCount(),
	}
	m.SetShader(sh)
	return m
}

// Shader returns the program the material binds, or nil.
func (m *Material) Shader() *shader.Shader {
	return m.shader
}

// SetShader retains sh and releases the previous shader.
func (m *Material) SetShader(sh *shader.Shader) {
	if sh == m.shader {
		return
	}
	if sh != nil {
		sh.Retain()
	}
	if m.shader != nil {
		m.shader.Release()
	}
	m.shader = sh
}

func (m *Material) Diffuse() math.Vec4 { return m.diffuse }
func (m *Material) SetDiffuse(c math.Vec4) { m.diffuse = c }
func (m *Material) Opacity() float32 { return m.opacity }
func (m *Material) SetOpacity(v float32) { m.opacity = v }
func (m *Material) Shininess() float32 { return m.shininess }
func (m *Material) SetShininess(v float32) { m.shininess = v }
func (m *Material) FacetCulling() bool { return m.facetCulling }
func (m *Material) SetFacetCulling(on bool) { m.facetCulling = on }
func (m *Material) DepthTest() bool { return m.depthTest }
func (m *Material) SetDepthTest(on bool) { m.depthTest = on }
func (m *Material) DepthWrite() bool { return m.depthWrite }
func (m *Material) SetDepthWrite(on bool) { m.depthWrite = on }
func (m *Material) Textures() []Texture { return m.textures }
func (m *Material) TextureCount() int { return len(m.textures) }
func (m *Material) AddTexture(t Texture) { m.textures = append(m.textures, t) }
func (m *Material) AddTextures(ts ...Texture) { m.textures = append(m.textures, ts...) }

// Bind makes the shader current, binds texture i to unit i and uploads the
// surface uniforms and render state. It does nothing without a shader.
func (m *Material) Bind() {
	if m.shader == nil {
		return
	}
	m.shader.Use()

	var perRole [Normal + 1]int
	hasDiffuse := int32(0)
	for i, t := range m.textures {
		m.dev.ActiveTexture(gpu.Texture0 + gpu.Enum(i))
		n := 1
		if t.Role >= 0 && int(t.Role) < len(perRole) {
			perRole[t.Role]++
			n = perRole[t.Role]
		}
		if t.Role == Diffuse {
			hasDiffuse = 1
		}
		m.shader.SetInt(fmt.Sprintf("%s%d", t.Role.SamplerName(), n), int32(i))
		m.dev.BindTexture(gpu.Texture2D, t.ID)
	}
	m.dev.ActiveTexture(gpu.Texture0)

	m.shader.SetInt("hasDiffuseTexture", hasDiffuse)
	m.shader.SetVec4("material.diffuse", m.diffuse.Array())
	m.shader.SetFloat("material.shininess", m.shininess)
	m.shader.SetFloat("material.opacity", m.opacity)

	toggle(m.dev, gpu.CullFace, m.facetCulling)
	toggle(m.dev, gpu.DepthTest, m.depthTest)
	m.dev.DepthMask(m.depthWrite)

	if m.opacity < 1 {
		m.dev.Enable(gpu.Blend)
		m.dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
	} else {
		m.dev.Disable(gpu.Blend)
	}
}

// Unbind clears the texture units Bind used. Render state is left as is.
func (m *Material) Unbind() {
	for i := range m.textures {
		m.dev.ActiveTexture(gpu.Texture0 + gpu.Enum(i))
		m.dev.BindTexture(gpu.Texture2D, 0)
	}
	m.dev.ActiveTexture(gpu.Texture0)
}

func toggle(dev gpu.Device, capability gpu.Enum, on bool) {
	if on {
		dev.Enable(capability)
	} else {
		dev.Disable(capability)
	}
}

// UpdateTextureRGB8 replaces texture index with width*height RGB8 pixels.
// An index equal to TextureCount appends a new diffuse texture owned by the
// material.
func (m *Material) UpdateTextureRGB8(index, width, height int, pix []byte, mipmap bool) error {
	if index < 0 || index > len(m.textures) {
		return fmt.Errorf("texture index %d of %d: %w", index, len(m.textures), errs.ErrOutOfRange)
	}
	if width < 1 || height < 1 || len(pix) < width*height*3 {
		return fmt.Errorf("%dx%d RGB8 image with %d bytes: %w", width, height, len(pix), errs.ErrInvalidParameter)
	}

	if index == len(m.textures) {
		id := m.dev.GenTexture()
		if id == 0 {
			return fmt.Errorf("generating texture: %w", errs.ErrResourceCreation)
		}
		m.textures = append(m.textures, Texture{ID: id, Role: Diffuse, Path: DynamicPath, owned: true})
		logger.Named("material").Debug("dynamic texture created", zap.Uint32("id", id))
	}

	m.dev.BindTexture(gpu.Texture2D, m.textures[index].ID)
	texture.WriteRGB8(m.dev, int32(width), int32(height), pix, mipmap)
	m.dev.BindTexture(gpu.Texture2D, 0)
	return nil
}

// Retain adds an owner.
func (m *Material) Retain() {
	m.refs.Retain()
}

// Release drops an owner. The last release deletes the textures the
// material created and releases its shader.
func (m *Material) Release() {
	if !m.refs.Release() {
		return
	}
	for _, t := range m.textures {
		if t.owned {
			m.dev.DeleteTexture(t.ID)
		}
	}
	m.textures = nil
	m.SetShader(nil)
}

// Refs returns the number of owners.
func (m *Material) Refs() int {
	return m.refs.Refs()
}

// AddOwnedTexture appends t and makes the material responsible for
// deleting it.
func (m *Material) AddOwnedTexture(t Texture) {
	t.owned = true
	m.textures = append(m.textures, t)
}
