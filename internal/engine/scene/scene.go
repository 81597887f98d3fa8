// Package scene renders a set of models under a set of lights through a
// camera's render target.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/camera"
	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/lighting"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/mesh"
	"github.com/Faultbox/xgl/internal/engine/model"
	"github.com/Faultbox/xgl/internal/engine/shader"
	"github.com/Faultbox/xgl/internal/engine/texture"
	"github.com/Faultbox/xgl/internal/logger"
	"github.com/Faultbox/xgl/pkg/math"
)

// Drawable is anything the scene can draw for one light.
type Drawable interface {
	Draw(view, projection math.Mat4, light lighting.Light, override *material.Material) error
}

var _ Drawable = (*model.Model)(nil)

// Scene does not own its camera, models or lights. The override material,
// when set, replaces every mesh material for the whole pass.
type Scene struct {
	dev gpu.Device

	// Viewpoint
	camera *camera.Camera

	// Content
	models []Drawable
	lights []lighting.Light

	// Pass state
	clearColor math.Vec4
	override   *material.Material
}

// New returns an empty scene with an opaque black clear color.
func New(dev gpu.Device) *Scene {
	return &Scene{
		dev:        dev,
		clearColor: math.Vec4{W: 1},
	}
}

func (s *Scene) Camera() *camera.Camera { return s.camera }
func (s *Scene) SetCamera(c *camera.Camera) { s.camera = c }

func (s *Scene) AddModel(d Drawable) { s.models = append(s.models, d) }
func (s *Scene) ClearModels() { s.models = nil }
func (s *Scene) Models() []Drawable { return s.models }
func (s *Scene) AddLight(l lighting.Light) { s.lights = append(s.lights, l) }
func (s *Scene) ClearLights() { s.lights = nil }
func (s *Scene) Lights() []lighting.Light { return s.lights }

func (s *Scene) ClearColor() math.Vec4 { return s.clearColor }

// SetClearColor sets the color the target is cleared to before drawing.
func (s *Scene) SetClearColor(rgba math.Vec4) {
	s.clearColor = rgba
}

// OverrideMaterial returns the material used for every mesh, or nil.
func (s *Scene) OverrideMaterial() *material.Material {
	return s.override
}

// SetOverrideMaterial sets the material used for every mesh. The scene
// does not take a reference; the caller keeps mat alive while it is set.
func (s *Scene) SetOverrideMaterial(mat *material.Material) {
	s.override = mat
}

// Render clears target and draws every model once per light, lights in
// the outer loop. Without lights the models are drawn once under
// lighting.DefaultPoint. The first draw error stops the pass.
func (s *Scene) Render(target camera.Target) error {
	if s.camera == nil {
		return fmt.Errorf("rendering scene: no camera: %w", errs.ErrInvalidParameter)
	}
	if err := s.camera.ActivateRenderTarget(target); err != nil {
		return fmt.Errorf("rendering scene: %w", err)
	}

	c := s.clearColor
	s.dev.ClearColor(c.X, c.Y, c.Z, c.W)
	s.dev.Enable(gpu.DepthTest)
	s.dev.DepthMask(true)
	s.dev.DepthFunc(gpu.LessOrEqual)
	s.dev.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	view := s.camera.ViewMatrix()
	projection := s.camera.ProjectionMatrix()

	lights := s.lights
	if len(lights) == 0 {
		lights = []lighting.Light{lighting.DefaultPoint()}
	}
	for li, l := range lights {
		for mi, d := range s.models {
			if err := d.Draw(view, projection, l, s.override); err != nil {
				return fmt.Errorf("rendering scene: light %d model %d: %w", li, mi, err)
			}
		}
	}
	return nil
}

// RenderDepth renders into the depth target.
func (s *Scene) RenderDepth() error {
	return s.Render(camera.Depth)
}

// QuadOptions describes a textured quad added with AddQuad.
type QuadOptions struct {
	Width, Height float32

	// Shader is retained by the quad's material. Nil leaves the model's
	// default shader in charge.
	Shader *shader.Shader

	// TextureFile is loaded flipped and bound as the diffuse texture.
	TextureFile string

	Opacity    float32
	DepthWrite bool
}

// DefaultQuadOptions returns an opaque, depth-writing w by h quad.
func DefaultQuadOptions(w, h float32) QuadOptions {
	return QuadOptions{Width: w, Height: h, Opacity: 1, DepthWrite: true}
}

// AddQuad appends a quad mesh built from opts to m and adds m to the scene.
func (s *Scene) AddQuad(m *model.Model, opts QuadOptions) error {
	mat := material.New(s.dev, opts.Shader)
	defer mat.Release()
	mat.SetOpacity(opts.Opacity)
	mat.SetDepthWrite(opts.DepthWrite)

	if opts.TextureFile != "" {
		img, err := texture.LoadFile(opts.TextureFile, true)
		if err != nil {
			return fmt.Errorf("adding quad: %w", err)
		}
		id, err := texture.Upload(s.dev, img, true)
		if err != nil {
			return fmt.Errorf("adding quad: %w", err)
		}
		mat.AddOwnedTexture(material.Texture{ID: id, Role: material.Diffuse, Path: opts.TextureFile})
		logger.Debug("quad texture loaded",
			zap.Uint32("id", id),
			zap.String("path", opts.TextureFile))
	}

	quad, err := mesh.NewQuad(s.dev, opts.Width, opts.Height, mat)
	if err != nil {
		return fmt.Errorf("adding quad: %w", err)
	}
	m.AddMesh(quad)
	quad.Release()

	s.AddModel(m)
	return nil
}
