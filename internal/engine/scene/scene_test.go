package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/xgl/internal/engine/camera"
	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/gpu/gputest"
	"github.com/Faultbox/xgl/internal/engine/lighting"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/model"
	"github.com/Faultbox/xgl/internal/engine/shader"
	"github.com/Faultbox/xgl/pkg/math"
)

type drawCall struct {
	model    string
	light    lighting.Light
	override *material.Material
}

// recorder appends every Draw to a shared log.
type recorder struct {
	name string
	log  *[]drawCall
	err  error
}

func (r *recorder) Draw(view, projection math.Mat4, light lighting.Light, override *material.Material) error {
	*r.log = append(*r.log, drawCall{model: r.name, light: light, override: override})
	return r.err
}

func newScene(t *testing.T) (*Scene, *gputest.Device) {
	t.Helper()
	dev := gputest.New()
	s := New(dev)
	s.SetCamera(camera.New(dev, camera.WithImageSize(4, 4)))
	return s, dev
}

func TestRenderWithoutCamera(t *testing.T) {
	s := New(gputest.New())
	if err := s.Render(camera.MultiSampling); !errors.Is(err, errs.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRenderDefaultLight(t *testing.T) {
	s, _ := newScene(t)
	var log []drawCall
	s.AddModel(&recorder{name: "a", log: &log})
	s.AddModel(&recorder{name: "b", log: &log})

	if err := s.Render(camera.MultiSampling); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Fatalf("draws: got %d, want 2", len(log))
	}
	for _, c := range log {
		if c.light != lighting.Light(lighting.DefaultPoint()) {
			t.Errorf("model %s drawn with %v, want the default point light", c.model, c.light)
		}
	}
}

func TestRenderLightsOuter(t *testing.T) {
	s, _ := newScene(t)
	var log []drawCall
	s.AddModel(&recorder{name: "a", log: &log})
	s.AddModel(&recorder{name: "b", log: &log})

	red := lighting.Point{Color: math.Vec4{X: 1, W: 1}}
	sun := lighting.Sun(45, 45, lighting.White)
	spot := lighting.NewSpot(math.Vec3{}, math.Vec3{Z: -1}, lighting.White, 10, 15)
	s.AddLight(red)
	s.AddLight(sun)
	s.AddLight(spot)

	if err := s.Render(camera.MultiSampling); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		model string
		light lighting.Light
	}{
		{"a", red}, {"b", red},
		{"a", sun}, {"b", sun},
		{"a", spot}, {"b", spot},
	}
	if len(log) != len(want) {
		t.Fatalf("draws: got %d, want %d", len(log), len(want))
	}
	for i, w := range want {
		if log[i].model != w.model || log[i].light != w.light {
			t.Errorf("draw %d: got %s/%v, want %s/%v", i, log[i].model, log[i].light, w.model, w.light)
		}
	}
}

func TestRenderStopsAtFirstError(t *testing.T) {
	s, _ := newScene(t)
	var log []drawCall
	boom := errors.New("boom")
	s.AddModel(&recorder{name: "a", log: &log})
	s.AddModel(&recorder{name: "b", log: &log, err: boom})
	s.AddModel(&recorder{name: "c", log: &log})
	s.AddLight(lighting.DefaultPoint())
	s.AddLight(lighting.DefaultPoint())

	if err := s.Render(camera.MultiSampling); !errors.Is(err, boom) {
		t.Fatalf("expected the draw error, got %v", err)
	}
	if len(log) != 2 {
		t.Errorf("draws after failure: got %d, want 2", len(log))
	}
}

func TestRenderPassState(t *testing.T) {
	s, dev := newScene(t)
	s.SetClearColor(math.Vec4{X: 0.25, Y: 0.5, Z: 0.75, W: 1})
	dev.DepthWrite = false

	if err := s.Render(camera.MultiSampling); err != nil {
		t.Fatal(err)
	}
	if !dev.Enabled[gpu.DepthTest] {
		t.Error("depth test not enabled")
	}
	if !dev.DepthWrite {
		t.Error("depth mask not restored before clearing")
	}
	if dev.DepthFn != gpu.LessOrEqual {
		t.Errorf("depth func: got %#x, want LEQUAL", dev.DepthFn)
	}

	clears := dev.CallsNamed("Clear")
	if len(clears) != 1 || clears[0].Args[0] != gpu.ColorBufferBit|gpu.DepthBufferBit {
		t.Errorf("clear calls: %v", clears)
	}
	colors := dev.CallsNamed("ClearColor")
	if len(colors) != 1 || colors[0].Args[0] != float32(0.25) || colors[0].Args[2] != float32(0.75) {
		t.Errorf("clear color calls: %v", colors)
	}
}

func TestRenderDepthUsesDepthTarget(t *testing.T) {
	s, _ := newScene(t)
	if err := s.RenderDepth(); err != nil {
		t.Fatal(err)
	}
	if got := s.Camera().Current(); got != camera.Depth {
		t.Errorf("current target: got %v, want depth", got)
	}
}

func TestRenderPassesOverride(t *testing.T) {
	s, dev := newScene(t)
	var log []drawCall
	s.AddModel(&recorder{name: "a", log: &log})

	override := material.New(dev, nil)
	defer override.Release()
	s.SetOverrideMaterial(override)

	if err := s.Render(camera.MultiSampling); err != nil {
		t.Fatal(err)
	}
	if log[0].override != override {
		t.Error("override material not passed to Draw")
	}
	if override.Refs() != 1 {
		t.Errorf("scene should not retain the override, refs=%d", override.Refs())
	}
}

func TestClearModelsAndLights(t *testing.T) {
	s, _ := newScene(t)
	var log []drawCall
	s.AddModel(&recorder{name: "a", log: &log})
	s.AddLight(lighting.DefaultPoint())
	s.ClearModels()
	s.ClearLights()
	if len(s.Models()) != 0 || len(s.Lights()) != 0 {
		t.Fatal("clear did not empty the scene")
	}
	if err := s.Render(camera.MultiSampling); err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("cleared model was drawn %d times", len(log))
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestAddQuad(t *testing.T) {
	s, dev := newScene(t)
	sh, err := shader.Compile(dev, "v", "f")
	if err != nil {
		t.Fatal(err)
	}
	m := model.New(dev, "board", nil)
	defer m.Destroy()

	path := filepath.Join(t.TempDir(), "board.png")
	writePNG(t, path)

	opts := DefaultQuadOptions(2, 1)
	opts.Shader = sh
	opts.TextureFile = path
	opts.Opacity = 0.5
	opts.DepthWrite = false
	if err := s.AddQuad(m, opts); err != nil {
		t.Fatal(err)
	}

	if len(s.Models()) != 1 || m.MeshCount() != 1 {
		t.Fatalf("models=%d meshes=%d", len(s.Models()), m.MeshCount())
	}
	quad, _ := m.MeshAt(0)
	if quad.Refs() != 1 {
		t.Errorf("quad refs: got %d, want 1 held by the model", quad.Refs())
	}

	mat := quad.Material()
	if mat.Shader() != sh || mat.Opacity() != 0.5 || mat.DepthWrite() {
		t.Errorf("material: shader=%v opacity=%v depthWrite=%v", mat.Shader(), mat.Opacity(), mat.DepthWrite())
	}
	if mat.Refs() != 1 {
		t.Errorf("material refs: got %d, want 1 held by the mesh", mat.Refs())
	}
	texs := mat.Textures()
	if len(texs) != 1 || texs[0].Role != material.Diffuse || !texs[0].Owned() || texs[0].Path != path {
		t.Fatalf("textures: %+v", texs)
	}
	tex := dev.Textures[texs[0].ID]
	if tex == nil || tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("uploaded texture: %+v", tex)
	}
	// Loaded flipped: the red top-left texel ends up in the last row.
	if tex.Pixels[6] != 255 || tex.Pixels[0] != 0 {
		t.Errorf("texture not flipped: %v", tex.Pixels)
	}
}

func TestAddQuadWithoutTexture(t *testing.T) {
	s, dev := newScene(t)
	m := model.New(dev, "plain", nil)
	defer m.Destroy()

	if err := s.AddQuad(m, DefaultQuadOptions(1, 1)); err != nil {
		t.Fatal(err)
	}
	quad, _ := m.MeshAt(0)
	if n := len(quad.Material().Textures()); n != 0 {
		t.Errorf("textures: got %d, want 0", n)
	}
	if quad.Material().Opacity() != 1 || !quad.Material().DepthWrite() {
		t.Error("default quad options not applied")
	}
}

func TestAddQuadMissingTexture(t *testing.T) {
	s, dev := newScene(t)
	m := model.New(dev, "broken", nil)
	defer m.Destroy()

	opts := DefaultQuadOptions(1, 1)
	opts.TextureFile = filepath.Join(t.TempDir(), "missing.png")
	if err := s.AddQuad(m, opts); !errors.Is(err, errs.ErrAssetImport) {
		t.Fatalf("expected ErrAssetImport, got %v", err)
	}
	if m.MeshCount() != 0 || len(s.Models()) != 0 {
		t.Error("failed AddQuad changed the scene")
	}
}
