// Package main renders a glTF model offscreen through a pinhole camera and
// writes the color image, and optionally the depth point cloud, to disk.
package main

import (
	"flag"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/assets"
	"github.com/Faultbox/xgl/internal/config"
	"github.com/Faultbox/xgl/internal/engine/camera"
	"github.com/Faultbox/xgl/internal/engine/glcontext"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/lighting"
	"github.com/Faultbox/xgl/internal/engine/material"
	"github.com/Faultbox/xgl/internal/engine/mesh"
	"github.com/Faultbox/xgl/internal/engine/model"
	"github.com/Faultbox/xgl/internal/engine/scene"
	"github.com/Faultbox/xgl/internal/engine/shader"
	"github.com/Faultbox/xgl/internal/engine/shaders"
	"github.com/Faultbox/xgl/internal/export"
	"github.com/Faultbox/xgl/internal/logger"
	"github.com/Faultbox/xgl/pkg/math"
)

var (
	flagModel    = flag.String("model", "", "glTF or GLB file to render (required)")
	flagOut      = flag.String("out", "render.png", "PNG output path")
	flagPoints   = flag.String("points", "", "ASCII PLY output path for the depth point cloud")
	flagShow     = flag.Bool("show", false, "Present the render in the window until it is closed")
	flagAxis     = flag.Bool("axis", false, "Draw the world axes")
	flagBackdrop = flag.String("backdrop", "", "Image drawn on a quad behind the model")
	flagLight    = flag.String("light", "point", "Lighting: point (default light) or sun")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if *flagModel == "" {
		fmt.Fprintln(os.Stderr, "usage: xglrender -model file.gltf [-out render.png] [-points cloud.ply] [-show]")
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

// renderer holds the GL objects of one run.
type renderer struct {
	dev    gpu.Device
	phong  *shader.Shader
	unlit  *shader.Shader
	depth  *shader.Shader
	camera *camera.Camera
	scene  *scene.Scene
	models []*model.Model
}

func run(cfg *config.Config) error {
	ctx, err := glcontext.New(cfg.Window)
	if err != nil {
		return err
	}
	defer ctx.Close()

	r := &renderer{dev: ctx.Device()}
	defer r.close()

	if err := r.compileShaders(); err != nil {
		return err
	}
	r.setupCamera(cfg.Camera)

	r.scene = scene.New(r.dev)
	r.scene.SetCamera(r.camera)
	r.scene.SetClearColor(math.Vec4{
		X: cfg.Render.ClearColor[0],
		Y: cfg.Render.ClearColor[1],
		Z: cfg.Render.ClearColor[2],
		W: cfg.Render.ClearColor[3],
	})

	m := r.newModel(strings.TrimSuffix(filepath.Base(*flagModel), filepath.Ext(*flagModel)), r.phong)
	if err := m.LoadFile(assets.NewImporter(), *flagModel); err != nil {
		return err
	}
	r.scene.AddModel(m)
	bounds := m.Bounds()
	r.frame(bounds, cfg.Camera)

	if err := r.addExtras(bounds); err != nil {
		return err
	}

	switch *flagLight {
	case "point":
	case "sun":
		r.scene.AddLight(lighting.Sun(45, 60, lighting.White))
	default:
		return fmt.Errorf("unknown light %q", *flagLight)
	}

	if err := r.scene.Render(camera.MultiSampling); err != nil {
		return err
	}
	pix, err := r.camera.CopyRenderResult(cfg.Render.FlipOutput)
	if err != nil {
		return err
	}
	w, h := r.camera.ImageSize()
	if err := export.WritePNG(*flagOut, pix, w, h); err != nil {
		return err
	}
	logger.Info("image written", zap.String("path", *flagOut), zap.Int("width", w), zap.Int("height", h))

	if *flagPoints != "" {
		if err := r.writePoints(*flagPoints); err != nil {
			return err
		}
	}

	if *flagShow {
		return r.show(ctx)
	}
	return nil
}

func (r *renderer) compileShaders() error {
	var err error
	if r.phong, err = shader.Compile(r.dev, shaders.PhongVertexShader, shaders.PhongFragmentShader); err != nil {
		return fmt.Errorf("phong shader: %w", err)
	}
	if r.unlit, err = shader.Compile(r.dev, shaders.UnlitVertexShader, shaders.UnlitFragmentShader); err != nil {
		return fmt.Errorf("unlit shader: %w", err)
	}
	if r.depth, err = shader.Compile(r.dev, shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		return fmt.Errorf("depth shader: %w", err)
	}
	return nil
}

func (r *renderer) setupCamera(cc config.CameraConfig) {
	r.camera = camera.New(r.dev,
		camera.WithImageSize(cc.Width, cc.Height),
		camera.WithSamples(cc.Samples),
	)
	r.camera.SetIntrinsics(cc.Fx, cc.Fy, cc.Cx, cc.Cy)
	r.camera.SetClipNearFar(cc.Near, cc.Far)
}

// frame places the camera on an orbit that sees the whole model and widens
// the far plane when the model would be clipped.
func (r *renderer) frame(b mesh.Bounds, cc config.CameraConfig) {
	fovY := 2 * float32(gomath.Atan(float64(cc.Height)/2/float64(cc.Fy)))
	orbit := camera.NewOrbit()
	orbit.FitToBounds(b.Min, b.Max, fovY)
	orbit.Apply(r.camera)

	near, far := r.camera.ClipNearFar()
	if reach := orbit.Distance + b.Max.Sub(b.Min).Length(); reach > far {
		far = reach
		r.camera.SetClipNearFar(near, far)
	}
	logger.Debug("camera framed",
		zap.Float32("distance", orbit.Distance),
		zap.Float32("near", near),
		zap.Float32("far", far),
	)
}

func (r *renderer) newModel(name string, sh *shader.Shader) *model.Model {
	m := model.New(r.dev, name, sh)
	r.models = append(r.models, m)
	return m
}

// addExtras adds the optional axis and backdrop models.
func (r *renderer) addExtras(b mesh.Bounds) error {
	if *flagAxis {
		mat := material.New(r.dev, r.unlit)
		axis, err := mesh.NewAxis(r.dev, mat)
		mat.Release()
		if err != nil {
			return fmt.Errorf("axis: %w", err)
		}
		m := r.newModel("axis", r.unlit)
		m.AddMesh(axis)
		axis.Release()
		r.scene.AddModel(m)
	}

	if *flagBackdrop != "" {
		size := b.Max.Sub(b.Min)
		c := b.Center()
		m := r.newModel("backdrop", r.phong)
		m.SetPose(math.Translate(c.X, c.Y, b.Min.Z-0.01*size.Length()))

		opts := scene.DefaultQuadOptions(1.5*max(size.X, size.Y), 1.5*max(size.X, size.Y))
		opts.Shader = r.phong
		opts.TextureFile = *flagBackdrop
		if err := r.scene.AddQuad(m, opts); err != nil {
			return err
		}
	}
	return nil
}

// writePoints renders linear depth with the depth shader on every mesh,
// unprojects it and saves the points.
func (r *renderer) writePoints(path string) error {
	override := material.New(r.dev, r.depth)
	defer override.Release()

	r.scene.SetOverrideMaterial(override)
	defer r.scene.SetOverrideMaterial(nil)

	if err := r.scene.RenderDepth(); err != nil {
		return err
	}
	depth, err := r.camera.CopyRenderResultF32(true)
	if err != nil {
		return err
	}

	xyz := make([]float32, len(depth)*3)
	if err := r.camera.UnprojectDepthImage(depth, xyz, 3); err != nil {
		return err
	}
	n, err := export.WritePLY(path, xyz, 3)
	if err != nil {
		return err
	}
	logger.Info("point cloud written", zap.String("path", path), zap.Int("points", n))
	return nil
}

func (r *renderer) show(ctx *glcontext.Context) error {
	for ctx.PollEvents() {
		if err := r.scene.Render(camera.MultiSampling); err != nil {
			return err
		}
		r.camera.Present(ctx)
		time.Sleep(16 * time.Millisecond)
	}
	return nil
}

func (r *renderer) close() {
	for _, m := range r.models {
		m.Destroy()
	}
	if r.camera != nil {
		r.camera.Destroy()
	}
	for _, sh := range []*shader.Shader{r.phong, r.unlit, r.depth} {
		if sh != nil {
			sh.Release()
		}
	}
}

