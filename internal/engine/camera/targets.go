package camera

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/framebuffer"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/logger"
)

// Target selects where a render pass draws.
type Target int

const (
	// None is the default framebuffer.
	None Target = iota
	// MultiSampling is the MSAA color target, resolved into the normal
	// target on read-back.
	MultiSampling
	// Depth is the single-channel float target for linear depth.
	Depth
)

func (t Target) String() string {
	switch t {
	case None:
		return "none"
	case MultiSampling:
		return "multisampling"
	case Depth:
		return "depth"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// renderTarget is one framebuffer with its color texture and, except for
// the normal target, a depth/stencil renderbuffer.
type renderTarget struct {
	fb      *framebuffer.FrameBuffer
	texture uint32
	depth   *framebuffer.RenderBuffer
	status  framebuffer.Status
}

func (t *renderTarget) destroy(dev gpu.Device) {
	if t.fb != nil {
		t.fb.Destroy()
		t.fb = nil
	}
	if t.depth != nil {
		t.depth.Destroy()
		t.depth = nil
	}
	if t.texture != 0 {
		dev.DeleteTexture(t.texture)
		t.texture = 0
	}
}

type renderTargets struct {
	normal      renderTarget
	multisample renderTarget
	depth       renderTarget
	samples     int32
}

func (ts *renderTargets) destroy(dev gpu.Device) {
	ts.normal.destroy(dev)
	ts.multisample.destroy(dev)
	ts.depth.destroy(dev)
}

// TargetTextures are the color texture handles of the render targets.
// All are zero while the targets do not exist.
type TargetTextures struct {
	Normal      uint32
	MultiSample uint32
	Depth       uint32
}

// TargetStatus is the completeness of each render target at creation.
type TargetStatus struct {
	Normal      framebuffer.Status
	MultiSample framebuffer.Status
	Depth       framebuffer.Status
}

// Ready reports whether the render targets exist.
func (c *Camera) Ready() bool {
	return c.targets != nil
}

// Current returns the target selected by the last activation.
func (c *Camera) Current() Target {
	return c.current
}

// Samples returns the MSAA sample count in use, or the requested count
// while the targets do not exist.
func (c *Camera) Samples() int {
	if c.targets != nil {
		return int(c.targets.samples)
	}
	return int(c.samples)
}

// Textures returns the color texture handles of the render targets.
func (c *Camera) Textures() TargetTextures {
	if c.targets == nil {
		return TargetTextures{}
	}
	return TargetTextures{
		Normal:      c.targets.normal.texture,
		MultiSample: c.targets.multisample.texture,
		Depth:       c.targets.depth.texture,
	}
}

// Status returns the completeness recorded for each render target.
func (c *Camera) Status() TargetStatus {
	if c.targets == nil {
		return TargetStatus{}
	}
	return TargetStatus{
		Normal:      c.targets.normal.status,
		MultiSample: c.targets.multisample.status,
		Depth:       c.targets.depth.status,
	}
}

// ActivateRenderTarget binds target for drawing, creating the render
// targets first if needed, and sets the viewport to the image size.
func (c *Camera) ActivateRenderTarget(target Target) error {
	switch target {
	case None:
		c.dev.BindFramebuffer(gpu.Framebuffer, 0)
		c.current = None
		return nil
	case MultiSampling, Depth:
	default:
		return fmt.Errorf("render target %v: %w", target, errs.ErrInvalidParameter)
	}

	if c.targets == nil {
		if err := c.createTargets(); err != nil {
			return err
		}
	}

	if target == MultiSampling {
		c.targets.multisample.fb.Bind(gpu.Framebuffer)
		c.dev.Viewport(0, 0, int32(c.width), int32(c.height))
		c.dev.Enable(gpu.Multisample)
	} else {
		c.targets.depth.fb.Bind(gpu.Framebuffer)
		c.dev.Viewport(0, 0, int32(c.width), int32(c.height))
	}
	c.dev.DrawBuffers(gpu.ColorAttachment0)
	c.current = target
	return nil
}

func (c *Camera) createTargets() error {
	samples := c.samples
	if limit := c.dev.GetInteger(gpu.MaxSamples); limit > 0 && samples > limit {
		samples = limit
	}

	ts := &renderTargets{samples: samples}
	w, h := int32(c.width), int32(c.height)

	if err := c.createNormal(&ts.normal, w, h); err != nil {
		ts.destroy(c.dev)
		return fmt.Errorf("creating normal render target: %w", err)
	}
	if err := c.createMultisample(&ts.multisample, w, h, samples); err != nil {
		ts.destroy(c.dev)
		return fmt.Errorf("creating multisample render target: %w", err)
	}
	if err := c.createDepth(&ts.depth, w, h); err != nil {
		ts.destroy(c.dev)
		return fmt.Errorf("creating depth render target: %w", err)
	}

	c.targets = ts
	logger.Named("camera").Debug("render targets created",
		zap.Int32("width", w),
		zap.Int32("height", h),
		zap.Int32("samples", samples),
	)
	return nil
}

func (c *Camera) newTexture() (uint32, error) {
	id := c.dev.GenTexture()
	if id == 0 {
		return 0, fmt.Errorf("generating texture: %w", errs.ErrResourceCreation)
	}
	return id, nil
}

// createNormal builds the resolve target. Its completeness is only logged.
func (c *Camera) createNormal(t *renderTarget, w, h int32) error {
	var err error
	if t.texture, err = c.newTexture(); err != nil {
		return err
	}
	c.dev.BindTexture(gpu.Texture2D, t.texture)
	c.dev.TexImage2D(gpu.Texture2D, gpu.RGB8, w, h, gpu.RGB, gpu.UnsignedByte, nil)
	c.dev.TexParameter(gpu.Texture2D, gpu.TextureMinFilter, gpu.Linear)
	c.dev.TexParameter(gpu.Texture2D, gpu.TextureMagFilter, gpu.Linear)
	c.dev.BindTexture(gpu.Texture2D, 0)

	if t.fb, err = framebuffer.New(c.dev); err != nil {
		return err
	}
	t.fb.Bind(gpu.Framebuffer)
	t.fb.AttachTexture(gpu.ColorAttachment0, gpu.Texture2D, t.texture)
	t.status, _ = t.fb.Check(false)
	t.fb.Unbind(gpu.Framebuffer)
	return nil
}

func (c *Camera) createMultisample(t *renderTarget, w, h, samples int32) error {
	var err error
	if t.texture, err = c.newTexture(); err != nil {
		return err
	}
	c.dev.BindTexture(gpu.Texture2DMultisample, t.texture)
	c.dev.TexImage2DMultisample(samples, gpu.RGB8, w, h)
	c.dev.BindTexture(gpu.Texture2DMultisample, 0)

	if t.depth, err = framebuffer.NewRenderBuffer(c.dev); err != nil {
		return err
	}
	t.depth.StorageMultisample(samples, gpu.Depth24Stencil8, w, h)

	if t.fb, err = framebuffer.New(c.dev); err != nil {
		return err
	}
	t.fb.Bind(gpu.Framebuffer)
	t.fb.AttachRenderBuffer(gpu.DepthStencilAttachment, t.depth)
	t.fb.AttachTexture(gpu.ColorAttachment0, gpu.Texture2DMultisample, t.texture)
	t.status, err = t.fb.Check(true)
	t.fb.Unbind(gpu.Framebuffer)
	return err
}

func (c *Camera) createDepth(t *renderTarget, w, h int32) error {
	var err error
	if t.texture, err = c.newTexture(); err != nil {
		return err
	}
	c.dev.BindTexture(gpu.Texture2D, t.texture)
	c.dev.TexImage2D(gpu.Texture2D, gpu.R32F, w, h, gpu.Red, gpu.Float, nil)
	c.dev.TexParameter(gpu.Texture2D, gpu.TextureMinFilter, gpu.Nearest)
	c.dev.TexParameter(gpu.Texture2D, gpu.TextureMagFilter, gpu.Nearest)
	c.dev.BindTexture(gpu.Texture2D, 0)

	if t.depth, err = framebuffer.NewRenderBuffer(c.dev); err != nil {
		return err
	}
	t.depth.Storage(gpu.Depth24Stencil8, w, h)

	if t.fb, err = framebuffer.New(c.dev); err != nil {
		return err
	}
	t.fb.Bind(gpu.Framebuffer)
	t.fb.AttachRenderBuffer(gpu.DepthStencilAttachment, t.depth)
	t.fb.AttachTexture(gpu.ColorAttachment0, gpu.Texture2D, t.texture)
	t.status, err = t.fb.Check(true)
	t.fb.Unbind(gpu.Framebuffer)
	return err
}

func (c *Camera) destroyTargets() {
	if c.targets == nil {
		return
	}
	c.targets.destroy(c.dev)
	c.targets = nil
	if c.current != None {
		c.dev.BindFramebuffer(gpu.Framebuffer, 0)
		c.current = None
	}
	logger.Named("camera").Debug("render targets destroyed")
}

// Destroy frees the render targets. The camera stays usable; the next
// activation recreates them.
func (c *Camera) Destroy() {
	c.destroyTargets()
}
