package camera

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/texture"
)

// Presenter is a window that can show the default framebuffer.
type Presenter interface {
	Size() (width, height int)
	SwapBuffers()
}

// CopyToNormalFrameBuffer resolves the multisample target into the normal
// target and leaves the normal target bound. It does nothing unless the
// multisample target is active.
func (c *Camera) CopyToNormalFrameBuffer() {
	if c.current != MultiSampling || c.targets == nil {
		return
	}
	w, h := int32(c.width), int32(c.height)
	c.targets.multisample.fb.Bind(gpu.ReadFramebuffer)
	c.targets.normal.fb.Bind(gpu.DrawFramebuffer)
	c.dev.BlitFramebuffer(w, h, w, h, gpu.ColorBufferBit, gpu.Nearest)
	c.targets.normal.fb.Bind(gpu.Framebuffer)
}

// CopyRenderResult reads the rendered image as RGB8, w*h*3 bytes. Rows start
// at the bottom unless vflip is set.
func (c *Camera) CopyRenderResult(vflip bool) ([]byte, error) {
	if c.targets == nil {
		return nil, fmt.Errorf("reading render result: no render target: %w", errs.ErrInvalidParameter)
	}
	c.CopyToNormalFrameBuffer()

	pix := make([]byte, c.width*c.height*3)
	c.dev.PixelStore(gpu.PackAlignment, 1)
	c.dev.ReadPixelsRGB(int32(c.width), int32(c.height), pix)
	if vflip {
		texture.FlipV(pix, c.width, c.height, 3)
	}
	return pix, nil
}

// CopyRenderResultF32 reads the red channel of the bound target as floats,
// w*h values. After a depth pass these are linear eye-space depths.
func (c *Camera) CopyRenderResultF32(vflip bool) ([]float32, error) {
	if c.targets == nil {
		return nil, fmt.Errorf("reading render result: no render target: %w", errs.ErrInvalidParameter)
	}

	depth := make([]float32, c.width*c.height)
	c.dev.PixelStore(gpu.PackAlignment, 1)
	c.dev.ReadPixelsRed(int32(c.width), int32(c.height), depth)
	if vflip {
		texture.FlipV(depth, c.width, c.height, 1)
	}
	return depth, nil
}

// Present resolves the rendered image, scales it onto the default
// framebuffer and swaps p's buffers.
func (c *Camera) Present(p Presenter) {
	c.CopyToNormalFrameBuffer()

	ww, wh := p.Size()
	if c.targets != nil {
		c.targets.normal.fb.Bind(gpu.ReadFramebuffer)
		c.dev.BindFramebuffer(gpu.DrawFramebuffer, 0)
		c.dev.BlitFramebuffer(int32(c.width), int32(c.height), int32(ww), int32(wh), gpu.ColorBufferBit, gpu.Linear)
	}
	p.SwapBuffers()
}
