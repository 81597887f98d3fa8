// Package framebuffer wraps OpenGL framebuffer and renderbuffer objects used
// as offscreen render targets.
package framebuffer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/logger"
)

// FrameBuffer owns one framebuffer object. Attachments are owned by the
// caller and attached while the framebuffer is bound.
type FrameBuffer struct {
	dev   gpu.Device
	id    uint32
	ready bool
}

// New generates a framebuffer object.
func New(dev gpu.Device) (*FrameBuffer, error) {
	id := dev.GenFramebuffer()
	if id == 0 {
		return nil, fmt.Errorf("generating framebuffer: %w", errs.ErrResourceCreation)
	}
	return &FrameBuffer{dev: dev, id: id}, nil
}

// ID returns the framebuffer object handle, 0 after Destroy.
func (fb *FrameBuffer) ID() uint32 {
	return fb.id
}

// Bind binds the framebuffer to target (gpu.Framebuffer, ReadFramebuffer
// or DrawFramebuffer).
func (fb *FrameBuffer) Bind(target gpu.Enum) {
	fb.dev.BindFramebuffer(target, fb.id)
}

// Unbind restores the default framebuffer on target.
func (fb *FrameBuffer) Unbind(target gpu.Enum) {
	fb.dev.BindFramebuffer(target, 0)
}

// AttachTexture attaches a 2D or multisample texture to the bound framebuffer.
func (fb *FrameBuffer) AttachTexture(attachment, texTarget gpu.Enum, texture uint32) {
	fb.dev.FramebufferTexture2D(gpu.Framebuffer, attachment, texTarget, texture)
}

// AttachRenderBuffer attaches rb to the bound framebuffer.
func (fb *FrameBuffer) AttachRenderBuffer(attachment gpu.Enum, rb *RenderBuffer) {
	fb.dev.FramebufferRenderbuffer(gpu.Framebuffer, attachment, rb.ID())
}

// Check reports the completeness of the currently bound framebuffer. With
// mayFail set, an incomplete framebuffer is returned as *IncompleteError;
// otherwise the status is only logged and the error is nil.
func (fb *FrameBuffer) Check(mayFail bool) (Status, error) {
	status := Status(fb.dev.CheckFramebufferStatus(gpu.Framebuffer))
	fb.ready = status.Complete()
	if fb.ready {
		return status, nil
	}

	if !mayFail {
		logger.Named("framebuffer").Warn("framebuffer incomplete",
			zap.Uint32("fbo", fb.id),
			zap.String("status", status.String()),
		)
		return status, nil
	}
	return status, &IncompleteError{FBO: fb.id, Status: status}
}

// Ready reports whether the last Check found the framebuffer complete.
func (fb *FrameBuffer) Ready() bool {
	return fb.ready
}

// Destroy deletes the framebuffer object. Calling it twice is a no-op.
func (fb *FrameBuffer) Destroy() {
	if fb.id != 0 {
		fb.dev.DeleteFramebuffer(fb.id)
		fb.id = 0
	}
	fb.ready = false
}

// RenderBuffer owns one renderbuffer object.
type RenderBuffer struct {
	dev gpu.Device
	id  uint32
}

// NewRenderBuffer generates a renderbuffer object.
func NewRenderBuffer(dev gpu.Device) (*RenderBuffer, error) {
	id := dev.GenRenderbuffer()
	if id == 0 {
		return nil, fmt.Errorf("generating renderbuffer: %w", errs.ErrResourceCreation)
	}
	return &RenderBuffer{dev: dev, id: id}, nil
}

// ID returns the renderbuffer handle, 0 after Destroy.
func (rb *RenderBuffer) ID() uint32 {
	return rb.id
}

// Bind makes rb the current renderbuffer.
func (rb *RenderBuffer) Bind() {
	rb.dev.BindRenderbuffer(rb.id)
}

// Storage binds rb and allocates single-sample storage.
func (rb *RenderBuffer) Storage(format gpu.Enum, width, height int32) {
	rb.Bind()
	rb.dev.RenderbufferStorage(format, width, height)
}

// StorageMultisample binds rb and allocates multisample storage.
func (rb *RenderBuffer) StorageMultisample(samples int32, format gpu.Enum, width, height int32) {
	rb.Bind()
	rb.dev.RenderbufferStorageMultisample(samples, format, width, height)
}

// Destroy deletes the renderbuffer object. Calling it twice is a no-op.
func (rb *RenderBuffer) Destroy() {
	if rb.id != 0 {
		rb.dev.DeleteRenderbuffer(rb.id)
		rb.id = 0
	}
}
