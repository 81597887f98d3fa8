package framebuffer

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
)

// Status is a framebuffer completeness status.
type Status gpu.Enum

// Complete reports whether the framebuffer can be rendered to.
func (s Status) Complete() bool {
	return gpu.Enum(s) == gpu.FramebufferComplete
}

func (s Status) String() string {
	switch gpu.Enum(s) {
	case gpu.FramebufferComplete:
		return "Complete"
	case gpu.FramebufferIncompleteAttachment:
		return "Incomplete Attachment"
	case gpu.FramebufferIncompleteMissingAttachment:
		return "Missing Attachment"
	case gpu.FramebufferIncompleteDrawBuffer:
		return "Incomplete Draw Buffer"
	case gpu.FramebufferIncompleteReadBuffer:
		return "Incomplete Read Buffer"
	case gpu.FramebufferUnsupported:
		return "Unsupported Configuration"
	case gpu.FramebufferIncompleteMultisample:
		return "Incomplete Multisample"
	default:
		return "Unknown Error"
	}
}

// IncompleteError reports a framebuffer that failed its completeness check.
type IncompleteError struct {
	FBO    uint32
	Status Status
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("framebuffer %d: %s", e.FBO, e.Status)
}

func (e *IncompleteError) Unwrap() error {
	return errs.ErrIncompleteFramebuffer
}

// Limits are the framebuffer limits of the current context.
type Limits struct {
	MaxColorAttachments int32
	MaxWidth            int32
	MaxHeight           int32
	MaxSamples          int32
	MaxLayers           int32
}

// QueryLimits reads the framebuffer limits from dev.
func QueryLimits(dev gpu.Device) Limits {
	return Limits{
		MaxColorAttachments: dev.GetInteger(gpu.MaxColorAttachments),
		MaxWidth:            dev.GetInteger(gpu.MaxFramebufferWidth),
		MaxHeight:           dev.GetInteger(gpu.MaxFramebufferHeight),
		MaxSamples:          dev.GetInteger(gpu.MaxFramebufferSamples),
		MaxLayers:           dev.GetInteger(gpu.MaxFramebufferLayers),
	}
}
