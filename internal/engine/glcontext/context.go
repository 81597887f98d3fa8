// Package glcontext creates the SDL2 window and OpenGL 4.1 core context the
// renderer draws with.
package glcontext

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/config"
	"github.com/Faultbox/xgl/internal/engine/camera"
	"github.com/Faultbox/xgl/internal/engine/framebuffer"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/gpu/gldevice"
	"github.com/Faultbox/xgl/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Context owns a window and its current GL context. The window is hidden
// unless the config asks for it; rendering goes to the camera targets.
type Context struct {
	config    config.WindowConfig
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	device    *gldevice.Device
	limits    framebuffer.Limits
}

var _ camera.Presenter = (*Context)(nil)

// New initializes SDL2 video, creates the window and context and loads the
// GL entry points.
func New(cfg config.WindowConfig) (*Context, error) {
	log := logger.Named("glcontext")
	c := &Context{config: cfg}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN)
	if cfg.Visible {
		flags = sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN
	}

	var err error
	c.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	c.glContext, err = c.sdlWindow.GLCreateContext()
	if err != nil {
		c.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	c.device, err = gldevice.New()
	if err != nil {
		c.Close()
		return nil, err
	}

	c.limits = framebuffer.QueryLimits(c.device)
	log.Info("context created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("visible", cfg.Visible),
		zap.Int32("max_texture_size", c.device.GetInteger(gpu.MaxTextureSize)),
		zap.Int32("max_samples", c.device.GetInteger(gpu.MaxSamples)),
	)
	log.Debug("framebuffer limits",
		zap.Int32("color_attachments", c.limits.MaxColorAttachments),
		zap.Int32("width", c.limits.MaxWidth),
		zap.Int32("height", c.limits.MaxHeight),
		zap.Int32("samples", c.limits.MaxSamples),
		zap.Int32("layers", c.limits.MaxLayers),
	)

	return c, nil
}

// Device returns the GL device bound to this context.
func (c *Context) Device() gpu.Device {
	return c.device
}

// Limits returns the framebuffer limits queried at creation.
func (c *Context) Limits() framebuffer.Limits {
	return c.limits
}

// Size returns the drawable size of the window in pixels.
func (c *Context) Size() (int, int) {
	width, height := c.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SwapBuffers swaps the OpenGL buffers.
func (c *Context) SwapBuffers() {
	c.sdlWindow.GLSwap()
}

// PollEvents drains the event queue. It returns false once the window was
// closed or Escape was pressed.
func (c *Context) PollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				return false
			}
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}
		}
	}
	return true
}

// Close destroys the context and the window and shuts SDL2 down.
func (c *Context) Close() {
	logger.Named("glcontext").Info("closing context")

	if c.glContext != nil {
		sdl.GLDeleteContext(c.glContext)
		c.glContext = nil
	}
	if c.sdlWindow != nil {
		c.sdlWindow.Destroy()
		c.sdlWindow = nil
	}

	sdl.Quit()
}
