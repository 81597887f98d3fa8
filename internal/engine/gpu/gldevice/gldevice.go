// Package gldevice implements gpu.Device on top of the go-gl OpenGL 4.1 core bindings.
package gldevice

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/logger"
)

// Device forwards every call to the current OpenGL context.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New loads the GL function pointers for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is made current!
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	return &Device{}, nil
}

func (d *Device) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (d *Device) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (d *Device) BindFramebuffer(target gpu.Enum, id uint32) {
	gl.BindFramebuffer(uint32(target), id)
}

func (d *Device) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	return gpu.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (d *Device) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, texture uint32) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), texture, 0)
}

func (d *Device) FramebufferRenderbuffer(target, attachment gpu.Enum, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), gl.RENDERBUFFER, renderbuffer)
}

func (d *Device) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

func (d *Device) DeleteRenderbuffer(id uint32) {
	gl.DeleteRenderbuffers(1, &id)
}

func (d *Device) BindRenderbuffer(id uint32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, id)
}

func (d *Device) RenderbufferStorage(format gpu.Enum, width, height int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(format), width, height)
}

func (d *Device) RenderbufferStorageMultisample(samples int32, format gpu.Enum, width, height int32) {
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, uint32(format), width, height)
}

func (d *Device) BlitFramebuffer(srcW, srcH, dstW, dstH int32, mask, filter gpu.Enum) {
	gl.BlitFramebuffer(0, 0, srcW, srcH, 0, 0, dstW, dstH, uint32(mask), uint32(filter))
}

func (d *Device) DrawBuffers(buffers ...gpu.Enum) {
	if len(buffers) == 0 {
		return
	}
	bufs := make([]uint32, len(buffers))
	for i, b := range buffers {
		bufs[i] = uint32(b)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *Device) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (d *Device) ActiveTexture(unit gpu.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (d *Device) BindTexture(target gpu.Enum, id uint32) {
	gl.BindTexture(uint32(target), id)
}

func (d *Device) TexImage2D(target, internalFormat gpu.Enum, width, height int32, format, xtype gpu.Enum, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(uint32(target), 0, int32(internalFormat), width, height, 0, uint32(format), uint32(xtype), ptr)
}

func (d *Device) TexImage2DMultisample(samples int32, internalFormat gpu.Enum, width, height int32) {
	gl.TexImage2DMultisample(gl.TEXTURE_2D_MULTISAMPLE, samples, uint32(internalFormat), width, height, true)
}

func (d *Device) TexParameter(target, param, value gpu.Enum) {
	gl.TexParameteri(uint32(target), uint32(param), int32(value))
}

func (d *Device) GenerateMipmap(target gpu.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (d *Device) PixelStore(param gpu.Enum, value int32) {
	gl.PixelStorei(uint32(param), value)
}

func (d *Device) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *Device) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Device) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *Device) BindBuffer(target gpu.Enum, id uint32) {
	gl.BindBuffer(uint32(target), id)
}

func (d *Device) BufferDataFloat32(target gpu.Enum, data []float32, usage gpu.Enum) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (d *Device) BufferDataUint32(target gpu.Enum, data []uint32, usage gpu.Enum) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
}

func (d *Device) DrawElements(mode gpu.Enum, count int32, xtype gpu.Enum) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), nil)
}

func (d *Device) CreateShader(stage gpu.Enum) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (d *Device) CompileShader(id uint32, source string) (bool, string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}

	var logLen int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return false, ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(id, logLen, nil, &log[0])
	return false, strings.TrimRight(string(log), "\x00")
}

func (d *Device) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}

	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return false, ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return false, strings.TrimRight(string(log), "\x00")
}

func (d *Device) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *Device) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (d *Device) Uniform4f(location int32, v [4]float32) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (d *Device) UniformMatrix4(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) Enable(capability gpu.Enum) {
	gl.Enable(uint32(capability))
}

func (d *Device) Disable(capability gpu.Enum) {
	gl.Disable(uint32(capability))
}

func (d *Device) DepthFunc(fn gpu.Enum) {
	gl.DepthFunc(uint32(fn))
}

func (d *Device) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *Device) BlendFunc(src, dst gpu.Enum) {
	gl.BlendFunc(uint32(src), uint32(dst))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(mask gpu.Enum) {
	gl.Clear(uint32(mask))
}

func (d *Device) ReadPixelsRGB(width, height int32, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.ReadPixels(0, 0, width, height, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

func (d *Device) ReadPixelsRed(width, height int32, dst []float32) {
	if len(dst) == 0 {
		return
	}
	gl.ReadPixels(0, 0, width, height, gl.RED, gl.FLOAT, gl.Ptr(dst))
}

func (d *Device) GetInteger(param gpu.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(param), &v)
	return v
}
