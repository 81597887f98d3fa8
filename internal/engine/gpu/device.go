// Package gpu declares the OpenGL surface the rendering engine depends on.
//
// Engine packages talk to a Device instead of calling the GL bindings
// directly, which keeps them free of cgo and lets tests run against a
// recording fake (see package gputest). The production implementation lives
// in package gldevice.
package gpu

// Device is a current OpenGL context. All methods must be called from the
// thread that owns the context.
type Device interface {
	// Framebuffers and renderbuffers.
	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target Enum, id uint32)
	CheckFramebufferStatus(target Enum) Enum
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32)
	FramebufferRenderbuffer(target, attachment Enum, renderbuffer uint32)
	GenRenderbuffer() uint32
	DeleteRenderbuffer(id uint32)
	BindRenderbuffer(id uint32)
	RenderbufferStorage(format Enum, width, height int32)
	RenderbufferStorageMultisample(samples int32, format Enum, width, height int32)
	BlitFramebuffer(srcW, srcH, dstW, dstH int32, mask, filter Enum)
	DrawBuffers(buffers ...Enum)

	// Textures.
	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, id uint32)
	TexImage2D(target, internalFormat Enum, width, height int32, format, xtype Enum, pixels []byte)
	TexImage2DMultisample(samples int32, internalFormat Enum, width, height int32)
	TexParameter(target, param, value Enum)
	GenerateMipmap(target Enum)
	PixelStore(param Enum, value int32)

	// Vertex arrays and buffers.
	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target Enum, id uint32)
	BufferDataFloat32(target Enum, data []float32, usage Enum)
	BufferDataUint32(target Enum, data []uint32, usage Enum)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, stride int32, offset int)
	DrawElements(mode Enum, count int32, xtype Enum)

	// Shaders and programs. Compile and link report the driver's info log
	// when they fail.
	CreateShader(stage Enum) uint32
	CompileShader(id uint32, source string) (ok bool, log string)
	DeleteShader(id uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool, log string)
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v [3]float32)
	Uniform4f(location int32, v [4]float32)
	UniformMatrix4(location int32, m [16]float32)

	// Fixed-function state.
	Viewport(x, y, width, height int32)
	Enable(capability Enum)
	Disable(capability Enum)
	DepthFunc(fn Enum)
	DepthMask(write bool)
	BlendFunc(src, dst Enum)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)

	// Read-back and queries.
	ReadPixelsRGB(width, height int32, dst []byte)
	ReadPixelsRed(width, height int32, dst []float32)
	GetInteger(param Enum) int32
}
