// Package gputest provides a recording gpu.Device for tests that have no GL
// context.
package gputest

import (
	"fmt"

	"github.com/Faultbox/xgl/internal/engine/gpu"
)

// Call is one recorded Device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Texture is the state the fake keeps per texture handle.
type Texture struct {
	Target         gpu.Enum
	InternalFormat gpu.Enum
	Width, Height  int32
	Samples        int32
	Params         map[gpu.Enum]gpu.Enum
	Mipmapped      bool
	Pixels         []byte
}

// Renderbuffer is the state the fake keeps per renderbuffer handle.
type Renderbuffer struct {
	Format        gpu.Enum
	Width, Height int32
	Samples       int32
}

// Draw is one recorded DrawElements with the program bound at the time.
type Draw struct {
	Program     uint32
	VertexArray uint32
	Count       int32
}

// Device records calls and keeps just enough state for assertions.
// Handles grow monotonically and are never reused, so a recreated object
// always has a different handle.
type Device struct {
	Calls []Call
	Draws []Draw

	// Status is returned by CheckFramebufferStatus for every framebuffer
	// not listed in FramebufferStatus. Zero value means complete.
	Status            gpu.Enum
	FramebufferStatus map[uint32]gpu.Enum

	// Failure injection.
	FailCompile bool
	FailLink    bool
	FailLog     string
	NullShader  bool
	NullProgram bool

	// Integers answers GetInteger. Unlisted parameters return 0.
	Integers map[gpu.Enum]int32

	// Pixels served by ReadPixelsRGB and ReadPixelsRed. Shorter sources
	// leave the tail of dst untouched.
	ReadRGB []byte
	ReadRed []float32

	Textures      map[uint32]*Texture
	Renderbuffers map[uint32]*Renderbuffer
	Enabled       map[gpu.Enum]bool

	// Live handles per kind of object. Deleting removes the handle.
	Framebuffers map[uint32]bool
	VertexArrays map[uint32]bool
	Buffers      map[uint32]bool
	Shaders      map[uint32]bool
	Programs     map[uint32]bool

	// Lookups counts UniformLocation calls.
	Lookups int

	Bound        map[gpu.Enum]uint32 // framebuffer target -> handle
	BoundTex     map[gpu.Enum]uint32 // texture unit -> handle
	ActiveUnit   gpu.Enum
	Program      uint32
	VertexArray  uint32
	DepthWrite   bool
	DepthFn      gpu.Enum
	ViewportRect [4]int32

	next         uint32
	renderbuffer uint32
	locations    map[uint32]map[string]int32
	names        map[int32]string
	uniforms     map[uint32]map[string]any
}

var _ gpu.Device = (*Device)(nil)

// New returns a Device reporting complete framebuffers and MAX_SAMPLES 16.
func New() *Device {
	return &Device{
		FramebufferStatus: map[uint32]gpu.Enum{},
		Integers: map[gpu.Enum]int32{
			gpu.MaxSamples:            16,
			gpu.MaxTextureSize:        16384,
			gpu.MaxColorAttachments:   8,
			gpu.MaxFramebufferWidth:   16384,
			gpu.MaxFramebufferHeight:  16384,
			gpu.MaxFramebufferSamples: 16,
			gpu.MaxFramebufferLayers:  2048,
		},
		Textures:      map[uint32]*Texture{},
		Renderbuffers: map[uint32]*Renderbuffer{},
		Enabled:       map[gpu.Enum]bool{},
		Framebuffers:  map[uint32]bool{},
		VertexArrays:  map[uint32]bool{},
		Buffers:       map[uint32]bool{},
		Shaders:       map[uint32]bool{},
		Programs:      map[uint32]bool{},
		Bound:         map[gpu.Enum]uint32{},
		BoundTex:      map[gpu.Enum]uint32{},
		ActiveUnit:    gpu.Texture0,
		DepthWrite:    true,
		DepthFn:       gpu.Less,
		locations:     map[uint32]map[string]int32{},
		names:         map[int32]string{},
		uniforms:      map[uint32]map[string]any{},
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// Count returns how many times the named call was recorded.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// CallsNamed returns the recorded calls with the given name, in order.
func (d *Device) CallsNamed(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls and draws but keeps object state.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
}

// Uniform returns the last value uploaded to the named uniform of program.
func (d *Device) Uniform(program uint32, name string) (any, bool) {
	v, ok := d.uniforms[program][name]
	return v, ok
}

// Uniforms returns every uniform uploaded to program, keyed by name.
func (d *Device) Uniforms(program uint32) map[string]any {
	return d.uniforms[program]
}

func (d *Device) setUniform(loc int32, v any) {
	name, ok := d.names[loc]
	if !ok || d.Program == 0 {
		return
	}
	u := d.uniforms[d.Program]
	if u == nil {
		u = map[string]any{}
		d.uniforms[d.Program] = u
	}
	u[name] = v
}

func (d *Device) GenFramebuffer() uint32 {
	id := d.handle()
	d.Framebuffers[id] = true
	d.record("GenFramebuffer", id)
	return id
}

func (d *Device) DeleteFramebuffer(id uint32) {
	delete(d.Framebuffers, id)
	d.record("DeleteFramebuffer", id)
}

func (d *Device) BindFramebuffer(target gpu.Enum, id uint32) {
	switch target {
	case gpu.Framebuffer:
		d.Bound[gpu.ReadFramebuffer] = id
		d.Bound[gpu.DrawFramebuffer] = id
	default:
		d.Bound[target] = id
	}
	d.record("BindFramebuffer", target, id)
}

func (d *Device) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	if target == gpu.Framebuffer {
		target = gpu.DrawFramebuffer
	}
	id := d.Bound[target]
	d.record("CheckFramebufferStatus", target, id)
	if s, ok := d.FramebufferStatus[id]; ok {
		return s
	}
	if d.Status != 0 {
		return d.Status
	}
	return gpu.FramebufferComplete
}

func (d *Device) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, texture uint32) {
	d.record("FramebufferTexture2D", target, attachment, texTarget, texture)
}

func (d *Device) FramebufferRenderbuffer(target, attachment gpu.Enum, renderbuffer uint32) {
	d.record("FramebufferRenderbuffer", target, attachment, renderbuffer)
}

func (d *Device) GenRenderbuffer() uint32 {
	id := d.handle()
	d.Renderbuffers[id] = &Renderbuffer{}
	d.record("GenRenderbuffer", id)
	return id
}

func (d *Device) DeleteRenderbuffer(id uint32) {
	delete(d.Renderbuffers, id)
	d.record("DeleteRenderbuffer", id)
}

func (d *Device) BindRenderbuffer(id uint32) {
	d.renderbuffer = id
	d.record("BindRenderbuffer", id)
}

func (d *Device) RenderbufferStorage(format gpu.Enum, width, height int32) {
	if rb, ok := d.Renderbuffers[d.renderbuffer]; ok {
		*rb = Renderbuffer{Format: format, Width: width, Height: height}
	}
	d.record("RenderbufferStorage", format, width, height)
}

func (d *Device) RenderbufferStorageMultisample(samples int32, format gpu.Enum, width, height int32) {
	if rb, ok := d.Renderbuffers[d.renderbuffer]; ok {
		*rb = Renderbuffer{Format: format, Width: width, Height: height, Samples: samples}
	}
	d.record("RenderbufferStorageMultisample", samples, format, width, height)
}

func (d *Device) BlitFramebuffer(srcW, srcH, dstW, dstH int32, mask, filter gpu.Enum) {
	d.record("BlitFramebuffer", d.Bound[gpu.ReadFramebuffer], d.Bound[gpu.DrawFramebuffer], srcW, srcH, dstW, dstH, mask, filter)
}

func (d *Device) DrawBuffers(buffers ...gpu.Enum) {
	d.record("DrawBuffers", buffers)
}

func (d *Device) GenTexture() uint32 {
	id := d.handle()
	d.Textures[id] = &Texture{Params: map[gpu.Enum]gpu.Enum{}}
	d.record("GenTexture", id)
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	delete(d.Textures, id)
	d.record("DeleteTexture", id)
}

func (d *Device) ActiveTexture(unit gpu.Enum) {
	d.ActiveUnit = unit
	d.record("ActiveTexture", unit)
}

func (d *Device) BindTexture(target gpu.Enum, id uint32) {
	d.BoundTex[d.ActiveUnit] = id
	if tex, ok := d.Textures[id]; ok && tex.Target == 0 {
		tex.Target = target
	}
	d.record("BindTexture", target, id)
}

func (d *Device) boundTexture() *Texture {
	return d.Textures[d.BoundTex[d.ActiveUnit]]
}

func (d *Device) TexImage2D(target, internalFormat gpu.Enum, width, height int32, format, xtype gpu.Enum, pixels []byte) {
	if tex := d.boundTexture(); tex != nil {
		tex.InternalFormat = internalFormat
		tex.Width, tex.Height = width, height
		tex.Pixels = append([]byte(nil), pixels...)
	}
	d.record("TexImage2D", target, internalFormat, width, height, format, xtype, len(pixels))
}

func (d *Device) TexImage2DMultisample(samples int32, internalFormat gpu.Enum, width, height int32) {
	if tex := d.boundTexture(); tex != nil {
		tex.InternalFormat = internalFormat
		tex.Width, tex.Height = width, height
		tex.Samples = samples
	}
	d.record("TexImage2DMultisample", samples, internalFormat, width, height)
}

func (d *Device) TexParameter(target, param, value gpu.Enum) {
	if tex := d.boundTexture(); tex != nil {
		tex.Params[param] = value
	}
	d.record("TexParameter", target, param, value)
}

func (d *Device) GenerateMipmap(target gpu.Enum) {
	if tex := d.boundTexture(); tex != nil {
		tex.Mipmapped = true
	}
	d.record("GenerateMipmap", target)
}

func (d *Device) PixelStore(param gpu.Enum, value int32) {
	d.record("PixelStore", param, value)
}

func (d *Device) GenVertexArray() uint32 {
	id := d.handle()
	d.VertexArrays[id] = true
	d.record("GenVertexArray", id)
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	delete(d.VertexArrays, id)
	d.record("DeleteVertexArray", id)
}

func (d *Device) BindVertexArray(id uint32) {
	d.VertexArray = id
	d.record("BindVertexArray", id)
}

func (d *Device) GenBuffer() uint32 {
	id := d.handle()
	d.Buffers[id] = true
	d.record("GenBuffer", id)
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	delete(d.Buffers, id)
	d.record("DeleteBuffer", id)
}

func (d *Device) BindBuffer(target gpu.Enum, id uint32) {
	d.record("BindBuffer", target, id)
}

func (d *Device) BufferDataFloat32(target gpu.Enum, data []float32, usage gpu.Enum) {
	d.record("BufferDataFloat32", target, len(data), usage)
}

func (d *Device) BufferDataUint32(target gpu.Enum, data []uint32, usage gpu.Enum) {
	d.record("BufferDataUint32", target, len(data), usage)
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	d.record("VertexAttribPointer", index, size, stride, offset)
}

func (d *Device) DrawElements(mode gpu.Enum, count int32, xtype gpu.Enum) {
	d.Draws = append(d.Draws, Draw{Program: d.Program, VertexArray: d.VertexArray, Count: count})
	d.record("DrawElements", mode, count, xtype)
}

func (d *Device) CreateShader(stage gpu.Enum) uint32 {
	if d.NullShader {
		d.record("CreateShader", stage, uint32(0))
		return 0
	}
	id := d.handle()
	d.Shaders[id] = true
	d.record("CreateShader", stage, id)
	return id
}

func (d *Device) CompileShader(id uint32, source string) (bool, string) {
	d.record("CompileShader", id)
	if d.FailCompile {
		return false, d.FailLog
	}
	return true, ""
}

func (d *Device) DeleteShader(id uint32) {
	delete(d.Shaders, id)
	d.record("DeleteShader", id)
}

func (d *Device) CreateProgram() uint32 {
	if d.NullProgram {
		d.record("CreateProgram", uint32(0))
		return 0
	}
	id := d.handle()
	d.Programs[id] = true
	d.locations[id] = map[string]int32{}
	d.record("CreateProgram", id)
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	d.record("AttachShader", program, shader)
}

func (d *Device) LinkProgram(program uint32) (bool, string) {
	d.record("LinkProgram", program)
	if d.FailLink {
		return false, d.FailLog
	}
	return true, ""
}

func (d *Device) DeleteProgram(id uint32) {
	delete(d.Programs, id)
	d.record("DeleteProgram", id)
}

func (d *Device) UseProgram(id uint32) {
	d.Program = id
	d.record("UseProgram", id)
}

// UniformLocation hands out a fresh location per (program, name). Every name
// resolves, as if each program declared every uniform.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.Lookups++
	locs, ok := d.locations[program]
	if !ok {
		return -1
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(d.names))
	locs[name] = loc
	d.names[loc] = name
	return loc
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.setUniform(location, v)
	d.record("Uniform1i", location, v)
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.setUniform(location, v)
	d.record("Uniform1f", location, v)
}

func (d *Device) Uniform3f(location int32, v [3]float32) {
	d.setUniform(location, v)
	d.record("Uniform3f", location, v)
}

func (d *Device) Uniform4f(location int32, v [4]float32) {
	d.setUniform(location, v)
	d.record("Uniform4f", location, v)
}

func (d *Device) UniformMatrix4(location int32, m [16]float32) {
	d.setUniform(location, m)
	d.record("UniformMatrix4", location, m)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportRect = [4]int32{x, y, width, height}
	d.record("Viewport", x, y, width, height)
}

func (d *Device) Enable(capability gpu.Enum) {
	d.Enabled[capability] = true
	d.record("Enable", capability)
}

func (d *Device) Disable(capability gpu.Enum) {
	d.Enabled[capability] = false
	d.record("Disable", capability)
}

func (d *Device) DepthFunc(fn gpu.Enum) {
	d.DepthFn = fn
	d.record("DepthFunc", fn)
}

func (d *Device) DepthMask(write bool) {
	d.DepthWrite = write
	d.record("DepthMask", write)
}

func (d *Device) BlendFunc(src, dst gpu.Enum) {
	d.record("BlendFunc", src, dst)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
}

func (d *Device) Clear(mask gpu.Enum) {
	d.record("Clear", mask)
}

func (d *Device) ReadPixelsRGB(width, height int32, dst []byte) {
	copy(dst, d.ReadRGB)
	d.record("ReadPixelsRGB", d.Bound[gpu.ReadFramebuffer], width, height)
}

func (d *Device) ReadPixelsRed(width, height int32, dst []float32) {
	copy(dst, d.ReadRed)
	d.record("ReadPixelsRed", d.Bound[gpu.ReadFramebuffer], width, height)
}

func (d *Device) GetInteger(param gpu.Enum) int32 {
	d.record("GetInteger", param)
	return d.Integers[param]
}
