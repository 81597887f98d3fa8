package gpu

// Enum is an OpenGL enumerant. Values match the GL headers so a backend can
// pass them through unchanged.
type Enum uint32

// Framebuffer and renderbuffer targets.
const (
	Framebuffer     Enum = 0x8D40
	ReadFramebuffer Enum = 0x8CA8
	DrawFramebuffer Enum = 0x8CA9
	Renderbuffer    Enum = 0x8D41
)

// Framebuffer attachment points.
const (
	ColorAttachment0       Enum = 0x8CE0
	DepthAttachment        Enum = 0x8D00
	StencilAttachment      Enum = 0x8D20
	DepthStencilAttachment Enum = 0x821A
)

// Framebuffer completeness status values.
const (
	FramebufferComplete                    Enum = 0x8CD5
	FramebufferIncompleteAttachment        Enum = 0x8CD6
	FramebufferIncompleteMissingAttachment Enum = 0x8CD7
	FramebufferIncompleteDrawBuffer        Enum = 0x8CDB
	FramebufferIncompleteReadBuffer        Enum = 0x8CDC
	FramebufferUnsupported                 Enum = 0x8CDD
	FramebufferIncompleteMultisample       Enum = 0x8D56
)

// Texture targets and units.
const (
	Texture2D            Enum = 0x0DE1
	Texture2DMultisample Enum = 0x9100
	Texture0             Enum = 0x84C0
)

// Pixel formats and internal formats.
const (
	Red              Enum = 0x1903
	RGB              Enum = 0x1907
	RGBA             Enum = 0x1908
	RGB8             Enum = 0x8051
	RGBA8            Enum = 0x8058
	R32F             Enum = 0x822E
	RGB32F           Enum = 0x8815
	DepthComponent   Enum = 0x1902
	DepthComponent24 Enum = 0x81A6
	Depth24Stencil8  Enum = 0x88F0
)

// Component types.
const (
	UnsignedByte Enum = 0x1401
	UnsignedInt  Enum = 0x1405
	Float        Enum = 0x1406
)

// Texture sampling parameters.
const (
	Nearest            Enum = 0x2600
	Linear             Enum = 0x2601
	LinearMipmapLinear Enum = 0x2703
	Repeat             Enum = 0x2901
	ClampToEdge        Enum = 0x812F
	TextureMagFilter   Enum = 0x2800
	TextureMinFilter   Enum = 0x2801
	TextureWrapS       Enum = 0x2802
	TextureWrapT       Enum = 0x2803
	PackAlignment      Enum = 0x0D05
	UnpackAlignment    Enum = 0x0CF5
)

// Capabilities toggled with Enable/Disable.
const (
	CullFace    Enum = 0x0B44
	DepthTest   Enum = 0x0B71
	Blend       Enum = 0x0BE2
	Multisample Enum = 0x809D
)

// Depth and blend functions.
const (
	Less             Enum = 0x0201
	LessOrEqual      Enum = 0x0203
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
)

// Clear masks.
const (
	ColorBufferBit Enum = 0x4000
	DepthBufferBit Enum = 0x0100
)

// Shader stages.
const (
	VertexShader   Enum = 0x8B31
	FragmentShader Enum = 0x8B30
)

// Buffer targets, usage and primitive modes.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4
	Triangles          Enum = 0x0004
)

// Integer limits queried with GetInteger.
const (
	MaxTextureSize        Enum = 0x0D33
	MaxSamples            Enum = 0x8D57
	MaxColorAttachments   Enum = 0x8CDF
	MaxFramebufferWidth   Enum = 0x9315
	MaxFramebufferHeight  Enum = 0x9316
	MaxFramebufferLayers  Enum = 0x9317
	MaxFramebufferSamples Enum = 0x9318
)
