package webgl

// Enum is a GLenum or GLbitfield value.
type Enum uint32

// Clear masks.
const (
	DepthBufferBit   Enum = 0x0100
	StencilBufferBit Enum = 0x0400
	ColorBufferBit   Enum = 0x4000
)

// Primitive types.
const (
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineLoop      Enum = 0x0002
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006
)

// Blending factors.
const (
	Zero             Enum = 0
	One              Enum = 1
	SrcColor         Enum = 0x0300
	OneMinusSrcColor Enum = 0x0301
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
	DstAlpha         Enum = 0x0304
	OneMinusDstAlpha Enum = 0x0305
)

// Depth functions.
const (
	Never    Enum = 0x0200
	Less     Enum = 0x0201
	Equal    Enum = 0x0202
	LEqual   Enum = 0x0203
	Greater  Enum = 0x0204
	NotEqual Enum = 0x0205
	GEqual   Enum = 0x0206
	Always   Enum = 0x0207
)

// Capabilities for Enable and Disable.
const (
	CullFace    Enum = 0x0B44
	DepthTest   Enum = 0x0B71
	StencilTest Enum = 0x0B90
	Blend       Enum = 0x0BE2
	ScissorTest Enum = 0x0C11
)

// Buffers.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StreamDraw         Enum = 0x88E0
	StaticDraw         Enum = 0x88E4
	DynamicDraw        Enum = 0x88E8
)

// Data types.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
)

// Shaders and programs.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	DeleteStatus   Enum = 0x8B80
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
)

// Errors returned by GetError.
const (
	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502
	OutOfMemory      Enum = 0x0505
	ContextLost      Enum = 0x9242
)

// Parameters for GetParameter.
const (
	Vendor         Enum = 0x1F00
	Renderer       Enum = 0x1F01
	Version        Enum = 0x1F02
	MaxTextureSize Enum = 0x0D33
	MaxViewportDim Enum = 0x0D3A
)

var errorNames = map[Enum]string{
	NoError:          "NO_ERROR",
	InvalidEnum:      "INVALID_ENUM",
	InvalidValue:     "INVALID_VALUE",
	InvalidOperation: "INVALID_OPERATION",
	OutOfMemory:      "OUT_OF_MEMORY",
	ContextLost:      "CONTEXT_LOST_WEBGL",
}

// ErrorName returns the GL name of an error code, or "" if e is not one.
func ErrorName(e Enum) string {
	return errorNames[e]
}
