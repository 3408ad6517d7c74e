// Package webgl provides the WebGL context of a canvas surface.
//
// Commands (clear, drawArrays, uniform updates and so on) are queued through
// the embedded RenderingContext and batch like any other call. Calls that
// create host objects or query state return values and are direct round
// trips; they observe only commands that have already been flushed.
package webgl

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/errors"
)

// ContextName is the host context type for WebGL.
const ContextName = "WebGL"

// Context is a WebGL rendering context.
type Context struct {
	*canvas.RenderingContext

	attrs     Attributes
	requested []string

	mu      sync.RWMutex
	granted map[string]bool
}

// Option configures a WebGL context.
type Option func(*config)

type config struct {
	attrs      Attributes
	extensions []string
	base       []canvas.Option
}

// WithAttributes sets the creation attributes. DefaultAttributes is used otherwise.
func WithAttributes(a Attributes) Option {
	return func(c *config) { c.attrs = a }
}

// WithExtensions names extensions to request while the context initializes.
func WithExtensions(names ...string) Option {
	return func(c *config) { c.extensions = append(c.extensions, names...) }
}

// WithContextOptions passes options through to the underlying RenderingContext.
func WithContextOptions(opts ...canvas.Option) Option {
	return func(c *config) { c.base = append(c.base, opts...) }
}

// New creates an uninitialized WebGL context on c.
func New(c canvas.Canvas, opts ...Option) *Context {
	cfg := config{attrs: DefaultAttributes()}
	for _, opt := range opts {
		opt(&cfg)
	}
	gl := &Context{
		attrs:     cfg.attrs,
		requested: slices.Compact(slices.Sorted(slices.Values(cfg.extensions))),
		granted:   make(map[string]bool),
	}
	base := append(slices.Clone(cfg.base), canvas.WithInitializer(gl))
	gl.RenderingContext = canvas.New(c, ContextName, cfg.attrs, base...)
	return gl
}

// Attributes returns the attributes the context was created with.
func (gl *Context) Attributes() Attributes {
	return gl.attrs
}

// InitializeExtensions requests each configured extension from the host.
// An extension the host does not support is not an error; it is simply
// absent from Extensions.
func (gl *Context) InitializeExtensions(ctx context.Context) error {
	granted := make(map[string]bool, len(gl.requested))
	for _, name := range gl.requested {
		v, err := gl.CallMethod(ctx, "getExtension", name)
		if err != nil {
			return err
		}
		granted[name] = v != nil
		if v == nil {
			canvas.Logger().Info("extension unavailable", zap.String("extension", name))
		}
	}
	gl.mu.Lock()
	gl.granted = granted
	gl.mu.Unlock()
	return nil
}

// Extensions returns the requested extensions the host granted, sorted.
func (gl *Context) Extensions() []string {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	var out []string
	for _, name := range gl.requested {
		if gl.granted[name] {
			out = append(out, name)
		}
	}
	return out
}

// HasExtension reports whether the host granted name.
func (gl *Context) HasExtension(name string) bool {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	return gl.granted[name]
}

func (gl *Context) invoke(ctx context.Context, method string, args ...any) error {
	return gl.Call(ctx, method, true, args...)
}

// createObject calls a host factory method and wraps the returned object.
func createObject(ctx context.Context, gl *Context, method string, args ...any) (object, error) {
	v, err := gl.CallMethod(ctx, method, args...)
	if err != nil {
		return object{}, err
	}
	if v == nil {
		return object{}, &errors.CanvasError{
			Op:      "webgl." + method,
			Kind:    errors.KindBoundary,
			Context: ContextName,
			Err:     errors.ErrNoObject,
		}
	}
	return object{value: v}, nil
}

// Viewport and clearing.

func (gl *Context) Viewport(ctx context.Context, x, y, width, height int) error {
	return gl.invoke(ctx, "viewport", x, y, width, height)
}

func (gl *Context) ClearColor(ctx context.Context, r, g, b, a float32) error {
	return gl.invoke(ctx, "clearColor", r, g, b, a)
}

func (gl *Context) ClearDepth(ctx context.Context, depth float32) error {
	return gl.invoke(ctx, "clearDepth", depth)
}

func (gl *Context) Clear(ctx context.Context, mask Enum) error {
	return gl.invoke(ctx, "clear", mask)
}

// Capabilities.

func (gl *Context) Enable(ctx context.Context, capability Enum) error {
	return gl.invoke(ctx, "enable", capability)
}

func (gl *Context) Disable(ctx context.Context, capability Enum) error {
	return gl.invoke(ctx, "disable", capability)
}

func (gl *Context) BlendFunc(ctx context.Context, sfactor, dfactor Enum) error {
	return gl.invoke(ctx, "blendFunc", sfactor, dfactor)
}

func (gl *Context) DepthFunc(ctx context.Context, fn Enum) error {
	return gl.invoke(ctx, "depthFunc", fn)
}

// Shaders.

func (gl *Context) CreateShader(ctx context.Context, kind Enum) (Shader, error) {
	o, err := createObject(ctx, gl, "createShader", kind)
	return Shader{o}, err
}

func (gl *Context) ShaderSource(ctx context.Context, s Shader, source string) error {
	return gl.invoke(ctx, "shaderSource", s.value, source)
}

func (gl *Context) CompileShader(ctx context.Context, s Shader) error {
	return gl.invoke(ctx, "compileShader", s.value)
}

// GetShaderParameter queries a shader parameter such as CompileStatus.
func (gl *Context) GetShaderParameter(ctx context.Context, s Shader, pname Enum) (any, error) {
	return gl.CallMethod(ctx, "getShaderParameter", s.value, pname)
}

func (gl *Context) GetShaderInfoLog(ctx context.Context, s Shader) (string, error) {
	return canvas.CallMethodAs[string](ctx, gl.RenderingContext, "getShaderInfoLog", s.value)
}

func (gl *Context) DeleteShader(ctx context.Context, s Shader) error {
	return gl.invoke(ctx, "deleteShader", s.value)
}

// Programs.

func (gl *Context) CreateProgram(ctx context.Context) (Program, error) {
	o, err := createObject(ctx, gl, "createProgram")
	return Program{o}, err
}

func (gl *Context) AttachShader(ctx context.Context, p Program, s Shader) error {
	return gl.invoke(ctx, "attachShader", p.value, s.value)
}

func (gl *Context) LinkProgram(ctx context.Context, p Program) error {
	return gl.invoke(ctx, "linkProgram", p.value)
}

// GetProgramParameter queries a program parameter such as LinkStatus.
func (gl *Context) GetProgramParameter(ctx context.Context, p Program, pname Enum) (any, error) {
	return gl.CallMethod(ctx, "getProgramParameter", p.value, pname)
}

func (gl *Context) GetProgramInfoLog(ctx context.Context, p Program) (string, error) {
	return canvas.CallMethodAs[string](ctx, gl.RenderingContext, "getProgramInfoLog", p.value)
}

func (gl *Context) UseProgram(ctx context.Context, p Program) error {
	return gl.invoke(ctx, "useProgram", p.value)
}

func (gl *Context) DeleteProgram(ctx context.Context, p Program) error {
	return gl.invoke(ctx, "deleteProgram", p.value)
}

// Buffers.

func (gl *Context) CreateBuffer(ctx context.Context) (Buffer, error) {
	o, err := createObject(ctx, gl, "createBuffer")
	return Buffer{o}, err
}

func (gl *Context) BindBuffer(ctx context.Context, target Enum, b Buffer) error {
	return gl.invoke(ctx, "bindBuffer", target, b.value)
}

// BufferData uploads vertex data to the buffer bound to target.
func (gl *Context) BufferData(ctx context.Context, target Enum, data []float32, usage Enum) error {
	return gl.invoke(ctx, "bufferData", target, slices.Clone(data), usage)
}

// BufferIndices uploads 16-bit element indices to the buffer bound to target.
func (gl *Context) BufferIndices(ctx context.Context, target Enum, indices []uint16, usage Enum) error {
	return gl.invoke(ctx, "bufferData", target, slices.Clone(indices), usage)
}

func (gl *Context) DeleteBuffer(ctx context.Context, b Buffer) error {
	return gl.invoke(ctx, "deleteBuffer", b.value)
}

// Attributes and uniforms.

// GetAttribLocation returns the index of a vertex attribute, or -1.
func (gl *Context) GetAttribLocation(ctx context.Context, p Program, name string) (int, error) {
	return canvas.CallMethodAs[int](ctx, gl.RenderingContext, "getAttribLocation", p.value, name)
}

func (gl *Context) EnableVertexAttribArray(ctx context.Context, index int) error {
	return gl.invoke(ctx, "enableVertexAttribArray", index)
}

func (gl *Context) VertexAttribPointer(ctx context.Context, index, size int, typ Enum, normalized bool, stride, offset int) error {
	return gl.invoke(ctx, "vertexAttribPointer", index, size, typ, normalized, stride, offset)
}

// GetUniformLocation returns the location of a uniform. The second result is
// false when the program has no active uniform of that name.
func (gl *Context) GetUniformLocation(ctx context.Context, p Program, name string) (UniformLocation, bool, error) {
	v, err := gl.CallMethod(ctx, "getUniformLocation", p.value, name)
	if err != nil || v == nil {
		return UniformLocation{}, false, err
	}
	return UniformLocation{object{value: v}}, true, nil
}

func (gl *Context) Uniform1f(ctx context.Context, loc UniformLocation, x float32) error {
	return gl.invoke(ctx, "uniform1f", loc.value, x)
}

func (gl *Context) Uniform4f(ctx context.Context, loc UniformLocation, x, y, z, w float32) error {
	return gl.invoke(ctx, "uniform4f", loc.value, x, y, z, w)
}

func (gl *Context) UniformMatrix4fv(ctx context.Context, loc UniformLocation, transpose bool, m [16]float32) error {
	return gl.invoke(ctx, "uniformMatrix4fv", loc.value, transpose, m[:])
}

// Drawing.

func (gl *Context) DrawArrays(ctx context.Context, mode Enum, first, count int) error {
	return gl.invoke(ctx, "drawArrays", mode, first, count)
}

func (gl *Context) DrawElements(ctx context.Context, mode Enum, count int, typ Enum, offset int) error {
	return gl.invoke(ctx, "drawElements", mode, count, typ, offset)
}

// State queries.

// GetError returns the oldest unreported error flag.
func (gl *Context) GetError(ctx context.Context) (Enum, error) {
	return canvas.CallMethodAs[Enum](ctx, gl.RenderingContext, "getError")
}

// GetParameter returns a context parameter such as Version or MaxTextureSize.
func (gl *Context) GetParameter(ctx context.Context, pname Enum) (any, error) {
	return gl.CallMethod(ctx, "getParameter", pname)
}

func (gl *Context) DrawingBufferWidth(ctx context.Context) (int, error) {
	return canvas.GetPropertyAs[int](ctx, gl.RenderingContext, "drawingBufferWidth")
}

func (gl *Context) DrawingBufferHeight(ctx context.Context) (int, error) {
	return canvas.GetPropertyAs[int](ctx, gl.RenderingContext, "drawingBufferHeight")
}
