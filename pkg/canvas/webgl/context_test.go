package webgl

import (
	"context"
	"slices"
	"testing"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/errors"
)

const (
	pathAdd       = "BlazorExtensions.WebGL.add"
	pathCall      = "BlazorExtensions.WebGL.call"
	pathCallBatch = "BlazorExtensions.WebGL.callBatch"
	pathGetProp   = "BlazorExtensions.WebGL.getProperty"
)

var surface = canvas.ElementRef{ID: "gl-surface"}

// hostObject stands in for a JS object returned by the host.
type hostObject struct{ kind string }

// fakeGL answers like a browser WebGL host.
func fakeGL(extensions ...string) bridge.ResponderFunc {
	return func(ctx context.Context, path string, args []any) (any, error) {
		switch path {
		case pathCall:
			method := args[1].(string)
			list := args[2].([]any)
			switch method {
			case "getExtension":
				if slices.Contains(extensions, list[0].(string)) {
					return map[string]any{}, nil
				}
				return nil, nil
			case "createShader", "createProgram", "createBuffer":
				return &hostObject{kind: method}, nil
			case "getUniformLocation":
				if list[1] == "u_color" {
					return &hostObject{kind: "uniform"}, nil
				}
				return nil, nil
			case "getAttribLocation":
				return float64(0), nil
			case "getShaderParameter", "getProgramParameter":
				return true, nil
			case "getShaderInfoLog":
				return "", nil
			case "getError":
				return float64(InvalidOperation), nil
			case "getParameter":
				return "WebGL 1.0", nil
			}
			return nil, errors.ErrMethodNotFound
		case pathGetProp:
			return float64(300), nil
		}
		return nil, nil
	}
}

func TestCreateWithAttributes(t *testing.T) {
	rec := bridge.NewRecorder(fakeGL())
	attrs := DefaultAttributes()
	attrs.PreserveDrawingBuffer = true

	gl, err := Create(context.Background(), canvas.NewCanvas(surface, rec), WithAttributes(attrs))
	if err != nil {
		t.Fatal(err)
	}
	if gl.ContextName() != ContextName {
		t.Errorf("ContextName = %q", gl.ContextName())
	}
	calls := rec.Calls()
	if len(calls) != 1 || calls[0].Path != pathAdd {
		t.Fatalf("calls = %+v", calls)
	}
	sent, ok := calls[0].Args[1].(Attributes)
	if !ok || !sent.PreserveDrawingBuffer || !sent.Alpha {
		t.Errorf("add params = %#v", calls[0].Args[1])
	}
}

func TestDefaultAttributesSerialize(t *testing.T) {
	n, err := bridge.Normalize(DefaultAttributes())
	if err != nil {
		t.Fatal(err)
	}
	m := n.(map[string]any)
	if m["alpha"] != true || m["stencil"] != false || m["powerPreference"] != "default" {
		t.Errorf("attributes = %v", m)
	}
}

func TestExtensionsRequestedDuringInitialize(t *testing.T) {
	rec := bridge.NewRecorder(fakeGL("OES_element_index_uint"))
	gl, err := Create(context.Background(), canvas.NewCanvas(surface, rec),
		WithExtensions("OES_element_index_uint", "WEBGL_draw_buffers", "OES_element_index_uint"))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{pathAdd, pathCall, pathCall}
	if got := rec.Paths(); !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
	if got := gl.Extensions(); !slices.Equal(got, []string{"OES_element_index_uint"}) {
		t.Errorf("Extensions = %v", got)
	}
	if !gl.HasExtension("OES_element_index_uint") || gl.HasExtension("WEBGL_draw_buffers") {
		t.Error("HasExtension mismatch")
	}
}

func TestExtensionFailureFailsInitialize(t *testing.T) {
	rec := bridge.NewRecorder(func(ctx context.Context, path string, args []any) (any, error) {
		if path == pathCall {
			return nil, errors.ErrUnknownSurface
		}
		return nil, nil
	})
	gl := New(canvas.NewCanvas(surface, rec), WithExtensions("OES_texture_float"))
	err := gl.Initialize(context.Background())

	var ce *errors.CanvasError
	if !errors.As(err, &ce) || !errors.Is(err, errors.ErrUnknownSurface) {
		t.Fatalf("Initialize err = %v", err)
	}
	if gl.State() != canvas.StateUninitialized {
		t.Errorf("State = %v", gl.State())
	}
}

func TestProgramSetup(t *testing.T) {
	rec := bridge.NewRecorder(fakeGL())
	ctx := context.Background()
	gl, err := Create(ctx, canvas.NewCanvas(surface, rec))
	if err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	vs, err := gl.CreateShader(ctx, VertexShader)
	if err != nil || !vs.Valid() {
		t.Fatalf("CreateShader = %v, %v", vs, err)
	}
	prog, err := gl.CreateProgram(ctx)
	if err != nil {
		t.Fatal(err)
	}

	err = gl.Batch(ctx, func() error {
		return errors.Join(
			gl.ShaderSource(ctx, vs, "void main() {}"),
			gl.CompileShader(ctx, vs),
			gl.AttachShader(ctx, prog, vs),
			gl.LinkProgram(ctx, prog),
			gl.UseProgram(ctx, prog),
		)
	})
	if err != nil {
		t.Fatal(err)
	}

	calls := rec.Calls()
	last := calls[len(calls)-1]
	if last.Path != pathCallBatch {
		t.Fatalf("last path = %q", last.Path)
	}
	batch := last.Args[1].([]any)
	if len(batch) != 5 {
		t.Fatalf("batch = %v", batch)
	}
	attach := batch[2].([]any)
	if attach[0] != "attachShader" || attach[2] != prog.value || attach[3] != vs.value {
		t.Errorf("attachShader tuple = %v", attach)
	}

	ok, err := gl.GetShaderParameter(ctx, vs, CompileStatus)
	if err != nil || ok != true {
		t.Errorf("GetShaderParameter = %v, %v", ok, err)
	}
	loc, found, err := gl.GetUniformLocation(ctx, prog, "u_color")
	if err != nil || !found || !loc.Valid() {
		t.Errorf("GetUniformLocation = %v, %v, %v", loc, found, err)
	}
	if _, found, _ := gl.GetUniformLocation(ctx, prog, "u_missing"); found {
		t.Error("missing uniform should not be found")
	}
	idx, err := gl.GetAttribLocation(ctx, prog, "a_position")
	if err != nil || idx != 0 {
		t.Errorf("GetAttribLocation = %v, %v", idx, err)
	}
}

func TestCreateObjectNull(t *testing.T) {
	rec := bridge.NewRecorder(nil)
	gl, err := Create(context.Background(), canvas.NewCanvas(surface, rec))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gl.CreateBuffer(context.Background()); !errors.Is(err, errors.ErrNoObject) {
		t.Errorf("CreateBuffer err = %v", err)
	}
}

func TestQueries(t *testing.T) {
	rec := bridge.NewRecorder(fakeGL())
	ctx := context.Background()
	gl, err := Create(ctx, canvas.NewCanvas(surface, rec))
	if err != nil {
		t.Fatal(err)
	}

	code, err := gl.GetError(ctx)
	if err != nil || code != InvalidOperation || ErrorName(code) != "INVALID_OPERATION" {
		t.Errorf("GetError = %v, %v", code, err)
	}
	w, err := gl.DrawingBufferWidth(ctx)
	if err != nil || w != 300 {
		t.Errorf("DrawingBufferWidth = %v, %v", w, err)
	}
	v, err := gl.GetParameter(ctx, Version)
	if err != nil || v != "WebGL 1.0" {
		t.Errorf("GetParameter = %v, %v", v, err)
	}
}

func TestCommandsFlushUnbatched(t *testing.T) {
	rec := bridge.NewRecorder(fakeGL())
	ctx := context.Background()
	gl, err := Create(ctx, canvas.NewCanvas(surface, rec))
	if err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	if err := gl.ClearColor(ctx, 0, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := gl.Clear(ctx, ColorBufferBit|DepthBufferBit); err != nil {
		t.Fatal(err)
	}
	if rec.Count(pathCallBatch) != 2 {
		t.Fatalf("callBatch count = %d", rec.Count(pathCallBatch))
	}
	tuple := rec.Calls()[1].Args[1].([]any)[0].([]any)
	if tuple[0] != "clear" || tuple[2] != ColorBufferBit|DepthBufferBit {
		t.Errorf("clear tuple = %v", tuple)
	}
}

func TestCreateAsync(t *testing.T) {
	res := <-CreateAsync(context.Background(), canvas.NewCanvas(surface, bridge.NewRecorder(fakeGL())))
	if res.Err != nil || res.Context == nil {
		t.Fatalf("Result = %+v", res)
	}
	if res.Context.State() != canvas.StateReadyIdle {
		t.Errorf("State = %v", res.Context.State())
	}
}
