package errors

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCanvasErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *CanvasError
		want string
	}{
		{
			name: "path",
			err: &CanvasError{
				Op:   "canvas.Call",
				Kind: KindBoundary,
				Path: "BlazorExtensions.Canvas2d.callBatch",
				Err:  fmt.Errorf("host exploded"),
			},
			want: "canvas.Call [boundary] path=BlazorExtensions.Canvas2d.callBatch: host exploded",
		},
		{
			name: "context only",
			err: &CanvasError{
				Op:      "canvas.Initialize",
				Kind:    KindInit,
				Context: "WebGL",
				Err:     ErrUnsupportedContext,
			},
			want: "canvas.Initialize [init] context=WebGL: canvas: unsupported context type",
		},
		{
			name: "bare",
			err:  &CanvasError{Op: "config.Resolve", Kind: KindConfig, Err: fmt.Errorf("bad")},
			want: "config.Resolve [config]: bad",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanvasErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &CanvasError{Op: "canvas.Call", Kind: KindBoundary, Err: ErrDisposed})
	if !Is(err, ErrDisposed) {
		t.Error("expected errors.Is to find ErrDisposed")
	}
	var ce *CanvasError
	if !As(err, &ce) {
		t.Fatal("expected errors.As to find *CanvasError")
	}
	if ce.Kind != KindBoundary {
		t.Errorf("Kind = %v, want %v", ce.Kind, KindBoundary)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindBoundary, "boundary"},
		{KindInit, "init"},
		{KindDecode, "decode"},
		{KindDispose, "dispose"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseErrorString(t *testing.T) {
	err := &ParseError{Path: "ns.Canvas2d.getProperty", DataType: "float64", Got: "x"}
	want := "failed to parse float64 from ns.Canvas2d.getProperty: got string"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err = &ParseError{DataType: "bool", Got: 3}
	if got := err.Error(); got != "failed to parse bool: got int" {
		t.Errorf("Error() = %q", got)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got := err.Error(); got != "panic: boom" {
		t.Errorf("Error() = %q", got)
	}
	err.Op = "canvas.Dispose"
	if got := err.Error(); got != "panic in canvas.Dispose: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestReport(t *testing.T) {
	var captured *CanvasError
	handler := &testHandler{onError: func(err *CanvasError) { captured = err }}

	SetHandler(handler)
	t.Cleanup(func() { SetHandler(nil) })

	Report(&CanvasError{Op: "test.op", Kind: KindDispose, Err: ErrUnknownSurface})
	Report(nil)

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	t.Cleanup(func() { SetHandler(nil) })

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v", captured.Value)
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q", captured.Op)
	}
	if captured.StackTrace == "" {
		t.Error("expected stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	h := &LogHandler{Verbose: true}
	h.HandleError(&CanvasError{
		Op:         "canvas.Dispose",
		Kind:       KindDispose,
		Context:    "Canvas2d",
		Path:       "ns.Canvas2d.remove",
		Err:        ErrUnknownSurface,
		StackTrace: "frame",
	})
	h.HandlePanic(&PanicError{Op: "x", Value: 1})
	h.HandleError(nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "ns.Canvas2d.remove" {
		t.Errorf("path field = %v", fields["path"])
	}
	if fields["kind"] != "dispose" {
		t.Errorf("kind field = %v", fields["kind"])
	}
	if !strings.Contains(fields["error"].(string), "unknown surface") {
		t.Errorf("error field = %v", fields["error"])
	}
	if _, ok := fields["stack"]; !ok {
		t.Error("verbose handler should log the stack")
	}
	if entries[1].Message != "canvas panic" {
		t.Errorf("second entry = %q", entries[1].Message)
	}
	if kind := entries[1].ContextMap()["kind"]; kind != "panic" {
		t.Errorf("panic kind field = %v", kind)
	}
}

func TestDetach(t *testing.T) {
	errs := make(chan *CanvasError, 2)
	panics := make(chan *PanicError, 1)
	SetHandler(&testHandler{
		onError: func(err *CanvasError) { errs <- err },
		onPanic: func(err *PanicError) { panics <- err },
	})
	t.Cleanup(func() { SetHandler(nil) })

	wait := func(t *testing.T) *CanvasError {
		t.Helper()
		select {
		case err := <-errs:
			return err
		case <-time.After(time.Second):
			t.Fatal("nothing reported")
			return nil
		}
	}

	Detach("test.plain", func() error { return ErrUnknownSurface })
	if err := wait(t); err.Op != "test.plain" || !Is(err, ErrUnknownSurface) {
		t.Errorf("plain error reported as %v", err)
	}

	Detach("test.wrapped", func() error {
		return &CanvasError{Op: "canvas.Dispose", Kind: KindDispose, Err: ErrUnknownSurface}
	})
	if err := wait(t); err.Op != "canvas.Dispose" || err.Kind != KindDispose {
		t.Errorf("canvas error reported as %v", err)
	}

	Detach("test.panic", func() error { panic("teardown blew up") })
	select {
	case p := <-panics:
		if p.Op != "test.panic" || p.Value != "teardown blew up" {
			t.Errorf("panic reported as %+v", p)
		}
	case <-time.After(time.Second):
		t.Fatal("panic was not reported")
	}

	Detach("test.ok", func() error { return nil })
	select {
	case err := <-errs:
		t.Errorf("success reported %v", err)
	case <-time.After(20 * time.Millisecond):
	}
}

type testHandler struct {
	onError func(*CanvasError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *CanvasError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
