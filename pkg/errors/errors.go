// Package errors provides structured error handling for canvas bindings.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindBoundary indicates a failed invocation across the host boundary.
	KindBoundary
	// KindInit indicates a failure while attaching a context to its surface.
	KindInit
	// KindDecode indicates a host result that could not be converted to the requested type.
	KindDecode
	// KindDispose indicates a failed teardown of a host-side context.
	KindDispose
	// KindConfig indicates an invalid configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindInit:
		return "init"
	case KindDecode:
		return "decode"
	case KindDispose:
		return "dispose"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors for canvas operations.
var (
	// ErrDisposed is returned when a rendering context is used after Dispose or Close.
	ErrDisposed = errors.New("canvas: context disposed")

	// ErrNotInitialized is returned by hosts that receive calls for a known
	// surface with no context attached, either never added or already removed.
	ErrNotInitialized = errors.New("canvas: context not initialized")

	// ErrUnsupportedContext is returned when the host does not know the context type.
	ErrUnsupportedContext = errors.New("canvas: unsupported context type")

	// ErrUnknownSurface is returned when a surface reference does not resolve on the host.
	ErrUnknownSurface = errors.New("canvas: unknown surface")

	// ErrMethodNotFound is returned when the host does not implement an operation.
	ErrMethodNotFound = errors.New("canvas: method not implemented")

	// ErrInvalidArguments indicates the arguments passed to an operation were invalid.
	ErrInvalidArguments = errors.New("canvas: invalid arguments")

	// ErrNoObject is returned when a host factory method such as createShader
	// yields null.
	ErrNoObject = errors.New("canvas: host returned no object")
)

// CanvasError represents a structured error raised by a canvas operation.
type CanvasError struct {
	// Op is the operation that failed (e.g., "canvas.Initialize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Context is the context type name (e.g., "Canvas2d"), if applicable.
	Context string
	// Path is the boundary path that was invoked, if any.
	Path string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CanvasError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s [%s] context=%s: %v", e.Op, e.Kind, e.Context, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CanvasError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "canvas.Dispose").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a host result that does not fit the requested Go type.
type ParseError struct {
	// Path is the boundary path that produced the value.
	Path string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse %s: got %T", e.DataType, e.Got)
	}
	return fmt.Sprintf("failed to parse %s from %s: got %T", e.DataType, e.Path, e.Got)
}

// ErrorHandler receives errors that have no caller to return to,
// such as failures of fire-and-forget teardown.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *CanvasError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
