package canvas

import (
	"context"
	"time"
)

// DefaultNamespace is the global object under which the host exposes its
// context types.
const DefaultNamespace = "BlazorExtensions"

// Initializer is implemented by context subtypes that need setup on the host
// after the context has been added, such as acquiring extension handles.
// It runs once, under the context lock, as the last step of Initialize, so it
// may use CallMethod and GetProperty but not Call, BeginBatch or EndBatch.
type Initializer interface {
	InitializeExtensions(ctx context.Context) error
}

type options struct {
	namespace      string
	disposeTimeout time.Duration
	initializer    Initializer
}

// Option configures a RenderingContext.
type Option func(*options)

// WithNamespace sets the host namespace used to build boundary paths.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithDisposeTimeout bounds the background teardown started by Dispose.
// Zero means no bound.
func WithDisposeTimeout(d time.Duration) Option {
	return func(o *options) {
		o.disposeTimeout = d
	}
}

// WithInitializer installs the subtype setup step run by Initialize.
func WithInitializer(i Initializer) Option {
	return func(o *options) {
		o.initializer = i
	}
}
