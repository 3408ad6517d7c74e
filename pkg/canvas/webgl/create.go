package webgl

import (
	"context"

	"github.com/go-drift/canvas/pkg/canvas"
)

// Create creates a WebGL context on c and initializes it, including any
// requested extensions, before returning.
func Create(ctx context.Context, c canvas.Canvas, opts ...Option) (*Context, error) {
	gl := New(c, opts...)
	if err := gl.Initialize(ctx); err != nil {
		return nil, err
	}
	return gl, nil
}

// Result carries the outcome of CreateAsync.
type Result struct {
	Context *Context
	Err     error
}

// CreateAsync runs Create in the background. The channel receives exactly
// one Result and is then closed.
func CreateAsync(ctx context.Context, c canvas.Canvas, opts ...Option) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		gl, err := Create(ctx, c, opts...)
		ch <- Result{Context: gl, Err: err}
	}()
	return ch
}
