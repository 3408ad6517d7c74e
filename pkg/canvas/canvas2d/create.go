package canvas2d

import (
	"context"

	"github.com/go-drift/canvas/pkg/canvas"
)

// Create creates a 2D context on c and initializes it before returning.
func Create(ctx context.Context, c canvas.Canvas, opts ...canvas.Option) (*Context, error) {
	c2d := New(c, opts...)
	if err := c2d.Initialize(ctx); err != nil {
		return nil, err
	}
	return c2d, nil
}

// Result carries the outcome of CreateAsync.
type Result struct {
	Context *Context
	Err     error
}

// CreateAsync runs Create in the background. The channel receives exactly
// one Result and is then closed.
func CreateAsync(ctx context.Context, c canvas.Canvas, opts ...canvas.Option) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		c2d, err := Create(ctx, c, opts...)
		ch <- Result{Context: c2d, Err: err}
	}()
	return ch
}
