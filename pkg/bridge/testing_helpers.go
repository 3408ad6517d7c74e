package bridge

import (
	"context"
	"slices"
	"sync"
)

// Invocation is one call observed by a Recorder.
type Invocation struct {
	Path string
	Args []any
}

// ResponderFunc produces the host's answer for a recorded invocation.
type ResponderFunc func(ctx context.Context, path string, args []any) (any, error)

// Recorder is an Invoker that stands in for the host. It records every
// invocation in arrival order and answers through an optional responder.
//
//	rec := bridge.NewRecorder(nil)
//	rc := canvas.New(canvas.NewCanvas(ref, rec), "Canvas2d", nil)
type Recorder struct {
	mu      sync.Mutex
	calls   []Invocation
	respond ResponderFunc
}

// NewRecorder creates a Recorder. A nil responder answers every call with nil.
func NewRecorder(respond ResponderFunc) *Recorder {
	return &Recorder{respond: respond}
}

// Invoke records the call, then asks the responder for a result.
// The call is recorded before the responder runs, so a responder that blocks
// still leaves the invocation visible to Calls.
func (r *Recorder) Invoke(ctx context.Context, path string, args ...any) (any, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Invocation{Path: path, Args: slices.Clone(args)})
	respond := r.respond
	r.mu.Unlock()

	if respond == nil {
		return nil, nil
	}
	return respond(ctx, path, args)
}

// Calls returns a copy of all recorded invocations in order.
func (r *Recorder) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Paths returns the recorded paths in order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, len(r.calls))
	for i, c := range r.calls {
		paths[i] = c.Path
	}
	return paths
}

// Count returns how many times path was invoked.
func (r *Recorder) Count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Path == path {
			n++
		}
	}
	return n
}

// Reset forgets all recorded invocations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// Chain returns a responder that records nothing itself and forwards to next.
// It lets a Recorder sit in front of a real host:
//
//	rec := bridge.NewRecorder(bridge.Chain(host))
func Chain(next Invoker) ResponderFunc {
	return func(ctx context.Context, path string, args []any) (any, error) {
		return next.Invoke(ctx, path, args...)
	}
}
