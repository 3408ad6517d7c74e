package canvas

import (
	"context"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/errors"
)

// RenderingContext serializes all host traffic for one drawing surface.
//
// The zero value is not usable; create contexts with New.
type RenderingContext struct {
	canvas      Canvas
	contextName string
	params      any
	opts        options

	// lock guards every field below except state and disposed.
	lock          *semaphore.Weighted
	initialized   bool
	batching      bool
	awaitingFlush bool
	pending       []CallRecord

	state    atomic.Int32
	disposed atomic.Bool
}

// New creates a context of the named type on c. params are passed verbatim
// to the host when the context is added. The context must be initialized
// before use.
func New(c Canvas, contextName string, params any, opts ...Option) *RenderingContext {
	o := options{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&o)
	}
	return &RenderingContext{
		canvas:      c,
		contextName: contextName,
		params:      params,
		opts:        o,
		lock:        semaphore.NewWeighted(1),
	}
}

// Canvas returns the surface this context draws on.
func (rc *RenderingContext) Canvas() Canvas {
	return rc.canvas
}

// ContextName returns the host context type, e.g. "Canvas2d".
func (rc *RenderingContext) ContextName() string {
	return rc.contextName
}

// State reports the current lifecycle state.
func (rc *RenderingContext) State() State {
	return State(rc.state.Load())
}

// Initialize attaches the context on the host. Only the first successful
// call reaches the host; concurrent callers wait for it and later calls
// return immediately. The lock is held across the host call and the
// subtype's Initializer so no other operation can interleave.
//
// If the host rejects the add, the context stays uninitialized and
// Initialize may be retried.
func (rc *RenderingContext) Initialize(ctx context.Context) error {
	if rc.disposed.Load() {
		return rc.disposedErr("canvas.Initialize")
	}
	if err := rc.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer rc.lock.Release(1)

	if rc.initialized {
		return nil
	}

	rc.state.Store(int32(StateInitializing))
	path := rc.path(bridge.ActionAdd)
	if _, err := rc.canvas.Invoker.Invoke(ctx, path, rc.canvas.Ref, rc.params); err != nil {
		rc.publishState()
		return rc.fail("canvas.Initialize", errors.KindInit, path, err)
	}
	if rc.opts.initializer != nil {
		if err := rc.opts.initializer.InitializeExtensions(ctx); err != nil {
			rc.publishState()
			return rc.fail("canvas.Initialize", errors.KindInit, "", err)
		}
	}
	rc.initialized = true
	rc.publishState()

	Logger().Debug("context initialized",
		zap.String("context", rc.contextName),
		zap.String("surface", rc.canvas.Ref.ID))
	return nil
}

// BeginBatch makes subsequent calls accumulate until EndBatch.
func (rc *RenderingContext) BeginBatch(ctx context.Context) error {
	if rc.disposed.Load() {
		return rc.disposedErr("canvas.BeginBatch")
	}
	if err := rc.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	rc.batching = true
	rc.publishState()
	rc.lock.Release(1)
	return nil
}

// EndBatch sends every pending call to the host in one round trip and
// leaves batch mode. A callBatch is sent even when nothing is pending.
func (rc *RenderingContext) EndBatch(ctx context.Context) error {
	if rc.disposed.Load() {
		return rc.disposedErr("canvas.EndBatch")
	}
	if err := rc.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	return rc.flushLocked(ctx)
}

// Batch runs fn between BeginBatch and EndBatch. EndBatch runs even when fn
// fails; both errors are returned.
func (rc *RenderingContext) Batch(ctx context.Context, fn func() error) error {
	if err := rc.BeginBatch(ctx); err != nil {
		return err
	}
	fnErr := fn()
	return errors.Join(fnErr, rc.EndBatch(ctx))
}

// Call queues an operation on the host context. isMethodCall is false for
// property assignments.
//
// While batching, or while another flush is outstanding, the call only joins
// the pending queue and Call returns nil at once; a host failure for it
// surfaces from the flush that eventually carries it. Otherwise the call is
// flushed immediately and Call returns the host's error.
func (rc *RenderingContext) Call(ctx context.Context, name string, isMethodCall bool, args ...any) error {
	if rc.disposed.Load() {
		return rc.disposedErr("canvas.Call")
	}
	if err := rc.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	rc.pending = append(rc.pending, CallRecord{
		Name:         name,
		IsMethodCall: isMethodCall,
		Args:         slices.Clone(args),
	})
	if rc.batching || rc.awaitingFlush {
		rc.lock.Release(1)
		return nil
	}
	return rc.flushLocked(ctx)
}

// flushLocked sends the pending queue. It must be entered holding the lock
// and always returns with the lock released. The lock is dropped before the
// round trip and retaken only to clear the flags.
func (rc *RenderingContext) flushLocked(ctx context.Context) error {
	rc.awaitingFlush = true
	batch := rc.pending
	rc.pending = nil
	rc.publishState()
	rc.lock.Release(1)

	tuples := make([]any, len(batch))
	for i, c := range batch {
		tuples[i] = c.Tuple()
	}
	path := rc.path(bridge.ActionCallBatch)
	_, err := rc.canvas.Invoker.Invoke(ctx, path, rc.canvas.Ref, tuples)

	// Clearing the flags must not be abandoned on cancellation.
	_ = rc.lock.Acquire(context.WithoutCancel(ctx), 1)
	rc.awaitingFlush = false
	rc.batching = false
	rc.publishState()
	rc.lock.Release(1)

	if err != nil {
		return rc.fail("canvas.flush", errors.KindBoundary, path, err)
	}
	return nil
}

// GetProperty reads a property of the host context. It is never batched.
func (rc *RenderingContext) GetProperty(ctx context.Context, name string) (any, error) {
	if rc.disposed.Load() {
		return nil, rc.disposedErr("canvas.GetProperty")
	}
	path := rc.path(bridge.ActionGetProperty)
	v, err := rc.canvas.Invoker.Invoke(ctx, path, rc.canvas.Ref, name)
	if err != nil {
		return nil, rc.fail("canvas.GetProperty", errors.KindBoundary, path, err)
	}
	return v, nil
}

// CallMethod invokes a method on the host context and returns its result.
// It bypasses the queue; use it for methods whose value the caller needs.
// The arguments travel as a single list.
func (rc *RenderingContext) CallMethod(ctx context.Context, method string, args ...any) (any, error) {
	if rc.disposed.Load() {
		return nil, rc.disposedErr("canvas.CallMethod")
	}
	if args == nil {
		args = []any{}
	}
	path := rc.path(bridge.ActionCall)
	v, err := rc.canvas.Invoker.Invoke(ctx, path, rc.canvas.Ref, method, args)
	if err != nil {
		return nil, rc.fail("canvas.CallMethod", errors.KindBoundary, path, err)
	}
	return v, nil
}

// GetPropertyAs reads a property and converts it to T.
func GetPropertyAs[T any](ctx context.Context, rc *RenderingContext, name string) (T, error) {
	v, err := rc.GetProperty(ctx, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return bridge.DecodeResult[T](rc.path(bridge.ActionGetProperty), v)
}

// CallMethodAs invokes a method and converts its result to T.
func CallMethodAs[T any](ctx context.Context, rc *RenderingContext, method string, args ...any) (T, error) {
	v, err := rc.CallMethod(ctx, method, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return bridge.DecodeResult[T](rc.path(bridge.ActionCall), v)
}

// Dispose releases the host-side context without waiting. The remove is
// issued at most once, from a background goroutine; a failure is reported
// to the error handler. Dispose neither takes the lock nor touches batch
// state, and the context must not be used afterwards.
func (rc *RenderingContext) Dispose() {
	if !rc.disposed.CompareAndSwap(false, true) {
		return
	}
	rc.state.Store(int32(StateDisposed))

	errors.Detach("canvas.Dispose", func() error {
		ctx := context.Background()
		if rc.opts.disposeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, rc.opts.disposeTimeout)
			defer cancel()
		}
		return rc.remove(ctx)
	})
}

// Close is the awaited form of Dispose: it issues the same single remove and
// returns its error. Calling Close or Dispose again is a no-op.
func (rc *RenderingContext) Close(ctx context.Context) error {
	if !rc.disposed.CompareAndSwap(false, true) {
		return nil
	}
	rc.state.Store(int32(StateDisposed))
	return rc.remove(ctx)
}

func (rc *RenderingContext) remove(ctx context.Context) error {
	path := rc.path(bridge.ActionRemove)
	if _, err := rc.canvas.Invoker.Invoke(ctx, path, rc.canvas.Ref); err != nil {
		return rc.fail("canvas.Dispose", errors.KindDispose, path, err)
	}
	return nil
}

// publishState recomputes State from the flags. Callers hold the lock.
func (rc *RenderingContext) publishState() {
	var s State
	switch {
	case rc.disposed.Load():
		s = StateDisposed
	case !rc.initialized:
		s = StateUninitialized
	case rc.awaitingFlush:
		s = StateFlushing
	case rc.batching:
		s = StateReadyBatching
	default:
		s = StateReadyIdle
	}
	rc.state.Store(int32(s))
}

func (rc *RenderingContext) path(action string) string {
	return bridge.Path(rc.opts.namespace, rc.contextName, action)
}

func (rc *RenderingContext) fail(op string, kind errors.ErrorKind, path string, err error) error {
	var ce *errors.CanvasError
	if errors.As(err, &ce) {
		return err
	}
	return &errors.CanvasError{
		Op:      op,
		Kind:    kind,
		Context: rc.contextName,
		Path:    path,
		Err:     err,
	}
}

func (rc *RenderingContext) disposedErr(op string) error {
	return &errors.CanvasError{
		Op:      op,
		Kind:    errors.KindBoundary,
		Context: rc.contextName,
		Err:     errors.ErrDisposed,
	}
}
