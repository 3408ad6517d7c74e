// Package canvas binds Go code to a drawing surface owned by a host
// environment, such as an HTML canvas element reached from js/wasm.
//
// # Rendering contexts
//
// A RenderingContext is the per-surface session. It is created synchronously
// with New and must be initialized with Initialize before any drawing call;
// initialization attaches the named context (for example "Canvas2d") on the
// host exactly once, however many goroutines ask for it.
//
// Drawing operations are queued as CallRecords. Outside a batch every Call is
// flushed to the host immediately as a batch of one. Between BeginBatch and
// EndBatch calls accumulate and cross the boundary in a single callBatch
// round trip, in the order they were issued:
//
//	if err := rc.BeginBatch(ctx); err != nil {
//	    return err
//	}
//	rc.Call(ctx, "moveTo", true, 0, 0)
//	rc.Call(ctx, "lineTo", true, 10, 10)
//	rc.Call(ctx, "stroke", true)
//	return rc.EndBatch(ctx)
//
// Property reads (GetProperty) and value-returning methods (CallMethod) are
// never batched; each is its own round trip.
//
// # Concurrency
//
// Each context owns a single lock. Initialize holds it across the host call.
// A flush holds it only while taking the pending queue, so callers can keep
// queuing while a round trip is outstanding; those calls wait for the next
// flush. Calls in one flush keep their order; separate flushes that are in
// flight at the same time are not ordered with respect to each other.
//
// Subtypes such as canvas2d.Context and webgl.Context embed a RenderingContext
// and translate a typed API onto Call, CallMethod and GetProperty.
package canvas
