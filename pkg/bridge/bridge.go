// Package bridge carries calls from Go into the host environment that owns a
// drawing surface. The host is reached through an Invoker, which names a remote
// operation by a dotted path and passes positional arguments.
package bridge

import (
	"context"
	"strings"
)

// Boundary actions understood by every context type on the host.
const (
	ActionAdd         = "add"
	ActionRemove      = "remove"
	ActionGetProperty = "getProperty"
	ActionCall        = "call"
	ActionCallBatch   = "callBatch"
)

// Invoker invokes a named operation on the host and waits for its result.
type Invoker interface {
	Invoke(ctx context.Context, path string, args ...any) (any, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, path string, args ...any) (any, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, path string, args ...any) (any, error) {
	return f(ctx, path, args...)
}

// Path joins a namespace, context name and action into a boundary path,
// e.g. "BlazorExtensions.Canvas2d.callBatch".
func Path(namespace, contextName, action string) string {
	return namespace + "." + contextName + "." + action
}

// SplitPath is the inverse of Path. ok is false when path does not have
// exactly three non-empty segments.
func SplitPath(path string) (namespace, contextName, action string, ok bool) {
	parts := strings.Split(path, ".")
	if len(parts) != 3 {
		return "", "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], true
}

// InvokeAs invokes path and converts the result to T.
func InvokeAs[T any](ctx context.Context, inv Invoker, path string, args ...any) (T, error) {
	v, err := inv.Invoke(ctx, path, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeResult[T](path, v)
}
