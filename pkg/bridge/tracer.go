package bridge

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Tracer is an Invoker that logs every invocation before forwarding it.
type Tracer struct {
	next Invoker
	log  *zap.Logger
}

// NewTracer wraps next. A nil logger falls back to the package Logger.
func NewTracer(next Invoker, log *zap.Logger) *Tracer {
	if log == nil {
		log = Logger()
	}
	return &Tracer{next: next, log: log.Named("bridge")}
}

// Invoke forwards to the wrapped Invoker and logs the outcome at debug level.
// Failures are logged at warn level and returned unchanged.
func (t *Tracer) Invoke(ctx context.Context, path string, args ...any) (any, error) {
	start := time.Now()
	result, err := t.next.Invoke(ctx, path, args...)
	fields := []zap.Field{
		zap.String("path", path),
		zap.Int("args", len(args)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		t.log.Warn("invoke failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	t.log.Debug("invoke", fields...)
	return result, nil
}
