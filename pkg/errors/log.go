package errors

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the logger used by LogHandler.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger configures the logger used by LogHandler.
// Pass nil to restore the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// LogHandler is an ErrorHandler that logs errors through zap.
type LogHandler struct {
	// Verbose adds stack traces to the log entries.
	Verbose bool
}

// HandleError logs a CanvasError.
func (h *LogHandler) HandleError(err *CanvasError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Context != "" {
		fields = append(fields, zap.String("context", err.Context))
	}
	if err.Path != "" {
		fields = append(fields, zap.String("path", err.Path))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	Logger().Error("canvas error", fields...)
}

// HandlePanic logs a PanicError under kind "panic", so panics and errors
// can be filtered on the same field.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", KindPanic),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	Logger().Error("canvas panic", fields...)
}
