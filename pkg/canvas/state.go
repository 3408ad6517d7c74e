package canvas

// State is the lifecycle state of a RenderingContext.
type State int32

const (
	// StateUninitialized is the state before Initialize succeeds.
	StateUninitialized State = iota
	// StateInitializing is held while the host attaches the context.
	StateInitializing
	// StateReadyIdle accepts calls and flushes each one immediately.
	StateReadyIdle
	// StateReadyBatching accumulates calls until EndBatch.
	StateReadyBatching
	// StateFlushing is held while a batch round trip is outstanding.
	StateFlushing
	// StateDisposed is terminal.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReadyIdle:
		return "ready-idle"
	case StateReadyBatching:
		return "ready-batching"
	case StateFlushing:
		return "flushing"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
