package canvas

// CallRecord is one queued operation on the host-side context.
// IsMethodCall distinguishes method invocations (fillRect) from property
// assignments (fillStyle).
type CallRecord struct {
	Name         string
	IsMethodCall bool
	Args         []any
}

// Tuple returns the wire form [name, isMethodCall, args...].
func (c CallRecord) Tuple() []any {
	t := make([]any, 0, len(c.Args)+2)
	t = append(t, c.Name, c.IsMethodCall)
	return append(t, c.Args...)
}
