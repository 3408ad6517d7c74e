package bridge

import (
	"encoding/json"
)

// MessageCodec encodes and decodes payloads crossing the host boundary.
type MessageCodec interface {
	// Encode converts a Go value to bytes for transmission to the host.
	Encode(value any) ([]byte, error)

	// Decode converts bytes received from the host to a Go value.
	Decode(data []byte) (any, error)

	// DecodeInto converts bytes received from the host into v.
	DecodeInto(data []byte, v any) error
}

// JSONCodec implements MessageCodec using JSON encoding.
// JSON matches what script hosts natively exchange.
type JSONCodec struct{}

// Encode serializes the value to JSON bytes.
func (c JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode deserializes JSON bytes to a Go value.
func (c JSONCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DecodeInto deserializes JSON bytes into a specific type.
func (c JSONCodec) DecodeInto(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// DefaultCodec is the codec used to reshape payloads and results.
var DefaultCodec MessageCodec = JSONCodec{}

// Normalize reshapes v into the plain values a script host understands:
// nil, bool, float64, string, []any and map[string]any.
func Normalize(v any) (any, error) {
	data, err := DefaultCodec.Encode(v)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Decode(data)
}
