package bridge

import (
	stderrors "errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-drift/canvas/pkg/errors"
)

// Decode converts a host value to T. See DecodeResult.
func Decode[T any](v any) (T, error) {
	return DecodeResult[T]("", v)
}

// DecodeResult converts the value returned by path to T.
//
// A value that already has type T is returned as is. A nil value (a host
// null or undefined) yields the zero T. Numbers are coerced between Go
// numeric types, since hosts report every number as float64. Anything else
// is reshaped through DefaultCodec, which covers structs and typed slices.
func DecodeResult[T any](path string, v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	if v == nil {
		return zero, nil
	}

	out := zero
	var err error
	switch p := any(&out).(type) {
	case *float64:
		*p, err = toFloat64(v)
	case *float32:
		*p, err = toFloat32(v)
	case *int:
		*p, err = toInt(v)
	case *int64:
		*p, err = toInt64(v)
	case *uint32:
		*p, err = toUint32(v)
	case *string:
		if s, ok := parseString(v); ok {
			*p = s
			return out, nil
		}
		err = errNoCoercion
	case *bool:
		if b, ok := parseBool(v); ok {
			*p = b
			return out, nil
		}
		err = errNoCoercion
	default:
		err = errNoCoercion
	}
	switch {
	case err == nil:
		return out, nil
	case err != errNoCoercion:
		return zero, decodeError[T](path, v, err)
	}

	data, err := DefaultCodec.Encode(v)
	if err == nil {
		err = DefaultCodec.DecodeInto(data, &out)
	}
	if err != nil {
		return zero, decodeError[T](path, v, err)
	}
	return out, nil
}

func decodeError[T any](path string, v any, cause error) error {
	return &errors.CanvasError{
		Op:   "bridge.Decode",
		Kind: errors.KindDecode,
		Path: path,
		Err: fmt.Errorf("%w: %v", &errors.ParseError{
			Path:     path,
			DataType: reflect.TypeFor[T]().String(),
			Got:      v,
		}, cause),
	}
}

// errNoCoercion marks a value no direct coercion handles; DefaultCodec
// gets a try at it.
var errNoCoercion = stderrors.New("no direct coercion")

// toInt64 converts a host number to int64. Fractions, NaN, infinities and
// values outside the int64 range are rejected.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, errNoCoercion
	}
}

func uintToInt64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%d overflows int64", n)
	}
	return int64(n), nil
}

func floatToInt64(f float64) (int64, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, fmt.Errorf("%v is not finite", f)
	case f != math.Trunc(f):
		return 0, fmt.Errorf("%v is not an integer", f)
	case f < -(1<<63) || f >= 1<<63:
		return 0, fmt.Errorf("%v overflows int64", f)
	}
	return int64(f), nil
}

func toInt(v any) (int, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, fmt.Errorf("%d overflows int", n)
	}
	return int(n), nil
}

func toUint32(v any) (uint32, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%d overflows uint32", n)
	}
	return uint32(n), nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		i, err := toInt64(v)
		return float64(i), err
	}
}

func toFloat32(v any) (float32, error) {
	f, err := toFloat64(v)
	if err != nil {
		return 0, err
	}
	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, fmt.Errorf("%v overflows float32", f)
	}
	return float32(f), nil
}

// parseString extracts a string from a host value.
func parseString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// parseBool extracts a bool from a host value.
func parseBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		return v == "true", v == "true" || v == "false"
	default:
		return false, false
	}
}
