package raster

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/errors"
)

// argList is the argument list of one call as it arrives from a binding.
type argList []any

func (a argList) missing(i int) error {
	return fmt.Errorf("%w: argument %d missing", errors.ErrInvalidArguments, i)
}

func (a argList) str(i int) (string, error) {
	if i >= len(a) {
		return "", a.missing(i)
	}
	s, err := bridge.Decode[string](a[i])
	if err != nil {
		return "", fmt.Errorf("%w: argument %d: want string, got %T", errors.ErrInvalidArguments, i, a[i])
	}
	return s, nil
}

func (a argList) num(i int) (float64, error) {
	if i >= len(a) {
		return 0, a.missing(i)
	}
	f, err := bridge.Decode[float64](a[i])
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: want number, got %T", errors.ErrInvalidArguments, i, a[i])
	}
	return f, nil
}

func (a argList) boolean(i int) (bool, error) {
	if i >= len(a) {
		return false, a.missing(i)
	}
	b, err := bridge.Decode[bool](a[i])
	if err != nil {
		return false, fmt.Errorf("%w: argument %d: want bool, got %T", errors.ErrInvalidArguments, i, a[i])
	}
	return b, nil
}

// optBool reads a trailing flag such as arc's anticlockwise, defaulting to
// false.
func (a argList) optBool(i int) bool {
	b, err := a.boolean(i)
	return err == nil && b
}

// nums reads n numbers starting at i.
func (a argList) nums(i, n int) ([]float64, error) {
	out := make([]float64, n)
	for k := range n {
		f, err := a.num(i + k)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: argument %d is not finite", errors.ErrInvalidArguments, i+k)
		}
		out[k] = f
	}
	return out, nil
}

func (a argList) rect(i int) (x, y, w, h float64, err error) {
	v, err := a.nums(i, 4)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return v[0], v[1], v[2], v[3], nil
}

// points reads n (x, y) pairs starting at i and maps them to device space.
func (a argList) points(i, n int, m gg.Matrix) ([]gg.Point, error) {
	v, err := a.nums(i, 2*n)
	if err != nil {
		return nil, err
	}
	pts := make([]gg.Point, n)
	for k := range pts {
		pts[k] = m.TransformPoint(gg.Pt(v[2*k], v[2*k+1]))
	}
	return pts, nil
}

// matrix reads canvas transform arguments (a, b, c, d, e, f).
func (a argList) matrix(i int) (gg.Matrix, error) {
	v, err := a.nums(i, 6)
	if err != nil {
		return gg.Matrix{}, err
	}
	return gg.Matrix{A: v[0], B: v[2], C: v[4], D: v[1], E: v[3], F: v[5]}, nil
}

// fillRule reads an optional "nonzero" or "evenodd" argument.
func (a argList) fillRule(i int) gg.FillRule {
	if s, err := a.str(i); err == nil && s == "evenodd" {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}
