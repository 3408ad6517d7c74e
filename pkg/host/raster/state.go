package raster

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/gogpu/gg"

	"github.com/go-drift/canvas/pkg/errors"
)

// drawState is the part of a 2D context that save and restore cover.
type drawState struct {
	props map[string]any

	fill, stroke gg.RGBA
	alpha        float64
	lineWidth    float64
	miterLimit   float64
	lineCap      gg.LineCap
	lineJoin     gg.LineJoin
	dash         []float64
	dashOffset   float64
	fontSize     float64
	matrix       gg.Matrix
}

func defaultState() drawState {
	return drawState{
		props: map[string]any{
			"fillStyle":                "#000000",
			"strokeStyle":              "#000000",
			"font":                     "10px sans-serif",
			"textAlign":                "start",
			"textBaseline":             "alphabetic",
			"direction":                "inherit",
			"globalAlpha":              1.0,
			"globalCompositeOperation": "source-over",
			"imageSmoothingEnabled":    true,
			"lineWidth":                1.0,
			"lineCap":                  "butt",
			"lineJoin":                 "miter",
			"miterLimit":               10.0,
			"lineDashOffset":           0.0,
			"shadowBlur":               0.0,
			"shadowColor":              "rgba(0, 0, 0, 0)",
			"shadowOffsetX":            0.0,
			"shadowOffsetY":            0.0,
		},
		fill:       gg.Black,
		stroke:     gg.Black,
		alpha:      1,
		lineWidth:  1,
		miterLimit: 10,
		fontSize:   10,
		matrix:     gg.Identity(),
	}
}

func (st drawState) clone() drawState {
	st.props = maps.Clone(st.props)
	st.dash = slices.Clone(st.dash)
	return st
}

var keywords = map[string][]string{
	"textAlign":    {"start", "end", "left", "right", "center"},
	"textBaseline": {"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"},
	"direction":    {"inherit", "ltr", "rtl"},
	"lineCap":      {"butt", "round", "square"},
	"lineJoin":     {"miter", "round", "bevel"},
	"globalCompositeOperation": {
		"source-over", "source-in", "source-out", "source-atop",
		"destination-over", "destination-in", "destination-out", "destination-atop",
		"lighter", "copy", "xor", "multiply", "screen", "overlay", "darken", "lighten",
		"color-dodge", "color-burn", "hard-light", "soft-light", "difference", "exclusion",
		"hue", "saturation", "color", "luminosity",
	},
}

func (s *surface) getProperty(name string) (any, error) {
	v, ok := s.st.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: property %s", errors.ErrMethodNotFound, name)
	}
	return v, nil
}

// setProperty assigns a property. Values a browser would ignore (an
// unparsable color, a negative line width) are ignored here too.
func (s *surface) setProperty(name string, value any) error {
	st := &s.st
	if _, ok := st.props[name]; !ok {
		return fmt.Errorf("%w: property %s", errors.ErrMethodNotFound, name)
	}
	a := argList{value}

	switch name {
	case "fillStyle", "strokeStyle", "shadowColor":
		str, err := a.str(0)
		if err != nil {
			return err
		}
		c, ok := parseColor(str)
		if !ok {
			return nil
		}
		switch name {
		case "fillStyle":
			st.fill = c
		case "strokeStyle":
			st.stroke = c
		}
		st.props[name] = serializeColor(c)

	case "font":
		str, err := a.str(0)
		if err != nil {
			return err
		}
		size, ok := parseFontSize(str)
		if !ok {
			return nil
		}
		st.fontSize = size
		st.props[name] = str

	case "textAlign", "textBaseline", "direction", "lineCap", "lineJoin", "globalCompositeOperation":
		str, err := a.str(0)
		if err != nil {
			return err
		}
		i := slices.Index(keywords[name], str)
		if i < 0 {
			return nil
		}
		switch name {
		case "lineCap":
			st.lineCap = gg.LineCap(i)
		case "lineJoin":
			st.lineJoin = gg.LineJoin(i)
		}
		st.props[name] = str

	case "imageSmoothingEnabled":
		b, err := a.boolean(0)
		if err != nil {
			return err
		}
		st.props[name] = b

	default:
		f, err := a.num(0)
		if err != nil {
			return err
		}
		if !acceptNumber(name, f) {
			return nil
		}
		switch name {
		case "globalAlpha":
			st.alpha = f
		case "lineWidth":
			st.lineWidth = f
		case "miterLimit":
			st.miterLimit = f
		case "lineDashOffset":
			st.dashOffset = f
		}
		st.props[name] = f
	}
	return nil
}

func acceptNumber(name string, f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	switch name {
	case "globalAlpha":
		return f >= 0 && f <= 1
	case "lineWidth", "miterLimit":
		return f > 0
	case "shadowBlur":
		return f >= 0
	}
	return true
}

// setLineDash follows the canvas rule that an odd-length list is repeated.
func (st *drawState) setLineDash(segments []float64) {
	for _, v := range segments {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	if len(segments)%2 == 1 {
		segments = append(slices.Clone(segments), segments...)
	}
	st.dash = segments
}

func (st *drawState) lineDash() []any {
	out := make([]any, len(st.dash))
	for i, v := range st.dash {
		out[i] = v
	}
	return out
}

// strokeStyle builds the gg stroke for the current state. Widths are
// scaled by the transform since paths are kept in device space.
func (st *drawState) strokeStyle() gg.Stroke {
	scale := math.Sqrt(math.Abs(st.matrix.A*st.matrix.E - st.matrix.B*st.matrix.D))
	stroke := gg.Stroke{
		Width:      st.lineWidth * scale,
		Cap:        st.lineCap,
		Join:       st.lineJoin,
		MiterLimit: st.miterLimit,
	}
	if len(st.dash) > 0 {
		scaled := make([]float64, len(st.dash))
		for i, v := range st.dash {
			scaled[i] = v * scale
		}
		if d := gg.NewDash(scaled...); d != nil {
			stroke.Dash = d.WithOffset(st.dashOffset * scale)
		}
	}
	return stroke
}

func (st *drawState) paint(c gg.RGBA) gg.RGBA {
	c.A *= st.alpha
	return c
}
