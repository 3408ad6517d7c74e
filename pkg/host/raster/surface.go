package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"go.uber.org/zap"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/errors"
)

// surface is one drawing surface and the 2D context attached to it.
type surface struct {
	id       string
	dc       *gg.Context
	fonts    *fontCache
	attached bool

	st    drawState
	stack []drawState
	path  path

	// images resolves other surfaces for drawImage.
	images func(id string) (image.Image, bool)
}

func newSurface(id string, width, height int, fonts *fontCache) *surface {
	return &surface{
		id:    id,
		dc:    gg.NewContext(width, height),
		fonts: fonts,
		st:    defaultState(),
	}
}

// attach starts a fresh 2D state. Pixels are kept: adding a context does
// not clear the surface.
func (s *surface) attach() {
	s.attached = true
	s.st = defaultState()
	s.stack = nil
	s.path.reset()
	s.dc.ResetClip()
}

func (s *surface) detach() {
	s.attached = false
	s.stack = nil
	s.path.reset()
}

// applyBatch runs every [name, isMethodCall, args...] tuple in order and
// stops at the first failure.
func (s *surface) applyBatch(raw any) error {
	tuples, err := bridge.Decode[[]any](raw)
	if err != nil {
		return fmt.Errorf("%w: call list: %v", errors.ErrInvalidArguments, err)
	}
	for i, t := range tuples {
		tuple, err := bridge.Decode[[]any](t)
		if err != nil || len(tuple) < 2 {
			return fmt.Errorf("%w: call %d is not a [name, isMethodCall, args...] tuple", errors.ErrInvalidArguments, i)
		}
		a := argList(tuple)
		name, err := a.str(0)
		if err != nil {
			return fmt.Errorf("call %d: %w", i, err)
		}
		isMethod, err := a.boolean(1)
		if err != nil {
			return fmt.Errorf("call %d: %w", i, err)
		}
		if _, err := s.apply(name, isMethod, tuple[2:]); err != nil {
			return fmt.Errorf("call %d (%s): %w", i, name, err)
		}
	}
	Logger().Debug("batch applied", zap.String("surface", s.id), zap.Int("calls", len(tuples)))
	return nil
}

// apply runs one method call or property assignment.
func (s *surface) apply(name string, isMethod bool, args []any) (any, error) {
	if !isMethod {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s takes one value", errors.ErrInvalidArguments, name)
		}
		return nil, s.setProperty(name, args[0])
	}
	op, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrMethodNotFound, name)
	}
	if len(args) < op.minArgs {
		return nil, fmt.Errorf("%w: %s needs %d arguments, got %d", errors.ErrInvalidArguments, name, op.minArgs, len(args))
	}
	return op.run(s, argList(args))
}

type method struct {
	minArgs int
	run     func(s *surface, a argList) (any, error)
}

// void adapts a method without a result.
func void(minArgs int, fn func(s *surface, a argList) error) method {
	return method{minArgs: minArgs, run: func(s *surface, a argList) (any, error) {
		return nil, fn(s, a)
	}}
}

var methods map[string]method

func init() {
	methods = map[string]method{
		// Rectangles.
		"fillRect": void(4, func(s *surface, a argList) error {
			x, y, w, h, err := a.rect(0)
			if err != nil {
				return err
			}
			return s.fillPath(rectPath(s.st.matrix, x, y, w, h), gg.FillRuleNonZero)
		}),
		"strokeRect": void(4, func(s *surface, a argList) error {
			x, y, w, h, err := a.rect(0)
			if err != nil {
				return err
			}
			return s.strokePath(rectPath(s.st.matrix, x, y, w, h))
		}),
		"clearRect": void(4, func(s *surface, a argList) error {
			x, y, w, h, err := a.rect(0)
			if err != nil {
				return err
			}
			s.clearRect(x, y, w, h)
			return nil
		}),

		// Paths.
		"beginPath": void(0, func(s *surface, a argList) error {
			s.path.reset()
			return nil
		}),
		"closePath": void(0, func(s *surface, a argList) error {
			s.path.close()
			return nil
		}),
		"moveTo": void(2, func(s *surface, a argList) error {
			pts, err := a.points(0, 1, s.st.matrix)
			if err != nil {
				return err
			}
			s.path.moveTo(pts[0])
			return nil
		}),
		"lineTo": void(2, func(s *surface, a argList) error {
			pts, err := a.points(0, 1, s.st.matrix)
			if err != nil {
				return err
			}
			s.path.lineTo(pts[0])
			return nil
		}),
		"quadraticCurveTo": void(4, func(s *surface, a argList) error {
			pts, err := a.points(0, 2, s.st.matrix)
			if err != nil {
				return err
			}
			s.path.quadTo(pts[0], pts[1])
			return nil
		}),
		"bezierCurveTo": void(6, func(s *surface, a argList) error {
			pts, err := a.points(0, 3, s.st.matrix)
			if err != nil {
				return err
			}
			s.path.cubicTo(pts[0], pts[1], pts[2])
			return nil
		}),
		"rect": void(4, func(s *surface, a argList) error {
			x, y, w, h, err := a.rect(0)
			if err != nil {
				return err
			}
			r := rectPath(s.st.matrix, x, y, w, h)
			s.path.segs = append(s.path.segs, r.segs...)
			s.path.moveTo(s.st.matrix.TransformPoint(gg.Pt(x, y)))
			return nil
		}),
		"arc": void(5, func(s *surface, a argList) error {
			v, err := a.nums(0, 5)
			if err != nil {
				return err
			}
			if v[2] < 0 {
				return fmt.Errorf("%w: negative radius", errors.ErrInvalidArguments)
			}
			ccw := a.optBool(5)
			s.path.ellipse(s.st.matrix, v[0], v[1], v[2], v[2], 0, v[3], v[4], ccw)
			return nil
		}),
		"ellipse": void(7, func(s *surface, a argList) error {
			v, err := a.nums(0, 7)
			if err != nil {
				return err
			}
			if v[2] < 0 || v[3] < 0 {
				return fmt.Errorf("%w: negative radius", errors.ErrInvalidArguments)
			}
			ccw := a.optBool(7)
			s.path.ellipse(s.st.matrix, v[0], v[1], v[2], v[3], v[4], v[5], v[6], ccw)
			return nil
		}),
		"arcTo": void(5, func(s *surface, a argList) error {
			v, err := a.nums(0, 5)
			if err != nil {
				return err
			}
			if v[4] < 0 {
				return fmt.Errorf("%w: negative radius", errors.ErrInvalidArguments)
			}
			s.path.arcTo(s.st.matrix, v[0], v[1], v[2], v[3], v[4])
			return nil
		}),

		// Drawing paths.
		"fill": void(0, func(s *surface, a argList) error {
			return s.fillPath(&s.path, a.fillRule(0))
		}),
		"stroke": void(0, func(s *surface, a argList) error {
			return s.strokePath(&s.path)
		}),
		"clip": void(0, func(s *surface, a argList) error {
			s.dc.SetFillRule(a.fillRule(0))
			s.path.replay(s.dc)
			s.dc.Clip()
			return nil
		}),
		"isPointInPath": {minArgs: 2, run: func(s *surface, a argList) (any, error) {
			v, err := a.nums(0, 2)
			if err != nil {
				return nil, err
			}
			return s.path.contains(gg.Pt(v[0], v[1]), a.fillRule(2) == gg.FillRuleEvenOdd), nil
		}},
		"isPointInStroke": {minArgs: 2, run: func(s *surface, a argList) (any, error) {
			v, err := a.nums(0, 2)
			if err != nil {
				return nil, err
			}
			return s.path.nearStroke(gg.Pt(v[0], v[1]), s.st.strokeStyle().Width/2), nil
		}},

		// Line dashes.
		"setLineDash": void(1, func(s *surface, a argList) error {
			segs, err := bridge.Decode[[]float64](a[0])
			if err != nil {
				return fmt.Errorf("%w: setLineDash: %v", errors.ErrInvalidArguments, err)
			}
			s.st.setLineDash(segs)
			return nil
		}),
		"getLineDash": {run: func(s *surface, a argList) (any, error) {
			return s.st.lineDash(), nil
		}},

		// Text.
		"fillText":    void(3, func(s *surface, a argList) error { return s.drawText(a, s.st.fill) }),
		"strokeText":  void(3, func(s *surface, a argList) error { return s.drawText(a, s.st.stroke) }),
		"measureText": {minArgs: 1, run: func(s *surface, a argList) (any, error) { return s.measureText(a) }},

		// Transformations.
		"translate": void(2, func(s *surface, a argList) error {
			v, err := a.nums(0, 2)
			if err != nil {
				return err
			}
			s.st.matrix = s.st.matrix.Multiply(gg.Translate(v[0], v[1]))
			return nil
		}),
		"scale": void(2, func(s *surface, a argList) error {
			v, err := a.nums(0, 2)
			if err != nil {
				return err
			}
			s.st.matrix = s.st.matrix.Multiply(gg.Scale(v[0], v[1]))
			return nil
		}),
		"rotate": void(1, func(s *surface, a argList) error {
			v, err := a.nums(0, 1)
			if err != nil {
				return err
			}
			s.st.matrix = s.st.matrix.Multiply(gg.Rotate(v[0]))
			return nil
		}),
		"transform": void(6, func(s *surface, a argList) error {
			m, err := a.matrix(0)
			if err != nil {
				return err
			}
			s.st.matrix = s.st.matrix.Multiply(m)
			return nil
		}),
		"setTransform": void(6, func(s *surface, a argList) error {
			m, err := a.matrix(0)
			if err != nil {
				return err
			}
			s.st.matrix = m
			return nil
		}),
		"resetTransform": void(0, func(s *surface, a argList) error {
			s.st.matrix = gg.Identity()
			return nil
		}),

		// State.
		"save": void(0, func(s *surface, a argList) error {
			s.stack = append(s.stack, s.st.clone())
			s.dc.Push()
			return nil
		}),
		"restore": void(0, func(s *surface, a argList) error {
			if len(s.stack) == 0 {
				return nil
			}
			s.st = s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.dc.Pop()
			return nil
		}),

		// Images.
		"drawImage": void(3, func(s *surface, a argList) error { return s.drawImage(a) }),
	}
}

func (s *surface) fillPath(p *path, rule gg.FillRule) error {
	s.dc.SetFillRule(rule)
	s.dc.SetFillBrush(gg.Solid(s.st.paint(s.st.fill)))
	p.replay(s.dc)
	return s.dc.Fill()
}

func (s *surface) strokePath(p *path) error {
	s.dc.SetStroke(s.st.strokeStyle())
	s.dc.SetStrokeBrush(gg.Solid(s.st.paint(s.st.stroke)))
	p.replay(s.dc)
	return s.dc.Stroke()
}

// clearRect makes the device-space bounds of the transformed rectangle
// transparent.
func (s *surface) clearRect(x, y, w, h float64) {
	m := s.st.matrix
	corners := []gg.Point{
		m.TransformPoint(gg.Pt(x, y)),
		m.TransformPoint(gg.Pt(x+w, y)),
		m.TransformPoint(gg.Pt(x, y+h)),
		m.TransformPoint(gg.Pt(x+w, y+h)),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	x0, y0 := max(0, int(math.Floor(minX))), max(0, int(math.Floor(minY)))
	x1, y1 := min(s.dc.Width(), int(math.Ceil(maxX))), min(s.dc.Height(), int(math.Ceil(maxY)))
	if x0 == 0 && y0 == 0 && x1 == s.dc.Width() && y1 == s.dc.Height() {
		s.dc.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (s *surface) face() text.Face {
	return s.fonts.face(s.st.fontSize)
}

func (s *surface) drawText(a argList, c gg.RGBA) error {
	str, err := a.str(0)
	if err != nil {
		return err
	}
	v, err := a.nums(1, 2)
	if err != nil {
		return err
	}
	face := s.face()
	if face == nil {
		return nil
	}
	width, _ := text.Measure(str, face)
	scaleX := 1.0
	if len(a) > 3 {
		if maxWidth, err := a.num(3); err == nil && maxWidth > 0 && width > maxWidth {
			scaleX = maxWidth / width
			width = maxWidth
		}
	}
	x, y := v[0], v[1]
	switch s.st.props["textAlign"] {
	case "center":
		x -= width / 2
	case "right", "end":
		x -= width
	}
	m := face.Metrics()
	switch s.st.props["textBaseline"] {
	case "top", "hanging":
		y += m.Ascent
	case "middle":
		y += (m.Ascent - m.Descent) / 2
	case "bottom", "ideographic":
		y -= m.Descent
	}

	// Glyphs are rasterized unrotated at the transformed origin.
	at := s.st.matrix.TransformPoint(gg.Pt(x, y))
	if scaleX != 1 {
		face = s.fonts.face(s.st.fontSize * scaleX)
	}
	s.dc.SetFont(face)
	s.dc.SetColor(s.st.paint(c).Color())
	s.dc.DrawString(str, at.X, at.Y)
	return nil
}

// measureText reports metrics with the same keys a browser's TextMetrics
// serializes to.
func (s *surface) measureText(a argList) (any, error) {
	str, err := a.str(0)
	if err != nil {
		return nil, err
	}
	face := s.face()
	if face == nil {
		return map[string]any{"width": 0.0}, nil
	}
	width, _ := text.Measure(str, face)
	m := face.Metrics()
	left := 0.0
	switch s.st.props["textAlign"] {
	case "center":
		left = width / 2
	case "right", "end":
		left = width
	}
	return map[string]any{
		"width":                    width,
		"actualBoundingBoxLeft":    left,
		"actualBoundingBoxRight":   width - left,
		"actualBoundingBoxAscent":  m.Ascent,
		"actualBoundingBoxDescent": m.Descent,
		"fontBoundingBoxAscent":    m.Ascent,
		"fontBoundingBoxDescent":   m.Descent,
	}, nil
}

// drawImage supports the three canvas forms: (src, dx, dy),
// (src, dx, dy, dw, dh) and (src, sx, sy, sw, sh, dx, dy, dw, dh). The
// source must be another surface of this host.
func (s *surface) drawImage(a argList) error {
	ref, err := bridge.Decode[canvas.ElementRef](a[0])
	if err != nil || ref.ID == "" {
		return fmt.Errorf("%w: drawImage source %v", errors.ErrInvalidArguments, a[0])
	}
	if s.images == nil {
		return fmt.Errorf("%w: %s", errors.ErrUnknownSurface, ref.ID)
	}
	src, ok := s.images(ref.ID)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownSurface, ref.ID)
	}

	opts := gg.DrawImageOptions{Opacity: s.st.alpha, Interpolation: gg.InterpBilinear}
	var dx, dy, dw, dh float64
	switch len(a) {
	case 3:
		v, err := a.nums(1, 2)
		if err != nil {
			return err
		}
		b := src.Bounds()
		dx, dy, dw, dh = v[0], v[1], float64(b.Dx()), float64(b.Dy())
	case 5:
		v, err := a.nums(1, 4)
		if err != nil {
			return err
		}
		dx, dy, dw, dh = v[0], v[1], v[2], v[3]
	case 9:
		v, err := a.nums(1, 8)
		if err != nil {
			return err
		}
		r := image.Rect(int(v[0]), int(v[1]), int(v[0]+v[2]), int(v[1]+v[3]))
		opts.SrcRect = &r
		dx, dy, dw, dh = v[4], v[5], v[6], v[7]
	default:
		return fmt.Errorf("%w: drawImage takes 3, 5 or 9 arguments, got %d", errors.ErrInvalidArguments, len(a))
	}
	if s.st.alpha == 0 {
		return nil
	}

	// Axis-aligned placement of the transformed destination rectangle.
	tl := s.st.matrix.TransformPoint(gg.Pt(dx, dy))
	br := s.st.matrix.TransformPoint(gg.Pt(dx+dw, dy+dh))
	opts.X, opts.Y = tl.X, tl.Y
	opts.DstWidth, opts.DstHeight = br.X-tl.X, br.Y-tl.Y
	s.dc.DrawImageEx(gg.ImageBufFromImage(src), opts)
	return nil
}
