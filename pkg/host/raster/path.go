package raster

import (
	"math"

	"github.com/gogpu/gg"
)

type segmentKind int

const (
	segMove segmentKind = iota
	segLine
	segQuad
	segCubic
	segClose
)

// segment is one path element in device space. pts holds the control
// points followed by the end point.
type segment struct {
	kind segmentKind
	pts  [3]gg.Point
}

// path is the current default path. Points are transformed when they are
// added, so later transform changes do not move existing segments.
type path struct {
	segs []segment

	// Subpath start and current point, in device space.
	start, current gg.Point
	hasCurrent     bool
}

func (p *path) reset() {
	*p = path{}
}

func (p *path) moveTo(pt gg.Point) {
	p.segs = append(p.segs, segment{kind: segMove, pts: [3]gg.Point{pt}})
	p.start, p.current, p.hasCurrent = pt, pt, true
}

// ensure starts a subpath at pt when there is no current point, as the
// canvas path methods do.
func (p *path) ensure(pt gg.Point) {
	if !p.hasCurrent {
		p.moveTo(pt)
	}
}

func (p *path) lineTo(pt gg.Point) {
	p.ensure(pt)
	p.segs = append(p.segs, segment{kind: segLine, pts: [3]gg.Point{pt}})
	p.current = pt
}

func (p *path) quadTo(c, pt gg.Point) {
	p.ensure(c)
	p.segs = append(p.segs, segment{kind: segQuad, pts: [3]gg.Point{c, pt}})
	p.current = pt
}

func (p *path) cubicTo(c1, c2, pt gg.Point) {
	p.ensure(c1)
	p.segs = append(p.segs, segment{kind: segCubic, pts: [3]gg.Point{c1, c2, pt}})
	p.current = pt
}

func (p *path) close() {
	if !p.hasCurrent {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose})
	p.current = p.start
}

// replay rebuilds p as the gg context's path. The context transform must be
// the identity.
func (p *path) replay(dc *gg.Context) {
	dc.ClearPath()
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			dc.MoveTo(s.pts[0].X, s.pts[0].Y)
		case segLine:
			dc.LineTo(s.pts[0].X, s.pts[0].Y)
		case segQuad:
			dc.QuadraticTo(s.pts[0].X, s.pts[0].Y, s.pts[1].X, s.pts[1].Y)
		case segCubic:
			dc.CubicTo(s.pts[0].X, s.pts[0].Y, s.pts[1].X, s.pts[1].Y, s.pts[2].X, s.pts[2].Y)
		case segClose:
			dc.ClosePath()
		}
	}
}

// rectPath returns the closed path of a transformed rectangle.
func rectPath(m gg.Matrix, x, y, w, h float64) *path {
	var p path
	p.moveTo(m.TransformPoint(gg.Pt(x, y)))
	p.lineTo(m.TransformPoint(gg.Pt(x+w, y)))
	p.lineTo(m.TransformPoint(gg.Pt(x+w, y+h)))
	p.lineTo(m.TransformPoint(gg.Pt(x, y+h)))
	p.close()
	return &p
}

// ellipse appends an elliptical arc centered at (cx, cy) in user space.
// Angles are in radians, measured clockwise on screen from the x axis.
func (p *path) ellipse(m gg.Matrix, cx, cy, rx, ry, rotation, start, end float64, anticlockwise bool) {
	sweep := arcSweep(start, end, anticlockwise)

	cosR, sinR := math.Cos(rotation), math.Sin(rotation)
	at := func(x, y float64) gg.Point {
		return m.TransformPoint(gg.Pt(cx+x*cosR-y*sinR, cy+x*sinR+y*cosR))
	}

	first := at(rx*math.Cos(start), ry*math.Sin(start))
	if p.hasCurrent {
		p.lineTo(first)
	} else {
		p.moveTo(first)
	}
	if sweep == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)
	a := start
	for range n {
		b := a + step
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		p.cubicTo(
			at(rx*(cosA-k*sinA), ry*(sinA+k*cosA)),
			at(rx*(cosB+k*sinB), ry*(sinB-k*cosB)),
			at(rx*cosB, ry*sinB),
		)
		a = b
	}
}

// arcSweep returns the signed angle an arc covers, following the canvas
// rules: a full turn or more draws a full circle in the given direction.
func arcSweep(start, end float64, anticlockwise bool) float64 {
	const tau = 2 * math.Pi
	if !anticlockwise {
		if end-start >= tau {
			return tau
		}
		d := math.Mod(end-start, tau)
		if d < 0 {
			d += tau
		}
		return d
	}
	if start-end >= tau {
		return -tau
	}
	d := math.Mod(start-end, tau)
	if d < 0 {
		d += tau
	}
	return -d
}

// arcTo appends a tangent arc from the current point through (x1, y1)
// toward (x2, y2).
func (p *path) arcTo(m gg.Matrix, x1, y1, x2, y2, r float64) {
	p1 := gg.Pt(x1, y1)
	if !p.hasCurrent {
		p.moveTo(m.TransformPoint(p1))
		return
	}
	p0 := m.Invert().TransformPoint(p.current)
	p2 := gg.Pt(x2, y2)

	v1 := gg.Pt(p0.X-p1.X, p0.Y-p1.Y)
	v2 := gg.Pt(p2.X-p1.X, p2.Y-p1.Y)
	l1, l2 := math.Hypot(v1.X, v1.Y), math.Hypot(v2.X, v2.Y)
	cross := v1.X*v2.Y - v1.Y*v2.X
	if r == 0 || l1 == 0 || l2 == 0 || math.Abs(cross) < 1e-9 {
		p.lineTo(m.TransformPoint(p1))
		return
	}

	// Half the angle between the two tangent lines.
	theta := math.Acos(math.Max(-1, math.Min(1, (v1.X*v2.X+v1.Y*v2.Y)/(l1*l2)))) / 2
	dist := r / math.Tan(theta)
	t1 := gg.Pt(p1.X+v1.X/l1*dist, p1.Y+v1.Y/l1*dist)
	t2 := gg.Pt(p1.X+v2.X/l2*dist, p1.Y+v2.Y/l2*dist)

	// The center lies along the bisector at r/sin(theta) from p1.
	bx, by := v1.X/l1+v2.X/l2, v1.Y/l1+v2.Y/l2
	bl := math.Hypot(bx, by)
	cd := r / math.Sin(theta)
	c := gg.Pt(p1.X+bx/bl*cd, p1.Y+by/bl*cd)

	start := math.Atan2(t1.Y-c.Y, t1.X-c.X)
	end := math.Atan2(t2.Y-c.Y, t2.X-c.X)
	p.ellipse(m, c.X, c.Y, r, r, 0, start, end, cross > 0)
}

// polygons flattens the path into closed point lists for hit testing.
func (p *path) polygons() [][]gg.Point {
	var (
		polys [][]gg.Point
		cur   []gg.Point
	)
	flush := func() {
		if len(cur) > 1 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			flush()
			cur = []gg.Point{s.pts[0]}
		case segLine:
			cur = append(cur, s.pts[0])
		case segQuad:
			from := cur[len(cur)-1]
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				cur = append(cur, quadAt(from, s.pts[0], s.pts[1], t))
			}
		case segCubic:
			from := cur[len(cur)-1]
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				cur = append(cur, cubicAt(from, s.pts[0], s.pts[1], s.pts[2], t))
			}
		case segClose:
			if len(cur) == 0 {
				continue
			}
			first := cur[0]
			cur = append(cur, first)
			flush()
			cur = []gg.Point{first}
		}
	}
	flush()
	return polys
}

const flattenSteps = 16

func quadAt(p0, p1, p2 gg.Point, t float64) gg.Point {
	u := 1 - t
	return gg.Pt(
		u*u*p0.X+2*u*t*p1.X+t*t*p2.X,
		u*u*p0.Y+2*u*t*p1.Y+t*t*p2.Y,
	)
}

func cubicAt(p0, p1, p2, p3 gg.Point, t float64) gg.Point {
	u := 1 - t
	return gg.Pt(
		u*u*u*p0.X+3*u*u*t*p1.X+3*u*t*t*p2.X+t*t*t*p3.X,
		u*u*u*p0.Y+3*u*u*t*p1.Y+3*u*t*t*p2.Y+t*t*t*p3.Y,
	)
}

// contains reports whether pt is inside the path under the given rule.
// Open subpaths are treated as closed, as fill does.
func (p *path) contains(pt gg.Point, evenOdd bool) bool {
	winding := 0
	for _, poly := range p.polygons() {
		n := len(poly)
		for i := range n {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y <= pt.Y {
				if b.Y > pt.Y && side(a, b, pt) > 0 {
					winding++
				}
			} else if b.Y <= pt.Y && side(a, b, pt) < 0 {
				winding--
			}
		}
	}
	if evenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// nearStroke reports whether pt lies within halfWidth of any segment.
func (p *path) nearStroke(pt gg.Point, halfWidth float64) bool {
	for _, poly := range p.polygons() {
		for i := 1; i < len(poly); i++ {
			if distToSegment(pt, poly[i-1], poly[i]) <= halfWidth {
				return true
			}
		}
	}
	return false
}

func side(a, b, pt gg.Point) float64 {
	return (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
}

func distToSegment(pt, a, b gg.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(pt.X-a.X, pt.Y-a.Y)
	}
	t := math.Max(0, math.Min(1, ((pt.X-a.X)*dx+(pt.Y-a.Y)*dy)/l2))
	return math.Hypot(pt.X-(a.X+t*dx), pt.Y-(a.Y+t*dy))
}
