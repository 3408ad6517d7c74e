// Package scenario holds the drawing sequences the CLI replays.
package scenario

import (
	"context"
	"math"
	"slices"

	"golang.org/x/image/math/f64"

	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/canvas/canvas2d"
)

// Scenario is a named sequence of calls on a 2D context drawing on el.
type Scenario struct {
	Name  string
	Short string
	Run   func(ctx context.Context, c2d *canvas2d.Context, el *canvas.Element) error
}

var all = []Scenario{
	{Name: "index", Short: "green square with outlined greeting", Run: Index},
	{Name: "drawing", Short: "recorded pen gesture, one stroke per pointer move", Run: Drawing},
}

// All returns every scenario in display order.
func All() []Scenario {
	return slices.Clone(all)
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	i := slices.IndexFunc(all, func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return Scenario{}, false
	}
	return all[i], true
}

// Index paints a filled square and outlines a line of text on its top edge.
func Index(ctx context.Context, c2d *canvas2d.Context, _ *canvas.Element) error {
	if err := c2d.SetFillStyle(ctx, "green"); err != nil {
		return err
	}
	if err := c2d.SetFont(ctx, "48px serif"); err != nil {
		return err
	}
	if err := c2d.FillRect(ctx, 10, 100, 100, 100); err != nil {
		return err
	}
	return c2d.StrokeText(ctx, "Hello Blazor!!!", 10, 100)
}

// Pen draws line segments the way a pointer with the button held does.
type Pen struct {
	pos f64.Vec2
}

// MoveTo places the pen without drawing.
func (p *Pen) MoveTo(pt f64.Vec2) {
	p.pos = pt
}

// Position returns where the pen is.
func (p *Pen) Position() f64.Vec2 {
	return p.pos
}

// DrawTo strokes a round-capped red segment from the pen position to pt and
// moves the pen there.
func (p *Pen) DrawTo(ctx context.Context, c2d *canvas2d.Context, pt f64.Vec2) error {
	if err := c2d.BeginPath(ctx); err != nil {
		return err
	}
	if err := c2d.SetLineWidth(ctx, 5); err != nil {
		return err
	}
	if err := c2d.SetLineCap(ctx, canvas2d.LineCapRound); err != nil {
		return err
	}
	if err := c2d.SetStrokeStyle(ctx, "#c0392b"); err != nil {
		return err
	}
	if err := c2d.MoveTo(ctx, p.pos[0], p.pos[1]); err != nil {
		return err
	}
	p.pos = pt
	if err := c2d.LineTo(ctx, p.pos[0], p.pos[1]); err != nil {
		return err
	}
	return c2d.Stroke(ctx)
}

// Gesture returns the pointer positions of a spiral scribble centered in a
// width x height surface.
func Gesture(width, height float64) []f64.Vec2 {
	const steps = 48
	cx, cy := width/2, height/2
	maxR := math.Min(width, height) * 0.45
	pts := make([]f64.Vec2, 0, steps+1)
	for i := range steps + 1 {
		t := float64(i) / steps
		angle := t * 4 * math.Pi
		r := maxR * t
		pts = append(pts, f64.Vec2{cx + r*math.Cos(angle), cy + r*math.Sin(angle)})
	}
	return pts
}

// Drawing replays Gesture, sized to el, through a Pen.
func Drawing(ctx context.Context, c2d *canvas2d.Context, el *canvas.Element) error {
	pts := Gesture(float64(el.Width), float64(el.Height))
	var pen Pen
	pen.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		if err := pen.DrawTo(ctx, c2d, pt); err != nil {
			return err
		}
	}
	return nil
}
