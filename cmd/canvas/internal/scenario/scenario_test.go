package scenario

import (
	"context"
	"math"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/canvas/canvas2d"
)

func TestLookup(t *testing.T) {
	for _, s := range All() {
		got, ok := Lookup(s.Name)
		if !ok || got.Name != s.Name {
			t.Errorf("Lookup(%q) = %v, %v", s.Name, got.Name, ok)
		}
	}
	if _, ok := Lookup("missing"); ok {
		t.Error("Lookup(missing) found a scenario")
	}
}

func TestGesture(t *testing.T) {
	pts := Gesture(300, 150)
	if len(pts) != 49 {
		t.Fatalf("len = %d", len(pts))
	}
	if pts[0] != (f64.Vec2{150, 75}) {
		t.Errorf("start = %v, want center", pts[0])
	}
	for _, p := range pts {
		if p[0] < 0 || p[0] > 300 || p[1] < 0 || p[1] > 150 {
			t.Errorf("point %v leaves the surface", p)
		}
	}
	end := pts[len(pts)-1]
	if r := math.Hypot(end[0]-150, end[1]-75); math.Abs(r-67.5) > 1e-9 {
		t.Errorf("final radius = %v", r)
	}
}

func TestPenDrawTo(t *testing.T) {
	rec := bridge.NewRecorder(nil)
	ctx := context.Background()
	c2d, err := canvas2d.Create(ctx, canvas.NewCanvas(canvas.ElementRef{ID: "pad"}, rec))
	if err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	var pen Pen
	pen.MoveTo(f64.Vec2{1, 2})
	err = c2d.Batch(ctx, func() error {
		return pen.DrawTo(ctx, c2d, f64.Vec2{3, 4})
	})
	if err != nil {
		t.Fatal(err)
	}
	if pen.Position() != (f64.Vec2{3, 4}) {
		t.Errorf("position = %v", pen.Position())
	}

	calls := rec.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want one batch", len(calls))
	}
	tuples := calls[0].Args[1].([]any)
	var names []string
	for _, tp := range tuples {
		names = append(names, tp.([]any)[0].(string))
	}
	want := []string{"beginPath", "lineWidth", "lineCap", "strokeStyle", "moveTo", "lineTo", "stroke"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, names[i], want[i])
		}
	}
	if moveTo := tuples[4].([]any); moveTo[2] != 1.0 || moveTo[3] != 2.0 {
		t.Errorf("moveTo = %v", moveTo)
	}
}

func TestDrawingFollowsElement(t *testing.T) {
	tests := []struct {
		width, height int64
		start         float64
	}{
		{300, 150, 150},
		{800, 600, 400},
	}
	for _, tt := range tests {
		rec := bridge.NewRecorder(nil)
		ctx := context.Background()
		c2d, err := canvas2d.Create(ctx, canvas.NewCanvas(canvas.ElementRef{ID: "pad"}, rec))
		if err != nil {
			t.Fatal(err)
		}
		el := canvas.NewElement(tt.width, tt.height)
		if err := c2d.Batch(ctx, func() error { return Drawing(ctx, c2d, el) }); err != nil {
			t.Fatal(err)
		}

		calls := rec.Calls()
		tuples := calls[len(calls)-1].Args[1].([]any)
		var xs []float64
		for _, tp := range tuples {
			if call := tp.([]any); call[0] == "moveTo" || call[0] == "lineTo" {
				xs = append(xs, call[2].(float64))
			}
		}
		if xs[0] != tt.start {
			t.Errorf("%dx%d: first moveTo x = %v, want %v", tt.width, tt.height, xs[0], tt.start)
		}
		for _, x := range xs {
			if x < 0 || x > float64(tt.width) {
				t.Errorf("%dx%d: x %v leaves the surface", tt.width, tt.height, x)
			}
		}
	}
}
