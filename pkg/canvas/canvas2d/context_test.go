package canvas2d

import (
	"context"
	"image/color"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/errors"
)

const (
	pathAdd       = "BlazorExtensions.Canvas2d.add"
	pathCallBatch = "BlazorExtensions.Canvas2d.callBatch"
	pathCall      = "BlazorExtensions.Canvas2d.call"
	pathGetProp   = "BlazorExtensions.Canvas2d.getProperty"
)

var surface = canvas.ElementRef{ID: "myCanvas"}

func newContext(t *testing.T, respond bridge.ResponderFunc) (*Context, *bridge.Recorder) {
	t.Helper()
	rec := bridge.NewRecorder(respond)
	c2d, err := Create(context.Background(), canvas.NewCanvas(surface, rec))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec.Reset()
	return c2d, rec
}

func tuples(t *testing.T, inv bridge.Invocation) []any {
	t.Helper()
	if inv.Path != pathCallBatch {
		t.Fatalf("path = %q, want %q", inv.Path, pathCallBatch)
	}
	return inv.Args[1].([]any)
}

func TestCreate(t *testing.T) {
	rec := bridge.NewRecorder(nil)
	c2d, err := Create(context.Background(), canvas.NewCanvas(surface, rec))
	if err != nil {
		t.Fatal(err)
	}
	if c2d.ContextName() != ContextName {
		t.Errorf("ContextName = %q", c2d.ContextName())
	}
	if c2d.State() != canvas.StateReadyIdle {
		t.Errorf("State = %v", c2d.State())
	}
	calls := rec.Calls()
	if len(calls) != 1 || calls[0].Path != pathAdd {
		t.Fatalf("calls = %+v", calls)
	}
	if calls[0].Args[0] != surface || calls[0].Args[1] != nil {
		t.Errorf("add args = %v", calls[0].Args)
	}
}

func TestCreateAsync(t *testing.T) {
	rec := bridge.NewRecorder(func(ctx context.Context, path string, args []any) (any, error) {
		return nil, errors.ErrUnknownSurface
	})
	res := <-CreateAsync(context.Background(), canvas.NewCanvas(surface, rec))
	if res.Context != nil || !errors.Is(res.Err, errors.ErrUnknownSurface) {
		t.Errorf("Result = %+v", res)
	}

	ok := <-CreateAsync(context.Background(), canvas.NewCanvas(surface, bridge.NewRecorder(nil)))
	if ok.Err != nil || ok.Context == nil {
		t.Errorf("Result = %+v", ok)
	}
}

func TestUnbatchedCallsFlushIndividually(t *testing.T) {
	c2d, rec := newContext(t, nil)
	ctx := context.Background()

	if err := c2d.SetFillStyle(ctx, "green"); err != nil {
		t.Fatal(err)
	}
	if err := c2d.FillRect(ctx, 10, 100, 100, 100); err != nil {
		t.Fatal(err)
	}

	calls := rec.Calls()
	if len(calls) != 2 {
		t.Fatalf("got %d invocations, want 2", len(calls))
	}
	first := tuples(t, calls[0])
	if len(first) != 1 {
		t.Fatalf("first batch = %v", first)
	}
	if got := first[0].([]any); got[0] != "fillStyle" || got[1] != false || got[2] != "green" {
		t.Errorf("fillStyle tuple = %v", got)
	}
	second := tuples(t, calls[1])
	want := []any{"fillRect", true, 10.0, 100.0, 100.0, 100.0}
	got := second[0].([]any)
	if len(got) != len(want) {
		t.Fatalf("fillRect tuple = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fillRect tuple[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBatchedPath(t *testing.T) {
	c2d, rec := newContext(t, nil)
	ctx := context.Background()

	err := c2d.Batch(ctx, func() error {
		return errors.Join(
			c2d.BeginPath(ctx),
			c2d.MoveTo(ctx, 30, 50),
			c2d.LineTo(ctx, 150, 100),
			c2d.Stroke(ctx),
		)
	})
	if err != nil {
		t.Fatal(err)
	}

	calls := rec.Calls()
	if len(calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(calls))
	}
	batch := tuples(t, calls[0])
	names := []string{"beginPath", "moveTo", "lineTo", "stroke"}
	if len(batch) != len(names) {
		t.Fatalf("batch = %v", batch)
	}
	for i, n := range names {
		if batch[i].([]any)[0] != n {
			t.Errorf("batch[%d] = %v, want %s", i, batch[i], n)
		}
	}
}

func TestGetters(t *testing.T) {
	c2d, rec := newContext(t, func(ctx context.Context, path string, args []any) (any, error) {
		if path != pathGetProp {
			return nil, nil
		}
		switch args[1] {
		case "font":
			return "10px sans-serif", nil
		case "lineWidth":
			return float64(3), nil
		case "textAlign":
			return "center", nil
		case "globalCompositeOperation":
			return "multiply", nil
		case "imageSmoothingEnabled":
			return true, nil
		}
		return nil, errors.ErrMethodNotFound
	})
	ctx := context.Background()

	font, err := c2d.Font(ctx)
	if err != nil || font != "10px sans-serif" {
		t.Errorf("Font = %q, %v", font, err)
	}
	lw, err := c2d.LineWidth(ctx)
	if err != nil || lw != 3 {
		t.Errorf("LineWidth = %v, %v", lw, err)
	}
	align, err := c2d.TextAlign(ctx)
	if err != nil || align != TextAlignCenter {
		t.Errorf("TextAlign = %v, %v", align, err)
	}
	op, err := c2d.GlobalCompositeOperation(ctx)
	if err != nil || op != CompositeMultiply {
		t.Errorf("GlobalCompositeOperation = %v, %v", op, err)
	}
	smooth, err := c2d.ImageSmoothingEnabled(ctx)
	if err != nil || !smooth {
		t.Errorf("ImageSmoothingEnabled = %v, %v", smooth, err)
	}
	if _, err := c2d.ShadowColor(ctx); !errors.Is(err, errors.ErrMethodNotFound) {
		t.Errorf("ShadowColor err = %v", err)
	}

	for _, c := range rec.Calls() {
		if c.Path != pathGetProp {
			t.Errorf("getter used %q", c.Path)
		}
	}
}

func TestGetterDuringBatch(t *testing.T) {
	c2d, rec := newContext(t, func(ctx context.Context, path string, args []any) (any, error) {
		if path == pathGetProp {
			return "48px serif", nil
		}
		return nil, nil
	})
	ctx := context.Background()

	if err := c2d.BeginBatch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := c2d.SetFont(ctx, "48px serif"); err != nil {
		t.Fatal(err)
	}
	font, err := c2d.Font(ctx)
	if err != nil || font != "48px serif" {
		t.Errorf("Font = %q, %v", font, err)
	}
	if rec.Count(pathCallBatch) != 0 {
		t.Error("getter must not flush the batch")
	}
	if err := c2d.EndBatch(ctx); err != nil {
		t.Fatal(err)
	}
	if rec.Count(pathCallBatch) != 1 {
		t.Errorf("callBatch count = %d", rec.Count(pathCallBatch))
	}
}

func TestMeasureText(t *testing.T) {
	c2d, rec := newContext(t, func(ctx context.Context, path string, args []any) (any, error) {
		if path == pathCall && args[1] == "measureText" {
			return map[string]any{"width": 42.5, "actualBoundingBoxAscent": 9.0}, nil
		}
		return nil, nil
	})

	m, err := c2d.MeasureText(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if m.Width != 42.5 || m.ActualBoundingBoxAscent != 9 {
		t.Errorf("MeasureText = %+v", m)
	}
	call := rec.Calls()[0]
	if list, ok := call.Args[2].([]any); !ok || len(list) != 1 || list[0] != "hello" {
		t.Errorf("measureText args = %v", call.Args)
	}
}

func TestLineDash(t *testing.T) {
	c2d, rec := newContext(t, func(ctx context.Context, path string, args []any) (any, error) {
		if path == pathCall && args[1] == "getLineDash" {
			return []any{5.0, 15.0}, nil
		}
		return nil, nil
	})
	ctx := context.Background()

	if err := c2d.SetLineDash(ctx, nil); err != nil {
		t.Fatal(err)
	}
	tuple := tuples(t, rec.Calls()[0])[0].([]any)
	if segs, ok := tuple[2].([]float64); !ok || len(segs) != 0 {
		t.Errorf("setLineDash arg = %#v", tuple[2])
	}

	dash, err := c2d.GetLineDash(ctx)
	if err != nil || len(dash) != 2 || dash[1] != 15 {
		t.Errorf("GetLineDash = %v, %v", dash, err)
	}
}

func TestIsPointInPath(t *testing.T) {
	c2d, _ := newContext(t, func(ctx context.Context, path string, args []any) (any, error) {
		return args[1] == "isPointInPath", nil
	})
	ctx := context.Background()

	in, err := c2d.IsPointInPath(ctx, 10, 10)
	if err != nil || !in {
		t.Errorf("IsPointInPath = %v, %v", in, err)
	}
	on, err := c2d.IsPointInStroke(ctx, 10, 10)
	if err != nil || on {
		t.Errorf("IsPointInStroke = %v, %v", on, err)
	}
}

func TestColorStyle(t *testing.T) {
	tests := []struct {
		in   color.Color
		want string
	}{
		{color.RGBA{0, 128, 0, 255}, "#008000"},
		{color.NRGBA{255, 0, 0, 128}, "rgba(255, 0, 0, 0.502)"},
		{color.NRGBA{0, 0, 255, 0}, "rgba(0, 0, 255, 0)"},
	}
	for _, tt := range tests {
		if got := ColorStyle(tt.in); got != tt.want {
			t.Errorf("ColorStyle(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	green, ok := NamedColor(" Green ")
	if !ok || green != (color.RGBA{0, 128, 0, 255}) {
		t.Errorf("NamedColor = %v, %v", green, ok)
	}
	if _, ok := NamedColor("not-a-color"); ok {
		t.Error("unknown names should not resolve")
	}
}

func TestSetTransformMatrix(t *testing.T) {
	c2d, rec := newContext(t, nil)
	m := f64.Aff3{1, 2, 3, 4, 5, 6}
	if err := c2d.SetTransformMatrix(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	tuple := tuples(t, rec.Calls()[0])[0].([]any)
	want := []any{"setTransform", true, 1.0, 4.0, 2.0, 5.0, 3.0, 6.0}
	for i := range want {
		if tuple[i] != want[i] {
			t.Errorf("tuple[%d] = %v, want %v", i, tuple[i], want[i])
		}
	}
}

func TestDrawImagePassesReference(t *testing.T) {
	c2d, rec := newContext(t, nil)
	src := canvas.ElementRef{ID: "sprite"}
	if err := c2d.DrawImage(context.Background(), src, 4, 8); err != nil {
		t.Fatal(err)
	}
	tuple := tuples(t, rec.Calls()[0])[0].([]any)
	if tuple[0] != "drawImage" || tuple[2] != src {
		t.Errorf("drawImage tuple = %v", tuple)
	}
}

func TestEnums(t *testing.T) {
	if LineCapSquare.String() != "square" || LineJoin(9).String() != "unknown" {
		t.Error("enum names")
	}
	if CompositeLuminosity.String() != "luminosity" {
		t.Errorf("CompositeLuminosity = %q", CompositeLuminosity)
	}
	if _, err := parseEnum[TextAlign](textAlignNames, "justify"); err == nil {
		t.Error("unknown keyword should fail")
	}
}
