// Package canvas2d provides the 2D drawing context of a canvas surface.
//
// Property setters and drawing methods are queued through the embedded
// RenderingContext, so they batch between BeginBatch and EndBatch. Getters and
// methods that return a value (MeasureText, IsPointInPath, GetLineDash) are
// direct round trips.
package canvas2d

import (
	"context"

	"github.com/go-drift/canvas/pkg/canvas"
)

// ContextName is the host context type for 2D drawing.
const ContextName = "Canvas2d"

// Context is a 2D rendering context.
type Context struct {
	*canvas.RenderingContext
}

// New creates an uninitialized 2D context on c.
// Most callers want Create, which also initializes it.
func New(c canvas.Canvas, opts ...canvas.Option) *Context {
	return &Context{RenderingContext: canvas.New(c, ContextName, nil, opts...)}
}

// TextMetrics is the result of MeasureText.
type TextMetrics struct {
	Width                    float64 `json:"width"`
	ActualBoundingBoxLeft    float64 `json:"actualBoundingBoxLeft"`
	ActualBoundingBoxRight   float64 `json:"actualBoundingBoxRight"`
	ActualBoundingBoxAscent  float64 `json:"actualBoundingBoxAscent"`
	ActualBoundingBoxDescent float64 `json:"actualBoundingBoxDescent"`
	FontBoundingBoxAscent    float64 `json:"fontBoundingBoxAscent"`
	FontBoundingBoxDescent   float64 `json:"fontBoundingBoxDescent"`
}

func (c *Context) set(ctx context.Context, property string, value any) error {
	return c.Call(ctx, property, false, value)
}

func (c *Context) invoke(ctx context.Context, method string, args ...any) error {
	return c.Call(ctx, method, true, args...)
}

func (c *Context) keyword(ctx context.Context, property string) (string, error) {
	return canvas.GetPropertyAs[string](ctx, c.RenderingContext, property)
}

func (c *Context) number(ctx context.Context, property string) (float64, error) {
	return canvas.GetPropertyAs[float64](ctx, c.RenderingContext, property)
}

// Fill and stroke styles.

func (c *Context) SetFillStyle(ctx context.Context, style string) error {
	return c.set(ctx, "fillStyle", style)
}

func (c *Context) FillStyle(ctx context.Context) (string, error) {
	return c.keyword(ctx, "fillStyle")
}

func (c *Context) SetStrokeStyle(ctx context.Context, style string) error {
	return c.set(ctx, "strokeStyle", style)
}

func (c *Context) StrokeStyle(ctx context.Context) (string, error) {
	return c.keyword(ctx, "strokeStyle")
}

// Text styles.

func (c *Context) SetFont(ctx context.Context, font string) error {
	return c.set(ctx, "font", font)
}

func (c *Context) Font(ctx context.Context) (string, error) {
	return c.keyword(ctx, "font")
}

func (c *Context) SetTextAlign(ctx context.Context, align TextAlign) error {
	return c.set(ctx, "textAlign", align.String())
}

func (c *Context) TextAlign(ctx context.Context) (TextAlign, error) {
	s, err := c.keyword(ctx, "textAlign")
	if err != nil {
		return 0, err
	}
	return parseEnum[TextAlign](textAlignNames, s)
}

func (c *Context) SetTextBaseline(ctx context.Context, baseline TextBaseline) error {
	return c.set(ctx, "textBaseline", baseline.String())
}

func (c *Context) TextBaseline(ctx context.Context) (TextBaseline, error) {
	s, err := c.keyword(ctx, "textBaseline")
	if err != nil {
		return 0, err
	}
	return parseEnum[TextBaseline](textBaselineNames, s)
}

func (c *Context) SetDirection(ctx context.Context, dir Direction) error {
	return c.set(ctx, "direction", dir.String())
}

func (c *Context) Direction(ctx context.Context) (Direction, error) {
	s, err := c.keyword(ctx, "direction")
	if err != nil {
		return 0, err
	}
	return parseEnum[Direction](directionNames, s)
}

// Compositing.

func (c *Context) SetGlobalAlpha(ctx context.Context, alpha float64) error {
	return c.set(ctx, "globalAlpha", alpha)
}

func (c *Context) GlobalAlpha(ctx context.Context) (float64, error) {
	return c.number(ctx, "globalAlpha")
}

func (c *Context) SetGlobalCompositeOperation(ctx context.Context, op CompositeOperation) error {
	return c.set(ctx, "globalCompositeOperation", op.String())
}

func (c *Context) GlobalCompositeOperation(ctx context.Context) (CompositeOperation, error) {
	s, err := c.keyword(ctx, "globalCompositeOperation")
	if err != nil {
		return 0, err
	}
	return parseEnum[CompositeOperation](compositeNames, s)
}

func (c *Context) SetImageSmoothingEnabled(ctx context.Context, enabled bool) error {
	return c.set(ctx, "imageSmoothingEnabled", enabled)
}

func (c *Context) ImageSmoothingEnabled(ctx context.Context) (bool, error) {
	return canvas.GetPropertyAs[bool](ctx, c.RenderingContext, "imageSmoothingEnabled")
}

// Line styles.

func (c *Context) SetLineWidth(ctx context.Context, width float64) error {
	return c.set(ctx, "lineWidth", width)
}

func (c *Context) LineWidth(ctx context.Context) (float64, error) {
	return c.number(ctx, "lineWidth")
}

func (c *Context) SetLineCap(ctx context.Context, lineCap LineCap) error {
	return c.set(ctx, "lineCap", lineCap.String())
}

func (c *Context) LineCap(ctx context.Context) (LineCap, error) {
	s, err := c.keyword(ctx, "lineCap")
	if err != nil {
		return 0, err
	}
	return parseEnum[LineCap](lineCapNames, s)
}

func (c *Context) SetLineJoin(ctx context.Context, join LineJoin) error {
	return c.set(ctx, "lineJoin", join.String())
}

func (c *Context) LineJoin(ctx context.Context) (LineJoin, error) {
	s, err := c.keyword(ctx, "lineJoin")
	if err != nil {
		return 0, err
	}
	return parseEnum[LineJoin](lineJoinNames, s)
}

func (c *Context) SetMiterLimit(ctx context.Context, limit float64) error {
	return c.set(ctx, "miterLimit", limit)
}

func (c *Context) MiterLimit(ctx context.Context) (float64, error) {
	return c.number(ctx, "miterLimit")
}

func (c *Context) SetLineDashOffset(ctx context.Context, offset float64) error {
	return c.set(ctx, "lineDashOffset", offset)
}

func (c *Context) LineDashOffset(ctx context.Context) (float64, error) {
	return c.number(ctx, "lineDashOffset")
}

// SetLineDash sets the dash pattern. An empty pattern draws solid lines.
func (c *Context) SetLineDash(ctx context.Context, segments []float64) error {
	if segments == nil {
		segments = []float64{}
	}
	return c.invoke(ctx, "setLineDash", segments)
}

// GetLineDash returns the current dash pattern.
func (c *Context) GetLineDash(ctx context.Context) ([]float64, error) {
	return canvas.CallMethodAs[[]float64](ctx, c.RenderingContext, "getLineDash")
}

// Shadows.

func (c *Context) SetShadowBlur(ctx context.Context, blur float64) error {
	return c.set(ctx, "shadowBlur", blur)
}

func (c *Context) ShadowBlur(ctx context.Context) (float64, error) {
	return c.number(ctx, "shadowBlur")
}

func (c *Context) SetShadowColor(ctx context.Context, color string) error {
	return c.set(ctx, "shadowColor", color)
}

func (c *Context) ShadowColor(ctx context.Context) (string, error) {
	return c.keyword(ctx, "shadowColor")
}

func (c *Context) SetShadowOffsetX(ctx context.Context, x float64) error {
	return c.set(ctx, "shadowOffsetX", x)
}

func (c *Context) ShadowOffsetX(ctx context.Context) (float64, error) {
	return c.number(ctx, "shadowOffsetX")
}

func (c *Context) SetShadowOffsetY(ctx context.Context, y float64) error {
	return c.set(ctx, "shadowOffsetY", y)
}

func (c *Context) ShadowOffsetY(ctx context.Context) (float64, error) {
	return c.number(ctx, "shadowOffsetY")
}

// Rectangles.

func (c *Context) ClearRect(ctx context.Context, x, y, width, height float64) error {
	return c.invoke(ctx, "clearRect", x, y, width, height)
}

func (c *Context) FillRect(ctx context.Context, x, y, width, height float64) error {
	return c.invoke(ctx, "fillRect", x, y, width, height)
}

func (c *Context) StrokeRect(ctx context.Context, x, y, width, height float64) error {
	return c.invoke(ctx, "strokeRect", x, y, width, height)
}

// Text.

func (c *Context) FillText(ctx context.Context, text string, x, y float64) error {
	return c.invoke(ctx, "fillText", text, x, y)
}

func (c *Context) FillTextMaxWidth(ctx context.Context, text string, x, y, maxWidth float64) error {
	return c.invoke(ctx, "fillText", text, x, y, maxWidth)
}

func (c *Context) StrokeText(ctx context.Context, text string, x, y float64) error {
	return c.invoke(ctx, "strokeText", text, x, y)
}

func (c *Context) StrokeTextMaxWidth(ctx context.Context, text string, x, y, maxWidth float64) error {
	return c.invoke(ctx, "strokeText", text, x, y, maxWidth)
}

// MeasureText measures text with the current font.
func (c *Context) MeasureText(ctx context.Context, text string) (TextMetrics, error) {
	return canvas.CallMethodAs[TextMetrics](ctx, c.RenderingContext, "measureText", text)
}

// Paths.

func (c *Context) BeginPath(ctx context.Context) error {
	return c.invoke(ctx, "beginPath")
}

func (c *Context) ClosePath(ctx context.Context) error {
	return c.invoke(ctx, "closePath")
}

func (c *Context) MoveTo(ctx context.Context, x, y float64) error {
	return c.invoke(ctx, "moveTo", x, y)
}

func (c *Context) LineTo(ctx context.Context, x, y float64) error {
	return c.invoke(ctx, "lineTo", x, y)
}

func (c *Context) BezierCurveTo(ctx context.Context, cp1x, cp1y, cp2x, cp2y, x, y float64) error {
	return c.invoke(ctx, "bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *Context) QuadraticCurveTo(ctx context.Context, cpx, cpy, x, y float64) error {
	return c.invoke(ctx, "quadraticCurveTo", cpx, cpy, x, y)
}

func (c *Context) Arc(ctx context.Context, x, y, radius, startAngle, endAngle float64, anticlockwise bool) error {
	return c.invoke(ctx, "arc", x, y, radius, startAngle, endAngle, anticlockwise)
}

func (c *Context) ArcTo(ctx context.Context, x1, y1, x2, y2, radius float64) error {
	return c.invoke(ctx, "arcTo", x1, y1, x2, y2, radius)
}

func (c *Context) Ellipse(ctx context.Context, x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, anticlockwise bool) error {
	return c.invoke(ctx, "ellipse", x, y, radiusX, radiusY, rotation, startAngle, endAngle, anticlockwise)
}

func (c *Context) Rect(ctx context.Context, x, y, width, height float64) error {
	return c.invoke(ctx, "rect", x, y, width, height)
}

// Drawing paths.

func (c *Context) Fill(ctx context.Context) error {
	return c.invoke(ctx, "fill")
}

func (c *Context) FillWithRule(ctx context.Context, rule FillRule) error {
	return c.invoke(ctx, "fill", rule.String())
}

func (c *Context) Stroke(ctx context.Context) error {
	return c.invoke(ctx, "stroke")
}

func (c *Context) Clip(ctx context.Context) error {
	return c.invoke(ctx, "clip")
}

func (c *Context) ClipWithRule(ctx context.Context, rule FillRule) error {
	return c.invoke(ctx, "clip", rule.String())
}

// IsPointInPath reports whether (x, y) is inside the current path.
func (c *Context) IsPointInPath(ctx context.Context, x, y float64) (bool, error) {
	return canvas.CallMethodAs[bool](ctx, c.RenderingContext, "isPointInPath", x, y)
}

// IsPointInStroke reports whether (x, y) is on the current path's stroke.
func (c *Context) IsPointInStroke(ctx context.Context, x, y float64) (bool, error) {
	return canvas.CallMethodAs[bool](ctx, c.RenderingContext, "isPointInStroke", x, y)
}

// Transformations.

func (c *Context) Rotate(ctx context.Context, angle float64) error {
	return c.invoke(ctx, "rotate", angle)
}

func (c *Context) Scale(ctx context.Context, x, y float64) error {
	return c.invoke(ctx, "scale", x, y)
}

func (c *Context) Translate(ctx context.Context, x, y float64) error {
	return c.invoke(ctx, "translate", x, y)
}

func (c *Context) Transform(ctx context.Context, a, b, cc, d, e, f float64) error {
	return c.invoke(ctx, "transform", a, b, cc, d, e, f)
}

func (c *Context) SetTransform(ctx context.Context, a, b, cc, d, e, f float64) error {
	return c.invoke(ctx, "setTransform", a, b, cc, d, e, f)
}

func (c *Context) ResetTransform(ctx context.Context) error {
	return c.invoke(ctx, "resetTransform")
}

// State stack.

func (c *Context) Save(ctx context.Context) error {
	return c.invoke(ctx, "save")
}

func (c *Context) Restore(ctx context.Context) error {
	return c.invoke(ctx, "restore")
}

// Images.

// DrawImage draws the source element (an image, video or another canvas)
// with its top-left corner at (dx, dy).
func (c *Context) DrawImage(ctx context.Context, source canvas.ElementRef, dx, dy float64) error {
	return c.invoke(ctx, "drawImage", source, dx, dy)
}

func (c *Context) DrawImageScaled(ctx context.Context, source canvas.ElementRef, dx, dy, dw, dh float64) error {
	return c.invoke(ctx, "drawImage", source, dx, dy, dw, dh)
}

func (c *Context) DrawImageRegion(ctx context.Context, source canvas.ElementRef, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	return c.invoke(ctx, "drawImage", source, sx, sy, sw, sh, dx, dy, dw, dh)
}
