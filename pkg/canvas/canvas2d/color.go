package canvas2d

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"
)

// ColorStyle renders c as a CSS color: "#rrggbb" when opaque,
// "rgba(r, g, b, a)" otherwise.
func ColorStyle(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	alpha := strconv.FormatFloat(math.Round(float64(n.A)/0xFF*1000)/1000, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", n.R, n.G, n.B, alpha)
}

// NamedColor looks up a CSS color keyword such as "green" or "SteelBlue".
func NamedColor(name string) (color.RGBA, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// SetFillColor sets the fill style to a solid color.
func (c *Context) SetFillColor(ctx context.Context, col color.Color) error {
	return c.SetFillStyle(ctx, ColorStyle(col))
}

// SetStrokeColor sets the stroke style to a solid color.
func (c *Context) SetStrokeColor(ctx context.Context, col color.Color) error {
	return c.SetStrokeStyle(ctx, ColorStyle(col))
}

// SetTransformMatrix replaces the current transform with m.
// m is row major: [a c e; b d f].
func (c *Context) SetTransformMatrix(ctx context.Context, m f64.Aff3) error {
	a, b, cc, d, e, f := affineArgs(m)
	return c.SetTransform(ctx, a, b, cc, d, e, f)
}

// TransformMatrix multiplies the current transform by m.
func (c *Context) TransformMatrix(ctx context.Context, m f64.Aff3) error {
	a, b, cc, d, e, f := affineArgs(m)
	return c.Transform(ctx, a, b, cc, d, e, f)
}

func affineArgs(m f64.Aff3) (a, b, c, d, e, f float64) {
	return m[0], m[3], m[1], m[4], m[2], m[5]
}
