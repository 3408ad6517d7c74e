package raster

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/colornames"
)

// parseColor understands the CSS color forms the bindings produce: hex
// notation, rgb()/rgba() and named colors.
func parseColor(s string) (gg.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return gg.Transparent, true
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return gg.RGBA{}, false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return gg.RGBA{}, false
		}
		return gg.Hex(hex), true
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return gg.FromColor(c), true
	}
	return gg.RGBA{}, false
}

func parseRGBFunc(s string) (gg.RGBA, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return gg.RGBA{}, false
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return gg.RGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		pct := strings.HasSuffix(p, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		ch[i] = math.Max(0, math.Min(1, v))
	}
	return gg.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}

// serializeColor renders c the way a browser reports a color property.
func serializeColor(c gg.RGBA) string {
	r := uint8(math.Round(c.R * 255))
	g := uint8(math.Round(c.G * 255))
	b := uint8(math.Round(c.B * 255))
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	alpha := strconv.FormatFloat(math.Round(c.A*1000)/1000, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, alpha)
}

// parseFontSize extracts the pixel size from a CSS font shorthand such as
// "bold 48px serif". Only the size is honored; every family renders with
// the bundled Go font.
func parseFontSize(font string) (float64, bool) {
	for _, field := range strings.Fields(font) {
		if i := strings.IndexByte(field, '/'); i >= 0 {
			field = field[:i]
		}
		for unit, scale := range map[string]float64{"px": 1, "pt": 4.0 / 3, "em": 16, "rem": 16} {
			num, ok := strings.CutSuffix(field, unit)
			if !ok {
				continue
			}
			if unit == "em" && strings.HasSuffix(num, "r") {
				continue
			}
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || v <= 0 {
				continue
			}
			return v * scale, true
		}
	}
	return 0, false
}

// fontCache hands out faces of the bundled font by size.
type fontCache struct {
	source *text.FontSource

	mu    sync.Mutex
	faces map[float64]text.Face
}

func newFontCache(source *text.FontSource) *fontCache {
	return &fontCache{source: source, faces: make(map[float64]text.Face)}
}

func (fc *fontCache) face(size float64) text.Face {
	if fc.source == nil {
		return nil
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	f, ok := fc.faces[size]
	if !ok {
		f = fc.source.Face(size)
		fc.faces[size] = f
	}
	return f
}
