package canvas2d

import "fmt"

// LineCap is the shape used at the end of open subpaths.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

var lineCapNames = []string{"butt", "round", "square"}

func (c LineCap) String() string { return enumName(lineCapNames, int(c)) }

// LineJoin is the shape used where two segments meet.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

var lineJoinNames = []string{"miter", "round", "bevel"}

func (j LineJoin) String() string { return enumName(lineJoinNames, int(j)) }

// TextAlign is the horizontal text alignment relative to the drawing point.
type TextAlign int

const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
)

var textAlignNames = []string{"start", "end", "left", "right", "center"}

func (a TextAlign) String() string { return enumName(textAlignNames, int(a)) }

// TextBaseline is the vertical text alignment relative to the drawing point.
type TextBaseline int

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineHanging
	TextBaselineMiddle
	TextBaselineIdeographic
	TextBaselineBottom
)

var textBaselineNames = []string{"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"}

func (b TextBaseline) String() string { return enumName(textBaselineNames, int(b)) }

// Direction is the text direction.
type Direction int

const (
	DirectionInherit Direction = iota
	DirectionLTR
	DirectionRTL
)

var directionNames = []string{"inherit", "ltr", "rtl"}

func (d Direction) String() string { return enumName(directionNames, int(d)) }

// FillRule decides whether a point is inside a path.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

var fillRuleNames = []string{"nonzero", "evenodd"}

func (r FillRule) String() string { return enumName(fillRuleNames, int(r)) }

// CompositeOperation is the compositing or blending mode for new drawing.
type CompositeOperation int

const (
	CompositeSourceOver CompositeOperation = iota
	CompositeSourceIn
	CompositeSourceOut
	CompositeSourceAtop
	CompositeDestinationOver
	CompositeDestinationIn
	CompositeDestinationOut
	CompositeDestinationAtop
	CompositeLighter
	CompositeCopy
	CompositeXor
	CompositeMultiply
	CompositeScreen
	CompositeOverlay
	CompositeDarken
	CompositeLighten
	CompositeColorDodge
	CompositeColorBurn
	CompositeHardLight
	CompositeSoftLight
	CompositeDifference
	CompositeExclusion
	CompositeHue
	CompositeSaturation
	CompositeColor
	CompositeLuminosity
)

var compositeNames = []string{
	"source-over", "source-in", "source-out", "source-atop",
	"destination-over", "destination-in", "destination-out", "destination-atop",
	"lighter", "copy", "xor", "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light", "difference", "exclusion",
	"hue", "saturation", "color", "luminosity",
}

func (o CompositeOperation) String() string { return enumName(compositeNames, int(o)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// parseEnum maps a host keyword back to its enum value.
func parseEnum[E ~int](names []string, s string) (E, error) {
	for i, n := range names {
		if n == s {
			return E(i), nil
		}
	}
	return 0, fmt.Errorf("canvas2d: unknown keyword %q", s)
}
