package webgl

// PowerPreference hints which GPU configuration suits the context.
type PowerPreference string

const (
	PowerDefault         PowerPreference = "default"
	PowerHighPerformance PowerPreference = "high-performance"
	PowerLowPower        PowerPreference = "low-power"
)

// Attributes are the context creation attributes passed to the host when the
// context is added.
type Attributes struct {
	Alpha                        bool            `json:"alpha" yaml:"alpha"`
	Depth                        bool            `json:"depth" yaml:"depth"`
	Stencil                      bool            `json:"stencil" yaml:"stencil"`
	Antialias                    bool            `json:"antialias" yaml:"antialias"`
	PremultipliedAlpha           bool            `json:"premultipliedAlpha" yaml:"premultiplied_alpha"`
	PreserveDrawingBuffer        bool            `json:"preserveDrawingBuffer" yaml:"preserve_drawing_buffer"`
	PowerPreference              PowerPreference `json:"powerPreference,omitempty" yaml:"power_preference"`
	FailIfMajorPerformanceCaveat bool            `json:"failIfMajorPerformanceCaveat" yaml:"fail_if_major_performance_caveat"`
}

// DefaultAttributes returns the attributes a browser uses when none are given.
func DefaultAttributes() Attributes {
	return Attributes{
		Alpha:              true,
		Depth:              true,
		Antialias:          true,
		PremultipliedAlpha: true,
		PowerPreference:    PowerDefault,
	}
}
