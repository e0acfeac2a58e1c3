package styles

import (
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ValidHex reports whether s is a color [ParseHex] understands.
func ValidHex(s string) bool { return hexColor.MatchString(s) }

// ParseHex reads "#RRGGBB" or "RRGGBB" in any case. Anything else is black.
func ParseHex(s string) RGB {
	r, g, b := parseColor(s).RGB255()
	return RGB{R: r, G: g, B: b}
}

// Hex formats c as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// InterpolateHex blends minHex toward maxHex by t, which is clamped to [0, 1].
func InterpolateHex(minHex, maxHex string, t float64) string {
	if math.IsNaN(t) {
		t = 0
	}
	t = max(0, min(1, t))
	return parseColor(minHex).BlendRgb(parseColor(maxHex), t).Clamped().Hex()
}

func parseColor(s string) colorful.Color {
	m := hexColor.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}
	}
	c, err := colorful.Hex("#" + m[1])
	if err != nil {
		return colorful.Color{}
	}
	return c
}
