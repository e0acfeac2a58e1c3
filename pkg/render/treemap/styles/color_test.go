package styles

import (
	"math"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#58BCDA", RGB{0x58, 0xbc, 0xda}},
		{"58bcda", RGB{0x58, 0xbc, 0xda}},
		{"#FFFFFF", RGB{255, 255, 255}},
		{"#fff", RGB{}},
		{"not a color", RGB{}},
		{"", RGB{}},
		{"#58BCDAFF", RGB{}},
	}
	for _, tt := range tests {
		if got := ParseHex(tt.in); got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestInterpolateHexEndpoints(t *testing.T) {
	pairs := [][2]string{
		{"#31343C", "#58BCDA"},
		{"#000000", "#ffffff"},
		{"#ABCDEF", "#123456"},
	}
	for _, p := range pairs {
		if got := InterpolateHex(p[0], p[1], 0); got != strings.ToLower(p[0]) {
			t.Errorf("InterpolateHex(%s, %s, 0) = %s", p[0], p[1], got)
		}
		if got := InterpolateHex(p[0], p[1], 1); got != strings.ToLower(p[1]) {
			t.Errorf("InterpolateHex(%s, %s, 1) = %s", p[0], p[1], got)
		}
	}
}

func TestInterpolateHex(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		t        float64
		want     string
	}{
		{"midpoint", "#000000", "#ffffff", 0.5, "#808080"},
		{"clamped low", "#102030", "#ffffff", -3, "#102030"},
		{"clamped high", "#000000", "#102030", 7, "#102030"},
		{"nan", "#102030", "#ffffff", math.NaN(), "#102030"},
		{"malformed min is black", "oops", "#ffffff", 0, "#000000"},
		{"malformed max is black", "#ffffff", "#12", 1, "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InterpolateHex(tt.min, tt.max, tt.t); got != tt.want {
				t.Errorf("InterpolateHex(%q, %q, %v) = %q, want %q", tt.min, tt.max, tt.t, got, tt.want)
			}
		})
	}
}

func TestValidHex(t *testing.T) {
	for _, s := range []string{"#58BCDA", "58bcda", "#000000"} {
		if !ValidHex(s) {
			t.Errorf("ValidHex(%q) = false", s)
		}
	}
	for _, s := range []string{"", "#fff", "rgba(0,0,0,1)", "#58BCDAFF", "#zzzzzz"} {
		if ValidHex(s) {
			t.Errorf("ValidHex(%q) = true", s)
		}
	}
}

func TestRGBHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#000000", "#ffffff", "#58bcda", "#31343c", "#010203"} {
		if got := ParseHex(s).Hex(); got != s {
			t.Errorf("ParseHex(%q).Hex() = %q", s, got)
		}
	}
	if got := ParseHex("#58BCDA").Hex(); got != "#58bcda" {
		t.Errorf("uppercase input should format lowercase, got %q", got)
	}
}

func TestInterpolateHexStaysOnGradient(t *testing.T) {
	const lo, hi = "#31343C", "#58BCDA"
	a, b := ParseHex(lo), ParseHex(hi)
	for i := 0; i <= 20; i++ {
		c := ParseHex(InterpolateHex(lo, hi, float64(i)/20))
		for _, ch := range [][3]uint8{{a.R, b.R, c.R}, {a.G, b.G, c.G}, {a.B, b.B, c.B}} {
			if ch[2] < min(ch[0], ch[1]) || ch[2] > max(ch[0], ch[1]) {
				t.Fatalf("t=%d/20: channel %d outside [%d, %d]", i, ch[2], ch[0], ch[1])
			}
		}
	}
}
