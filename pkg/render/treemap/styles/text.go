package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// GlyphWidthRatio is the average glyph advance of a proportional Latin
	// font expressed as a fraction of the font size.
	GlyphWidthRatio = 0.6

	// MaxFontSize caps every fitted font size.
	MaxFontSize = 48

	// Ellipsis is appended to truncated text.
	Ellipsis = "…"
)

// cells counts terminal cells with a fixed condition so that the estimate
// does not change with the caller's locale.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// EstimateTextWidth approximates the rendered width of text in pixels.
func EstimateTextWidth(text string, fontSize float64) float64 {
	return float64(cells.StringWidth(text)) * fontSize * GlyphWidthRatio
}

func fits(text string, maxWidth float64, fontSize int) bool {
	return EstimateTextWidth(text, float64(fontSize)) <= maxWidth
}

// ChooseFontSize returns the largest size, starting at min(desired, MaxFontSize)
// and stepping down by one while above minSize, at which text fits maxWidth.
// It returns 0 when the text does not fit even at the last size tried.
func ChooseFontSize(text string, maxWidth float64, desired, minSize int) int {
	size := max(0, min(desired, MaxFontSize))
	for !fits(text, maxWidth, size) && size > minSize {
		size--
	}
	if !fits(text, maxWidth, size) {
		return 0
	}
	return size
}

// TruncateWithEllipsis returns text unchanged when it fits maxWidth at
// fontSize. Otherwise it returns the longest prefix followed by [Ellipsis]
// that fits, the bare ellipsis when no prefix does, or "" when maxWidth <= 0.
func TruncateWithEllipsis(text string, maxWidth float64, fontSize int) string {
	if fits(text, maxWidth, fontSize) {
		return text
	}
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(text)
	best := 0
	lo, hi := 1, len(runes)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if fits(string(runes[:mid])+Ellipsis, maxWidth, fontSize) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:best]) + Ellipsis
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML escapes the five XML special characters so that s can be used
// both as element text and inside a double-quoted attribute.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
