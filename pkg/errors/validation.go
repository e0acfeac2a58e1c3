package errors

import (
	"path"
	"strings"
	"unicode"
)

// MaxCanvasSize bounds the width and height of a rendered treemap.
const MaxCanvasSize = 4096

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats lists every supported output format.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatJSON}

// ValidateDimensions checks that a canvas is positive and no larger than
// [MaxCanvasSize] on either side.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas size must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return New(ErrCodeInvalidInput, "canvas size %dx%d exceeds %dx%d", width, height, MaxCanvasSize, MaxCanvasSize)
	}
	return nil
}

// ValidateFormat checks that format is one of [ValidFormats].
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(ValidFormats, ", "))
}

// ValidateExcludePattern checks an exclusion pattern of the form
// "owner/name" or "owner/*". Either side may use path.Match wildcards.
func ValidateExcludePattern(p string) error {
	owner, name, ok := strings.Cut(p, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return New(ErrCodeInvalidInput, "invalid exclude pattern %q: use owner/name or owner/*", p)
	}
	if _, err := path.Match(p, ""); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid exclude pattern %q", p)
	}
	return nil
}

// ValidateOutputPath rejects empty paths and paths with control characters.
// "-" means standard output and is always valid.
func ValidateOutputPath(p string) error {
	if p == "-" {
		return nil
	}
	if strings.TrimSpace(p) == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	for _, r := range p {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains control characters")
		}
	}
	return nil
}
