package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/styles"
)

// MaxScale is the largest PNG scale factor [WithScale] accepts.
const MaxScale = 8.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
// Non-positive values keep the default; values above [MaxScale] are capped.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = min(s, MaxScale)
		}
	}
}

// RenderPNG rasterizes leaves at the configured scale. Cells are drawn from
// the SVG with oksvg; labels are drawn with the Go fonts, clipped to their
// cell, at the same fitted sizes and baselines as [RenderSVG].
func RenderPNG(leaves []layout.Rect, cfg Config, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	cfg = resolve(cfg)

	svg := RenderSVG(leaves, cfg, withShapesOnly())
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w := max(1, int(math.Round(float64(cfg.Width)*r.scale)))
	h := max(1, int(math.Round(float64(cfg.Height)*r.scale)))
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	faces, err := newFaceSet(r.scale)
	if err != nil {
		return nil, err
	}
	defer faces.close()

	if len(leaves) == 0 {
		drawCaption(img, faces, cfg)
	} else {
		for _, c := range buildCells(leaves, cfg) {
			drawLabels(img, faces, cfg, c, r.scale)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLabels(img *image.RGBA, faces *faceSet, cfg Config, c cell, scale float64) {
	clip := image.Rect(
		px(c.x, scale), px(c.y, scale),
		px(c.x+c.w, scale), px(c.y+c.h, scale),
	).Intersect(img.Bounds())
	if clip.Empty() {
		return
	}
	dst := img.SubImage(clip).(*image.RGBA)

	for _, l := range c.lines {
		fill := cfg.TextSecondary
		if l.primary {
			fill = cfg.TextPrimary
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(parseCSSColor(fill)),
			Face: faces.get(l.bold, l.size),
			Dot:  fixed.P(px(c.x+TextPadding, scale), px(l.baseline, scale)),
		}
		d.DrawString(faces.drawable(l.bold, l.text))
	}
}

func drawCaption(img *image.RGBA, faces *faceSet, cfg Config) {
	face := faces.get(false, emptyCaptionSize)
	width := font.MeasureString(face, EmptyCaption).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	b := img.Bounds()

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(parseCSSColor(cfg.TextSecondary)),
		Face: face,
		Dot:  fixed.P((b.Dx()-width)/2, (b.Dy()+ascent)/2),
	}
	d.DrawString(EmptyCaption)
}

func px(v int, scale float64) int { return int(math.Round(float64(v) * scale)) }

// parseCSSColor reads "#rrggbb" or "rgba(r,g,b,a)". Anything else is white.
func parseCSSColor(s string) color.Color {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if styles.ValidHex(s) {
		c := styles.ParseHex(s)
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	var r, g, b int
	var a float64
	if n, _ := fmt.Sscanf(s, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); n == 4 {
		return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: uint8(math.Round(max(0, min(1, a)) * 255))}
	}
	if n, _ := fmt.Sscanf(s, "rgb(%d,%d,%d)", &r, &g, &b); n == 3 {
		return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
	}
	return color.White
}

func channel(v int) uint8 { return uint8(max(0, min(255, v))) }

var (
	fontsOnce             sync.Once
	regularFont, boldFont *opentype.Font
	fontsErr              error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
	})
	if fontsErr != nil {
		return fmt.Errorf("load fonts: %w", fontsErr)
	}
	return nil
}

type faceKey struct {
	bold bool
	size int
}

// faceSet hands out faces per weight and size for one render.
type faceSet struct {
	scale float64
	faces map[faceKey]font.Face
	buf   sfnt.Buffer
}

func newFaceSet(scale float64) (*faceSet, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &faceSet{scale: scale, faces: make(map[faceKey]font.Face)}, nil
}

func (s *faceSet) get(bold bool, size int) font.Face {
	k := faceKey{bold, size}
	if f, ok := s.faces[k]; ok {
		return f
	}
	fnt := regularFont
	if bold {
		fnt = boldFont
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size) * s.scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	s.faces[k] = f
	return f
}

// glyphFallbacks stands in for runes the Go fonts do not cover.
var glyphFallbacks = map[rune]rune{'★': '*'}

// drawable replaces runes the font has no glyph for when a fallback exists.
func (s *faceSet) drawable(bold bool, text string) string {
	fnt := regularFont
	if bold {
		fnt = boldFont
	}
	return strings.Map(func(r rune) rune {
		sub, ok := glyphFallbacks[r]
		if !ok {
			return r
		}
		if idx, err := fnt.GlyphIndex(&s.buf, r); err == nil && idx != 0 {
			return r
		}
		return sub
	}, text)
}

func (s *faceSet) close() {
	for _, f := range s.faces {
		f.Close()
	}
}
