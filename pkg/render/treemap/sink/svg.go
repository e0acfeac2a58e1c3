package sink

import (
	"bytes"
	"fmt"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/styles"
)

// EmptyCaption is drawn when there is nothing to lay out.
const EmptyCaption = "No repositories found"

const emptyCaptionSize = 14

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	shapesOnly bool
}

// withShapesOnly drops clip paths and text, leaving what a rasterizer
// without text support can draw.
func withShapesOnly() SVGOption { return func(r *svgRenderer) { r.shapesOnly = true } }

// RenderSVG draws leaves on a canvas of cfg.Width x cfg.Height. Unset fields
// of cfg fall back to [DefaultConfig]. It never fails; an empty leaf list
// renders the empty-state caption.
func RenderSVG(leaves []layout.Rect, cfg Config, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	cfg = resolve(cfg)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		cfg.Width, cfg.Height, styles.EscapeXML(cfg.Background))

	if len(leaves) == 0 {
		if !r.shapesOnly {
			renderEmpty(&buf, cfg)
		}
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	cells := buildCells(leaves, cfg)
	if !r.shapesOnly {
		renderClipPaths(&buf, cells)
	}
	for i, c := range cells {
		renderCell(&buf, c)
		if !r.shapesOnly {
			renderText(&buf, cfg, i, c)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEmpty(buf *bytes.Buffer, cfg Config) {
	fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
		cfg.Width/2, cfg.Height/2, styles.EscapeXML(cfg.FontFamily), emptyCaptionSize,
		styles.EscapeXML(cfg.TextSecondary), EmptyCaption)
}

func renderClipPaths(buf *bytes.Buffer, cells []cell) {
	buf.WriteString("  <defs>\n")
	for i, c := range cells {
		fmt.Fprintf(buf, `    <clipPath id="%s"><rect x="%d" y="%d" width="%d" height="%d"/></clipPath>`+"\n",
			clipID(i), c.x, c.y, c.w, c.h)
	}
	buf.WriteString("  </defs>\n")
}

func renderCell(buf *bytes.Buffer, c cell) {
	fmt.Fprintf(buf, `  <rect class="cell" x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
		c.x, c.y, c.w, c.h, c.fill)
}

func renderText(buf *bytes.Buffer, cfg Config, i int, c cell) {
	fmt.Fprintf(buf, `  <text clip-path="url(#%s)" font-family="%s">`+"\n",
		clipID(i), styles.EscapeXML(cfg.FontFamily))
	for _, l := range c.lines {
		weight, fill := "normal", cfg.TextSecondary
		if l.bold {
			weight = "bold"
		}
		if l.primary {
			fill = cfg.TextPrimary
		}
		fmt.Fprintf(buf, `    <tspan x="%d" y="%d" font-size="%d" font-weight="%s" fill="%s">%s</tspan>`+"\n",
			c.x+TextPadding, l.baseline, l.size, weight, styles.EscapeXML(fill), styles.EscapeXML(l.text))
	}
	buf.WriteString("  </text>\n")
}

func clipID(i int) string { return fmt.Sprintf("clip-%d", i) }
