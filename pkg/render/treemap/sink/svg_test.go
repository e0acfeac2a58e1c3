package sink

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
)

func items(stars []uint, contribs []uint) []layout.Item {
	out := make([]layout.Item, len(stars))
	for i := range stars {
		name := string(rune('a' + i))
		out[i] = layout.Item{ID: "owner/" + name, Label: name, Owner: "owner", Stars: stars[i], Contribs: contribs[i]}
	}
	return out
}

func render(its []layout.Item, cfg Config) string {
	cfg = resolve(cfg)
	l := layout.Compute(its, float64(cfg.Width), float64(cfg.Height))
	return string(RenderSVG(l.Leaves(), cfg))
}

func wellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, svg)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil, Config{}))
	wellFormed(t, svg)

	if !strings.Contains(svg, ">"+EmptyCaption+"</text>") {
		t.Errorf("missing empty caption:\n%s", svg)
	}
	if got := strings.Count(svg, "<rect"); got != 1 {
		t.Errorf("rect count = %d, want 1 (background only)", got)
	}
	if strings.Contains(svg, "<clipPath") || strings.Contains(svg, "<defs>") {
		t.Error("empty state should not contain clip paths")
	}
	if !strings.Contains(svg, `width="465" height="165" viewBox="0 0 465 165"`) {
		t.Errorf("unexpected canvas:\n%s", svg)
	}
}

func TestRenderSVGEndToEnd(t *testing.T) {
	svg := render(items([]uint{0, 50, 500}, []uint{1, 1, 1}), Config{})
	wellFormed(t, svg)

	if !strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	if got := strings.Count(svg, `class="cell"`); got != 3 {
		t.Errorf("cell count = %d, want 3", got)
	}
	if got := strings.Count(svg, "<clipPath"); got != 3 {
		t.Errorf("clipPath count = %d, want 3", got)
	}
	if got := strings.Count(svg, "★"); got != 1 {
		t.Errorf("star line count = %d, want 1", got)
	}
	if !strings.Contains(svg, ">★ 500</tspan>") {
		t.Errorf("missing star label for 500 stars:\n%s", svg)
	}
	for i := range 3 {
		if !strings.Contains(svg, `clip-path="url(#`+clipID(i)+`)"`) {
			t.Errorf("text %d not clipped", i)
		}
	}
}

func TestRenderSVGOrder(t *testing.T) {
	svg := render(items([]uint{0, 500}, []uint{1, 1}), Config{})
	defs := strings.Index(svg, "<defs>")
	firstCell := strings.Index(svg, `class="cell"`)
	background := strings.Index(svg, `class="background"`)
	if !(background < defs && defs < firstCell) {
		t.Errorf("want background, defs, cells; got offsets %d, %d, %d", background, defs, firstCell)
	}
}

func TestRenderSVGMinimumCellSize(t *testing.T) {
	cfg := Config{Width: 1, Height: 1}
	svg := render(items([]uint{1, 2, 3, 4, 5}, []uint{1, 2, 3, 4, 5}), cfg)
	wellFormed(t, svg)

	if got := strings.Count(svg, `class="cell"`); got != 5 {
		t.Fatalf("cell count = %d, want 5", got)
	}
	if strings.Contains(svg, `="-`) {
		t.Error("negative attribute value")
	}
	for _, line := range strings.Split(svg, "\n") {
		if !strings.Contains(line, `class="cell"`) {
			continue
		}
		if strings.Contains(line, `width="0"`) || strings.Contains(line, `width="1"`) ||
			strings.Contains(line, `height="0"`) || strings.Contains(line, `height="1"`) {
			t.Errorf("cell below 2px: %s", line)
		}
	}
	if strings.Contains(svg, `font-size="0"`) {
		t.Error("zero font size leaked into output")
	}
}

func TestRenderSVGEscapes(t *testing.T) {
	its := []layout.Item{{ID: "x", Label: `<b>&"q'`, Owner: "o<w>n", Stars: 0, Contribs: 1}}
	svg := render(its, Config{Width: 600})
	wellFormed(t, svg)

	if strings.Contains(svg, "<b>") || strings.Contains(svg, "o<w>n") {
		t.Errorf("unescaped user text:\n%s", svg)
	}
	if !strings.Contains(svg, "&lt;b&gt;&amp;&quot;q&#39;") {
		t.Errorf("label not escaped:\n%s", svg)
	}
	if !strings.Contains(svg, "&#39;Segoe UI&#39;") {
		t.Error("font family not escaped")
	}
}

func TestRenderSVGHeatColors(t *testing.T) {
	tests := []struct {
		name     string
		contribs []uint
		want     []string
	}{
		{"range ends", []uint{1, 5}, []string{`fill="#31343c"`, `fill="#58bcda"`}},
		{"flat non-zero is hot", []uint{3, 3}, []string{`fill="#58bcda"`}},
		{"flat zero is cold", []uint{0, 0}, []string{`fill="#31343c"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := render(items(make([]uint, len(tt.contribs)), tt.contribs), Config{})
			for _, want := range tt.want {
				if !strings.Contains(svg, want) {
					t.Errorf("missing %s:\n%s", want, svg)
				}
			}
		})
	}
}

func TestRenderSVGTheme(t *testing.T) {
	cfg := Config{Background: "#000000", TextPrimary: "#ff0000", FontFamily: "Mono"}
	svg := render(items([]uint{200}, []uint{1}), cfg)

	for _, want := range []string{`fill="#000000"`, `fill="#ff0000"`, `font-family="Mono"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRenderSVGShapesOnly(t *testing.T) {
	l := layout.Compute(items([]uint{1, 2}, []uint{1, 2}), 465, 165)
	svg := string(RenderSVG(l.Leaves(), Config{}, withShapesOnly()))
	if strings.Contains(svg, "<text") || strings.Contains(svg, "<clipPath") {
		t.Error("shapes-only output contains text")
	}
	if got := strings.Count(svg, `class="cell"`); got != 2 {
		t.Errorf("cell count = %d, want 2", got)
	}
	if !bytes.HasSuffix([]byte(svg), []byte("</svg>\n")) {
		t.Error("unterminated document")
	}
}
