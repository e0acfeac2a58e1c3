package sink

import (
	"encoding/json"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
)

type jsonOutput struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Cells  []jsonCell `json:"cells"`
}

type jsonCell struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Owner    string     `json:"owner"`
	Stars    uint       `json:"stars"`
	Contribs uint       `json:"contribs"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Heat     float64    `json:"heat"`
	Fill     string     `json:"fill"`
	Lines    []jsonLine `json:"lines,omitempty"`
}

type jsonLine struct {
	Text     string `json:"text"`
	FontSize int    `json:"font_size"`
	Y        int    `json:"y"`
}

// RenderJSON exports the drawn cells as a pretty-printed JSON document with
// the same geometry, fill and fitted text as [RenderSVG]. It returns an error
// only if marshaling fails.
func RenderJSON(leaves []layout.Rect, cfg Config) ([]byte, error) {
	cfg = resolve(cfg)

	out := jsonOutput{
		Width:  cfg.Width,
		Height: cfg.Height,
		Cells:  make([]jsonCell, 0, len(leaves)),
	}
	for _, c := range buildCells(leaves, cfg) {
		jc := jsonCell{
			ID:       c.item.ID,
			Label:    c.item.Label,
			Owner:    c.item.Owner,
			Stars:    c.item.Stars,
			Contribs: c.item.Contribs,
			X:        c.x,
			Y:        c.y,
			Width:    c.w,
			Height:   c.h,
			Heat:     c.heat,
			Fill:     c.fill,
		}
		for _, l := range c.lines {
			jc.Lines = append(jc.Lines, jsonLine{Text: l.text, FontSize: l.size, Y: l.baseline})
		}
		out.Cells = append(out.Cells, jc)
	}
	return json.MarshalIndent(out, "", "  ")
}
