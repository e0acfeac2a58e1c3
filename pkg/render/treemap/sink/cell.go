package sink

import (
	"math"

	"github.com/samber/lo"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/styles"
)

const (
	// TextPadding is the inset in pixels between a cell edge and its text.
	TextPadding = 4
	// MinFontSize is the smallest font size ever drawn.
	MinFontSize = 6
	// LineGap is the vertical space in pixels between text lines.
	LineGap = 3
	// StarLineThreshold is the star count from which the star line is shown.
	StarLineThreshold = 100
	// MinCellSize is the smallest width and height of a drawn cell.
	MinCellSize = 2

	nameFontSize = 16
	nameRatio    = 0.34
	ownerRatio   = 0.75
	starRatio    = 0.9
)

// cell is a leaf ready to draw: integer geometry, fill and fitted text.
type cell struct {
	item  layout.Item
	x, y  int
	w, h  int
	heat  float64
	fill  string
	lines []textLine
}

type textLine struct {
	text     string
	size     int
	baseline int
	bold     bool
	primary  bool
}

func buildCells(leaves []layout.Rect, cfg Config) []cell {
	contribs := lo.Map(leaves, func(r layout.Rect, _ int) uint { return r.Item.Contribs })
	minC, maxC := lo.Min(contribs), lo.Max(contribs)

	cells := make([]cell, len(leaves))
	for i, r := range leaves {
		c := cell{
			item: r.Item,
			x:    int(math.Floor(max(0, r.X0))),
			y:    int(math.Floor(max(0, r.Y0))),
			w:    int(math.Floor(max(MinCellSize, r.Width()))),
			h:    int(math.Floor(max(MinCellSize, r.Height()))),
			heat: heat(r.Item.Contribs, minC, maxC),
		}
		c.fill = styles.InterpolateHex(cfg.HeatMin, cfg.HeatMax, c.heat)
		c.lines = fitLines(r.Item, c.y, c.w, c.h)
		cells[i] = c
	}
	return cells
}

// heat normalizes v into [0, 1] against the layout's contribution range.
// A flat range is fully hot when non-zero and cold otherwise.
func heat(v, minC, maxC uint) float64 {
	if minC == maxC {
		if maxC > 0 {
			return 1
		}
		return 0
	}
	return float64(v-minC) / float64(max(1, maxC-minC))
}

// fitLines sizes, truncates and positions the text lines of a cell whose
// top edge is at y.
func fitLines(it layout.Item, y, w, h int) []textLine {
	usable := float64(w - 2*TextPadding)
	avail := h - 2*TextPadding

	nameDesired := min(nameFontSize, int(math.Floor(float64(h)*nameRatio)))
	ownerDesired := max(MinFontSize, int(math.Floor(float64(nameDesired)*ownerRatio)))
	starDesired := max(MinFontSize, int(math.Floor(float64(nameDesired)*starRatio)))

	lines := []textLine{
		{text: it.Label, size: fitSize(it.Label, usable, nameDesired), bold: true, primary: true},
		{text: it.Owner, size: fitSize(it.Owner, usable, ownerDesired)},
	}
	if it.Stars >= StarLineThreshold {
		label := styles.StarLabel(it.Stars)
		if size := styles.ChooseFontSize(label, usable, starDesired, MinFontSize); size != 0 {
			lines = append(lines, textLine{text: label, size: max(MinFontSize, size), bold: true, primary: true})
		}
	}

	shrinkToHeight(lines, avail)

	for i := range lines {
		lines[i].text = styles.TruncateWithEllipsis(lines[i].text, usable, lines[i].size)
	}
	if n := len(lines); n == 3 && (lines[2].text == "" || lines[2].text == styles.Ellipsis) {
		lines = lines[:2]
	}

	cursor := y + TextPadding
	for i := range lines {
		cursor += lines[i].size
		lines[i].baseline = cursor
		cursor += LineGap
	}
	return lines
}

// fitSize is the fitted size for a line that is always drawn; a line that
// does not fit at all is forced to the minimum and left to truncation.
func fitSize(text string, width float64, desired int) int {
	return max(MinFontSize, styles.ChooseFontSize(text, width, desired, MinFontSize))
}

func blockHeight(lines []textLine) int {
	total := LineGap * (len(lines) - 1)
	for _, l := range lines {
		total += l.size
	}
	return total
}

// shrinkToHeight scales the line sizes by avail/total and then steps every
// line above the minimum down by one until the block fits or nothing is left
// to shrink.
func shrinkToHeight(lines []textLine, avail int) {
	total := blockHeight(lines)
	if total <= avail {
		return
	}

	ratio := float64(avail) / float64(total)
	for i := range lines {
		lines[i].size = max(MinFontSize, int(math.Floor(float64(lines[i].size)*ratio)))
	}

	for blockHeight(lines) > avail {
		shrunk := false
		for i := range lines {
			if lines[i].size > MinFontSize {
				lines[i].size--
				shrunk = true
			}
		}
		if !shrunk {
			return
		}
	}
}
