package sink

import (
	"testing"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
)

func TestHeat(t *testing.T) {
	tests := []struct {
		name          string
		v, minC, maxC uint
		want          float64
	}{
		{"range bottom", 1, 1, 5, 0},
		{"range top", 5, 1, 5, 1},
		{"range middle", 3, 1, 5, 0.5},
		{"flat non-zero", 4, 4, 4, 1},
		{"flat zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := heat(tt.v, tt.minC, tt.maxC); got != tt.want {
				t.Errorf("heat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func sizes(lines []textLine) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l.size
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestShrinkToHeight(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		avail int
		want  []int
	}{
		{"already fits", []int{12, 9}, 40, []int{12, 9}},
		{"ratio alone", []int{13, 9, 11}, 32, []int{10, 7, 9}},
		{"lock-step after ratio", []int{20, 6}, 20, []int{11, 6}},
		{"lock-step both lines", []int{20, 20}, 20, []int{8, 8}},
		{"stops at minimum", []int{10, 7, 9}, 4, []int{6, 6, 6}},
		{"negative space", []int{16, 12}, -6, []int{6, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]textLine, len(tt.sizes))
			for i, s := range tt.sizes {
				lines[i].size = s
			}
			shrinkToHeight(lines, tt.avail)
			if got := sizes(lines); !equalInts(got, tt.want) {
				t.Errorf("sizes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFitLines(t *testing.T) {
	tests := []struct {
		name      string
		item      layout.Item
		w, h      int
		wantSizes []int
	}{
		{
			name: "roomy cell with stars",
			item: layout.Item{Label: "repo", Owner: "me", Stars: 500},
			w:    266, h: 165,
			wantSizes: []int{16, 12, 14},
		},
		{
			name: "below star threshold",
			item: layout.Item{Label: "repo", Owner: "me", Stars: 99},
			w:    266, h: 165,
			wantSizes: []int{16, 12},
		},
		{
			name: "scaled to height",
			item: layout.Item{Label: "repo", Owner: "me", Stars: 500},
			w:    400, h: 40,
			wantSizes: []int{10, 7, 9},
		},
		{
			name: "star line too wide",
			item: layout.Item{Label: "x", Owner: "y", Stars: 500},
			w:    20, h: 165,
			wantSizes: []int{16, 12},
		},
		{
			name: "tiny cell forced to minimum",
			item: layout.Item{Label: "repository", Owner: "owner", Stars: 1000},
			w:    2, h: 2,
			wantSizes: []int{6, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := fitLines(tt.item, 0, tt.w, tt.h)
			if got := sizes(lines); !equalInts(got, tt.wantSizes) {
				t.Errorf("sizes = %v, want %v", got, tt.wantSizes)
			}
			for _, l := range lines {
				if l.size < MinFontSize {
					t.Errorf("line %q size %d below minimum", l.text, l.size)
				}
			}
		})
	}
}

func TestFitLinesBaselines(t *testing.T) {
	lines := fitLines(layout.Item{Label: "repo", Owner: "me", Stars: 500}, 0, 400, 40)
	want := []int{14, 24, 36}
	got := make([]int, len(lines))
	for i, l := range lines {
		got[i] = l.baseline
	}
	if !equalInts(got, want) {
		t.Errorf("baselines = %v, want %v", got, want)
	}
}

func TestBuildCellsGeometry(t *testing.T) {
	leaves := []layout.Rect{
		{X0: -3, Y0: 10.7, X1: 50.9, Y1: 11, Item: layout.Item{ID: "a"}},
	}
	c := buildCells(leaves, DefaultConfig())[0]
	if c.x != 0 || c.y != 10 || c.w != 53 || c.h != 2 {
		t.Errorf("geometry = (%d,%d,%d,%d), want (0,10,53,2)", c.x, c.y, c.w, c.h)
	}
}
