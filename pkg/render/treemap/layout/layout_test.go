package layout

import (
	"fmt"
	"math"
	"testing"
)

func makeItems(stars ...uint) []Item {
	items := make([]Item, len(stars))
	for i, s := range stars {
		items[i] = Item{ID: fmt.Sprintf("owner/repo%d", i), Label: fmt.Sprintf("repo%d", i), Owner: "owner", Stars: s}
	}
	return items
}

func overlaps(a, b Rect) bool {
	w := min(a.X1, b.X1) - max(a.X0, b.X0)
	h := min(a.Y1, b.Y1) - max(a.Y0, b.Y0)
	return w > 0 && h > 0
}

func TestWeight(t *testing.T) {
	tests := []struct {
		name  string
		stars uint
		want  float64
	}{
		{"zero stars", 0, 1},
		{"one star", 1, 1},
		{"three stars", 3, 2},
		{"1023 stars", 1023, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weight(Item{Stars: tt.stars}); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Weight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectDimensions(t *testing.T) {
	r := Rect{X0: 10, Y0: 20, X1: 50, Y1: 80}
	if got := r.Width(); got != 40 {
		t.Errorf("Width() = %v, want 40", got)
	}
	if got := r.Height(); got != 60 {
		t.Errorf("Height() = %v, want 60", got)
	}
	if got := r.Area(); got != 2400 {
		t.Errorf("Area() = %v, want 2400", got)
	}
}

func TestComputeEmpty(t *testing.T) {
	l := Compute(nil, 465, 165)
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if got := l.Leaves(); len(got) != 0 {
		t.Errorf("Leaves() = %v, want empty", got)
	}
}

func TestComputeSingleItemFillsCanvas(t *testing.T) {
	l := Compute(makeItems(42), 465, 165)
	leaves := l.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("got %d leaves, want 1", len(leaves))
	}
	r := leaves[0]
	if r.X0 != 0 || r.Y0 != 0 || r.X1 != 465 || r.Y1 != 165 {
		t.Errorf("rect = (%v,%v,%v,%v), want (0,0,465,165)", r.X0, r.Y0, r.X1, r.Y1)
	}
}

func TestComputeTwoItems(t *testing.T) {
	// Weights 2 and 1 on a wide canvas split along x at two thirds.
	l := Compute(makeItems(0, 3), 100, 50)
	leaves := l.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("got %d leaves, want 2", len(leaves))
	}

	want := []Rect{
		{X0: 0, Y0: 0, X1: 66, Y1: 50},
		{X0: 68, Y0: 0, X1: 100, Y1: 50},
	}
	wantIDs := []string{"owner/repo1", "owner/repo0"}
	for i, r := range leaves {
		if r.X0 != want[i].X0 || r.Y0 != want[i].Y0 || r.X1 != want[i].X1 || r.Y1 != want[i].Y1 {
			t.Errorf("leaf %d = (%v,%v,%v,%v), want (%v,%v,%v,%v)", i,
				r.X0, r.Y0, r.X1, r.Y1, want[i].X0, want[i].Y0, want[i].X1, want[i].Y1)
		}
		if r.Item.ID != wantIDs[i] {
			t.Errorf("leaf %d ID = %q, want %q", i, r.Item.ID, wantIDs[i])
		}
	}
}

func TestComputeInvariants(t *testing.T) {
	tests := []struct {
		name          string
		stars         []uint
		width, height float64
	}{
		{"three mixed", []uint{0, 50, 500}, 465, 165},
		{"all equal", []uint{10, 10, 10, 10, 10}, 465, 165},
		{"odd equal count", []uint{0, 0, 0}, 300, 300},
		{"many", []uint{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987}, 465, 165},
		{"tall canvas", []uint{100, 200, 300, 400}, 50, 400},
		{"tiny canvas", []uint{1, 2, 3, 4, 5}, 1, 1},
		{"zero canvas", []uint{1, 2}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaves := Compute(makeItems(tt.stars...), tt.width, tt.height).Leaves()
			if len(leaves) != len(tt.stars) {
				t.Fatalf("got %d leaves, want %d", len(leaves), len(tt.stars))
			}

			seen := make(map[string]bool)
			for i, r := range leaves {
				seen[r.Item.ID] = true
				if r.X1 < r.X0 || r.Y1 < r.Y0 {
					t.Errorf("leaf %d inverted: (%v,%v,%v,%v)", i, r.X0, r.Y0, r.X1, r.Y1)
				}
				if r.X0 < 0 || r.Y0 < 0 || r.X1 > tt.width || r.Y1 > tt.height {
					t.Errorf("leaf %d out of bounds: (%v,%v,%v,%v)", i, r.X0, r.Y0, r.X1, r.Y1)
				}
				for _, v := range []float64{r.X0, r.Y0, r.X1, r.Y1} {
					if v != math.Trunc(v) {
						t.Errorf("leaf %d not integral: (%v,%v,%v,%v)", i, r.X0, r.Y0, r.X1, r.Y1)
						break
					}
				}
				for j := i + 1; j < len(leaves); j++ {
					if overlaps(r, leaves[j]) {
						t.Errorf("leaves %d and %d overlap", i, j)
					}
				}
			}
			if len(seen) != len(tt.stars) {
				t.Errorf("got %d distinct items, want %d", len(seen), len(tt.stars))
			}
		})
	}
}

func TestComputeMonotonic(t *testing.T) {
	tests := []struct {
		name        string
		big, little uint
	}{
		{"1000 vs 10", 1000, 10},
		{"500 vs 50", 500, 50},
		{"big listed second", 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := makeItems(tt.little, tt.big, tt.little)
			items[0].ID, items[1].ID, items[2].ID = "little", "big", "other"
			var big, little float64
			for _, r := range Compute(items, 465, 165).Leaves() {
				switch r.Item.ID {
				case "big":
					big = r.Area()
				case "little":
					little = r.Area()
				}
			}
			if big < little {
				t.Errorf("area(big) = %v < area(little) = %v", big, little)
			}
		})
	}
}

func TestComputeStableTies(t *testing.T) {
	leaves := Compute(makeItems(7, 7, 7, 7), 200, 100).Leaves()
	for i, r := range leaves {
		if want := fmt.Sprintf("owner/repo%d", i); r.Item.ID != want {
			t.Errorf("leaf %d ID = %q, want %q", i, r.Item.ID, want)
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	items := makeItems(3, 1, 4, 1, 5, 9, 2, 6)
	a := Compute(items, 465, 165).Leaves()
	b := Compute(items, 465, 165).Leaves()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("leaf %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestWithPadding(t *testing.T) {
	leaves := Compute(makeItems(0, 3), 100, 50, WithPadding(0)).Leaves()
	if leaves[0].X1 != leaves[1].X0 {
		t.Errorf("without padding leaves should share an edge: %v != %v", leaves[0].X1, leaves[1].X0)
	}
}

func TestWithWeight(t *testing.T) {
	// Equal weights on a 100 wide canvas split evenly.
	leaves := Compute(makeItems(0, 1000), 100, 10, WithPadding(0), WithWeight(func(Item) float64 { return 1 })).Leaves()
	if leaves[0].Width() != 50 || leaves[1].Width() != 50 {
		t.Errorf("widths = %v, %v, want 50, 50", leaves[0].Width(), leaves[1].Width())
	}
	if leaves[0].Item.ID != "owner/repo0" {
		t.Errorf("first leaf = %q, want owner/repo0", leaves[0].Item.ID)
	}
}

func TestLeavesReturnsCopy(t *testing.T) {
	l := Compute(makeItems(1), 10, 10)
	leaves := l.Leaves()
	leaves[0].X0 = 99
	if l.Leaves()[0].X0 != 0 {
		t.Error("Leaves() exposed internal state")
	}
}
