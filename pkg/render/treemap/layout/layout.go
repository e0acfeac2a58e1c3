package layout

import (
	"math"
	"slices"
)

// DefaultPadding is the gap in pixels between neighbouring rectangles.
const DefaultPadding = 2.0

// Item is a single repository to be placed on the canvas.
type Item struct {
	ID       string
	Label    string
	Owner    string
	Stars    uint
	Contribs uint
}

// Rect is the rectangle assigned to an item. Coordinates are canvas pixels
// with the origin at the top-left corner.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
	Item   Item
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Layout is the result of [Compute].
type Layout struct {
	Width  float64
	Height float64
	leaves []Rect
}

// Leaves returns a copy of the computed rectangles in tiling order.
func (l Layout) Leaves() []Rect {
	return slices.Clone(l.leaves)
}

// Len returns the number of rectangles.
func (l Layout) Len() int { return len(l.leaves) }

// Weight is the default weight function: max(1, log2(stars+1)).
func Weight(it Item) float64 {
	return max(1, math.Log2(float64(it.Stars)+1))
}

// Option configures [Compute].
type Option func(*options)

type options struct {
	padding float64
	weight  func(Item) float64
}

// WithPadding sets the inner padding between siblings. Negative values are
// treated as zero.
func WithPadding(p float64) Option {
	return func(o *options) { o.padding = max(0, p) }
}

// WithWeight replaces [Weight]. Negative or NaN results are treated as zero.
func WithWeight(fn func(Item) float64) Option {
	return func(o *options) {
		if fn != nil {
			o.weight = fn
		}
	}
}

type node struct {
	item   Item
	value  float64
	x0, y0 float64
	x1, y1 float64
}

// Compute lays out items on a width x height canvas. It never fails: an
// empty item list yields an empty layout and non-positive canvas sizes are
// treated as zero.
func Compute(items []Item, width, height float64, opts ...Option) Layout {
	o := options{padding: DefaultPadding, weight: Weight}
	for _, opt := range opts {
		opt(&o)
	}
	width, height = max(0, width), max(0, height)
	l := Layout{Width: width, Height: height}
	if len(items) == 0 {
		return l
	}

	nodes := make([]*node, len(items))
	for i, it := range items {
		v := o.weight(it)
		if math.IsNaN(v) || v < 0 {
			v = 0
		}
		nodes[i] = &node{item: it, value: v}
	}
	slices.SortStableFunc(nodes, func(a, b *node) int {
		switch {
		case a.value > b.value:
			return -1
		case a.value < b.value:
			return 1
		}
		return 0
	})

	// The children share a region grown by half the padding on every side;
	// each child then gives that half back, leaving a full padding between
	// neighbours and none at the canvas edge.
	half := o.padding / 2
	x0, y0, x1, y1 := inset(-half, -half, width+half, height+half, 0)
	tile(nodes, x0, y0, x1, y1)

	l.leaves = make([]Rect, len(nodes))
	for i, n := range nodes {
		rx0, ry0, rx1, ry1 := inset(n.x0, n.y0, n.x1, n.y1, half)
		l.leaves[i] = Rect{
			X0:   clamp(round(rx0), width),
			Y0:   clamp(round(ry0), height),
			X1:   clamp(round(rx1), width),
			Y1:   clamp(round(ry1), height),
			Item: n.item,
		}
	}
	return l
}

// inset shrinks a region by p on every side, collapsing an axis to its
// midpoint when it would invert.
func inset(x0, y0, x1, y1, p float64) (float64, float64, float64, float64) {
	x0, y0, x1, y1 = x0+p, y0+p, x1-p, y1-p
	if x1 < x0 {
		x0 = (x0 + x1) / 2
		x1 = x0
	}
	if y1 < y0 {
		y0 = (y0 + y1) / 2
		y1 = y0
	}
	return x0, y0, x1, y1
}

// round matches half-up rounding so that 0.5 boundaries resolve the same
// way on both sides of a shared edge.
func round(v float64) float64 { return math.Floor(v + 0.5) }

func clamp(v, hi float64) float64 { return max(0, min(hi, v)) }
