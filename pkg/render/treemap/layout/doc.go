// Package layout partitions a canvas into treemap rectangles.
//
// # Overview
//
// [Compute] takes a flat list of [Item] values and a canvas size and returns
// a [Layout] with one [Rect] per item. Rectangle area is proportional to the
// item's weight, which by default is the logarithmically dampened star count
// computed by [Weight]:
//
//	w = max(1, log2(stars + 1))
//
// so that a handful of very popular repositories do not crowd out the rest.
//
// # Tiling
//
// Items are sorted by descending weight (stable, so ties keep their input
// order) and tiled with a binary split: the current region is cut along its
// longer axis at the point where the two halves carry as close to equal
// weight as possible, and each half is tiled recursively until every part
// holds a single item.
//
// # Padding and Rounding
//
// Siblings are separated by an inner padding (2px by default, see
// [WithPadding]). There is no outer padding, so a single item fills the
// whole canvas. After tiling every coordinate is rounded to the nearest
// integer and clamped to the canvas. A rectangle squeezed below the padding
// collapses to its midpoint instead of turning inside out.
//
// # Order
//
// [Layout.Leaves] returns rectangles in tiling order, which is the sorted
// weight order and not the input order.
package layout
