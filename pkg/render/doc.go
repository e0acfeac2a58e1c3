// Package render groups the visualizations of contribution data.
//
// # Treemap
//
// The [treemap] subpackages turn weighted repositories into a picture:
//
//   - [treemap/layout]: binary treemap tiling of the canvas
//
//   - [treemap/styles]: heat colors, text measurement and number formatting
//
//   - [treemap/sink]: SVG, PNG and JSON output
//
//     l := layout.Compute(items, 465, 165)
//     svg := sink.RenderSVG(l.Leaves(), sink.DefaultConfig())
//     png, err := sink.RenderPNG(l.Leaves(), sink.DefaultConfig(), sink.WithScale(2))
//
// [treemap]: github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap
// [treemap/layout]: github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout
// [treemap/styles]: github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/styles
// [treemap/sink]: github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink
package render
