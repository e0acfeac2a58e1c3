// Package sink renders a treemap [layout.Layout] to output formats.
//
// # SVG
//
// [RenderSVG] is the primary sink. Every leaf becomes a filled rectangle
// and a clipped block of up to three text lines:
//
//   - the repository name, bold, in the primary text color
//   - the owner, regular, in the secondary text color
//   - a star line such as "★ 1.5k", bold, only for repositories with at
//     least [StarLineThreshold] stars
//
// Font sizes are chosen per line with [styles.ChooseFontSize] against the
// cell's padded width and then shrunk together until the block fits the
// cell's padded height. No line is ever drawn below [MinFontSize]; text that
// still does not fit is truncated with an ellipsis and clipped to the cell.
//
// Fill colors come from a two-color heat gradient. The merged PR count of
// each repository is normalized against the smallest and largest counts in
// the layout and fed to [styles.InterpolateHex].
//
// An empty layout renders the background with a centered
// "No repositories found" caption.
//
// # PNG
//
// [RenderPNG] rasterizes the cell rectangles with oksvg, then draws the
// fitted lines with the embedded Go fonts, clipped to each cell. Sizes and
// baselines match the SVG; glyph shapes differ from the SVG font family.
//
// # JSON
//
// [RenderJSON] exports the cells with their geometry, heat and fill so
// other tools can draw their own version of the chart.
//
// # Configuration
//
// [Config] holds the canvas size and theme. Zero fields are unset and fall
// back to [DefaultConfig] through [Config.Merge].
//
// [layout.Layout]: github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout
package sink
