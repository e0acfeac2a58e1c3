// Package styles holds the text and color primitives used by the treemap renderer.
//
// # Text Fitting
//
// Text widths are estimated, not measured. [EstimateTextWidth] multiplies the
// number of terminal cells in a string by the font size and a fixed average
// glyph ratio ([GlyphWidthRatio]). The estimate is deliberately coarse: callers
// should never rely on sub-pixel accuracy and always clip rendered text.
//
// On top of the estimate:
//
//   - [ChooseFontSize] picks the largest size at or below a desired size that fits
//     a width budget, returning 0 when even the minimum does not fit.
//   - [TruncateWithEllipsis] shortens a string to the longest prefix that fits
//     together with a trailing ellipsis.
//
// # Colors
//
// [InterpolateHex] blends two #RRGGBB colors. Malformed inputs are read as
// black rather than rejected, so a bad theme never aborts a render.
//
// # Labels
//
// [FormatStars] abbreviates star counts (1500 → "1.5k") and [EscapeXML] makes
// user-supplied text safe to embed in SVG markup.
package styles
