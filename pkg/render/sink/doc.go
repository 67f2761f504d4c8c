// Package sink provides the output backends a label is drawn into.
//
// A sink is a [Canvas]: the composition code issues the same sequence of
// drawing calls regardless of output format, and the canvas implementation
// decides how each call becomes bytes. Two canvases exist:
//
//   - Raster: draws into a pixel buffer and encodes PNG with an embedded
//     physical resolution, so print drivers reproduce exact millimeters.
//   - Vector: accumulates SVG elements; text stays text, shapes stay
//     shapes, and barcode bitmaps are inlined as pixelated images.
//
// The two backends are independent implementations of the same call
// sequence. Neither is derived from the other by format conversion; a
// rasterized SVG would lose the resolution guarantees, a traced PNG would
// lose the vector text.
//
// Both canvases are deterministic: an identical call sequence yields
// byte-identical output.
package sink
