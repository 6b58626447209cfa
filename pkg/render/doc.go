// Package render holds the output side of flametower.
//
// # Overview
//
//   - [flame]: presentation contract, themes and colors
//   - [flame/sink]: SVG, JSON, PDF and PNG output of a projected flame graph
//   - [flame/styles]: SVG drawing primitives
//   - [nodelink]: Graphviz diagram of the leveled operation tree
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both the flame sinks and the node-link renderer use them.
//
//	svg := sink.RenderSVG(container, presenter)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [flame]: github.com/matzehuels/flametower/pkg/render/flame
// [flame/sink]: github.com/matzehuels/flametower/pkg/render/flame/sink
// [flame/styles]: github.com/matzehuels/flametower/pkg/render/flame/styles
// [nodelink]: github.com/matzehuels/flametower/pkg/render/nodelink
package render
