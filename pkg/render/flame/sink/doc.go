// Package sink writes projected flame graphs in their final output formats.
//
// # Overview
//
// A sink turns a [viewport.RenderContainer] into bytes. The container already
// holds pixel geometry; the sink asks a [flame.Presenter] for labels, colors,
// error state and tooltips, and never looks inside operation payloads itself.
//
//   - SVG: [RenderSVG], a self-contained interactive document
//   - JSON: [RenderJSON], geometry plus presentation data for external tools
//   - PDF and PNG: [RenderPDF] and [RenderPNG], converted from SVG
//
// # SVG Output
//
//	svg := sink.RenderSVG(container, presenter,
//	    sink.WithTheme(flame.ThemeDark),
//	    sink.WithInteraction(),
//	)
//
// Bars are clipped to the canvas; bars that continue past an edge get a
// shaded marker on that side. Items that are not visible are skipped.
// Parallel connectors are drawn as dashed lines from the bottom of the parent
// bar to the top of the child bar unless [WithoutConnectors] is given.
//
// # JSON Output
//
// [RenderJSON] emits every item, visible or not, in the container's
// pre-order. Connectors reference items by index and by id.
//
// # PDF and PNG Output
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [viewport.RenderContainer]: github.com/matzehuels/flametower/pkg/viewport.RenderContainer
// [flame.Presenter]: github.com/matzehuels/flametower/pkg/render/flame.Presenter
package sink
