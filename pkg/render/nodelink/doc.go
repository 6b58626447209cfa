// Package nodelink renders a leveled operation tree as a node-link diagram.
//
// # Overview
//
// The flame graph hides the tree structure once branches are relocated to
// deeper levels. This package draws the same tree with Graphviz instead:
// one box per operation, one arrow per parent-child edge, and one rank per
// level. Edges that skip levels (the parallel connectors of the flame graph)
// are dashed, which makes relocations easy to spot when debugging a layout.
//
// # Usage
//
//	dot := nodelink.ToDOT(leveled, presenter, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include the level and the time interval
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
