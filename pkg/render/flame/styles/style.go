// Package styles draws flame graph primitives as SVG fragments.
//
// A [Style] receives fully resolved geometry and colors; it never sees
// operation payloads. [Simple] is the default style.
package styles

import "bytes"

// Style defines the visual appearance of a flame graph.
type Style interface {
	// RenderDefs writes SVG <defs> content and the canvas background.
	RenderDefs(buf *bytes.Buffer, canvas Canvas)
	// RenderBar writes the SVG for a single operation bar.
	RenderBar(buf *bytes.Buffer, b Bar)
	// RenderConnector writes the SVG linking a parent bar to a child bar
	// drawn more than one row below it.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes the SVG for a bar's label.
	RenderText(buf *bytes.Buffer, b Bar)
}

// Canvas describes the drawing area.
type Canvas struct {
	W, H       int
	Background string
	Foreground string
}

// Bar contains all data needed to render one operation.
type Bar struct {
	ID         string // Operation identifier
	Label      string // Display text
	X, Y, W, H int    // Position and dimensions in pixels
	Fill       string // CSS fill color
	TextColor  string // CSS label color
	Tooltip    string // Hover text (empty for none)
	Error      bool   // Failed operation
	CutLeft    bool   // Bar continues past the left edge
	CutRight   bool   // Bar continues past the right edge
}

// Connector links two bars whose rows are not adjacent.
type Connector struct {
	ParentID, ChildID string
	X, Y1, Y2         int // Vertical line at X from Y1 down to Y2
	Color             string
}
