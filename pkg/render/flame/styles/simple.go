package styles

import (
	"bytes"
	"fmt"
)

// Simple draws flat bars with a thin outline, hatched edges on cut-off bars
// and dashed connectors.
type Simple struct{}

// RenderDefs writes the cut-off gradients and the background.
func (Simple) RenderDefs(buf *bytes.Buffer, c Canvas) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <linearGradient id="cut-left" x1="0" x2="1"><stop offset="0" stop-color="#000" stop-opacity="0.35"/><stop offset="1" stop-color="#000" stop-opacity="0"/></linearGradient>` + "\n")
	buf.WriteString(`    <linearGradient id="cut-right" x1="1" x2="0"><stop offset="0" stop-color="#000" stop-opacity="0.35"/><stop offset="1" stop-color="#000" stop-opacity="0"/></linearGradient>` + "\n")
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(buf, `  <rect width="%d" height="%d" fill="%s"/>`+"\n", c.W, c.H, c.Background)
}

// RenderBar writes the bar rectangle, its tooltip and cut-off markers.
// Geometry is expected to be clipped to the canvas already.
func (Simple) RenderBar(buf *bytes.Buffer, b Bar) {
	class := "bar"
	if b.Error {
		class += " error"
	}
	fmt.Fprintf(buf, `  <g class="%s" id="bar-%s">`, class, EscapeXML(b.ID))
	if b.Tooltip != "" {
		fmt.Fprintf(buf, `<title>%s</title>`, EscapeXML(b.Tooltip))
	}
	fmt.Fprintf(buf, `<rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s" stroke="#00000033" stroke-width="0.5"/>`,
		b.X, b.Y, b.W, b.H, b.Fill)

	const edge = 6
	if b.CutLeft {
		fmt.Fprintf(buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="url(#cut-left)"/>`, b.X, b.Y, edge, b.H)
	}
	if b.CutRight {
		fmt.Fprintf(buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="url(#cut-right)"/>`, b.X+b.W-edge, b.Y, edge, b.H)
	}
	buf.WriteString("</g>\n")
}

// RenderConnector writes a dashed vertical line.
func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <line class="connector" x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1" stroke-dasharray="3,2" data-parent="%s" data-child="%s"/>`+"\n",
		c.X, c.Y1, c.X, c.Y2, c.Color, EscapeXML(c.ParentID), EscapeXML(c.ChildID))
}

// RenderText writes the label, truncated to the bar width. Labels that do not
// fit at all are omitted.
func (Simple) RenderText(buf *bytes.Buffer, b Bar) {
	label := TruncateLabel(b)
	if label == "" {
		return
	}
	x := b.X + labelPadding
	y := float64(b.Y) + float64(b.H)/2
	fmt.Fprintf(buf, `  <text class="bar-text" data-bar="%s" x="%d" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s" dominant-baseline="central" pointer-events="none">%s</text>`+"\n",
		EscapeXML(b.ID), x, y, FontSize(b), b.TextColor, EscapeXML(label))
}

var _ Style = Simple{}
