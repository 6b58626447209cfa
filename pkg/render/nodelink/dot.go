package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/render"
	"github.com/matzehuels/flametower/pkg/render/flame"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the level and time interval in node labels.
	// When false, only the operation name is shown.
	Detailed bool

	// Theme selects node fill colors.
	Theme flame.Theme
}

// ToDOT converts a leveled forest to Graphviz DOT. Operations on the same
// level share a rank, and edges that skip levels are dashed.
func ToDOT[T any](roots []*level.Leveled[T], p flame.Presenter[T], opts Options) string {
	theme := opts.Theme
	if theme == "" {
		theme = flame.ThemeLight
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=monospace, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	level.Walk(roots, func(n *level.Leveled[T]) bool {
		e := n.Op.Entity
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, p.Name(e), opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", nodeFill(p, e, theme)),
		}
		if p.IsError(e) {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID(e), strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	for lvl, row := range level.Rows(roots) {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  { rank=same; /* level %d */", lvl)
		for _, n := range row {
			fmt.Fprintf(&buf, " %q;", p.ID(n.Op.Entity))
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	level.Walk(roots, func(n *level.Leveled[T]) bool {
		parent := n.Parent()
		if parent == nil {
			return true
		}
		from, to := p.ID(parent.Op.Entity), p.ID(n.Op.Entity)
		if n.Level != parent.Level+1 {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, minlen=%d];\n", from, to, n.Level-parent.Level)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel[T any](n *level.Leveled[T], name string, detailed bool) string {
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\nlevel: %d\n[%s, %s) ms", name, n.Level,
		strconv.FormatFloat(n.Op.Start, 'f', -1, 64),
		strconv.FormatFloat(n.Op.End(), 'f', -1, 64))
}

func nodeFill[T any](p flame.Presenter[T], e T, theme flame.Theme) string {
	if p.IsError(e) {
		return theme.ErrorColor()
	}
	return p.Color(e, theme)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based <svg> tag with a pixel one
// anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
