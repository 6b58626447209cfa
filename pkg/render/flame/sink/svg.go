package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flametower/pkg/render/flame"
	"github.com/matzehuels/flametower/pkg/render/flame/styles"
	"github.com/matzehuels/flametower/pkg/viewport"
)

const barInteractionCSS = `
    .bar rect { transition: opacity 0.15s ease; }
    .bar.dim rect { opacity: 0.35; }
    .bar.highlight rect { stroke: currentColor; stroke-width: 1.5; }
    .connector.highlight { stroke-width: 2; stroke-dasharray: none; }`

const barInteractionJS = `
    function related(id) {
      const ids = new Set([id]);
      document.querySelectorAll('.connector').forEach(c => {
        if (c.dataset.parent === id) ids.add(c.dataset.child);
        if (c.dataset.child === id) ids.add(c.dataset.parent);
      });
      return ids;
    }
    function highlight(id) {
      const ids = related(id);
      document.querySelectorAll('.bar').forEach(b => {
        const bid = b.id.replace('bar-', '');
        b.classList.toggle('highlight', ids.has(bid));
        b.classList.toggle('dim', !ids.has(bid));
      });
      document.querySelectorAll('.connector').forEach(c => c.classList.toggle('highlight', c.dataset.parent === id || c.dataset.child === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.bar, .connector').forEach(el => el.classList.remove('highlight', 'dim'));
    }
    document.querySelectorAll('.bar').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.id.replace('bar-', '')));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	theme       flame.Theme
	connectors  bool
	interaction bool
	title       string
}

// WithStyle sets the drawing style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTheme sets the color theme (default [flame.ThemeLight]).
func WithTheme(t flame.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithoutConnectors omits parallel connectors.
func WithoutConnectors() SVGOption { return func(r *svgRenderer) { r.connectors = false } }

// WithInteraction embeds hover highlighting of bars and their connectors.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithTitle sets the document <title>.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws the container as an SVG document. It does not modify c and
// is safe to call concurrently.
func RenderSVG[T any](c viewport.RenderContainer[T], p flame.Presenter[T], opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, theme: flame.ThemeLight, connectors: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		c.Width, c.Height, c.Width, c.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	r.style.RenderDefs(&buf, styles.Canvas{
		W: c.Width, H: c.Height,
		Background: r.theme.Background(),
		Foreground: r.theme.Foreground(),
	})

	bars := buildBars(c, p, r.theme)
	for _, b := range bars {
		r.style.RenderBar(&buf, b)
	}
	if r.connectors {
		for _, conn := range buildConnectors(c, p, r.theme) {
			r.style.RenderConnector(&buf, conn)
		}
	}
	for _, b := range bars {
		r.style.RenderText(&buf, b)
	}

	if r.interaction {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", barInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", barInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBars[T any](c viewport.RenderContainer[T], p flame.Presenter[T], theme flame.Theme) []styles.Bar {
	bars := make([]styles.Bar, 0, len(c.Items))
	for _, it := range c.Items {
		if !it.Visible {
			continue
		}
		x0, x1 := clip(it.X, it.X+it.Width, c.Width)
		e := it.Node.Op.Entity
		bars = append(bars, styles.Bar{
			ID:        p.ID(e),
			Label:     p.Name(e),
			X:         x0,
			Y:         it.Y,
			W:         x1 - x0,
			H:         c.RowHeight,
			Fill:      fill(p, e, theme),
			TextColor: theme.Foreground(),
			Tooltip:   p.Tooltip(e),
			Error:     p.IsError(e),
			CutLeft:   it.CutOffLeft,
			CutRight:  it.CutOffRight,
		})
	}
	return bars
}

func buildConnectors[T any](c viewport.RenderContainer[T], p flame.Presenter[T], theme flame.Theme) []styles.Connector {
	conns := make([]styles.Connector, 0, len(c.Connectors))
	for _, pc := range c.Connectors {
		if !pc.Child.Visible || !pc.Parent.Visible {
			continue
		}
		x0, _ := clip(pc.Child.X, pc.Child.X+pc.Child.Width, c.Width)
		conns = append(conns, styles.Connector{
			ParentID: p.ID(pc.Parent.Node.Op.Entity),
			ChildID:  p.ID(pc.Child.Node.Op.Entity),
			X:        x0 + 1,
			Y1:       pc.Parent.Y + c.RowHeight,
			Y2:       pc.Child.Y,
			Color:    theme.Foreground(),
		})
	}
	return conns
}

func fill[T any](p flame.Presenter[T], e T, theme flame.Theme) string {
	if p.IsError(e) {
		return theme.ErrorColor()
	}
	return p.Color(e, theme)
}

// clip restricts [x0, x1) to the canvas [0, width).
func clip(x0, x1, width int) (int, int) {
	return max(x0, 0), min(x1, width)
}
