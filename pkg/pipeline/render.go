package pipeline

import (
	"bytes"
	"context"
	"fmt"

	traceio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/render/flame/sink"
	"github.com/matzehuels/flametower/pkg/render/nodelink"
	"github.com/matzehuels/flametower/pkg/viewport"
)

// Render produces one artifact per requested format. Flame formats use the
// projected container; tree formats use the leveled forest directly.
func Render(ctx context.Context, leveled []*level.Leveled[Span], c viewport.RenderContainer[Span], opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, leveled, c, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, leveled []*level.Leveled[Span], c viewport.RenderContainer[Span], format string, opts Options) ([]byte, error) {
	p := SpanPresenter{}
	switch format {
	case FormatSVG:
		return sink.RenderSVG(c, p, svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(c, p, opts.Scale, svgOptions(opts)...)
	case FormatPDF:
		return sink.RenderPDF(c, p, svgOptions(opts)...)
	case FormatJSON:
		jsonOpts := []sink.JSONOption{
			sink.WithJSONTheme(opts.FlameTheme()),
			sink.WithJSONStrategy(opts.LevelStrategy().String()),
		}
		if opts.VisibleOnly {
			jsonOpts = append(jsonOpts, sink.WithJSONVisibleOnly())
		}
		return sink.RenderJSON(c, p, jsonOpts...)
	case FormatLayout:
		var buf bytes.Buffer
		if err := traceio.WriteLayout(leveled, opts.LevelStrategy().String(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(leveled, p, nodelinkOptions(opts))), nil
	case FormatTreeSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(leveled, p, nodelinkOptions(opts)))
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []sink.SVGOption {
	out := []sink.SVGOption{sink.WithTheme(opts.FlameTheme())}
	if opts.Interactive {
		out = append(out, sink.WithInteraction())
	}
	if opts.Connectors != nil && !*opts.Connectors {
		out = append(out, sink.WithoutConnectors())
	}
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	return out
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Theme: opts.FlameTheme()}
}
