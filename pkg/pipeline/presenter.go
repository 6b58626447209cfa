package pipeline

import (
	"maps"
	"slices"
	"strings"

	traceio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/render/flame"
)

// Span is the operation payload handled by the pipeline.
type Span = traceio.Span

// Trace is an operation forest of spans.
type Trace = traceio.Trace

// SpanPresenter presents spans read from trace files. Colors are derived
// from the span name, so repeated operations share a color.
type SpanPresenter struct{}

func (SpanPresenter) ID(s Span) string { return s.ID }

func (SpanPresenter) Name(s Span) string {
	if s.Name == "" {
		return s.ID
	}
	return s.Name
}

func (p SpanPresenter) Color(s Span, theme flame.Theme) string {
	return flame.NameColor(p.Name(s), theme)
}

func (SpanPresenter) IsError(s Span) bool { return s.Error }

// Tooltip lists the name followed by the attributes in key order.
func (p SpanPresenter) Tooltip(s Span) string {
	var b strings.Builder
	b.WriteString(p.Name(s))
	if s.Error {
		b.WriteString(" (error)")
	}
	for _, k := range slices.Sorted(maps.Keys(s.Attrs)) {
		b.WriteString("\n")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s.Attrs[k])
	}
	return b.String()
}

var _ flame.Presenter[Span] = SpanPresenter{}
