package viewport

import (
	"math"

	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/optree"
)

// Default projection options.
const (
	DefaultRowHeightPx = 20
	DefaultRowGapPx    = 2
	DefaultMinWidthPx  = 2
)

// Options controls row geometry.
type Options struct {
	RowHeightPx int // Height of one bar
	RowGapPx    int // Vertical gap between rows
	MinWidthPx  int // Minimum bar width so zero-duration operations stay visible
}

// DefaultOptions returns the default row geometry.
func DefaultOptions() Options {
	return Options{
		RowHeightPx: DefaultRowHeightPx,
		RowGapPx:    DefaultRowGapPx,
		MinWidthPx:  DefaultMinWidthPx,
	}
}

// withDefaults replaces unset fields with defaults. A zero row gap is kept.
func (o Options) withDefaults() Options {
	if o.RowHeightPx <= 0 {
		o.RowHeightPx = DefaultRowHeightPx
	}
	if o.RowGapPx < 0 {
		o.RowGapPx = DefaultRowGapPx
	}
	if o.MinWidthPx <= 0 {
		o.MinWidthPx = DefaultMinWidthPx
	}
	return o
}

// RowPitch returns the vertical distance between the tops of adjacent rows.
func (o Options) RowPitch() int { return o.RowHeightPx + o.RowGapPx }

// Window is a requested visible time range in milliseconds. An unbounded
// window covers the whole forest.
type Window struct {
	From, To float64
	Bounded  bool
}

// FullExtent returns a window covering the forest's full time extent.
func FullExtent() Window { return Window{} }

// Between returns a window from..to, clamped to the forest when projected.
func Between(from, to float64) Window {
	return Window{From: from, To: to, Bounded: true}
}

// Clamp restricts w to [lo, hi]. An unbounded window becomes [lo, hi].
func (w Window) Clamp(lo, hi float64) (from, to float64) {
	if !w.Bounded {
		return lo, hi
	}
	return max(w.From, lo), min(w.To, hi)
}

// RenderItem is one operation projected into pixel space.
type RenderItem[T any] struct {
	Node *level.Leveled[T]

	X, Y, Width int

	// CutOffLeft and CutOffRight are set when the unclamped bar extends past
	// the canvas on that side.
	CutOffLeft, CutOffRight bool
	Visible                 bool
}

// ParallelConnector links a parent bar to a child bar drawn more than one
// row below it.
type ParallelConnector[T any] struct {
	Parent, Child *RenderItem[T]
}

// RenderContainer is the result of one projection.
type RenderContainer[T any] struct {
	From, To   float64 // Clamped window actually used
	Width      int     // Canvas width in pixels
	Height     int     // Canvas height in pixels, driven by the deepest level
	RowHeight  int     // Bar height in pixels
	Items      []*RenderItem[T]
	Connectors []ParallelConnector[T]
}

// Empty reports whether the container has no items.
func (c RenderContainer[T]) Empty() bool { return len(c.Items) == 0 }

// Project maps a leveled forest onto a canvas widthPx pixels wide showing the
// given window. Items are emitted in pre-order of the forest. Projection is
// pure: the same input always yields the same container.
func Project[T any](roots []*level.Leveled[T], window Window, widthPx int, opts Options) RenderContainer[T] {
	opts = opts.withDefaults()

	lo, hi, ok := leveledBounds(roots)
	if !ok || widthPx <= 0 {
		return RenderContainer[T]{}
	}
	from, to := window.Clamp(lo, hi)
	if !(to > from) {
		return RenderContainer[T]{}
	}

	p := projector[T]{
		from:    from,
		pxPerMs: float64(widthPx) / (to - from),
		width:   widthPx,
		opts:    opts,
		byNode:  make(map[*level.Leveled[T]]*RenderItem[T]),
	}

	out := RenderContainer[T]{From: from, To: to, Width: widthPx, RowHeight: opts.RowHeightPx}
	maxLevel := 0
	level.Walk(roots, func(n *level.Leveled[T]) bool {
		item := p.project(n)
		out.Items = append(out.Items, item)
		maxLevel = max(maxLevel, n.Level)
		if parent := n.Parent(); parent != nil && n.Level != parent.Level+1 {
			out.Connectors = append(out.Connectors, ParallelConnector[T]{
				Parent: p.byNode[parent],
				Child:  item,
			})
		}
		return true
	})
	out.Height = (maxLevel + 1) * opts.RowPitch()
	return out
}

type projector[T any] struct {
	from    float64
	pxPerMs float64
	width   int
	opts    Options
	byNode  map[*level.Leveled[T]]*RenderItem[T]
}

func (p *projector[T]) project(n *level.Leveled[T]) *RenderItem[T] {
	start := (n.Op.Start - p.from) * p.pxPerMs
	end := start + n.Op.Duration*p.pxPerMs

	item := &RenderItem[T]{
		Node:        n,
		X:           int(math.Floor(start)),
		Y:           n.Level * p.opts.RowPitch(),
		Width:       max(int(math.Floor(n.Op.Duration*p.pxPerMs)), p.opts.MinWidthPx),
		CutOffLeft:  start < 0,
		CutOffRight: end > float64(p.width),
	}
	item.Visible = item.X+item.Width >= 0 && item.X <= p.width
	p.byNode[n] = item
	return item
}

func leveledBounds[T any](roots []*level.Leveled[T]) (lo, hi float64, ok bool) {
	ops := make([]*optree.Operation[T], len(roots))
	for i, r := range roots {
		ops[i] = r.Op
	}
	return optree.ForestBounds(ops)
}
