package optree

// Interval is a half-open time range [Start, End) in milliseconds.
type Interval struct {
	Start, End float64
}

// Overlaps reports whether two intervals share any time. Intervals that only
// touch at an endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return !(i.End <= o.Start || o.End <= i.Start)
}

// Union returns the smallest interval containing both i and o.
func (i Interval) Union(o Interval) Interval {
	return Interval{Start: min(i.Start, o.Start), End: max(i.End, o.End)}
}

// Operation is a single timed node in an operation forest.
//
// The zero value is a valid leaf at time zero with no duration.
type Operation[T any] struct {
	Start    float64 // Start time in milliseconds
	Duration float64 // Duration in milliseconds (must be >= 0)
	Entity   T       // Opaque payload, never interpreted by the engine

	// Children in display order.
	Children []*Operation[T]

	parent *Operation[T]
}

// New creates an operation and attaches the given children to it.
func New[T any](start, duration float64, entity T, children ...*Operation[T]) *Operation[T] {
	op := &Operation[T]{Start: start, Duration: duration, Entity: entity}
	for _, c := range children {
		op.Add(c)
	}
	return op
}

// Add appends child to the operation's children and sets its parent.
func (o *Operation[T]) Add(child *Operation[T]) {
	child.parent = o
	o.Children = append(o.Children, child)
}

// Parent returns the enclosing operation, or nil for a root.
func (o *Operation[T]) Parent() *Operation[T] { return o.parent }

// End returns Start + Duration.
func (o *Operation[T]) End() float64 { return o.Start + o.Duration }

// Interval returns the operation's own time range.
func (o *Operation[T]) Interval() Interval {
	return Interval{Start: o.Start, End: o.End()}
}

// IsRoot reports whether the operation has no parent.
func (o *Operation[T]) IsRoot() bool { return o.parent == nil }

// Link sets parent back-references throughout the forest. Roots keep a nil
// parent. Link is only needed for forests built without [New] or
// [Operation.Add], such as those produced by decoding.
func Link[T any](roots []*Operation[T]) {
	for _, r := range roots {
		r.parent = nil
		linkChildren(r)
	}
}

func linkChildren[T any](op *Operation[T]) {
	for _, c := range op.Children {
		c.parent = op
		linkChildren(c)
	}
}

// Walk visits every operation in pre-order, roots in slice order. depth is 0
// for roots. Returning false from fn skips the operation's children.
func Walk[T any](roots []*Operation[T], fn func(op *Operation[T], depth int) bool) {
	for _, r := range roots {
		walk(r, 0, fn)
	}
}

func walk[T any](op *Operation[T], depth int, fn func(*Operation[T], int) bool) {
	if !fn(op, depth) {
		return
	}
	for _, c := range op.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of operations in the forest.
func Count[T any](roots []*Operation[T]) int {
	n := 0
	Walk(roots, func(*Operation[T], int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the height of the forest: 1 for a forest of leaves, 0 when
// empty.
func Depth[T any](roots []*Operation[T]) int {
	d := 0
	Walk(roots, func(_ *Operation[T], depth int) bool {
		d = max(d, depth+1)
		return true
	})
	return d
}
