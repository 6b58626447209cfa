package optree

// FindMaxBounds returns the tightest interval containing op's own
// [Start, Start+Duration) and the bounds of every descendant. The traversal
// is post-order and visits each node of the subtree once.
func FindMaxBounds[T any](op *Operation[T]) (minMs, maxMs float64) {
	b := subtreeBounds(op)
	return b.Start, b.End
}

func subtreeBounds[T any](op *Operation[T]) Interval {
	b := op.Interval()
	for _, c := range op.Children {
		b = b.Union(subtreeBounds(c))
	}
	return b
}

// ForestBounds returns the union of [FindMaxBounds] over all roots. ok is
// false when the forest is empty.
func ForestBounds[T any](roots []*Operation[T]) (minMs, maxMs float64, ok bool) {
	if len(roots) == 0 {
		return 0, 0, false
	}
	b := subtreeBounds(roots[0])
	for _, r := range roots[1:] {
		b = b.Union(subtreeBounds(r))
	}
	return b.Start, b.End, true
}
