package level

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flametower/pkg/optree"
)

var (
	// ErrHierarchy is returned by [Validate] when a child is not on a deeper
	// level than its parent.
	ErrHierarchy = errors.New("child level must be greater than parent level")

	// ErrOverlap is returned by [Validate] when two operations on the same
	// level overlap in time.
	ErrOverlap = errors.New("operations on the same level overlap")

	// ErrLevelCount is returned by [FromLevels] when the number of levels
	// does not match the number of operations.
	ErrLevelCount = errors.New("level count does not match operation count")
)

// Leveled is an operation with an assigned level, linked into a forest that
// mirrors the operation forest.
type Leveled[T any] struct {
	Op       *optree.Operation[T]
	Level    int
	Children []*Leveled[T]

	parent *Leveled[T]
}

// Parent returns the leveled parent, or nil for a root.
func (l *Leveled[T]) Parent() *Leveled[T] { return l.parent }

// Interval returns the wrapped operation's time range.
func (l *Leveled[T]) Interval() optree.Interval { return l.Op.Interval() }

// Walk visits every node in pre-order, roots in slice order. Returning false
// from fn skips the node's children.
func Walk[T any](roots []*Leveled[T], fn func(*Leveled[T]) bool) {
	for _, r := range roots {
		walk(r, fn)
	}
}

func walk[T any](n *Leveled[T], fn func(*Leveled[T]) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// Count returns the number of nodes in the leveled forest.
func Count[T any](roots []*Leveled[T]) int {
	n := 0
	Walk(roots, func(*Leveled[T]) bool { n++; return true })
	return n
}

// MaxLevel returns the deepest assigned level, or -1 for an empty forest.
func MaxLevel[T any](roots []*Leveled[T]) int {
	m := -1
	Walk(roots, func(n *Leveled[T]) bool {
		m = max(m, n.Level)
		return true
	})
	return m
}

// Levels returns the assigned levels in pre-order.
func Levels[T any](roots []*Leveled[T]) []int {
	var out []int
	Walk(roots, func(n *Leveled[T]) bool {
		out = append(out, n.Level)
		return true
	})
	return out
}

// Rows groups nodes by level. Index i holds the nodes on level i in
// pre-order.
func Rows[T any](roots []*Leveled[T]) [][]*Leveled[T] {
	rows := make([][]*Leveled[T], MaxLevel(roots)+1)
	Walk(roots, func(n *Leveled[T]) bool {
		rows[n.Level] = append(rows[n.Level], n)
		return true
	})
	return rows
}

// FromLevels rebuilds a leveled forest from levels previously obtained with
// [Levels] for the same operation forest. It is used to replay a cached
// assignment without running the assigner again.
func FromLevels[T any](roots []*optree.Operation[T], levels []int) ([]*Leveled[T], error) {
	a := newArena(roots)
	if len(levels) != len(a.ops) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLevelCount, len(levels), len(a.ops))
	}
	copy(a.level, levels)
	return a.materialize(), nil
}

// Validate checks both layout invariants over the whole forest. It returns
// nil for a valid assignment, or an error wrapping [ErrHierarchy] or
// [ErrOverlap] describing the first violation found.
func Validate[T any](roots []*Leveled[T]) error {
	var err error
	Walk(roots, func(n *Leveled[T]) bool {
		if err != nil {
			return false
		}
		if p := n.parent; p != nil && n.Level <= p.Level {
			err = fmt.Errorf("%w: child at %v on level %d, parent on level %d",
				ErrHierarchy, n.Interval(), n.Level, p.Level)
		}
		return true
	})
	if err != nil {
		return err
	}

	for lvl, row := range Rows(roots) {
		for i := range row {
			for j := i + 1; j < len(row); j++ {
				if row[i].Interval().Overlaps(row[j].Interval()) {
					return fmt.Errorf("%w: %v and %v on level %d",
						ErrOverlap, row[i].Interval(), row[j].Interval(), lvl)
				}
			}
		}
	}
	return nil
}
