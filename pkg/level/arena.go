package level

import (
	"slices"

	"github.com/matzehuels/flametower/pkg/optree"
)

// arena stores the forest as index-linked nodes numbered in pre-order. A
// subtree therefore occupies the contiguous id range [id, id+size[id]).
type arena[T any] struct {
	ops     []*optree.Operation[T]
	parent  []int // -1 for roots
	depth   []int
	size    []int
	level   []int
	buckets [][]int // level -> ids in placement order
}

func newArena[T any](roots []*optree.Operation[T]) *arena[T] {
	a := &arena[T]{}
	for _, r := range roots {
		a.add(r, -1, 0)
	}
	a.level = make([]int, len(a.ops))
	return a
}

func (a *arena[T]) add(op *optree.Operation[T], parent, depth int) int {
	id := len(a.ops)
	a.ops = append(a.ops, op)
	a.parent = append(a.parent, parent)
	a.depth = append(a.depth, depth)
	a.size = append(a.size, 1)
	for _, c := range op.Children {
		cid := a.add(c, id, depth+1)
		a.size[id] += a.size[cid]
	}
	return id
}

func (a *arena[T]) interval(id int) optree.Interval { return a.ops[id].Interval() }

func (a *arena[T]) inSubtree(id, root int) bool {
	return id >= root && id < root+a.size[root]
}

// place records id on lvl, growing the bucket list as needed.
func (a *arena[T]) place(id, lvl int) {
	for len(a.buckets) <= lvl {
		a.buckets = append(a.buckets, nil)
	}
	a.level[id] = lvl
	a.buckets[lvl] = append(a.buckets[lvl], id)
}

func (a *arena[T]) unplace(id int) {
	b := a.buckets[a.level[id]]
	if i := slices.Index(b, id); i >= 0 {
		a.buckets[a.level[id]] = slices.Delete(b, i, i+1)
	}
}

// free reports whether id's interval can go on lvl without overlapping any
// occupant.
func (a *arena[T]) free(id, lvl int) bool {
	if lvl >= len(a.buckets) {
		return true
	}
	iv := a.interval(id)
	for _, o := range a.buckets[lvl] {
		if a.interval(o).Overlaps(iv) {
			return false
		}
	}
	return true
}

// relevel moves the subtree rooted at root so that root sits on newLevel.
// Each descendant keeps the offset to root it had before the move.
func (a *arena[T]) relevel(root, newLevel int) {
	end := root + a.size[root]
	base := a.level[root]
	offsets := make([]int, end-root)
	for id := root; id < end; id++ {
		offsets[id-root] = a.level[id] - base
	}
	for id := root; id < end; id++ {
		a.unplace(id)
		a.place(id, newLevel+offsets[id-root])
	}
}

// compact removes empty levels, renumbering the remaining ones in order.
func (a *arena[T]) compact() {
	remap := make([]int, len(a.buckets))
	kept := a.buckets[:0]
	for lvl, b := range a.buckets {
		remap[lvl] = len(kept)
		if len(b) > 0 {
			kept = append(kept, b)
		}
	}
	a.buckets = kept
	for id := range a.level {
		a.level[id] = remap[a.level[id]]
	}
}

// materialize builds the public leveled forest from the arena.
func (a *arena[T]) materialize() []*Leveled[T] {
	nodes := make([]*Leveled[T], len(a.ops))
	var roots []*Leveled[T]
	for id, op := range a.ops {
		n := &Leveled[T]{Op: op, Level: a.level[id]}
		nodes[id] = n
		if p := a.parent[id]; p >= 0 {
			n.parent = nodes[p]
			nodes[p].Children = append(nodes[p].Children, n)
		} else {
			roots = append(roots, n)
		}
	}
	return roots
}
