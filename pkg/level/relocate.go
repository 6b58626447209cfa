package level

import "github.com/matzehuels/flametower/pkg/optree"

// depthPass puts every node on its tree depth. Ids are in pre-order, so the
// buckets end up in visitation order.
func (a *arena[T]) depthPass() {
	for id := range a.ops {
		a.place(id, a.depth[id])
	}
}

// resolve removes same-level overlaps level by level, shallowest first. The
// bucket list may grow while it runs.
func (a *arena[T]) resolve() {
	for lvl := 0; lvl < len(a.buckets); lvl++ {
		for {
			x, y, ok := a.firstConflict(lvl)
			if !ok {
				break
			}
			a.relocate(a.pickBranch(x, y))
		}
	}
}

// firstConflict returns the first overlapping pair on lvl in scan order,
// with x placed before y.
func (a *arena[T]) firstConflict(lvl int) (x, y int, ok bool) {
	b := a.buckets[lvl]
	for i := range b {
		for j := i + 1; j < len(b); j++ {
			if a.interval(b[i]).Overlaps(a.interval(b[j])) {
				return b[i], b[j], true
			}
		}
	}
	return 0, 0, false
}

// pickBranch chooses which subtree to move for the conflicting pair (x, y).
// Without a common ancestor y moves. Otherwise the branch roots under the
// common ancestor are compared and the later-starting one moves; ties move
// y's branch.
func (a *arena[T]) pickBranch(x, y int) int {
	c := a.commonAncestor(x, y)
	if c < 0 {
		return y
	}
	bx, by := a.branchRoot(x, c), a.branchRoot(y, c)
	if a.ops[bx].Start > a.ops[by].Start {
		return bx
	}
	return by
}

func (a *arena[T]) commonAncestor(x, y int) int {
	seen := make(map[int]struct{})
	for n := x; n >= 0; n = a.parent[n] {
		seen[n] = struct{}{}
	}
	for n := y; n >= 0; n = a.parent[n] {
		if _, ok := seen[n]; ok {
			return n
		}
	}
	return -1
}

// branchRoot returns the ancestor-or-self of n whose parent is ancestor.
func (a *arena[T]) branchRoot(n, ancestor int) int {
	for a.parent[n] != ancestor {
		n = a.parent[n]
	}
	return n
}

// relocate moves the subtree rooted at m to the shallowest level below its
// current one where every node of the subtree fits.
func (a *arena[T]) relocate(m int) {
	lo, hi := optree.FindMaxBounds(a.ops[m])
	extent := optree.Interval{Start: lo, End: hi}
	for delta := 1; ; delta++ {
		if a.fits(m, delta, extent) {
			a.relevel(m, a.level[m]+delta)
			return
		}
	}
}

// fits reports whether shifting the subtree rooted at m down by delta levels
// leaves no overlap with nodes outside the subtree. Occupants outside the
// subtree's extent cannot overlap any of its nodes and are skipped early.
func (a *arena[T]) fits(m, delta int, extent optree.Interval) bool {
	for id := m; id < m+a.size[m]; id++ {
		target := a.level[id] + delta
		if target >= len(a.buckets) {
			continue
		}
		iv := a.interval(id)
		for _, o := range a.buckets[target] {
			if a.inSubtree(o, m) {
				continue
			}
			ov := a.interval(o)
			if !ov.Overlaps(extent) {
				continue
			}
			if ov.Overlaps(iv) {
				return false
			}
		}
	}
	return true
}
