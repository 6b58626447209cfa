package level

// singlePass places nodes in pre-order, each on the shallowest level at or
// below parent+1 that has room for it. A new level is opened only when none
// of the existing ones fits, so levels grow by at most one per node.
func (a *arena[T]) singlePass() {
	for id := range a.ops {
		lvl := 0
		if p := a.parent[id]; p >= 0 {
			lvl = a.level[p] + 1
		}
		for !a.free(id, lvl) {
			lvl++
		}
		a.place(id, lvl)
	}
}
