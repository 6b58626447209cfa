// Package level assigns flame-graph rows ("levels") to an operation forest.
//
// # Overview
//
// Every operation in a flame graph is drawn as a horizontal bar on one row.
// The assignment produced by this package satisfies two invariants:
//
//   - Hierarchy: a child is always on a deeper level than its parent.
//   - Non-overlap: two operations on the same level never overlap in time.
//
// The forest does not guarantee that children lie inside their parent's time
// range, so a plain depth assignment is not enough: siblings, cousins and
// unrelated roots can collide on a row.
//
// # Strategies
//
// [StrategyRelocate] (the default) first assigns every operation its tree
// depth, then walks the levels top-down. Whenever two operations on a level
// overlap, the branch that started later (the child of their common ancestor
// through which it descends) is moved to the shallowest deeper level where
// the whole branch fits. Empty levels are squeezed out at the end.
//
// [StrategySinglePass] places operations top-down in one pass, putting each
// on the shallowest free level below its parent. It never revisits a
// placement and usually needs more levels for heavily overlapping forests.
//
// Both strategies are deterministic and interchangeable: same contract, same
// invariants, possibly different level numbers.
//
// # Usage
//
//	leveled := level.Assign(roots)
//	if err := level.Validate(leveled); err != nil {
//	    // unreachable for a well-formed forest
//	}
//
// Assignment never fails and never mutates the input forest. A fresh
// [Leveled] forest is built on every call.
package level
