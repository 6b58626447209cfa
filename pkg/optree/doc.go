// Package optree provides the operation forest consumed by the flame-graph
// layout engine.
//
// # Overview
//
// An [Operation] is a time interval (start and duration in milliseconds) with
// an opaque payload and an ordered list of children. Children are kept in
// insertion order, which is also the display order; they are not sorted by
// time. A child's interval is not required to lie inside its parent's: the
// forest only guarantees hierarchy, never temporal containment.
//
// # Basic Usage
//
// Build a forest with [New] and [Operation.Add]. Both maintain the parent
// back-reference used for upward traversal:
//
//	root := optree.New(0, 100, "handler",
//	    optree.New(0, 40, "db.query"),
//	    optree.New(45, 30, "render"),
//	)
//
// Forests assembled as struct literals can be linked afterwards with [Link].
//
// # Bounds
//
// [FindMaxBounds] returns the tightest interval covering an operation and all
// of its descendants; [ForestBounds] does the same for a whole forest. The
// level assigner uses subtree extents when relocating branches, and the
// viewport projector uses forest bounds to clamp the visible window.
//
// # Ownership
//
// Parent pointers are non-owning lookups. Ownership flows root to leaf
// through [Operation.Children]. The forest must be acyclic; this is a
// precondition and is not checked.
package optree
