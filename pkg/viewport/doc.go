// Package viewport projects a leveled operation forest into pixel space.
//
// [Project] takes the output of [level.Assign], a requested time window and
// a canvas width, and produces a [RenderContainer]: one [RenderItem] per
// operation with pixel position, width and clipping flags, plus a
// [ParallelConnector] for every parent/child pair that is not drawn on
// adjacent rows.
//
// The requested window is clamped to the forest's actual time extent.
// Degenerate input (empty forest, zero-width canvas, empty or inverted
// window) yields an empty container instead of an error.
//
// Projection never affects level assignment; the clipping flags exist only
// so renderers can soften bar edges.
package viewport
