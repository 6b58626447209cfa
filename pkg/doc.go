// Package pkg provides the core libraries for Flametower flame graph layout.
//
// # Overview
//
// Flametower takes a forest of timed, nested operations (spans with a start,
// a duration and children) and assigns every operation a row, or level, of a
// flame graph. Two rules hold for every assignment:
//
//  1. A child is always on a deeper level than its parent.
//  2. Operations on the same level never overlap in time.
//
// The pkg directory is organized into three areas:
//
//  1. Engine: [optree], [level] and [viewport]
//  2. Outputs: [io], [render], [render/flame], [render/nodelink]
//  3. Infrastructure: [pipeline], [cache], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	Trace file (.json, .toml)
//	         ↓
//	    [io] package (decode into an operation forest)
//	         ↓
//	    [level] package (assign levels)
//	         ↓
//	    [viewport] package (project a time window onto a pixel canvas)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/flametower/pkg/level"
//	    "github.com/matzehuels/flametower/pkg/optree"
//	    "github.com/matzehuels/flametower/pkg/viewport"
//	)
//
//	root := optree.New(0, 100, "GET /",
//	    optree.New(0, 60, "auth"),
//	    optree.New(50, 50, "fetch"),
//	)
//	leveled := level.Assign([]*optree.Operation[string]{root})
//	c := viewport.Project(leveled, viewport.FullExtent(), 1200, viewport.DefaultOptions())
//
// # Main Packages
//
// [optree] - The operation forest: intervals, walks and bounds.
//
// [level] - Level assignment. The relocate strategy moves whole subtrees into
// the shallowest rows where they fit; single-pass places each operation once.
//
// [viewport] - Projection of a leveled forest onto a canvas, including
// cut-off flags for bars that leave the window and connectors for children
// drawn more than one row below their parent.
//
// [render/flame] - Flame graph SVG and JSON sinks driven by a Presenter.
//
// [render/nodelink] - Graphviz diagrams of the leveled tree for debugging.
//
// [pipeline] - Load → assign → project → render with memoization, used by
// the CLI and the HTTP server.
//
// [cache] - Null, file and Redis caches plus key derivation.
//
// [optree]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/optree
// [level]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/level
// [viewport]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/viewport
// [io]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render
// [render/flame]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/flame
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/errors
package pkg
