// Package io reads operation forests from trace files and writes computed
// layouts.
//
// # Overview
//
// Traces are stored as a tree of operations under a top-level "operations"
// list. Both JSON and TOML are accepted:
//
//	{
//	  "operations": [
//	    {
//	      "name": "GET /users",
//	      "start": 0,
//	      "duration": 120,
//	      "children": [
//	        {"name": "db.query", "start": 5, "duration": 60},
//	        {"name": "render", "start": 70, "duration": 40, "error": true}
//	      ]
//	    }
//	  ]
//	}
//
// The same trace in TOML uses nested arrays of tables:
//
//	[[operations]]
//	name = "GET /users"
//	start = 0.0
//	duration = 120.0
//
//	  [[operations.children]]
//	  name = "db.query"
//	  start = 5.0
//	  duration = 60.0
//
// # Operation Fields
//
//   - name: display name (optional)
//   - start, duration: milliseconds; duration must be >= 0
//   - id: stable identifier (optional; derived from the tree position when
//     absent, see [Span])
//   - error: marks the operation as failed (optional)
//   - attrs: string key-value pairs shown in tooltips (optional)
//   - children: nested operations in display order
//
// # Layout Output
//
// [WriteLayout] emits a flat list of leveled operations with their parent
// ids, suitable for external renderers.
package io
