package io_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/level"
)

func ExampleReadJSON() {
	trace, err := io.ReadJSON(strings.NewReader(`{
	  "operations": [
	    {"id": "a", "name": "handler", "start": 0, "duration": 100,
	     "children": [{"id": "b", "name": "query", "start": 10, "duration": 50}]}
	  ]
	}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	root := trace[0]
	fmt.Println(root.Entity.Name, root.Start, root.End())
	fmt.Println(root.Children[0].Entity.Name, root.Children[0].Parent() == root)
	// Output:
	// handler 0 100
	// query true
}

func ExampleWriteLayout() {
	trace, _ := io.ReadJSON(strings.NewReader(`{
	  "operations": [{"id": "a", "name": "handler", "start": 0, "duration": 100}]
	}`))
	_ = io.WriteLayout(level.Assign(trace), "", os.Stdout)
	// Output:
	// {
	//   "levels": 1,
	//   "nodes": [
	//     {
	//       "id": "a",
	//       "name": "handler",
	//       "start": 0,
	//       "duration": 100,
	//       "level": 0
	//     }
	//   ]
	// }
}
