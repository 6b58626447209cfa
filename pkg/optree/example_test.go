package optree_test

import (
	"fmt"

	"github.com/matzehuels/flametower/pkg/optree"
)

func ExampleFindMaxBounds() {
	// A child may run past its parent; bounds cover the whole subtree.
	root := optree.New(0, 100, "request",
		optree.New(10, 40, "db.query"),
		optree.New(90, 30, "flush"),
	)

	lo, hi := optree.FindMaxBounds(root)
	fmt.Println("Bounds:", lo, hi)
	// Output:
	// Bounds: 0 120
}

func ExampleWalk() {
	roots := []*optree.Operation[string]{
		optree.New(0, 10, "main", optree.New(0, 4, "init"), optree.New(4, 6, "run")),
	}

	optree.Walk(roots, func(op *optree.Operation[string], depth int) bool {
		fmt.Printf("%d %s\n", depth, op.Entity)
		return true
	})
	// Output:
	// 0 main
	// 1 init
	// 1 run
}
