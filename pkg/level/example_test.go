package level_test

import (
	"fmt"

	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/optree"
)

func ExampleAssign() {
	// Two overlapping children cannot share a row.
	root := optree.New(0, 100, "handler",
		optree.New(0, 10, "auth"),
		optree.New(5, 10, "cache"),
	)

	leveled := level.Assign([]*optree.Operation[string]{root})
	level.Walk(leveled, func(n *level.Leveled[string]) bool {
		fmt.Printf("%s: %d\n", n.Op.Entity, n.Level)
		return true
	})
	// Output:
	// handler: 0
	// auth: 1
	// cache: 2
}

func ExampleAssignWith() {
	root := optree.New(0, 100, "root",
		optree.New(20, 10, "late"),
		optree.New(0, 30, "early"),
	)
	roots := []*optree.Operation[string]{root}

	// The relocating strategy moves the later-starting branch; the single
	// pass keeps the first child where it was placed.
	for _, s := range []level.Strategy{level.StrategyRelocate, level.StrategySinglePass} {
		fmt.Println(s, level.Levels(level.AssignWith(s, roots)))
	}
	// Output:
	// relocate [0 2 1]
	// single-pass [0 1 2]
}
