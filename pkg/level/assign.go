package level

import (
	"fmt"

	"github.com/matzehuels/flametower/pkg/optree"
)

// Strategy selects the level assignment algorithm.
type Strategy int

const (
	// StrategyRelocate assigns tree depth first, then resolves overlaps by
	// moving whole branches deeper.
	StrategyRelocate Strategy = iota
	// StrategySinglePass places each operation on the shallowest free level
	// below its parent in one top-down pass.
	StrategySinglePass
)

// Strategy names accepted by [ParseStrategy].
const (
	NameRelocate   = "relocate"
	NameSinglePass = "single-pass"
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyRelocate:
		return NameRelocate
	case StrategySinglePass:
		return NameSinglePass
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name into a [Strategy]. The empty string
// selects [StrategyRelocate].
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", NameRelocate:
		return StrategyRelocate, nil
	case NameSinglePass:
		return StrategySinglePass, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (must be %q or %q)", name, NameRelocate, NameSinglePass)
	}
}

// Assign levels the forest with [StrategyRelocate].
func Assign[T any](roots []*optree.Operation[T]) []*Leveled[T] {
	return AssignWith(StrategyRelocate, roots)
}

// AssignWith levels the forest with the given strategy. Unknown strategies
// fall back to [StrategyRelocate]. The input forest is not modified.
func AssignWith[T any](s Strategy, roots []*optree.Operation[T]) []*Leveled[T] {
	a := newArena(roots)
	switch s {
	case StrategySinglePass:
		a.singlePass()
	default:
		a.depthPass()
		a.resolve()
		a.compact()
	}
	return a.materialize()
}
