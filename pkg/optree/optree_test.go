package optree

import "testing"

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{0, 10}, Interval{20, 30}, false},
		{"touching", Interval{0, 10}, Interval{10, 20}, false},
		{"partial", Interval{0, 10}, Interval{5, 15}, true},
		{"nested", Interval{0, 100}, Interval{40, 50}, true},
		{"zero width inside", Interval{0, 10}, Interval{5, 5}, true},
		{"zero width at start", Interval{0, 10}, Interval{0, 0}, false},
		{"identical zero width", Interval{5, 5}, Interval{5, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestNewLinksParents(t *testing.T) {
	leaf := New(10, 5, "leaf")
	mid := New(5, 20, "mid", leaf)
	root := New(0, 100, "root", mid)

	if root.Parent() != nil {
		t.Error("root should have nil parent")
	}
	if mid.Parent() != root {
		t.Error("mid parent should be root")
	}
	if leaf.Parent() != mid {
		t.Error("leaf parent should be mid")
	}
	if !root.IsRoot() || mid.IsRoot() {
		t.Error("IsRoot mismatch")
	}
}

func TestLink(t *testing.T) {
	child := &Operation[string]{Start: 1, Duration: 1, Entity: "child"}
	root := &Operation[string]{Start: 0, Duration: 5, Entity: "root", Children: []*Operation[string]{child}}

	if child.Parent() != nil {
		t.Fatal("literal child should start unlinked")
	}
	Link([]*Operation[string]{root})
	if child.Parent() != root {
		t.Error("Link did not set parent")
	}
}

func TestWalkOrder(t *testing.T) {
	roots := []*Operation[string]{
		New(0, 10, "a", New(0, 5, "a1", New(0, 1, "a1x")), New(5, 5, "a2")),
		New(20, 10, "b"),
	}

	var got []string
	var depths []int
	Walk(roots, func(op *Operation[string], depth int) bool {
		got = append(got, op.Entity)
		depths = append(depths, depth)
		return true
	})

	want := []string{"a", "a1", "a1x", "a2", "b"}
	wantDepths := []int{0, 1, 2, 1, 0}
	for i := range want {
		if got[i] != want[i] || depths[i] != wantDepths[i] {
			t.Fatalf("Walk = %v %v, want %v %v", got, depths, want, wantDepths)
		}
	}
}

func TestWalkSkipChildren(t *testing.T) {
	roots := []*Operation[string]{New(0, 10, "a", New(0, 5, "a1"))}
	n := 0
	Walk(roots, func(*Operation[string], int) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("visited %d operations, want 1", n)
	}
}

func TestCountAndDepth(t *testing.T) {
	tests := []struct {
		name      string
		roots     []*Operation[int]
		wantCount int
		wantDepth int
	}{
		{"empty", nil, 0, 0},
		{"single", []*Operation[int]{New(0, 1, 0)}, 1, 1},
		{"chain", []*Operation[int]{New(0, 100, 0, New(0, 50, 1, New(0, 25, 2)))}, 3, 3},
		{"wide", []*Operation[int]{New(0, 10, 0, New(0, 1, 1), New(1, 1, 2)), New(10, 1, 3)}, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.roots); got != tt.wantCount {
				t.Errorf("Count() = %d, want %d", got, tt.wantCount)
			}
			if got := Depth(tt.roots); got != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", got, tt.wantDepth)
			}
		})
	}
}
