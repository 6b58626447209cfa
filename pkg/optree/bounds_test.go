package optree

import "testing"

func TestFindMaxBounds(t *testing.T) {
	tests := []struct {
		name             string
		op               *Operation[string]
		wantMin, wantMax float64
	}{
		{
			name:    "leaf",
			op:      New(10, 5, "leaf"),
			wantMin: 10, wantMax: 15,
		},
		{
			name:    "children contained",
			op:      New(0, 100, "root", New(10, 10, "a"), New(50, 20, "b")),
			wantMin: 0, wantMax: 100,
		},
		{
			name:    "child escapes parent",
			op:      New(10, 10, "root", New(5, 2, "early"), New(15, 30, "late")),
			wantMin: 5, wantMax: 45,
		},
		{
			name:    "deep descendant",
			op:      New(0, 10, "root", New(0, 5, "a", New(-3, 1, "deep"))),
			wantMin: -3, wantMax: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := FindMaxBounds(tt.op)
			if gotMin != tt.wantMin || gotMax != tt.wantMax {
				t.Errorf("FindMaxBounds() = (%v, %v), want (%v, %v)", gotMin, gotMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestForestBounds(t *testing.T) {
	if _, _, ok := ForestBounds[string](nil); ok {
		t.Error("empty forest should report ok=false")
	}

	roots := []*Operation[string]{
		New(100, 10, "b"),
		New(0, 10, "a", New(200, 5, "late")),
	}
	lo, hi, ok := ForestBounds(roots)
	if !ok || lo != 0 || hi != 205 {
		t.Errorf("ForestBounds() = (%v, %v, %v), want (0, 205, true)", lo, hi, ok)
	}
}
