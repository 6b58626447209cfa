package viewport

import (
	"reflect"
	"testing"

	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/optree"
)

func leveled(roots ...*optree.Operation[string]) []*level.Leveled[string] {
	return level.Assign(roots)
}

func itemFor(c RenderContainer[string], name string) *RenderItem[string] {
	for _, it := range c.Items {
		if it.Node.Op.Entity == name {
			return it
		}
	}
	return nil
}

func TestProjectScenario(t *testing.T) {
	// The frame spans the requested window so clamping leaves it intact.
	roots := leveled(optree.New(0, 2000, "frame", optree.New(1000, 100, "op")))
	c := Project(roots, Between(0, 2000), 1000, DefaultOptions())

	it := itemFor(c, "op")
	if it == nil {
		t.Fatal("op not projected")
	}
	if it.X != 500 {
		t.Errorf("X = %d, want 500", it.X)
	}
	if it.Width != 50 {
		t.Errorf("Width = %d, want 50", it.Width)
	}
	if it.Y != 1*(DefaultRowHeightPx+DefaultRowGapPx) {
		t.Errorf("Y = %d, want %d", it.Y, DefaultRowHeightPx+DefaultRowGapPx)
	}
	if !it.Visible || it.CutOffLeft || it.CutOffRight {
		t.Errorf("flags = visible:%v left:%v right:%v, want visible only", it.Visible, it.CutOffLeft, it.CutOffRight)
	}
}

func TestProjectDegenerate(t *testing.T) {
	roots := leveled(optree.New(0, 100, "a"))

	tests := []struct {
		name   string
		roots  []*level.Leveled[string]
		window Window
		width  int
	}{
		{"zero width canvas", roots, FullExtent(), 0},
		{"negative width canvas", roots, FullExtent(), -5},
		{"empty forest", nil, FullExtent(), 800},
		{"inverted window", roots, Between(50, 10), 800},
		{"empty window", roots, Between(30, 30), 800},
		{"window outside data", roots, Between(200, 300), 800},
		{"zero extent forest", leveled(optree.New(5, 0, "point")), FullExtent(), 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Project(tt.roots, tt.window, tt.width, DefaultOptions())
			if len(c.Items) != 0 || c.Height != 0 || len(c.Connectors) != 0 {
				t.Errorf("Project() = %d items, height %d, want empty", len(c.Items), c.Height)
			}
			if !c.Empty() {
				t.Error("Empty() = false, want true")
			}
		})
	}
}

func TestProjectClampsWindow(t *testing.T) {
	roots := leveled(optree.New(100, 100, "a"))
	c := Project(roots, Between(0, 1000), 100, DefaultOptions())
	if c.From != 100 || c.To != 200 {
		t.Errorf("window = [%v, %v], want [100, 200]", c.From, c.To)
	}

	c = Project(roots, FullExtent(), 100, DefaultOptions())
	if c.From != 100 || c.To != 200 {
		t.Errorf("full window = [%v, %v], want [100, 200]", c.From, c.To)
	}
}

func TestProjectMinWidth(t *testing.T) {
	roots := leveled(optree.New(0, 1000, "frame", optree.New(500, 0, "mark"), optree.New(100, 1, "tiny")))
	c := Project(roots, FullExtent(), 100, DefaultOptions())

	for _, name := range []string{"mark", "tiny"} {
		if it := itemFor(c, name); it.Width != DefaultMinWidthPx {
			t.Errorf("%s width = %d, want %d", name, it.Width, DefaultMinWidthPx)
		}
	}
}

func TestProjectCutOff(t *testing.T) {
	roots := leveled(optree.New(0, 1000, "frame",
		optree.New(0, 300, "left"),
		optree.New(450, 100, "middle"),
		optree.New(700, 300, "right"),
		optree.New(50, 50, "hidden"),
		optree.New(150, 50, "touches-left"),
		optree.New(800, 0, "right-edge"),
		optree.New(810, 0, "past-right"),
	))
	c := Project(roots, Between(200, 800), 600, DefaultOptions())

	tests := []struct {
		name                 string
		left, right, visible bool
	}{
		{"frame", true, true, true},
		{"left", true, false, true},
		{"middle", false, false, true},
		{"right", false, true, true},
		{"hidden", true, false, false},
		{"touches-left", true, false, true},
		{"right-edge", false, false, true},
		{"past-right", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := itemFor(c, tt.name)
			if it.CutOffLeft != tt.left || it.CutOffRight != tt.right || it.Visible != tt.visible {
				t.Errorf("flags = left:%v right:%v visible:%v, want left:%v right:%v visible:%v",
					it.CutOffLeft, it.CutOffRight, it.Visible, tt.left, tt.right, tt.visible)
			}
		})
	}
}

func TestProjectEndMarkerVisible(t *testing.T) {
	roots := leveled(optree.New(0, 100, "root", optree.New(100, 0, "end")))
	c := Project(roots, FullExtent(), 100, DefaultOptions())

	it := itemFor(c, "end")
	if it.X != 100 || it.Width != DefaultMinWidthPx {
		t.Fatalf("end marker at x=%d width=%d, want x=100 width=%d", it.X, it.Width, DefaultMinWidthPx)
	}
	if !it.Visible {
		t.Error("a marker on the right edge of the canvas should be visible")
	}
}

func TestProjectHeight(t *testing.T) {
	roots := leveled(optree.New(0, 100, "A", optree.New(0, 50, "B", optree.New(0, 25, "C"))))
	opts := Options{RowHeightPx: 10, RowGapPx: 5}
	c := Project(roots, FullExtent(), 100, opts)
	if c.Height != 3*15 {
		t.Errorf("Height = %d, want 45", c.Height)
	}
	if c.RowHeight != 10 {
		t.Errorf("RowHeight = %d, want 10", c.RowHeight)
	}
	if it := itemFor(c, "C"); it.Y != 30 {
		t.Errorf("C.Y = %d, want 30", it.Y)
	}
}

func TestProjectConnectors(t *testing.T) {
	root := optree.New(0, 100, "root",
		optree.New(0, 30, "a", optree.New(0, 30, "a1")),
		optree.New(10, 30, "b", optree.New(10, 10, "b1")),
	)
	c := Project(leveled(root), FullExtent(), 100, DefaultOptions())

	if len(c.Connectors) != 1 {
		t.Fatalf("got %d connectors, want 1", len(c.Connectors))
	}
	conn := c.Connectors[0]
	if conn.Parent.Node.Op.Entity != "root" || conn.Child.Node.Op.Entity != "b" {
		t.Errorf("connector = %s -> %s, want root -> b", conn.Parent.Node.Op.Entity, conn.Child.Node.Op.Entity)
	}
	if conn.Parent != itemFor(c, "root") || conn.Child != itemFor(c, "b") {
		t.Error("connector should reference the container's items")
	}
}

func TestProjectNoConnectorsForAdjacentRows(t *testing.T) {
	root := optree.New(0, 100, "A", optree.New(0, 50, "B", optree.New(0, 25, "C")))
	c := Project(leveled(root), FullExtent(), 100, DefaultOptions())
	if len(c.Connectors) != 0 {
		t.Errorf("got %d connectors, want 0", len(c.Connectors))
	}
}

func TestProjectIdempotent(t *testing.T) {
	roots := leveled(
		optree.New(0, 100, "a", optree.New(10, 20, "a1"), optree.New(15, 20, "a2")),
		optree.New(50, 100, "b"),
	)

	first := Project(roots, Between(20, 120), 640, DefaultOptions())
	second := Project(roots, Between(20, 120), 640, DefaultOptions())

	if len(first.Items) != len(second.Items) {
		t.Fatalf("item counts differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if !reflect.DeepEqual(*first.Items[i], *second.Items[i]) {
			t.Errorf("item %d differs: %+v vs %+v", i, *first.Items[i], *second.Items[i])
		}
	}
	if first.Height != second.Height || first.From != second.From || first.To != second.To {
		t.Error("container geometry differs between calls")
	}
}

func TestProjectPreOrder(t *testing.T) {
	roots := leveled(
		optree.New(0, 10, "a", optree.New(0, 5, "a1")),
		optree.New(20, 10, "b"),
	)
	c := Project(roots, FullExtent(), 300, DefaultOptions())

	var got []string
	for _, it := range c.Items {
		got = append(got, it.Node.Op.Entity)
	}
	want := []string{"a", "a1", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.RowHeightPx != DefaultRowHeightPx || o.MinWidthPx != DefaultMinWidthPx || o.RowGapPx != 0 {
		t.Errorf("withDefaults() = %+v", o)
	}
	if got := (Options{RowGapPx: -1}).withDefaults().RowGapPx; got != DefaultRowGapPx {
		t.Errorf("negative gap = %d, want %d", got, DefaultRowGapPx)
	}
}
