package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flametower/pkg/level"
)

func TestWriteLayout(t *testing.T) {
	trace, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	leveled := level.Assign(trace)

	var buf bytes.Buffer
	if err := WriteLayout(leveled, "relocate", &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}

	var got layoutFile
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Strategy != "relocate" {
		t.Errorf("strategy = %q", got.Strategy)
	}
	if got.Levels != 2 {
		t.Errorf("levels = %d, want 2", got.Levels)
	}
	if len(got.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(got.Nodes))
	}
	if got.Nodes[0].ID != "req" || got.Nodes[0].Parent != "" || got.Nodes[0].Level != 0 {
		t.Errorf("root node = %+v", got.Nodes[0])
	}
	for _, n := range got.Nodes[1:] {
		if n.Parent != "req" || n.Level != 1 {
			t.Errorf("child node = %+v", n)
		}
	}
	if !got.Nodes[2].Error {
		t.Error("render node lost error flag")
	}
}

func TestExportLayout(t *testing.T) {
	trace, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportLayout(level.Assign(trace), "", path); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"levels": 2`) {
		t.Errorf("unexpected output:\n%s", data)
	}
	if strings.Contains(string(data), `"strategy"`) {
		t.Error("empty strategy should be omitted")
	}
}
