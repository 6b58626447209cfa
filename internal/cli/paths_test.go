package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", "flametower"); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"trace.json", ".layout.json", "trace.layout.json"},
		{"dir/trace.toml", ".layout.json", "dir/trace.layout.json"},
		{"trace", ".svg", "trace.svg"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.input, tt.suffix); got != tt.want {
			t.Errorf("defaultOutput(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name, output, input, want string
	}{
		{"from input", "", "traces/run.json", "traces/run"},
		{"plain output", "out/graph", "run.json", "out/graph"},
		{"strips svg", "graph.svg", "run.json", "graph"},
		{"strips layout before json", "graph.layout.json", "run.json", "graph"},
		{"strips tree svg before svg", "graph.tree.svg", "run.json", "graph"},
		{"keeps unknown extension", "graph.txt", "run.json", "graph.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single format uses output as given",
			output:  "flame.out",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "flame.out"},
		},
		{
			name:    "single format without output",
			formats: []string{"json"},
			want:    map[string]string{"json": "trace.flame.json"},
		},
		{
			name:    "multiple formats share a base",
			output:  "out/flame.svg",
			formats: []string{"svg", "layout", "tree-svg", "dot"},
			want: map[string]string{
				"svg":      "out/flame.svg",
				"layout":   "out/flame.layout.json",
				"tree-svg": "out/flame.tree.svg",
				"dot":      "out/flame.dot",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "trace.json", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths()[%q] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}
