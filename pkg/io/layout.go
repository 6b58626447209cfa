package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flametower/pkg/level"
)

type layoutFile struct {
	Strategy string       `json:"strategy,omitempty"`
	Levels   int          `json:"levels"`
	Nodes    []layoutNode `json:"nodes"`
}

type layoutNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Parent   string  `json:"parent,omitempty"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Level    int     `json:"level"`
	Error    bool    `json:"error,omitempty"`
}

// WriteLayout encodes a leveled trace as a flat, pre-ordered node list.
// strategy is recorded for reference and may be empty.
func WriteLayout(roots []*level.Leveled[Span], strategy string, w io.Writer) error {
	out := layoutFile{
		Strategy: strategy,
		Levels:   level.MaxLevel(roots) + 1,
		Nodes:    make([]layoutNode, 0, level.Count(roots)),
	}
	level.Walk(roots, func(n *level.Leveled[Span]) bool {
		ln := layoutNode{
			ID:       n.Op.Entity.ID,
			Name:     n.Op.Entity.Name,
			Start:    n.Op.Start,
			Duration: n.Op.Duration,
			Level:    n.Level,
			Error:    n.Op.Entity.Error,
		}
		if p := n.Parent(); p != nil {
			ln.Parent = p.Op.Entity.ID
		}
		out.Nodes = append(out.Nodes, ln)
		return true
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes a leveled trace to a JSON file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(roots []*level.Leveled[Span], strategy, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(roots, strategy, f)
}
