package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/optree"
)

// spanNamespace seeds the name-based UUIDs given to spans without an id.
var spanNamespace = uuid.MustParse("6f1c2b8e-4d3a-5e7f-9a0b-c1d2e3f4a5b6")

// Span is the payload carried by operations read from trace files.
type Span struct {
	ID    string            // Stable identifier
	Name  string            // Display name
	Error bool              // Whether the operation failed
	Attrs map[string]string // Free-form attributes
}

// Trace is an operation forest read from a trace file.
type Trace = []*optree.Operation[Span]

type traceFile struct {
	Operations []operation `json:"operations" toml:"operations"`
}

type operation struct {
	ID       string            `json:"id,omitempty" toml:"id,omitempty"`
	Name     string            `json:"name,omitempty" toml:"name,omitempty"`
	Start    float64           `json:"start" toml:"start"`
	Duration float64           `json:"duration" toml:"duration"`
	Error    bool              `json:"error,omitempty" toml:"error,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" toml:"attrs,omitempty"`
	Children []operation       `json:"children,omitempty" toml:"children,omitempty"`
}

// ReadJSON decodes a JSON trace from r.
//
// ReadJSON returns an error if the JSON is malformed, if an id is invalid, or
// if an operation has a negative or non-finite time. Spans without an id get
// one derived from their position in the tree, so decoding the same document
// twice yields identical ids. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Trace, error) {
	var data traceFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json trace")
	}
	return build(data)
}

// ReadTOML decodes a TOML trace from r. It applies the same validation as
// [ReadJSON].
func ReadTOML(r io.Reader) (Trace, error) {
	var data traceFile
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml trace")
	}
	return build(data)
}

// ImportFile reads a trace from path, choosing the decoder by extension
// (.json or .toml).
func ImportFile(path string) (Trace, error) {
	if err := errors.ValidateTraceFilename(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}

func build(data traceFile) (Trace, error) {
	roots := make(Trace, 0, len(data.Operations))
	for i, o := range data.Operations {
		op, err := buildOperation(o, strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		roots = append(roots, op)
	}
	if err := errors.ValidateOperations(roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func buildOperation(o operation, path string) (*optree.Operation[Span], error) {
	if err := errors.ValidateSpanID(o.ID); err != nil {
		return nil, err
	}
	span := Span{ID: o.ID, Name: o.Name, Error: o.Error, Attrs: o.Attrs}
	if span.ID == "" {
		span.ID = DeriveID(path, o.Name)
	}

	op := optree.New(o.Start, o.Duration, span)
	for i, c := range o.Children {
		child, err := buildOperation(c, path+"/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		op.Add(child)
	}
	return op, nil
}

// DeriveID returns a deterministic UUID (version 5) for a span at the given
// tree path ("0/2/1" is the second child of the third child of the first
// root) with the given name.
func DeriveID(path, name string) string {
	return uuid.NewSHA1(spanNamespace, []byte(path+":"+name)).String()
}

// WriteJSON encodes a trace as JSON, including derived ids. The output can be
// read back with [ReadJSON].
func WriteJSON(t Trace, w io.Writer) error {
	out := traceFile{Operations: make([]operation, len(t))}
	for i, op := range t {
		out.Operations[i] = toOperation(op)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalTrace returns the compact JSON encoding of a trace. It is used for
// content hashing.
func MarshalTrace(t Trace) ([]byte, error) {
	out := traceFile{Operations: make([]operation, len(t))}
	for i, op := range t {
		out.Operations[i] = toOperation(op)
	}
	return json.Marshal(out)
}

func toOperation(op *optree.Operation[Span]) operation {
	o := operation{
		ID:       op.Entity.ID,
		Name:     op.Entity.Name,
		Start:    op.Start,
		Duration: op.Duration,
		Error:    op.Entity.Error,
		Attrs:    op.Entity.Attrs,
	}
	for _, c := range op.Children {
		o.Children = append(o.Children, toOperation(c))
	}
	return o
}
