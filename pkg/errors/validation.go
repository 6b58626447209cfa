package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/matzehuels/flametower/pkg/optree"
)

// maxSpanIDLength bounds span identifiers read from trace files.
const maxSpanIDLength = 256

// ValidateOperations checks every operation in the forest for a finite start
// time and a finite, non-negative duration. The layout engine treats these
// as preconditions and does not check them itself.
func ValidateOperations[T any](roots []*optree.Operation[T]) error {
	var err error
	optree.Walk(roots, func(op *optree.Operation[T], depth int) bool {
		if err != nil {
			return false
		}
		switch {
		case math.IsNaN(op.Start) || math.IsInf(op.Start, 0):
			err = New(ErrCodeInvalidOperation, "operation at depth %d has non-finite start %v", depth, op.Start)
		case math.IsNaN(op.Duration) || math.IsInf(op.Duration, 0):
			err = New(ErrCodeInvalidOperation, "operation at depth %d has non-finite duration %v", depth, op.Duration)
		case op.Duration < 0:
			err = New(ErrCodeInvalidOperation, "operation at depth %d has negative duration %v", depth, op.Duration)
		}
		return true
	})
	return err
}

// ValidateWindow rejects non-finite window bounds. Empty or inverted windows
// are accepted; projecting them yields an empty result.
func ValidateWindow(from, to float64) error {
	for _, v := range []float64{from, to} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidWindow, "window bound must be finite, got %v", v)
		}
	}
	return nil
}

// ValidateCanvas rejects negative canvas widths. Zero is allowed.
func ValidateCanvas(widthPx int) error {
	if widthPx < 0 {
		return New(ErrCodeInvalidCanvas, "canvas width must be >= 0, got %d", widthPx)
	}
	return nil
}

// ValidateSpanID validates a span identifier read from a trace file.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 256 characters
//   - No control characters
//
// Empty IDs are allowed; the importer derives one.
func ValidateSpanID(id string) error {
	if len(id) > maxSpanIDLength {
		return New(ErrCodeInvalidInput, "span id too long (max %d characters)", maxSpanIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "span id contains invalid control characters")
		}
	}
	return nil
}

// traceExtensions lists the accepted trace file extensions.
var traceExtensions = map[string]bool{".json": true, ".toml": true}

// ValidateTraceFilename checks that a trace file has a supported extension.
func ValidateTraceFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "trace filename cannot be empty")
	}
	if strings.ContainsRune(filename, '\x00') {
		return New(ErrCodeInvalidPath, "trace filename contains invalid characters")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !traceExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported trace file %q (must be .json or .toml)", filename)
	}
	return nil
}
