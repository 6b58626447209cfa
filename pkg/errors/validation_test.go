package errors

import (
	"math"
	"testing"

	"github.com/matzehuels/flametower/pkg/optree"
)

func TestValidateOperations(t *testing.T) {
	tests := []struct {
		name    string
		roots   []*optree.Operation[string]
		wantErr bool
	}{
		{"empty", nil, false},
		{"valid", []*optree.Operation[string]{optree.New(0, 10, "a", optree.New(2, 0, "b"))}, false},
		{"negative root", []*optree.Operation[string]{optree.New(0, -1, "a")}, true},
		{"negative child", []*optree.Operation[string]{optree.New(0, 10, "a", optree.New(2, -3, "b"))}, true},
		{"nan start", []*optree.Operation[string]{optree.New(math.NaN(), 1, "a")}, true},
		{"inf duration", []*optree.Operation[string]{optree.New(0, math.Inf(1), "a")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOperations(tt.roots)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOperations() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOperation) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidOperation)
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		wantErr  bool
	}{
		{"normal", 0, 100, false},
		{"inverted", 100, 0, false},
		{"empty", 5, 5, false},
		{"nan", math.NaN(), 1, true},
		{"inf", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateWindow(tt.from, tt.to); (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindow(%v, %v) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCanvas(t *testing.T) {
	if err := ValidateCanvas(0); err != nil {
		t.Errorf("ValidateCanvas(0) = %v, want nil", err)
	}
	if err := ValidateCanvas(1200); err != nil {
		t.Errorf("ValidateCanvas(1200) = %v, want nil", err)
	}
	if err := ValidateCanvas(-1); !Is(err, ErrCodeInvalidCanvas) {
		t.Errorf("ValidateCanvas(-1) = %v, want %v", err, ErrCodeInvalidCanvas)
	}
}

func TestValidateSpanID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"hex", "4bf92f3577b34da6", false},
		{"uuid", "1b4e28ba-2fa1-11d2-883f-0016d3cca427", false},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "span\x01", true},
		{"newline", "span\nid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateSpanID(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpanID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTraceFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json", "trace.json", false},
		{"toml", "dir/trace.toml", false},
		{"upper case", "TRACE.JSON", false},
		{"empty", "", true},
		{"yaml", "trace.yaml", true},
		{"no extension", "trace", true},
		{"null byte", "trace\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateTraceFilename(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateTraceFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
