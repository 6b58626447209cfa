// Package flame defines the presentation contract between projected flame
// graphs and their output sinks.
//
// The layout engine never interprets operation payloads. Everything a sink
// needs to draw an operation (identifier, label, fill color, error state and
// tooltip) comes from a [Presenter] supplied by the caller.
//
// Subpackages:
//   - [styles]: SVG drawing primitives for bars, connectors and labels
//   - [sink]: SVG and JSON output of a projected flame graph
//
// [styles]: github.com/matzehuels/flametower/pkg/render/flame/styles
// [sink]: github.com/matzehuels/flametower/pkg/render/flame/sink
package flame

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/matzehuels/flametower/pkg/errors"
)

// Theme selects the color scheme.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Themes lists all themes in display order.
var Themes = []Theme{ThemeLight, ThemeDark}

// ParseTheme resolves a theme name. The empty string selects [ThemeLight].
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case "", ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (want light or dark)", name)
}

// Background returns the canvas color.
func (t Theme) Background() string {
	if t == ThemeDark {
		return "#1e1e24"
	}
	return "#ffffff"
}

// Foreground returns the label and connector color.
func (t Theme) Foreground() string {
	if t == ThemeDark {
		return "#e8e8ec"
	}
	return "#1a1a1a"
}

// ErrorColor returns the fill used for failed operations.
func (t Theme) ErrorColor() string {
	if t == ThemeDark {
		return "#ff5c5c"
	}
	return "#d62728"
}

// Presenter supplies display attributes for operation payloads of type T.
type Presenter[T any] interface {
	// ID returns a stable identifier, unique within a trace.
	ID(entity T) string
	// Name returns the bar label.
	Name(entity T) string
	// Color returns a CSS fill color for the given theme.
	Color(entity T, theme Theme) string
	// IsError reports whether the operation failed.
	IsError(entity T) bool
	// Tooltip returns hover text; empty disables the tooltip.
	Tooltip(entity T) string
}

// warm and cool are the per-theme hue ranges, in degrees.
var (
	warm = [2]int{0, 55}
	cool = [2]int{180, 260}
)

// NameColor returns a deterministic fill for a label, so the same operation
// name keeps its color across renders. Light themes use warm hues, dark
// themes cool ones.
func NameColor(name string, theme Theme) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()

	hues, sat, light := warm, 75, 60
	if theme == ThemeDark {
		hues, sat, light = cool, 45, 42
	}
	hue := hues[0] + int(sum%uint32(hues[1]-hues[0]+1))
	l := light + int((sum>>8)%10)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, sat, l)
}
