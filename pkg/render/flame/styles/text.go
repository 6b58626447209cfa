package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 12.0
	labelPadding    = 3
)

// FontSize returns the label size that fits the bar height.
func FontSize(b Bar) float64 {
	return max(fontSizeMin, min(fontSizeMax, float64(b.H)*fontHeightRatio))
}

// TruncateLabel shortens the label to fit the bar width. It returns the empty
// string when not even two characters fit.
func TruncateLabel(b Bar) string {
	avail := float64(b.W - 2*labelPadding)
	maxChars := int(avail / (FontSize(b) * fontCharWidth))
	if maxChars < 2 {
		return ""
	}
	if utf8.RuneCountInString(b.Label) <= maxChars {
		return b.Label
	}
	if maxChars < 4 {
		return ""
	}
	runes := []rune(b.Label)
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
