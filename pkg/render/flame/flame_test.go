package flame

import (
	"strings"
	"testing"

	"github.com/matzehuels/flametower/pkg/errors"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"", ThemeLight, false},
		{"light", ThemeLight, false},
		{"DARK", ThemeDark, false},
		{" dark ", ThemeDark, false},
		{"solarized", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidTheme) {
				t.Errorf("code = %s", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameColor(t *testing.T) {
	a := NameColor("db.query", ThemeLight)
	if a != NameColor("db.query", ThemeLight) {
		t.Error("NameColor should be deterministic")
	}
	if !strings.HasPrefix(a, "hsl(") {
		t.Errorf("NameColor = %q", a)
	}
	if a == NameColor("db.query", ThemeDark) {
		t.Error("themes should use different palettes")
	}
}

func TestThemeColors(t *testing.T) {
	for _, th := range Themes {
		if th.Background() == th.Foreground() {
			t.Errorf("%s: background equals foreground", th)
		}
		if th.ErrorColor() == "" {
			t.Errorf("%s: empty error color", th)
		}
	}
}
