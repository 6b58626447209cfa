package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	defer func() { Version, Commit, Date = old[0], old[1], old[2] }()

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	got := Template()
	want := "{{.Name}} v1.2.3\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z\n"
	if got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
}
