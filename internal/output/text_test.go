package output

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	table := NewTable(&b, "ARTIFACT", "ROLE")
	table.AddRow("org.apache.jmeter:ApacheJMeter", "core")
	table.AddRow("kg.apc:jmeter-plugins", "extension")
	table.Render()

	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + separator + 2 rows:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "ARTIFACT") || !strings.Contains(lines[1], "---") {
		t.Errorf("header or separator missing:\n%s", out)
	}
	if !strings.Contains(lines[3], "extension") {
		t.Errorf("row content missing:\n%s", out)
	}
}

func TestTableRender_ShortRowPadded(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	table := NewTable(&b, "A", "B")
	table.AddRow("only-one")
	table.Render()

	if !strings.Contains(b.String(), "only-one") {
		t.Errorf("short row dropped:\n%s", b.String())
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	got := Truncate("a-very-long-artifact-name", 10)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}
}

func TestPluralize(t *testing.T) {
	t.Parallel()

	if Pluralize(1, "artifact", "artifacts") != "artifact" {
		t.Error("singular expected")
	}
	if Pluralize(2, "artifact", "artifacts") != "artifacts" {
		t.Error("plural expected")
	}
}
