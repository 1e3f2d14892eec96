package props

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line-based diff between two rendered property files,
// old to new. Equal runs are kept so callers can show context.
func Diff(old, new string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// FormatDiff renders a diff as prefixed lines ("+ ", "- ", "  ").
// Unchanged runs longer than a few lines are elided.
func FormatDiff(diffs []diffmatchpatch.Diff) string {
	const contextLines = 3

	var b strings.Builder
	for _, d := range diffs {
		lines := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > contextLines*2 {
				for _, l := range lines[:contextLines] {
					b.WriteString("  " + l + "\n")
				}
				b.WriteString("  ...\n")
				for _, l := range lines[len(lines)-contextLines:] {
					b.WriteString("  " + l + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}
