// Package output renders human-readable text for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/perfstack/jmstage/internal/theme"
)

// Formatter writes styled text to one destination.
type Formatter struct {
	writer   io.Writer
	useColor bool
	theme    theme.Theme
}

// NewFormatter creates a formatter for w. Color is enabled only when w is a
// terminal and NO_COLOR is unset.
func NewFormatter(w io.Writer) *Formatter {
	useColor := false
	if f, ok := w.(*os.File); ok {
		tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		useColor = tty && os.Getenv("NO_COLOR") == ""
	}
	return &Formatter{writer: w, useColor: useColor, theme: theme.Current()}
}

// Textln outputs plain text with a newline
func (f *Formatter) Textln(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format+"\n", args...)
}

// Line outputs a blank line
func (f *Formatter) Line() {
	fmt.Fprintln(f.writer)
}

// Success prints a checkmarked line in the success color.
func (f *Formatter) Success(format string, args ...interface{}) {
	f.styledln(f.theme.Success, "✓ "+fmt.Sprintf(format, args...))
}

// Warn prints a line in the warning color.
func (f *Formatter) Warn(format string, args ...interface{}) {
	f.styledln(f.theme.Warning, "! "+fmt.Sprintf(format, args...))
}

// Muted prints a dimmed line.
func (f *Formatter) Muted(format string, args ...interface{}) {
	f.styledln(f.theme.Muted, fmt.Sprintf(format, args...))
}

// Wrapped prints text word-wrapped to the terminal width.
func (f *Formatter) Wrapped(text string) {
	fmt.Fprintln(f.writer, wordwrap.String(text, f.width()))
}

func (f *Formatter) styledln(c lipgloss.Color, s string) {
	if f.useColor {
		s = lipgloss.NewStyle().Foreground(c).Render(s)
	}
	fmt.Fprintln(f.writer, s)
}

func (f *Formatter) width() int {
	if file, ok := f.writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(file.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// Table outputs tabular data in text format
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with headers
func NewTable(w io.Writer, headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{writer: w, headers: headers, widths: widths}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cols ...string) {
	for i, c := range cols {
		if w := lipgloss.Width(c); i < len(t.widths) && w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Render outputs the table
func (t *Table) Render() {
	formats := make([]string, len(t.widths))
	for i, w := range t.widths {
		formats[i] = fmt.Sprintf("%%-%ds", w)
	}
	rowFmt := "  " + strings.Join(formats, "  ") + "\n"

	args := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		args[i] = h
	}
	fmt.Fprintf(t.writer, rowFmt, args...)

	for i, w := range t.widths {
		args[i] = strings.Repeat("-", w)
	}
	fmt.Fprintf(t.writer, rowFmt, args...)

	for _, row := range t.rows {
		for i := range t.headers {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		fmt.Fprintf(t.writer, rowFmt, args...)
	}
}

// Truncate shortens s to width display cells, appending an ellipsis.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// Pluralize returns singular or plural form based on count
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
