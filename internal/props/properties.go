// Package props merges user-supplied engine properties over the defaults
// shipped in the config bundle and writes the merged files into the staged
// bin directory.
package props

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
)

// Properties is one property file's key/value pairs. Ordering within the
// file does not matter to the engine; files are written with sorted keys so
// repeated runs produce identical bytes.
type Properties map[string]string

// Parse reads the subset of the engine's property-file syntax that its own
// bundled files use: key=value / key: value lines, # and ! comments and
// blank lines. Backslash line continuations join onto the previous line.
func Parse(content string) Properties {
	p := make(Properties)
	scanner := bufio.NewScanner(strings.NewReader(content))

	var pending string
	for scanner.Scan() {
		line := pending + strings.TrimLeft(scanner.Text(), " \t")
		pending = ""
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		if strings.HasSuffix(line, "\\") && !strings.HasSuffix(line, "\\\\") {
			pending = strings.TrimSuffix(line, "\\")
			continue
		}
		key, value := splitProperty(line)
		if key != "" {
			p[key] = value
		}
	}
	return p
}

func splitProperty(line string) (string, string) {
	idx := strings.IndexAny(line, "=:")
	if idx < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:])
}

// Merge overlays other onto a copy of p. p itself is not modified.
func (p Properties) Merge(other map[string]string) Properties {
	merged := make(Properties, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Format renders the properties as file content with sorted keys.
func (p Properties) Format() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, p[k])
	}
	return b.String()
}
