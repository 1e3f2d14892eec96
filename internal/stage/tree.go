package stage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Tree holds the absolute paths of the staged JMeter home. It is created
// fresh per run and only ever written to, never read back.
type Tree struct {
	Work    string
	Bin     string
	Lib     string
	LibExt  string
	Logs    string
	Results string
}

// BuildTree creates the working directory skeleton under workDir: bin,
// logs, lib, lib/ext, lib/junit (the engine insists the junit directory
// exists even though nothing is staged there) and the results directory.
// resultsOverride, when non-empty, is used verbatim as the results path
// after separator normalization; otherwise results defaults under workDir.
// Creation is idempotent and makes missing parents. Any failure fails the
// whole build; a partial skeleton is never used.
func BuildTree(workDir, resultsOverride string) (*Tree, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolving work directory: %w", err)
	}

	results := filepath.Join(abs, "results")
	if resultsOverride != "" {
		results = NormalizeSeparators(resultsOverride)
	}

	t := &Tree{
		Work:    abs,
		Bin:     filepath.Join(abs, "bin"),
		Lib:     filepath.Join(abs, "lib"),
		LibExt:  filepath.Join(abs, "lib", "ext"),
		Logs:    filepath.Join(abs, "logs"),
		Results: results,
	}

	dirs := []string{
		t.Bin,
		t.Logs,
		t.Lib,
		t.LibExt,
		filepath.Join(t.Lib, "junit"),
		t.Results,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return t, nil
}

// NormalizeSeparators rewrites the separator characters a raw configured
// path may use (forward slash, backslash, or the pipe some build files use
// to dodge escaping) to the host's native separator.
func NormalizeSeparators(path string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '|':
			return filepath.Separator
		}
		return r
	}, path)
}
