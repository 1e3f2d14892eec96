package props

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/perfstack/jmstage/internal/util"
)

// EngineFiles are the property files the engine reads from its bin
// directory. global and system usually have no bundled default; they are
// created from overrides alone.
var EngineFiles = []string{
	"jmeter.properties",
	"saveservice.properties",
	"upgrade.properties",
	"user.properties",
	"global.properties",
	"system.properties",
}

// LoadDefaults reads the default property files out of the config bundle.
// The extractor deliberately skips .properties members, so this is the only
// reader of those entries. Keys of the returned map are bare filenames.
func LoadDefaults(jarPath string) (map[string]Properties, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("opening config bundle %s: %w", jarPath, err)
	}
	defer r.Close()

	defaults := make(map[string]Properties)
	for _, entry := range r.File {
		name := entry.Name
		if entry.FileInfo().IsDir() || !strings.HasPrefix(name, "bin/") || !strings.HasSuffix(name, ".properties") {
			continue
		}
		src, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		defaults[filepath.Base(name)] = Parse(string(content))
	}
	return defaults, nil
}

// Merger assembles the final property files for one staged tree.
type Merger struct {
	// TestFilesDir may hold custom property files named like the engine's
	// own; ReplaceDefaults decides whether those replace or overlay the
	// bundled defaults.
	TestFilesDir    string
	ReplaceDefaults bool
}

// Build computes the merged content of one engine property file.
// Precedence, lowest to highest: bundled default, custom file from the
// test files directory, explicit overrides from configuration.
func (m *Merger) Build(name string, defaults Properties, overrides map[string]string) (Properties, error) {
	base := defaults
	if base == nil {
		base = Properties{}
	}

	if m.TestFilesDir != "" {
		customPath := filepath.Join(m.TestFilesDir, name)
		if content, err := os.ReadFile(customPath); err == nil {
			custom := Parse(string(content))
			if m.ReplaceDefaults {
				base = custom
			} else {
				base = base.Merge(custom)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading custom properties %s: %w", customPath, err)
		}
	}
	return base.Merge(overrides), nil
}

// Stage merges and writes every engine property file into binDir. Files
// that end up empty (no default, no custom, no overrides) are not written.
func (m *Merger) Stage(jarPath, binDir string, overrides map[string]map[string]string) error {
	defaults, err := LoadDefaults(jarPath)
	if err != nil {
		return err
	}
	for _, name := range EngineFiles {
		merged, err := m.Build(name, defaults[name], overrides[name])
		if err != nil {
			return err
		}
		if len(merged) == 0 {
			continue
		}
		dest := filepath.Join(binDir, name)
		if err := util.AtomicWriteFile(dest, []byte(merged.Format()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
	}
	return nil
}

// StageLogConfig copies an advanced logging configuration file from the
// test files directory into bin, if the operator supplied one. Returns
// whether a file was staged so the caller can set the log_config property.
func StageLogConfig(testFilesDir, binDir, filename string) (bool, error) {
	if testFilesDir == "" || filename == "" {
		return false, nil
	}
	src := filepath.Join(testFilesDir, filename)
	content, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading logging config %s: %w", src, err)
	}
	dest := filepath.Join(binDir, filename)
	if err := util.AtomicWriteFile(dest, content, 0o644); err != nil {
		return false, fmt.Errorf("staging logging config: %w", err)
	}
	return true, nil
}
