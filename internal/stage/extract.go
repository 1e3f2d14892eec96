package stage

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractConfigSettings unpacks the engine's configuration resources from
// the config-bundle jar into the working tree. Only non-directory entries
// under the jar's bin/ prefix are extracted, and .properties members are
// left to the property merger. When an entry named like logConfigName is
// reached and a file already exists at its destination, extraction of all
// remaining entries stops: the pre-existing file is a user-supplied logging
// override and nothing later in the jar may clobber the staged tree.
func extractConfigSettings(jarPath string, tree *Tree, logConfigName string) error {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return fmt.Errorf("opening config bundle %s: %w", jarPath, err)
	}
	defer r.Close()

	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name := entry.Name
		if !strings.HasPrefix(name, "bin") || strings.HasSuffix(name, ".properties") {
			continue
		}

		dest := filepath.Join(tree.Work, filepath.FromSlash(name))
		if !strings.HasPrefix(dest, tree.Work+string(filepath.Separator)) {
			return fmt.Errorf("config bundle entry %q escapes the work directory", name)
		}
		if logConfigName != "" && strings.HasSuffix(name, logConfigName) {
			if _, err := os.Stat(dest); err == nil {
				break
			}
		}
		if err := extractEntry(entry, dest); err != nil {
			return fmt.Errorf("extracting %s: %w", name, err)
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
