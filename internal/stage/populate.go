package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/perfstack/jmstage/internal/artifact"
)

// Placement records where one artifact ended up, for reporting.
type Placement struct {
	Artifact artifact.Artifact
	Role     Role
	Dest     string
}

// Populate copies every resolved artifact into its place in the tree and
// unpacks the config bundle. Copies overwrite unconditionally, so running
// twice over the same inputs yields a byte-identical tree. The first
// failure aborts population; files already copied stay where they are.
// Returns the placements actually materialized (skips excluded).
func Populate(artifacts []artifact.Artifact, decls artifact.DeclarationSource, tags map[string]bool, tree *Tree, logConfigName string) ([]Placement, error) {
	var placed []Placement
	for _, a := range artifacts {
		role := Classify(a, decls, tags)
		var dest string
		switch role {
		case RoleSkip:
			continue
		case RoleConfigBundle:
			if err := extractConfigSettings(a.File, tree, logConfigName); err != nil {
				return placed, fmt.Errorf("unpacking config bundle %s: %w", a, err)
			}
			dest = tree.Bin
		case RoleCoreBinary:
			// Fixed canonical name so the launcher never has to guess the
			// versioned filename.
			dest = filepath.Join(tree.Bin, CoreArtifact+".jar")
		case RoleExtension:
			dest = filepath.Join(tree.LibExt, filepath.Base(a.File))
		case RoleLibrary:
			dest = filepath.Join(tree.Lib, filepath.Base(a.File))
		}
		if role != RoleConfigBundle {
			if err := copyFile(a.File, dest); err != nil {
				return placed, fmt.Errorf("staging %s: %w", a, err)
			}
		}
		placed = append(placed, Placement{Artifact: a, Role: role, Dest: dest})
	}
	return placed, nil
}

// Plan classifies without touching disk, for dry-run reporting.
func Plan(artifacts []artifact.Artifact, decls artifact.DeclarationSource, tags map[string]bool) []Placement {
	var placed []Placement
	for _, a := range artifacts {
		placed = append(placed, Placement{Artifact: a, Role: Classify(a, decls, tags)})
	}
	return placed
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
