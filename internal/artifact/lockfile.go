package artifact

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lockfile is the on-disk form of a resolved dependency set. It is written
// by the host build (or a resolver shim) and read verbatim here.
type Lockfile struct {
	// Artifacts is the flat, already-resolved dependency set.
	Artifacts []Artifact `yaml:"artifacts"`

	// Declared lists the dependencies the consuming project declared on the
	// staging step itself (Maven-3-style plugin dependencies).
	Declared []Declaration `yaml:"declared,omitempty"`

	// Introduced lists the artifacts the host resolved as introduced
	// dependencies of the staging step (the older resolution model).
	// At most one of Declared/Introduced is normally populated.
	Introduced []Declaration `yaml:"introduced,omitempty"`
}

// LoadLockfile reads and parses a lockfile.
func LoadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lockfile: %w", err)
	}
	var lf Lockfile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lockfile %s: %w", path, err)
	}
	for i, a := range lf.Artifacts {
		if a.GroupID == "" || a.ArtifactID == "" {
			return nil, fmt.Errorf("lockfile %s: artifact %d is missing coordinates", path, i)
		}
	}
	return &lf, nil
}

// Declarations returns the declaration source for whichever resolution
// model the lockfile carries. The declared list wins when both are present,
// matching the host's own preference for the newer model.
func (lf *Lockfile) Declarations() DeclarationSource {
	if len(lf.Declared) > 0 {
		return DeclaredDependencies(lf.Declared)
	}
	return IntroducedArtifacts(lf.Introduced)
}
