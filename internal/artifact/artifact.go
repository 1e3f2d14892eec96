// Package artifact models resolved build artifacts and the provenance
// metadata the stager needs to place them. The records are supplied by the
// host build's dependency resolver via a lockfile; this package never
// resolves anything itself.
package artifact

import "fmt"

// Scope is the resolution scope an artifact was resolved under.
type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeProvided Scope = "provided"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
)

// Eligible reports whether artifacts in this scope are candidates for
// placement at all. Only compile and runtime artifacts are staged.
func (s Scope) Eligible() bool {
	return s == ScopeCompile || s == ScopeRuntime
}

// Artifact is one resolved dependency plus its resolution provenance.
type Artifact struct {
	GroupID    string `yaml:"group"`
	ArtifactID string `yaml:"artifact"`
	Version    string `yaml:"version"`
	Scope      Scope  `yaml:"scope"`

	// File is the absolute path to the resolved binary on disk.
	File string `yaml:"file"`

	// Trail is the ordered ancestry from the resolution root down to this
	// artifact, as coordinate:version strings. Used only for provenance
	// checks, never for ordering.
	Trail []string `yaml:"trail,omitempty"`
}

// Coordinate returns the group:artifact pair that identifies this artifact
// regardless of version. It is the comparison key used throughout.
func (a Artifact) Coordinate() string {
	return a.GroupID + ":" + a.ArtifactID
}

// String returns a human-readable identity for error messages.
func (a Artifact) String() string {
	return fmt.Sprintf("%s:%s:%s", a.GroupID, a.ArtifactID, a.Version)
}

// Find returns the first artifact in set with the given artifactId.
// A missing artifact is a configuration error: the staged tree cannot be
// built without the engine core and config bundle.
func Find(set []Artifact, artifactID string) (Artifact, error) {
	for _, a := range set {
		if a.ArtifactID == artifactID {
			return a, nil
		}
	}
	return Artifact{}, fmt.Errorf("required dependency not found: %q", artifactID)
}
