package artifact

import "strings"

// Declaration is one dependency the consuming project declared explicitly.
type Declaration struct {
	GroupID    string `yaml:"group" toml:"group"`
	ArtifactID string `yaml:"artifact" toml:"artifact"`
	Version    string `yaml:"version" toml:"version"`
}

// Coordinate returns the group:artifact comparison key.
func (d Declaration) Coordinate() string {
	return d.GroupID + ":" + d.ArtifactID
}

// DeclarationSource answers whether an artifact was pulled in by one of the
// project's explicit declarations. The two host resolution models expose
// that information differently (a declared dependency list vs. an
// introduced-artifact set) but both reduce to the same membership test, so
// callers only ever see this interface.
type DeclarationSource interface {
	// Contains reports whether a descends from any declared dependency.
	// Membership is tested by scanning a's trail for an entry containing
	// both the declared coordinate and the declared version as substrings.
	// The match is deliberately loose: the two resolvers format trail
	// entries differently, and a substring test tolerates both. It can
	// false-positive when one version string is a substring of another.
	Contains(a Artifact) bool
}

// DeclaredDependencies is the newer model: the literal dependency list the
// project declared on the staging step.
type DeclaredDependencies []Declaration

func (dd DeclaredDependencies) Contains(a Artifact) bool {
	for _, d := range dd {
		if trailMatches(a.Trail, d.Coordinate(), d.Version) {
			return true
		}
	}
	return false
}

// IntroducedArtifacts is the older model: the set of artifacts the host
// resolved as introduced dependencies of the staging step. It carries the
// same coordinate+version triples, just sourced from resolved artifacts
// rather than raw declarations.
type IntroducedArtifacts []Declaration

func (ia IntroducedArtifacts) Contains(a Artifact) bool {
	for _, d := range ia {
		if trailMatches(a.Trail, d.Coordinate(), d.Version) {
			return true
		}
	}
	return false
}

// Sources combines declaration sources. An artifact is a member when any
// underlying source contains it; used when the config file declares plugins
// on top of whatever the lockfile carries.
type Sources []DeclarationSource

func (s Sources) Contains(a Artifact) bool {
	for _, src := range s {
		if src != nil && src.Contains(a) {
			return true
		}
	}
	return false
}

func trailMatches(trail []string, coordinate, version string) bool {
	for _, ancestor := range trail {
		if strings.Contains(ancestor, coordinate) && strings.Contains(ancestor, version) {
			return true
		}
	}
	return false
}
