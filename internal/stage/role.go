// Package stage builds and populates the isolated JMeter home directory
// used for one test run: it classifies every resolved artifact into the
// directory the engine expects and unpacks the engine's packaged
// configuration resources.
package stage

import (
	"strings"

	"github.com/perfstack/jmstage/internal/artifact"
)

// Names the engine uses for its own artifacts. The config bundle ships the
// default configuration resources; the core jar is the engine executable;
// everything else under the family prefix is an optional engine module.
const (
	ConfigArtifact = "ApacheJMeter_config"
	CoreArtifact   = "ApacheJMeter"
	enginePrefix   = "ApacheJMeter_"
	engineGroup    = "org.apache.jmeter"
)

// Role is the placement decided for one artifact.
type Role int

const (
	// RoleSkip means the artifact is not materialized at all.
	RoleSkip Role = iota
	// RoleConfigBundle is the engine's packaged configuration resources,
	// unpacked into bin rather than copied whole.
	RoleConfigBundle
	// RoleCoreBinary is the engine executable jar, staged under a fixed name.
	RoleCoreBinary
	// RoleExtension is an engine module or a tagged plugin, staged in lib/ext.
	RoleExtension
	// RoleLibrary is a plain supporting library, staged in lib.
	RoleLibrary
)

func (r Role) String() string {
	switch r {
	case RoleConfigBundle:
		return "config"
	case RoleCoreBinary:
		return "core"
	case RoleExtension:
		return "extension"
	case RoleLibrary:
		return "library"
	default:
		return "skip"
	}
}

// Classify decides where one artifact belongs. Pure function; the result
// depends only on the artifact's own fields, the declaration source, and
// the explicit plugin tags, so population order never affects the tree.
//
// Precedence, first match wins:
//  1. Ineligible scope: skipped outright.
//  2. Config bundle / core jar / engine-prefixed module, by name. Name
//     matches are final: an engine artifact is never reclassified by trail
//     or tag checks.
//  3. Anything with an engine-group ancestor in its trail is an engine
//     transitive dependency and goes to lib, even if it also satisfies an
//     explicit declaration.
//  4. Anything pulled in by an explicit declaration goes to lib/ext when
//     the operator tagged it as a plugin, lib otherwise.
//  5. Everything else is skipped.
func Classify(a artifact.Artifact, decls artifact.DeclarationSource, tags map[string]bool) Role {
	if !a.Scope.Eligible() {
		return RoleSkip
	}
	switch {
	case a.ArtifactID == ConfigArtifact:
		return RoleConfigBundle
	case a.ArtifactID == CoreArtifact:
		return RoleCoreBinary
	case strings.HasPrefix(a.ArtifactID, enginePrefix):
		return RoleExtension
	}
	if isEngineDependency(a) {
		return RoleLibrary
	}
	if decls != nil && decls.Contains(a) {
		if tags[a.Coordinate()] {
			return RoleExtension
		}
		return RoleLibrary
	}
	return RoleSkip
}

// isEngineDependency reports whether the artifact was resolved through the
// engine's own group namespace.
func isEngineDependency(a artifact.Artifact) bool {
	for _, ancestor := range a.Trail {
		if strings.Contains(ancestor, engineGroup) {
			return true
		}
	}
	return false
}
