package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PluginManifest tags one coordinate as an engine plugin. Manifests let
// operators ship plugin declarations alongside the plugin itself instead of
// editing the main config.
type PluginManifest struct {
	Name        string `yaml:"name"`
	Group       string `yaml:"group"`
	Artifact    string `yaml:"artifact"`
	Description string `yaml:"description,omitempty"`
}

// Coordinate returns the group:artifact key this manifest tags.
func (m PluginManifest) Coordinate() string {
	return m.Group + ":" + m.Artifact
}

// LoadPluginManifests scans dir for .yaml files and loads each as a plugin
// manifest. A missing directory is not an error; manifests are optional.
func LoadPluginManifests(dir string) ([]PluginManifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var manifests []PluginManifest
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading plugin manifest %s: %w", path, err)
		}
		var m PluginManifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if m.Group == "" || m.Artifact == "" {
			return nil, fmt.Errorf("plugin manifest %s: group and artifact are required", path)
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

// TagSet folds manifests and raw coordinate strings into the explicit
// plugin-tag set the classifier consumes.
func TagSet(manifests []PluginManifest, coordinates []string) map[string]bool {
	tags := make(map[string]bool, len(manifests)+len(coordinates))
	for _, m := range manifests {
		tags[m.Coordinate()] = true
	}
	for _, c := range coordinates {
		if c = strings.TrimSpace(c); c != "" {
			tags[c] = true
		}
	}
	return tags
}
