package stager

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the metadata file written at the staging root.
const ManifestFile = "package.yaml"

// Manifest enumerates exactly what a staged layout contains. It is rewritten
// on every stage so it always reflects the most recent resolved set, even
// when an incremental build leaves stale module payloads behind.
type Manifest struct {
	// Name is the package name.
	Name string `yaml:"name"`

	// Version is the package version.
	Version string `yaml:"version"`

	// Modules is the resolved module set, lexicographically sorted.
	Modules []string `yaml:"modules"`
}

// Marshal renders the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteManifest writes the manifest at the layout root.
func WriteManifest(root string, m *Manifest) (string, error) {
	data, err := m.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(root, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// ReadManifest reads the manifest from a previously staged layout.
func ReadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
