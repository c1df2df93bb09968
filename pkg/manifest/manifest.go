package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Snapshot is one generated set of builder definitions recorded in the
// manifest. Dir holds the definitions and the module descriptor.
type Snapshot struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	Dir     string `yaml:"dir" json:"dir"`
}

// Manifest tracks the lifecycle of generated definition snapshots.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	for _, s := range m.Snapshots {
		if !semver.IsValid(s.Version) {
			return nil, fmt.Errorf("manifest snapshot %q: invalid version %q", s.Name, s.Version)
		}
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddSnapshot records a snapshot, updating version pointers and de-duplicating
// existing entries that share the same name and version. Versions must be
// semantic versions ("v1.2.0") and may not go backwards.
func (m *Manifest) AddSnapshot(s Snapshot) error {
	if !semver.IsValid(s.Version) {
		return fmt.Errorf("snapshot version %q is not a semantic version", s.Version)
	}
	if m.CurrentVersion != "" && semver.Compare(s.Version, m.CurrentVersion) < 0 {
		return fmt.Errorf("snapshot version %s is older than current %s", s.Version, m.CurrentVersion)
	}
	if m.CurrentVersion != "" && m.CurrentVersion != s.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = s.Version

	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			m.Snapshots[i] = s
			return nil
		}
	}

	m.Snapshots = append(m.Snapshots, s)
	sort.SliceStable(m.Snapshots, func(i, j int) bool {
		return semver.Compare(m.Snapshots[i].Version, m.Snapshots[j].Version) < 0
	})
	return nil
}

// SnapshotDir returns the directory associated with the provided version, if present.
func (m *Manifest) SnapshotDir(version string) string {
	for _, s := range m.Snapshots {
		if s.Version == version {
			return s.Dir
		}
	}
	return ""
}
