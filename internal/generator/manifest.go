package generator

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// APIVersion is the generator manifest version understood by this build.
// Manifests with the same major version and an equal or older version load.
const APIVersion = "v1.1.0"

var ErrManifest = errors.New("invalid generator manifest")

// Manifest selects which registered generators run.
//
//	apiVersion: v1.0.0
//	generators:
//	  - name: supplier
//	    enabled: false
type Manifest struct {
	APIVersion string          `yaml:"apiVersion" validate:"required"`
	Generators []ManifestEntry `yaml:"generators" validate:"dive"`
}

type ManifestEntry struct {
	Name    string `yaml:"name" validate:"required"`
	Enabled *bool  `yaml:"enabled"`
}

var validate = validator.New()

// LoadManifest reads and checks a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Check validates structure and version compatibility.
func (m *Manifest) Check() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrManifest, err)
	}
	v := m.APIVersion
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: apiVersion %q is not a semantic version", ErrManifest, v)
	}
	if semver.Major(v) != semver.Major(APIVersion) || semver.Compare(v, APIVersion) > 0 {
		return fmt.Errorf("%w: apiVersion %s is not supported (want %s or older within %s)",
			ErrManifest, v, APIVersion, semver.Major(APIVersion))
	}
	return nil
}

// Apply returns r restricted by the manifest. Unknown generator names are
// rejected and the plain setter cannot be disabled.
func (m *Manifest) Apply(r *Registry) (*Registry, error) {
	var off []string
	for _, e := range m.Generators {
		if _, ok := r.Lookup(e.Name); !ok {
			return nil, fmt.Errorf("%w: unknown generator %q", ErrManifest, e.Name)
		}
		if e.Enabled == nil || *e.Enabled {
			continue
		}
		if e.Name == (Setter{}).Name() {
			return nil, fmt.Errorf("%w: generator %q cannot be disabled", ErrManifest, e.Name)
		}
		off = append(off, e.Name)
	}
	return r.Without(off...), nil
}
