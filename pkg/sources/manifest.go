package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk leaf describing one provider. The file name (minus
// extension) is the provider's canonical name; a manifest naming anything
// else is rejected at load time.
type Manifest struct {
	Name        string `yaml:"name"`
	Driver      string `yaml:"driver,omitempty"` // registry key, defaults to Name
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
}

// LoadManifest loads and parses a provider manifest from a file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// Validate performs basic validation on a provider manifest.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest is missing required field: name")
	}
	return nil
}

// DriverName returns the registry key to construct this provider with.
func (m *Manifest) DriverName() string {
	if m.Driver != "" {
		return m.Driver
	}
	return m.Name
}
