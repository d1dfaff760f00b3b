package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the sources configuration file.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the sources file.
func (l *Loader) Load() (*Sources, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", l.path, err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", l.path, err)
	}

	if err := l.validate(&sources); err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", l.path, err)
	}

	return &sources, nil
}

func (l *Loader) validate(sources *Sources) error {
	if len(sources.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}

	seen := make(map[string]bool, len(sources.Categories))
	for _, category := range sources.Categories {
		if category.Name == "" {
			return fmt.Errorf("category name is required")
		}
		if seen[category.Name] {
			return fmt.Errorf("duplicate category %q", category.Name)
		}
		seen[category.Name] = true

		if len(category.Connectors) == 0 {
			return fmt.Errorf("category %q has no connectors", category.Name)
		}
		for _, connector := range category.Connectors {
			switch connector {
			case ConnectorRSS, ConnectorArxiv:
			default:
				return fmt.Errorf("category %q references unknown connector %q", category.Name, connector)
			}
		}
	}

	return nil
}
