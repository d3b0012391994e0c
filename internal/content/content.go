// Package content holds the tour document and its scripts, embedded in the binary.
package content

import (
	_ "embed"
	"fmt"

	"github.com/aretw0/terminaltour/pkg/adapters/memory"
	"github.com/aretw0/terminaltour/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed tour.yaml
var tourYAML []byte

type document struct {
	domain.Page `yaml:",inline"`
	Scripts     []domain.Script `yaml:"scripts"`
}

// Load parses the embedded tour.
func Load() (domain.Page, *memory.Loader, error) {
	return Parse(tourYAML)
}

// Parse decodes a tour document: the page plus the scripts it references.
func Parse(data []byte) (domain.Page, *memory.Loader, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Page{}, nil, fmt.Errorf("failed to parse tour: %w", err)
	}

	loader, err := memory.NewLoader(doc.Scripts...)
	if err != nil {
		return domain.Page{}, nil, fmt.Errorf("invalid tour scripts: %w", err)
	}
	return doc.Page, loader, nil
}

// Raw returns the embedded document.
func Raw() []byte {
	return tourYAML
}
