package persona

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidPersona = errors.New("invalid persona")

type fileLayout struct {
	Personas []Persona `yaml:"personas"`
}

// LoadFile reads personas from a YAML document of the form `personas: [...]`.
func LoadFile(path string) ([]Persona, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML persona document.
func Parse(raw []byte) ([]Persona, error) {
	var doc fileLayout
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode persona file: %w", err)
	}
	if len(doc.Personas) == 0 {
		return nil, fmt.Errorf("%w: no personas defined", ErrInvalidPersona)
	}

	for i := range doc.Personas {
		p := &doc.Personas[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidPersona, i)
		}
		if strings.TrimSpace(p.Welcome) == "" {
			return nil, fmt.Errorf("%w: %s has no welcome message", ErrInvalidPersona, p.ID)
		}
	}
	return doc.Personas, nil
}
