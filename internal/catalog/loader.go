package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Questions []Question `yaml:"questions"`
}

// Load reads a question catalog from a YAML file.
func Load(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	var file catalogFile
	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	cat, err := New(file.Questions)
	if err != nil {
		return nil, fmt.Errorf("error validating catalog %s: %w", filename, err)
	}

	return cat, nil
}
