// Package recipe defines the step model and YAML recipe files that describe
// a batch edit: an ordered list of operations applied to every workbook.
package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one requested edit operation. Steps are created by the CLI or a
// recipe file and are not modified once queued.
type Step struct {
	Op        string `yaml:"op" json:"op"`
	Sheet     string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	Sheets    []int  `yaml:"sheets,omitempty" json:"sheets,omitempty"`
	Range     string `yaml:"range,omitempty" json:"range,omitempty"`
	Position  string `yaml:"position,omitempty" json:"position,omitempty"`
	Action    string `yaml:"action,omitempty" json:"action,omitempty"`
	MergeMode string `yaml:"merge_mode,omitempty" json:"mergeMode,omitempty"`
	Color     string `yaml:"color,omitempty" json:"color,omitempty"`
	Content   string `yaml:"content,omitempty" json:"content,omitempty"`
}

// Recipe is a named, ordered list of steps.
type Recipe struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// Load reads and validates a recipe YAML file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("recipe file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read recipe file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates a recipe from YAML bytes.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid recipe YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes the recipe to a YAML file.
func (r *Recipe) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("could not encode recipe: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write recipe file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the recipe has steps and that every step names a known
// operation with its required, parseable parameters.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe is missing a 'name' field")
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("recipe %q has no steps defined", r.Name)
	}
	for i, step := range r.Steps {
		if err := ValidateStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
