package domain

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// FormOptions are the choices offered by the architect form.
type FormOptions struct {
	Semesters    []string `json:"semesters" yaml:"semesters"`
	SkillLevels  []string `json:"skillLevels" yaml:"skillLevels"`
	ProjectTypes []string `json:"projectTypes" yaml:"projectTypes"`
}

// Catalog is the built-in content shipped with the application.
type Catalog struct {
	Options          FormOptions     `yaml:"options"`
	Defaults         ConstraintInput `yaml:"defaults"`
	DefaultProject   ProjectRecord   `yaml:"defaultProject"`
	ProgressMessages []string        `yaml:"progressMessages"`
}

var (
	catalogOnce sync.Once
	catalog     Catalog
	catalogErr  error
)

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.DefaultProject.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("catalog default project: %w", err)
	}
	if err := c.Defaults.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("catalog defaults: %w", err)
	}
	if len(c.ProgressMessages) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no progress messages")
	}
	return c, nil
}

// BuiltinCatalog returns the embedded catalog. A broken embed is a build defect, so it panics.
func BuiltinCatalog() Catalog {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(catalogYAML)
	})
	if catalogErr != nil {
		panic(catalogErr)
	}
	return catalog
}

// DefaultProject is the record shown before any generation.
func DefaultProject() ProjectRecord {
	return BuiltinCatalog().DefaultProject.Clone()
}

// DefaultConstraints is the starting form configuration.
func DefaultConstraints() ConstraintInput {
	return BuiltinCatalog().Defaults
}

// DefaultFormOptions returns a copy of the form choices.
func DefaultFormOptions() FormOptions {
	o := BuiltinCatalog().Options
	return FormOptions{
		Semesters:    cloneStrings(o.Semesters),
		SkillLevels:  cloneStrings(o.SkillLevels),
		ProjectTypes: cloneStrings(o.ProjectTypes),
	}
}

// ProgressMessages is the rotation shown while a generation is in flight.
func ProgressMessages() []string {
	return cloneStrings(BuiltinCatalog().ProgressMessages)
}
