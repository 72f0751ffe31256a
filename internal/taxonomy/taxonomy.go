// Package taxonomy defines the ordered skill vocabulary matched against job
// descriptions.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Skill is a canonical skill name and the textual patterns that indicate it.
// Patterns are case-insensitive. A single-word pattern must appear as a whole
// word; a pattern containing whitespace is matched as a plain phrase.
type Skill struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// Taxonomy is an ordered list of skills. Order decides tie-breaking in reports.
type Taxonomy []Skill

// Default returns the built-in vocabulary for Python job boards.
func Default() Taxonomy {
	return Taxonomy{
		{Name: "Python", Patterns: []string{"python"}},
		{Name: "Django", Patterns: []string{"django"}},
		{Name: "Flask", Patterns: []string{"flask"}},
		{Name: "SQL", Patterns: []string{"sql"}},
		{Name: "PostgreSQL", Patterns: []string{"postgresql", "postgres"}},
		{Name: "MySQL", Patterns: []string{"mysql"}},
		{Name: "AWS", Patterns: []string{"aws", "amazon web services"}},
		{Name: "Azure", Patterns: []string{"azure"}},
		{Name: "GCP", Patterns: []string{"gcp", "google cloud"}},
		{Name: "Docker", Patterns: []string{"docker"}},
		{Name: "Kubernetes", Patterns: []string{"kubernetes", "k8s"}},
		{Name: "Git", Patterns: []string{"git"}},
		{Name: "React", Patterns: []string{"react"}},
		{Name: "JavaScript", Patterns: []string{"javascript", "js"}},
		{Name: "HTML/CSS", Patterns: []string{"html", "css"}},
		{Name: "Machine Learning", Patterns: []string{"machine learning", "ml"}},
		{Name: "AI", Patterns: []string{"ai", "artificial intelligence"}},
	}
}

// Names returns the skill names in declaration order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, s := range t {
		names[i] = s.Name
	}
	return names
}

// Validate checks that names are unique and non-empty and that every skill
// has at least one non-blank pattern.
func (t Taxonomy) Validate() error {
	seen := make(map[string]bool, len(t))
	for i, s := range t {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("skill %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("skill %q: duplicate name", name)
		}
		seen[name] = true

		if len(s.Patterns) == 0 {
			return fmt.Errorf("skill %q: at least one pattern is required", name)
		}
		for _, p := range s.Patterns {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("skill %q: blank pattern", name)
			}
		}
	}
	return nil
}

// IsPhrase reports whether a pattern is matched as a multi-word phrase rather
// than a single boundary-anchored word.
func IsPhrase(pattern string) bool {
	return len(strings.Fields(pattern)) > 1
}

// file is the on-disk YAML shape of a taxonomy.
type file struct {
	Skills []Skill `yaml:"skills"`
}

// Load reads a taxonomy from a YAML file of the form:
//
//	skills:
//	  - name: Python
//	    patterns: [python]
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	tax := Taxonomy(f.Skills)
	if err := tax.Validate(); err != nil {
		return nil, fmt.Errorf("validate taxonomy %s: %w", path, err)
	}
	return tax, nil
}
