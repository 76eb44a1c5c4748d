// SPDX-License-Identifier: Apache-2.0

package classify

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/goccy/go-yaml"
)

// Unidentified is reported when a discipline or exam board cannot be inferred.
const Unidentified = "Não identificada"

// DefaultThemeName is used when no label or keyword yields a theme.
const DefaultThemeName = "Geral"

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

//go:embed taxonomy.cue
var taxonomySchema string

// Discipline is one entry of the discipline taxonomy.
type Discipline struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// ThemeRule maps trigger keywords to a theme. Rules are evaluated in order.
type ThemeRule struct {
	Theme    string   `json:"theme" yaml:"theme"`
	Subtheme string   `json:"subtheme,omitempty" yaml:"subtheme,omitempty"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// BoardOverride assigns an exam board when Match occurs in the document and
// no board name was found literally.
type BoardOverride struct {
	Match string `json:"match" yaml:"match"`
	Board string `json:"board" yaml:"board"`
}

// Taxonomy holds the keyword tables shared by the classifiers. It is loaded
// once and treated as read-only afterwards.
type Taxonomy struct {
	Disciplines    []Discipline    `json:"disciplines" yaml:"disciplines"`
	Boards         []string        `json:"boards" yaml:"boards"`
	BoardOverrides []BoardOverride `json:"board_overrides,omitempty" yaml:"board_overrides,omitempty"`
	Themes         []ThemeRule     `json:"themes,omitempty" yaml:"themes,omitempty"`
	DefaultTheme   string          `json:"default_theme,omitempty" yaml:"default_theme,omitempty"`
}

var defaultTaxonomy = mustParseDefault()

func mustParseDefault() *Taxonomy {
	t, err := ParseTaxonomy(defaultTaxonomyYAML)
	if err != nil {
		panic("classify: embedded taxonomy is invalid: " + err.Error())
	}
	return t
}

// DefaultTaxonomy returns the taxonomy embedded in the binary.
// Callers must not mutate the returned value.
func DefaultTaxonomy() *Taxonomy {
	return defaultTaxonomy
}

// LoadTaxonomy reads and validates a taxonomy file.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	t, err := ParseTaxonomy(data)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}

// ParseTaxonomy decodes a YAML taxonomy document and validates it against
// the CUE schema.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal taxonomy: %w", err)
	}
	if err := ValidateTaxonomy(&t); err != nil {
		return nil, err
	}
	if t.DefaultTheme == "" {
		t.DefaultTheme = DefaultThemeName
	}
	return &t, nil
}

// ValidateTaxonomy checks t against the #Taxonomy definition.
func ValidateTaxonomy(t *Taxonomy) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(taxonomySchema, cue.Filename("taxonomy.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile taxonomy schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Taxonomy"))
	val := ctx.Encode(t)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode taxonomy: %w", err)
	}
	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid taxonomy: %w", err)
	}
	return nil
}
