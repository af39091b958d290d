// Package category maps merchant names onto the spend taxonomy using
// keyword containment rules loaded from a versioned YAML document.
package category

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// ErrInvalidTaxonomy is wrapped by every validation failure.
var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// Rule is one category and the keywords that select it.
type Rule struct {
	Name     models.Category `yaml:"name" json:"name"`
	Keywords []string        `yaml:"keywords" json:"keywords"`
}

// Taxonomy is the ordered category configuration. Rule order is tie-break
// priority.
type Taxonomy struct {
	Version    int    `yaml:"version" json:"version"`
	Categories []Rule `yaml:"categories" json:"categories"`
}

// DefaultTaxonomy returns the taxonomy shipped with the binary.
func DefaultTaxonomy() (*Taxonomy, error) {
	return ParseTaxonomy(defaultTaxonomyYAML)
}

// LoadTaxonomy reads a taxonomy file. An empty path yields the default.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if path == "" {
		return DefaultTaxonomy()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %q: %w", path, err)
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes and validates a YAML taxonomy document.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaxonomy, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that the taxonomy only names known categories, that
// "other" carries no keywords, and that every keyword is a unique,
// non-empty, lower-case string.
func (t *Taxonomy) Validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidTaxonomy)
	}

	seenCategory := make(map[models.Category]bool)
	seenKeyword := make(map[string]models.Category)
	for _, rule := range t.Categories {
		if !rule.Name.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidTaxonomy, rule.Name)
		}
		if seenCategory[rule.Name] {
			return fmt.Errorf("%w: category %q listed twice", ErrInvalidTaxonomy, rule.Name)
		}
		seenCategory[rule.Name] = true

		if rule.Name == models.CategoryOther && len(rule.Keywords) > 0 {
			return fmt.Errorf("%w: %q is the fallback and cannot have keywords", ErrInvalidTaxonomy, models.CategoryOther)
		}

		for _, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w: empty keyword in %q", ErrInvalidTaxonomy, rule.Name)
			}
			if kw != strings.ToLower(kw) {
				return fmt.Errorf("%w: keyword %q in %q is not lower-case", ErrInvalidTaxonomy, kw, rule.Name)
			}
			if owner, dup := seenKeyword[kw]; dup {
				return fmt.Errorf("%w: keyword %q appears in %q and %q", ErrInvalidTaxonomy, kw, owner, rule.Name)
			}
			seenKeyword[kw] = rule.Name
		}
	}
	return nil
}

// Overlap describes a keyword that can never select its own category
// because it contains a keyword of a category with higher priority.
type Overlap struct {
	Keyword        string
	Category       models.Category
	ShadowedBy     string
	ShadowCategory models.Category
}

func (o Overlap) String() string {
	return fmt.Sprintf("%q (%s) contains %q (%s)", o.Keyword, o.Category, o.ShadowedBy, o.ShadowCategory)
}

// Overlaps lists every shadowed keyword in t.
func (t *Taxonomy) Overlaps() []Overlap {
	var out []Overlap
	for i, rule := range t.Categories {
		for _, kw := range rule.Keywords {
			for _, earlier := range t.Categories[:i] {
				for _, other := range earlier.Keywords {
					if strings.Contains(kw, other) {
						out = append(out, Overlap{
							Keyword:        kw,
							Category:       rule.Name,
							ShadowedBy:     other,
							ShadowCategory: earlier.Name,
						})
					}
				}
			}
		}
	}
	return out
}
