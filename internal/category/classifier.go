package category

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Classifier assigns a category to a merchant name. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	taxonomy *Taxonomy
	matcher  *ahocorasick.Matcher
	// owner[i] is the taxonomy index of the category owning keyword i.
	owner []int
}

// NewClassifier compiles every keyword of t into a single Aho-Corasick
// matcher so a merchant is scanned once regardless of taxonomy size.
func NewClassifier(t *Taxonomy) *Classifier {
	c := &Classifier{taxonomy: t}

	var keywords []string
	for i, rule := range t.Categories {
		for _, kw := range rule.Keywords {
			keywords = append(keywords, kw)
			c.owner = append(c.owner, i)
		}
	}
	if len(keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return c
}

// NewDefaultClassifier builds a classifier over the embedded taxonomy.
func NewDefaultClassifier() (*Classifier, error) {
	t, err := DefaultTaxonomy()
	if err != nil {
		return nil, err
	}
	return NewClassifier(t), nil
}

// Classify returns the first category, in taxonomy order, that owns a
// keyword contained in the lower-cased merchant. It falls back to "other".
func (c *Classifier) Classify(merchant string) models.Category {
	if c.matcher == nil {
		return models.CategoryOther
	}

	hits := c.matcher.MatchThreadSafe([]byte(strings.ToLower(merchant)))
	best := -1
	for _, idx := range hits {
		if best == -1 || c.owner[idx] < best {
			best = c.owner[idx]
		}
	}
	if best == -1 {
		return models.CategoryOther
	}
	return c.taxonomy.Categories[best].Name
}

// Taxonomy returns the configuration the classifier was built from.
func (c *Classifier) Taxonomy() *Taxonomy {
	return c.taxonomy
}
