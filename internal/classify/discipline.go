// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"strings"
	"unicode/utf8"
)

const (
	longKeywordScore  = 3
	shortKeywordScore = 2
	nameBonus         = 10
	longKeywordRunes  = 5
	minDisciplineHits = 2
)

type compiledDiscipline struct {
	name     string
	folded   string
	keywords []string
}

// DisciplineClassifier scores text against the discipline taxonomy.
type DisciplineClassifier struct {
	disciplines []compiledDiscipline
}

// NewDisciplineClassifier creates a DisciplineClassifier from the
// disciplines of t, preserving taxonomy order for tie-breaks.
func NewDisciplineClassifier(t *Taxonomy) *DisciplineClassifier {
	c := &DisciplineClassifier{}
	for _, d := range t.Disciplines {
		c.disciplines = append(c.disciplines, compiledDiscipline{
			name:     d.Name,
			folded:   fold(d.Name),
			keywords: foldAll(d.Keywords),
		})
	}
	return c
}

// Classify returns the best scoring discipline for the concatenation of
// fileName, theme and enunciado, or Unidentified when no discipline
// reaches the minimum score.
func (c *DisciplineClassifier) Classify(fileName, theme, enunciado string) string {
	name, _ := c.Best(strings.Join([]string{fileName, theme, enunciado}, " "))
	return name
}

// Best returns the winning discipline for text and its score. Ties keep
// the discipline listed first.
func (c *DisciplineClassifier) Best(text string) (string, int) {
	text = fold(text)
	best, bestScore := Unidentified, 0
	for _, d := range c.disciplines {
		score := d.score(text)
		if score > bestScore {
			best, bestScore = d.name, score
		}
	}
	if bestScore < minDisciplineHits {
		return Unidentified, bestScore
	}
	return best, bestScore
}

func (d compiledDiscipline) score(text string) int {
	score := 0
	for _, kw := range d.keywords {
		if !strings.Contains(text, kw) {
			continue
		}
		if utf8.RuneCountInString(kw) > longKeywordRunes {
			score += longKeywordScore
		} else {
			score += shortKeywordScore
		}
	}
	if d.folded != "" && strings.Contains(text, d.folded) {
		score += nameBonus
	}
	return score
}
