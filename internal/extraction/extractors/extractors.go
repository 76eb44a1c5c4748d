// SPDX-License-Identifier: Apache-2.0

// Package extractors implements the question extraction strategies tried,
// in order, by the extraction chain.
package extractors

import (
	"github.com/bancoquestoes/qextract/internal/classify"
	"github.com/bancoquestoes/qextract/internal/extraction"
)

const (
	minAlternatives   = 3
	minEnunciadoRunes = 15
)

// Default returns the extraction strategies in chain order. Order matters:
// the explicit grammars are tried before the positional heuristics, and the
// first strategy producing a candidate wins the whole document.
func Default(theme *classify.ThemeClassifier) []extraction.Extractor {
	block := NewTextBlockParser(theme)
	return []extraction.Extractor{
		NewStructuredFormatExtractor(theme),
		NewLabeledFormatExtractor(theme),
		NewQuestionNumberExtractor(block),
		NewAlternativeBlockExtractor(block),
	}
}

// NewPipeline builds an extraction pipeline wired with the default
// strategies, sharing cfg's taxonomy with the theme classifier.
func NewPipeline(cfg extraction.Config) *extraction.Pipeline {
	if cfg.Taxonomy == nil {
		cfg.Taxonomy = classify.DefaultTaxonomy()
	}
	return extraction.NewPipeline(cfg, Default(classify.NewThemeClassifier(cfg.Taxonomy))...)
}
