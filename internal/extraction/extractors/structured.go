// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bancoquestoes/qextract/internal/classify"
	"github.com/bancoquestoes/qextract/internal/extraction"
)

// structuredPatterns accept "(A) text" first, then bare "A text".
var structuredPatterns = []*regexp.Regexp{altParenPattern, altBarePattern}

// StructuredFormatExtractor reads documents written in the labeled exam
// grammar:
//
//	QUESTÃO 1
//	BANCA: CESGRANRIO
//	ANO: 2018
//	TEMA: Juros Compostos / Rentabilidade
//	Enunciado: ...
//	Alternativas:
//	(A) ...
//	GABARITO: C
//	---
//
// Blocks are delimited by question markers or separator lines. Blocks
// without an enunciado of at least 15 characters and three options are
// skipped.
type StructuredFormatExtractor struct {
	theme *classify.ThemeClassifier
}

// NewStructuredFormatExtractor creates a StructuredFormatExtractor.
func NewStructuredFormatExtractor(theme *classify.ThemeClassifier) *StructuredFormatExtractor {
	return &StructuredFormatExtractor{theme: theme}
}

func (e *StructuredFormatExtractor) Name() string {
	return "structured"
}

func (e *StructuredFormatExtractor) TryExtract(text string) []extraction.Candidate {
	blocks := splitStructuredBlocks(text)
	if blocks == nil {
		return nil
	}
	var candidates []extraction.Candidate
	for _, b := range blocks {
		if c, ok := e.parseBlock(b); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// splitStructuredBlocks cuts text before every question marker and around
// every separator line. It returns nil when text has neither.
func splitStructuredBlocks(text string) []string {
	type cut struct{ start, resume int }
	var cuts []cut
	for _, loc := range questionMarkerPattern.FindAllStringIndex(text, -1) {
		cuts = append(cuts, cut{start: loc[0], resume: loc[0]})
	}
	for _, loc := range separatorLinePattern.FindAllStringIndex(text, -1) {
		cuts = append(cuts, cut{start: loc[0], resume: loc[1]})
	}
	if len(cuts) == 0 {
		return nil
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	var blocks []string
	pos := 0
	for _, c := range cuts {
		if c.start < pos {
			continue
		}
		if b := strings.TrimSpace(text[pos:c.start]); b != "" {
			blocks = append(blocks, b)
		}
		pos = c.resume
	}
	if b := strings.TrimSpace(text[pos:]); b != "" {
		blocks = append(blocks, b)
	}
	return blocks
}

func (e *StructuredFormatExtractor) parseBlock(block string) (extraction.Candidate, bool) {
	loc := enunciadoLabelPattern.FindStringIndex(block)
	if loc == nil {
		return extraction.Candidate{}, false
	}
	body := block[loc[1]:]
	if a := answerLabelPattern.FindStringIndex(body); a != nil {
		body = body[:a[0]]
	}
	if x := explanationLabelPattern.FindStringIndex(body); x != nil {
		body = body[:x[0]]
	}

	var stem string
	var alts extraction.Alternatives
	if a := alternativasLabelPattern.FindStringIndex(body); a != nil {
		stem = body[:a[0]]
		var ok bool
		if alts, _, ok = firstSufficient(body[a[1]:], structuredPatterns); !ok {
			return extraction.Candidate{}, false
		}
	} else {
		found, first, ok := firstSufficient(body, structuredPatterns)
		if !ok {
			return extraction.Candidate{}, false
		}
		stem, alts = body[:first], found
	}

	enunciado := collapse(stem)
	if !longEnough(enunciado) {
		return extraction.Candidate{}, false
	}

	c := extraction.Candidate{
		Enunciado:    enunciado,
		Alternatives: alts,
		Answer:       firstAnswer(block, answerLinePattern),
		Explanation:  explanation(block),
	}
	if m := questionMarkerPattern.FindStringSubmatch(block); m != nil {
		c.SequenceNumber, _ = strconv.Atoi(m[1])
	}
	if m := bancaFieldPattern.FindStringSubmatch(block); m != nil {
		c.ExamBoard = m[1]
	}
	if m := anoFieldPattern.FindStringSubmatch(block); m != nil {
		c.Year, _ = strconv.Atoi(m[1])
	}
	if m := nivelFieldPattern.FindStringSubmatch(block); m != nil {
		c.Level = normalizeLevel(m[1])
	}

	theme, ok := e.theme.FromLabel(block)
	if !ok {
		theme = e.theme.Classify(enunciado)
	}
	c.Theme, c.Subtheme = theme.Name, theme.Subtheme
	return c, true
}

func normalizeLevel(s string) string {
	switch strings.ToLower(s) {
	case "fácil", "facil":
		return "facil"
	case "difícil", "dificil":
		return "dificil"
	default:
		return extraction.DefaultLevel
	}
}
