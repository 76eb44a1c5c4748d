// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bancoquestoes/qextract/internal/classify"
	"github.com/bancoquestoes/qextract/internal/extraction"
)

// labeledPatterns go from strictest to loosest; the first one yielding
// three options is used.
var labeledPatterns = []*regexp.Regexp{
	altParenPattern,
	altClosingPattern,
	altPunctPattern,
	altBarePattern,
	altInlinePattern,
}

// LabeledFormatExtractor reads "Enunciado: ... Alternativas: ...
// Gabarito|Resposta: X" sequences that carry no question marker, as found
// in single-question or irregularly delimited documents.
type LabeledFormatExtractor struct {
	theme *classify.ThemeClassifier
}

// NewLabeledFormatExtractor creates a LabeledFormatExtractor.
func NewLabeledFormatExtractor(theme *classify.ThemeClassifier) *LabeledFormatExtractor {
	return &LabeledFormatExtractor{theme: theme}
}

func (e *LabeledFormatExtractor) Name() string {
	return "labeled"
}

func (e *LabeledFormatExtractor) TryExtract(text string) []extraction.Candidate {
	locs := enunciadoLabelPattern.FindAllStringIndex(text, -1)
	var candidates []extraction.Candidate
	headerStart := 0
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := text[loc[1]:end]
		if c, ok := e.parseSegment(text[headerStart:loc[0]], seg); ok {
			candidates = append(candidates, c)
		}
		// Lines after this segment's answer belong to the next header.
		headerStart = end
		if m := answerLoosePattern.FindStringSubmatchIndex(seg); m != nil {
			if nl := strings.IndexByte(seg[m[3]:], '\n'); nl >= 0 {
				headerStart = loc[1] + m[3] + nl
			}
		}
	}
	return candidates
}

// parseSegment parses the text following an "Enunciado:" label. header is
// the text between the previous answer and the label, where TEMA:, BANCA:
// and ANO: lines usually sit.
func (e *LabeledFormatExtractor) parseSegment(header, seg string) (extraction.Candidate, bool) {
	answer := firstAnswer(seg, answerLoosePattern)
	body := seg
	if a := answerLoosePattern.FindStringIndex(body); a != nil {
		body = body[:a[0]]
	}
	if x := explanationLabelPattern.FindStringIndex(body); x != nil {
		body = body[:x[0]]
	}

	var stem string
	var alts extraction.Alternatives
	if a := alternativasLabelPattern.FindStringIndex(body); a != nil {
		found, _, ok := firstSufficient(body[a[1]:], labeledPatterns)
		if !ok {
			return extraction.Candidate{}, false
		}
		stem, alts = body[:a[0]], found
	} else {
		found, first, ok := firstSufficient(body, labeledPatterns)
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
		Answer:       answer,
		Explanation:  explanation(seg),
	}
	if m := bancaFieldPattern.FindStringSubmatch(header); m != nil {
		c.ExamBoard = m[1]
	}
	if m := anoFieldPattern.FindStringSubmatch(header); m != nil {
		c.Year, _ = strconv.Atoi(m[1])
	}
	theme, ok := e.theme.FromLabel(header)
	if !ok {
		theme = e.theme.Classify(enunciado)
	}
	c.Theme, c.Subtheme = theme.Name, theme.Subtheme
	return c, true
}
