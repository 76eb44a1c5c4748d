// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bancoquestoes/qextract/internal/classify"
	"github.com/bancoquestoes/qextract/internal/extraction"
)

// blockPatterns go from strictest to loosest.
var blockPatterns = []*regexp.Regexp{altParenPattern, altClosingPattern, altPunctPattern, altCapitalPattern}

// TextBlockParser parses one arbitrary window of text into at most one
// candidate. The numbered and alternative-block extractors delegate to it.
type TextBlockParser struct {
	theme *classify.ThemeClassifier
}

// NewTextBlockParser creates a TextBlockParser.
func NewTextBlockParser(theme *classify.ThemeClassifier) *TextBlockParser {
	return &TextBlockParser{theme: theme}
}

func (p *TextBlockParser) Name() string {
	return "text_block"
}

// TryExtract treats the whole text as a single window.
func (p *TextBlockParser) TryExtract(text string) []extraction.Candidate {
	if c, ok := p.ParseBlock(text); ok {
		return []extraction.Candidate{c}
	}
	return nil
}

// ParseBlock finds the options of window and takes everything before the
// first option as the enunciado. It reports false when fewer than three
// options or a short enunciado are found.
func (p *TextBlockParser) ParseBlock(window string) (extraction.Candidate, bool) {
	matches := collectAlternatives(window)
	if len(matches) < minAlternatives {
		return extraction.Candidate{}, false
	}
	first := matches[0].start

	enunciado := cleanEnunciado(window[:first])
	if !longEnough(enunciado) {
		return extraction.Candidate{}, false
	}

	var alts extraction.Alternatives
	for i, m := range matches {
		end := m.textEnd
		if i+1 < len(matches) && matches[i+1].start > m.textStart {
			end = matches[i+1].start
		}
		alts[m.letter] = optionText(window[m.textStart:end])
	}
	if alts.Count() < minAlternatives {
		return extraction.Candidate{}, false
	}

	theme := p.theme.Classify(window)
	return extraction.Candidate{
		Enunciado:      enunciado,
		Alternatives:   alts,
		Answer:         firstAnswer(window[first:], answerLinePattern),
		Theme:          theme.Name,
		Subtheme:       theme.Subtheme,
		SequenceNumber: markerNumber(window[:first]),
		Explanation:    explanation(window[first:]),
	}, true
}

// collectAlternatives applies blockPatterns in order and keeps the first
// label found per letter. This is stricter than a plain first-match per
// letter: once a pattern has produced labels, looser patterns may only add
// labels located after the earliest one, so a stem line such as
// "E assim se conclui..." above "(A) ..." stays in the enunciado instead of
// becoming option E.
func collectAlternatives(window string) []altMatch {
	var found [5]*altMatch
	earliest := -1
	for _, re := range blockPatterns {
		var added []altMatch
		for _, m := range re.FindAllStringSubmatchIndex(window, -1) {
			i := extraction.LetterIndex(window[m[2]:m[3]])
			if i < 0 || found[i] != nil {
				continue
			}
			if earliest >= 0 && m[0] < earliest {
				continue
			}
			am := altMatch{letter: i, start: m[0], textStart: m[4], textEnd: m[5]}
			found[i] = &am
			added = append(added, am)
		}
		for _, am := range added {
			if earliest < 0 || am.start < earliest {
				earliest = am.start
			}
		}
	}

	var out []altMatch
	for _, f := range found {
		if f != nil {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// optionText cuts an option at the first blank line or answer/explanation
// label and collapses whitespace.
func optionText(s string) string {
	if i := strings.Index(s, "\n\n"); i >= 0 {
		s = s[:i]
	}
	if loc := answerLabelPattern.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	if loc := explanationLabelPattern.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return collapse(s)
}

// explanation returns the text after an EXPLICAÇÃO:/COMENTÁRIO: label up
// to the next blank line.
func explanation(s string) string {
	loc := explanationLabelPattern.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	s = s[loc[1]:]
	if i := strings.Index(s, "\n\n"); i >= 0 {
		s = s[:i]
	}
	if loc := answerLabelPattern.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return collapse(s)
}
