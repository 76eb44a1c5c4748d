// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

// Alternative patterns capture the option letter in group 1 and the option
// text in group 2, one option per line unless noted.
var (
	altParenPattern   = regexp.MustCompile(`(?m)^[ \t]*\(([A-Ea-e])\)[ \t]*(.+)$`)
	altClosingPattern = regexp.MustCompile(`(?m)^[ \t]*([A-Ea-e])\)[ \t]*(.+)$`)
	altPunctPattern   = regexp.MustCompile(`(?m)^[ \t]*([A-E])[.:\-][ \t]+(.+)$`)
	altBarePattern    = regexp.MustCompile(`(?m)^[ \t]*([A-E])[ \t]+(.+)$`)
	altCapitalPattern = regexp.MustCompile(`(?m)^[ \t]*([A-E])[ \t]+([\p{Lu}\d].*)$`)
	altInlinePattern  = regexp.MustCompile(`\(([A-Ea-e])\)[ \t]*([^()\n]+)`)
)

var (
	questionMarkerPattern = regexp.MustCompile(`(?im)^[ \t]*quest[ãa]o[ \t]*(?:n[º°o]?\.?[ \t]*)?(\d{1,3})\b`)
	numberMarkerPattern   = regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})[ \t]*[.)](?:[ \t]|\pL)`)
	separatorLinePattern  = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|={3,}|\*{3,}|_{3,})[ \t]*$`)

	enunciadoLabelPattern    = regexp.MustCompile(`(?im)^[ \t]*enunciado[ \t]*:[ \t]*`)
	alternativasLabelPattern = regexp.MustCompile(`(?im)^[ \t]*alternativas[ \t]*:[ \t]*`)
	answerLinePattern        = regexp.MustCompile(`(?im)^[ \t]*(?:gabarito|resposta(?:[ \t]+correta)?)[ \t]*[:\-][ \t]*\(?([A-Ea-e])\)?(?:[^A-Za-z]|$)`)
	answerLoosePattern       = regexp.MustCompile(`(?i)\b(?:gabarito|resposta(?:[ \t]+correta)?)[ \t]*[:\-][ \t]*\(?([A-Ea-e])\)?(?:[^A-Za-z]|$)`)
	answerLabelPattern       = regexp.MustCompile(`(?im)^[ \t]*(?:gabarito|resposta(?:[ \t]+correta)?)[ \t]*[:\-]`)
	explanationLabelPattern  = regexp.MustCompile(`(?im)^[ \t]*(?:explica[çc][ãa]o|coment[áa]rio)[ \t]*:[ \t]*`)
	bancaFieldPattern        = regexp.MustCompile(`(?im)^[ \t]*banca[ \t]*:[ \t]*(.+?)[ \t]*$`)
	anoFieldPattern          = regexp.MustCompile(`(?im)^[ \t]*ano[ \t]*:[ \t]*(\d{4})\b`)
	nivelFieldPattern        = regexp.MustCompile(`(?im)^[ \t]*n[íi]vel[ \t]*:[ \t]*(f[áa]cil|m[ée]dio|dif[íi]cil)`)

	labelLinePattern     = regexp.MustCompile(`(?im)^[ \t]*(?:tema|assunto|mat[ée]ria|conte[úu]do|t[óo]pico|banca|ano|n[íi]vel|gabarito|resposta(?:[ \t]+correta)?)[ \t]*:.*$`)
	leadingMarkerPattern = regexp.MustCompile(`(?i)^\s*(?:quest[ãa]o[ \t]*(?:n[º°o]?\.?[ \t]*)?\d{1,3}[ \t]*[-.:)]?|\d{1,3}[ \t]*[.)\-])\s*`)
	enunciadoPrefix      = regexp.MustCompile(`(?i)^\s*enunciado[ \t]*:\s*`)
)

// altMatch is one option label found in a text.
type altMatch struct {
	letter    int
	start     int // label start
	textStart int
	textEnd   int
}

// matchAlternatives applies a single pattern and keeps the first match per
// letter. It returns the options and the offset of the earliest kept label,
// or -1.
func matchAlternatives(text string, re *regexp.Regexp) (extraction.Alternatives, int) {
	var alts extraction.Alternatives
	first := -1
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		letter := text[m[2]:m[3]]
		if alts.SetIfEmpty(letter, collapse(text[m[4]:m[5]])) {
			if first < 0 || m[0] < first {
				first = m[0]
			}
		}
	}
	return alts, first
}

// firstSufficient tries patterns from strictest to loosest and stops at the
// first one that yields at least three options.
func firstSufficient(text string, patterns []*regexp.Regexp) (extraction.Alternatives, int, bool) {
	for _, re := range patterns {
		alts, first := matchAlternatives(text, re)
		if alts.Count() >= minAlternatives {
			return alts, first, true
		}
	}
	return extraction.Alternatives{}, -1, false
}

func firstAnswer(text string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return extraction.UnknownAnswer
}

// markerNumber returns the question number of the last marker in text, or 0.
func markerNumber(text string) int {
	best, bestPos := 0, -1
	for _, re := range []*regexp.Regexp{questionMarkerPattern, numberMarkerPattern} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if m[0] > bestPos {
				if n, err := strconv.Atoi(text[m[2]:m[3]]); err == nil {
					best, bestPos = n, m[0]
				}
			}
		}
	}
	return best
}

type marker struct {
	pos    int
	number int
}

// questionStarts returns question-start positions sorted by offset, one per
// position.
func questionStarts(text string) []marker {
	seen := map[int]bool{}
	var out []marker
	for _, re := range []*regexp.Regexp{questionMarkerPattern, numberMarkerPattern} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if seen[m[0]] {
				continue
			}
			n, err := strconv.Atoi(text[m[2]:m[3]])
			if err != nil {
				continue
			}
			seen[m[0]] = true
			out = append(out, marker{pos: m[0], number: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}

// cleanEnunciado strips label lines, leading numbering and an "Enunciado:"
// prefix, then collapses whitespace.
func cleanEnunciado(s string) string {
	s = labelLinePattern.ReplaceAllString(s, "")
	s = separatorLinePattern.ReplaceAllString(s, "")
	for range 2 {
		s = stripLeadingMarker(s)
	}
	s = enunciadoPrefix.ReplaceAllString(s, "")
	return collapse(s)
}

// stripLeadingMarker removes a leading "QUESTÃO 12", "12." or "12)" unless
// the number continues with a digit, as in "10.000".
func stripLeadingMarker(s string) string {
	loc := leadingMarkerPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	if r, _ := utf8.DecodeRuneInString(s[loc[1]:]); unicode.IsDigit(r) {
		return s
	}
	return s[loc[1]:]
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func longEnough(enunciado string) bool {
	return utf8.RuneCountInString(enunciado) >= minEnunciadoRunes
}

// forward returns the byte offset n runes after from, bounded by len(s).
func forward(s string, from, n int) int {
	i := from
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// backward returns the byte offset n runes before from, bounded by 0.
func backward(s string, from, n int) int {
	i := from
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}
