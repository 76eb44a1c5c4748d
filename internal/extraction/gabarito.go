// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// GabaritoMap maps a question number to its answer letter. It is built once
// per document and read-only afterwards.
type GabaritoMap map[int]string

var (
	keyHeaderPattern = regexp.MustCompile(`(?im)^[ \t]*(?:gabarito|respostas|chave de corre[çc][ãa]o)\b`)
	// A heading line: nothing but qualifier words ("GABARITO OFICIAL") and
	// an optional trailing colon. "GABARITO: C" is a per-question answer.
	keyHeadingTail = regexp.MustCompile(`^[ \t]*(?:\pL{2,}(?:[ \t]+\pL{2,})*)?[ \t]*:?[ \t]*$`)
	keyListStart   = regexp.MustCompile(`^[ \t:\-]*\d{1,3}[ \t]*[-.):][ \t]*[A-Ea-e]`)
	keyPairPattern = regexp.MustCompile(`\b(\d{1,3})[ \t]*[-.):][ \t]*([A-Ea-e])\b`)
	inlineKeyPattern = regexp.MustCompile(`(?im)\b(?:quest[ãa]o|q)[ \t]*\.?[ \t]*(\d{1,3})[ \t]*[-:.)=][ \t]*([A-E])[ \t]*(?:[,;.)]|$)`)
	bareKeyPattern   = regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})[ \t]*[-.):][ \t]*([A-Ea-e])[ \t]*$`)
	blankGapPattern  = regexp.MustCompile(`\n[ \t]*\n`)
)

// ResolveGabarito scans text for answer keys. Answer-key sections (lines
// headed GABARITO, RESPOSTAS or CHAVE DE CORREÇÃO, up to the next blank
// line) are read first, then inline "questão 12: C" references, then bare
// "12 - C" lines. The first answer seen for a number wins.
func ResolveGabarito(text string) GabaritoMap {
	g := GabaritoMap{}
	for _, span := range keySections(text) {
		g.addAll(keyPairs(span))
	}
	g.addAll(inlineKeyPattern.FindAllStringSubmatch(text, -1))
	g.addAll(bareKeyPattern.FindAllStringSubmatch(text, -1))
	return g
}

// keySections returns the spans following standalone key headings, and
// following headers whose line continues with a list of pairs.
func keySections(text string) []string {
	var spans []string
	for _, loc := range keyHeaderPattern.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		header, _, _ := strings.Cut(rest, "\n")

		var body string
		switch {
		case keyListStart.MatchString(header):
			body = rest
		case keyHeadingTail.MatchString(header):
			// The heading may be followed by blank lines before the key.
			body = strings.TrimLeft(rest[len(header):], " \t\n")
		default:
			continue
		}
		if gap := blankGapPattern.FindStringIndex(body); gap != nil {
			body = body[:gap[0]]
		}
		spans = append(spans, body)
	}
	return spans
}

// keyPairs matches "12-C" pairs whose letter ends the entry, so
// "2. a taxa influencia" is not read as a key.
func keyPairs(span string) [][]string {
	var out [][]string
	for _, m := range keyPairPattern.FindAllStringSubmatchIndex(span, -1) {
		tail := strings.TrimLeft(span[m[1]:], " \t")
		if tail != "" && !strings.ContainsAny(tail[:1], "\n,;./|)0123456789") {
			continue
		}
		out = append(out, []string{span[m[0]:m[1]], span[m[2]:m[3]], span[m[4]:m[5]]})
	}
	return out
}

func (g GabaritoMap) addAll(matches [][]string) {
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if _, seen := g[n]; seen {
			continue
		}
		g[n] = strings.ToUpper(m[2])
	}
}

// Apply returns a copy of candidates where every unresolved answer whose
// sequence number appears in g is filled from g. Answers found inline are
// kept.
func (g GabaritoMap) Apply(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		if (c.Answer == "" || c.Answer == UnknownAnswer) && c.SequenceNumber > 0 {
			if letter, ok := g[c.SequenceNumber]; ok {
				c.Answer = letter
			}
		}
		if c.Answer == "" {
			c.Answer = UnknownAnswer
		}
		out[i] = c
	}
	return out
}
