// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"regexp"
	"strings"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

const (
	lookBehindRunes = 1500
	lookAheadRunes  = 2000
	maxGapLines     = 3
)

var altLinePattern = regexp.MustCompile(`^[ \t]*(?:\(([A-Ea-e])\)|([A-Ea-e])\)|([A-E])(?:[.:\-][ \t]+|[ \t]+)\S)`)

// AlternativeBlockExtractor anchors on runs of options labeled A, B and C
// in sequence, with or without parentheses, and rebuilds each question
// from up to 1500 characters before the run and 2000 after it.
type AlternativeBlockExtractor struct {
	block *TextBlockParser
}

// NewAlternativeBlockExtractor creates an AlternativeBlockExtractor.
func NewAlternativeBlockExtractor(block *TextBlockParser) *AlternativeBlockExtractor {
	return &AlternativeBlockExtractor{block: block}
}

func (e *AlternativeBlockExtractor) Name() string {
	return "alternative_block"
}

func (e *AlternativeBlockExtractor) TryExtract(text string) []extraction.Candidate {
	blocks := findAltBlocks(text)
	tails := make([]int, len(blocks))
	for k, b := range blocks {
		tails[k] = answerTail(text, b.end)
	}

	var candidates []extraction.Candidate
	for k, b := range blocks {
		start := backward(text, b.start, lookBehindRunes)
		if k > 0 && tails[k-1] > start {
			start = tails[k-1]
		}
		end := min(forward(text, b.start, lookAheadRunes), tails[k])
		if k+1 < len(blocks) && blocks[k+1].start < end {
			end = blocks[k+1].start
		}
		if end <= start {
			continue
		}
		if c, ok := e.block.ParseBlock(text[start:end]); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

type textLine struct {
	start, end int
	text       string
}

type altBlock struct {
	start, end int
}

func splitLines(text string) []textLine {
	var lines []textLine
	pos := 0
	for _, l := range strings.SplitAfter(text, "\n") {
		lines = append(lines, textLine{start: pos, end: pos + len(strings.TrimSuffix(l, "\n")), text: strings.TrimSuffix(l, "\n")})
		pos += len(l)
	}
	return lines
}

// lineLetter returns the option index labeling line, or -1.
func lineLetter(line string) int {
	m := altLinePattern.FindStringSubmatch(line)
	if m == nil {
		return -1
	}
	for _, g := range m[1:] {
		if g != "" {
			return extraction.LetterIndex(g)
		}
	}
	return -1
}

func isQuestionStart(line string) bool {
	return questionMarkerPattern.MatchString(line) || numberMarkerPattern.MatchString(line)
}

// findAltBlocks returns the spans of option runs that contain at least A,
// B and C in order.
func findAltBlocks(text string) []altBlock {
	lines := splitLines(text)
	var blocks []altBlock
	for i := 0; i < len(lines); i++ {
		if lineLetter(lines[i].text) != 0 {
			continue
		}
		last, n := followSequence(lines, i)
		if n < minAlternatives {
			continue
		}
		blocks = append(blocks, altBlock{start: lines[i].start, end: lines[last].end})
		i = last
	}
	return blocks
}

// followSequence walks forward from an "A" line expecting B, C, D and E.
// Blank lines and short continuations are skipped; a question start or an
// out-of-order label ends the run. It returns the last option line and the
// number of options seen.
func followSequence(lines []textLine, i int) (int, int) {
	expect, last, gap := 1, i, 0
	for j := i + 1; j < len(lines) && expect < len(extraction.Letters); j++ {
		t := lines[j].text
		if strings.TrimSpace(t) == "" {
			continue
		}
		switch l := lineLetter(t); {
		case l == expect:
			expect++
			last, gap = j, 0
			continue
		case l >= 0:
			return last, expect
		}
		if isQuestionStart(t) {
			return last, expect
		}
		if gap++; gap > maxGapLines {
			return last, expect
		}
	}
	return last, expect
}

// answerTail extends an option run over directly following answer and
// explanation lines.
func answerTail(text string, from int) int {
	end := from
	inTail := false
	for _, l := range splitLines(text[from:]) {
		t := strings.TrimSpace(l.text)
		switch {
		case t == "":
			if inTail {
				return end
			}
		case answerLabelPattern.MatchString(t) || explanationLabelPattern.MatchString(t):
			inTail = true
			end = from + l.end
		case inTail:
			end = from + l.end
		default:
			return end
		}
	}
	return end
}
