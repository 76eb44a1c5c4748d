// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"github.com/bancoquestoes/qextract/internal/extraction"
)

const numberedWindowRunes = 3000

// QuestionNumberExtractor slices the document at question starts ("12.",
// "12)" or "QUESTÃO 12") and parses each slice as a text block. A slice
// ends at the next start or 3000 characters later, whichever comes first.
type QuestionNumberExtractor struct {
	block *TextBlockParser
}

// NewQuestionNumberExtractor creates a QuestionNumberExtractor.
func NewQuestionNumberExtractor(block *TextBlockParser) *QuestionNumberExtractor {
	return &QuestionNumberExtractor{block: block}
}

func (e *QuestionNumberExtractor) Name() string {
	return "question_number"
}

func (e *QuestionNumberExtractor) TryExtract(text string) []extraction.Candidate {
	starts := questionStarts(text)
	var candidates []extraction.Candidate
	for i, m := range starts {
		end := forward(text, m.pos, numberedWindowRunes)
		if i+1 < len(starts) && starts[i+1].pos < end {
			end = starts[i+1].pos
		}
		c, ok := e.block.ParseBlock(text[m.pos:end])
		if !ok {
			continue
		}
		c.SequenceNumber = m.number
		candidates = append(candidates, c)
	}
	return candidates
}
