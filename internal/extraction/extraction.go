// SPDX-License-Identifier: Apache-2.0

package extraction

import "strings"

// UnknownAnswer marks a candidate whose correct option could not be resolved.
const UnknownAnswer = "?"

// DefaultLevel is the difficulty assigned when the document states none.
const DefaultLevel = "medio"

// Letters are the option labels, in order.
var Letters = [5]string{"A", "B", "C", "D", "E"}

// RawDocument is the pipeline input: text already converted from the
// uploaded file, plus the original file name.
type RawDocument struct {
	Text     string `json:"text"`
	FileName string `json:"fileName"`
}

// Alternatives holds the option texts A..E. Empty strings are missing options.
type Alternatives [5]string

// LetterIndex returns the index of an option letter, or -1.
func LetterIndex(letter string) int {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	case "E":
		return 4
	}
	return -1
}

// IsValidAnswer reports whether a is one of A..E.
func IsValidAnswer(a string) bool {
	return len(a) == 1 && LetterIndex(a) >= 0
}

// Count returns how many options are non-empty.
func (a Alternatives) Count() int {
	n := 0
	for _, t := range a {
		if strings.TrimSpace(t) != "" {
			n++
		}
	}
	return n
}

// SetIfEmpty stores text under letter unless that letter already has text.
// It reports whether the value was stored.
func (a *Alternatives) SetIfEmpty(letter, text string) bool {
	i := LetterIndex(letter)
	text = strings.TrimSpace(text)
	if i < 0 || text == "" || a[i] != "" {
		return false
	}
	a[i] = text
	return true
}

// Candidate is an unscored question produced by one extractor.
type Candidate struct {
	Enunciado      string
	Alternatives   Alternatives
	Answer         string
	Theme          string
	Subtheme       string
	ExamBoard      string
	Year           int
	SequenceNumber int
	Explanation    string
	Level          string
}

// Extractor is one strategy of the extraction chain. Implementations are
// stateless: a miss is an empty result, never an error.
type Extractor interface {
	Name() string
	TryExtract(text string) []Candidate
}

// ConfidenceTier is derived from the quality score alone.
type ConfidenceTier string

const (
	TierAlto  ConfidenceTier = "alto"
	TierMedio ConfidenceTier = "medio"
	TierBaixo ConfidenceTier = "baixo"
)

// ValidationResult is the deterministic quality assessment of a Candidate.
type ValidationResult struct {
	Score  int            `json:"score"`
	Tier   ConfidenceTier `json:"confidence_tier"`
	Issues []string       `json:"issues"`
}

// ExtractedQuestion is the pipeline's output unit.
type ExtractedQuestion struct {
	ID           string         `json:"id"`
	Enunciado    string         `json:"enunciado"`
	AlternativeA string         `json:"alternativa_a"`
	AlternativeB string         `json:"alternativa_b"`
	AlternativeC string         `json:"alternativa_c"`
	AlternativeD string         `json:"alternativa_d"`
	AlternativeE string         `json:"alternativa_e"`
	Answer       string         `json:"resposta_correta"`
	Discipline   string         `json:"disciplina"`
	Theme        string         `json:"tema"`
	Subtheme     string         `json:"subtema,omitempty"`
	Level        string         `json:"nivel"`
	Board        string         `json:"banca"`
	Explanation  string         `json:"explicacao,omitempty"`
	Year         *int           `json:"ano_referencia,omitempty"`
	Score        int            `json:"score_qualidade"`
	Confidence   ConfidenceTier `json:"nivel_confianca"`
	Issues       []string       `json:"issues"`
}

// Alternatives returns the option texts of q as an array.
func (q ExtractedQuestion) Alternatives() Alternatives {
	return Alternatives{q.AlternativeA, q.AlternativeB, q.AlternativeC, q.AlternativeD, q.AlternativeE}
}

// Stats summarises a successful run.
type Stats struct {
	Total              int    `json:"total"`
	GabaritoIdentified int    `json:"gabarito_identified"`
	AvgQuality         int    `json:"avg_quality"`
	Strategy           string `json:"strategy,omitempty"`
	GabaritoEntries    int    `json:"gabarito_entries"`
}
