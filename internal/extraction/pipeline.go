// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/bancoquestoes/qextract/internal/classify"
)

// Pipeline turns exam document text into scored, deduplicated questions.
// It holds no per-run state and may be shared between goroutines.
type Pipeline struct {
	cfg        Config
	logger     *slog.Logger
	chain      *Chain
	theme      *classify.ThemeClassifier
	discipline *classify.DisciplineClassifier
	metadata   *classify.MetadataDetector
}

// NewPipeline creates a Pipeline that tries extractors in the given order.
func NewPipeline(cfg Config, extractors ...Extractor) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		cfg:        cfg,
		logger:     cfg.Logger,
		chain:      NewChain(extractors...),
		theme:      classify.NewThemeClassifier(cfg.Taxonomy),
		discipline: classify.NewDisciplineClassifier(cfg.Taxonomy),
		metadata:   classify.NewMetadataDetector(cfg.Taxonomy),
	}
}

// RunResult is the output of a successful pipeline run.
type RunResult struct {
	Questions []ExtractedQuestion `json:"questions"`
	Stats     Stats               `json:"stats"`
}

// RegisteredExtractors returns the extractor names in chain order.
func (p *Pipeline) RegisteredExtractors() []string {
	return p.chain.Names()
}

// ValidateDocument checks the text length bounds.
func (p *Pipeline) ValidateDocument(doc RawDocument) error {
	n := runeLen(doc.Text)
	if n < p.cfg.MinTextLength {
		return fmt.Errorf("%w: %d characters (min %d)", ErrTextTooShort, n, p.cfg.MinTextLength)
	}
	if n > p.cfg.MaxTextLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, n, p.cfg.MaxTextLength)
	}
	return nil
}

// Run extracts questions from doc. It returns ErrTextTooShort or
// ErrTextTooLong for out-of-bounds input and ErrNoValidQuestions when
// nothing survives filtering.
func (p *Pipeline) Run(ctx context.Context, doc RawDocument) (*RunResult, error) {
	if err := p.ValidateDocument(doc); err != nil {
		return nil, err
	}
	fileName := SanitizeFileName(doc.FileName)
	text := Normalize(doc.Text)

	gabarito := ResolveGabarito(text)
	candidates, strategy := p.chain.Extract(text)
	p.logger.DebugContext(ctx, "extraction chain finished",
		"file", fileName, "strategy", strategy, "candidates", len(candidates), "gabarito_entries", len(gabarito))

	candidates = gabarito.Apply(candidates)
	docMeta := p.metadata.Detect(fileName, text)

	questions := make([]ExtractedQuestion, 0, len(candidates))
	for _, c := range candidates {
		if c.Alternatives.Count() < 3 || runeLen(strings.TrimSpace(c.Enunciado)) <= minEnunciadoRunes {
			continue
		}
		questions = append(questions, p.enrich(c, fileName, docMeta))
	}

	deduped := Deduplicate(questions)
	accepted := make([]ExtractedQuestion, 0, len(deduped))
	for _, q := range deduped {
		if q.Score >= p.cfg.MinScore && runeLen(q.Enunciado) > minEnunciadoRunes {
			accepted = append(accepted, q)
		}
	}
	p.logger.DebugContext(ctx, "questions filtered",
		"enriched", len(questions), "deduplicated", len(deduped), "accepted", len(accepted))

	if len(accepted) == 0 {
		return nil, ErrNoValidQuestions
	}

	stats := Summarize(accepted)
	stats.Strategy = strategy
	stats.GabaritoEntries = len(gabarito)
	return &RunResult{Questions: accepted, Stats: stats}, nil
}

func (p *Pipeline) enrich(c Candidate, fileName string, docMeta classify.ExamMetadata) ExtractedQuestion {
	if c.Theme == "" {
		th := p.theme.Classify(c.Enunciado)
		c.Theme, c.Subtheme = th.Name, th.Subtheme
	}
	if c.ExamBoard == "" {
		c.ExamBoard = docMeta.Board
	}
	if c.Year == 0 {
		c.Year = docMeta.Year
	}
	if c.Level == "" {
		c.Level = DefaultLevel
	}

	v := Validate(c)
	answer := c.Answer
	if !IsValidAnswer(answer) {
		answer = UnknownAnswer
	}

	q := ExtractedQuestion{
		ID:           p.cfg.NewID(),
		Enunciado:    collapseSpace(c.Enunciado),
		AlternativeA: c.Alternatives[0],
		AlternativeB: c.Alternatives[1],
		AlternativeC: c.Alternatives[2],
		AlternativeD: c.Alternatives[3],
		AlternativeE: c.Alternatives[4],
		Answer:       strings.ToUpper(answer),
		Discipline:   p.discipline.Classify(fileName, c.Theme, c.Enunciado),
		Theme:        c.Theme,
		Subtheme:     c.Subtheme,
		Level:        c.Level,
		Board:        c.ExamBoard,
		Explanation:  c.Explanation,
		Score:        v.Score,
		Confidence:   v.Tier,
		Issues:       v.Issues,
	}
	if c.Year > 0 {
		year := c.Year
		q.Year = &year
	}
	return q
}

// Summarize computes the aggregate statistics of a result set.
func Summarize(questions []ExtractedQuestion) Stats {
	s := Stats{Total: len(questions)}
	if len(questions) == 0 {
		return s
	}
	sum := 0
	for _, q := range questions {
		if q.Answer != UnknownAnswer {
			s.GabaritoIdentified++
		}
		sum += q.Score
	}
	s.AvgQuality = int(math.Round(float64(sum) / float64(len(questions))))
	return s
}
