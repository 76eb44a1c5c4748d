// SPDX-License-Identifier: Apache-2.0

package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

var fullAlternatives = extraction.Alternatives{"10", "20", "30", "40", "50"}

func TestValidate(t *testing.T) {
	const enunciado = "Quanto é dez vezes três, em unidades?"

	tests := []struct {
		name       string
		candidate  extraction.Candidate
		wantScore  int
		wantTier   extraction.ConfidenceTier
		wantIssues []string
	}{
		{
			name:      "complete question",
			candidate: extraction.Candidate{Enunciado: enunciado, Alternatives: fullAlternatives, Answer: "C"},
			wantScore: 100,
			wantTier:  extraction.TierAlto,
		},
		{
			name:       "unknown answer costs ten points",
			candidate:  extraction.Candidate{Enunciado: enunciado, Alternatives: fullAlternatives, Answer: "?"},
			wantScore:  90,
			wantTier:   extraction.TierAlto,
			wantIssues: []string{extraction.IssueUnknownAnswer},
		},
		{
			name: "missing options",
			candidate: extraction.Candidate{
				Enunciado:    enunciado,
				Alternatives: extraction.Alternatives{"10", "20", "30"},
				Answer:       "?",
			},
			wantScore:  66,
			wantTier:   extraction.TierMedio,
			wantIssues: []string{"2 alternativa(s) ausente(s)", extraction.IssueUnknownAnswer},
		},
		{
			name:       "short enunciado",
			candidate:  extraction.Candidate{Enunciado: "Quanto é?", Alternatives: fullAlternatives, Answer: "A"},
			wantScore:  70,
			wantTier:   extraction.TierAlto,
			wantIssues: []string{extraction.IssueShortEnunciado},
		},
		{
			name:       "answer outside A to E",
			candidate:  extraction.Candidate{Enunciado: enunciado, Alternatives: fullAlternatives, Answer: "F"},
			wantScore:  75,
			wantTier:   extraction.TierAlto,
			wantIssues: []string{extraction.IssueInvalidAnswer},
		},
		{
			name:      "score never drops below zero",
			candidate: extraction.Candidate{Enunciado: "x", Answer: "Z"},
			wantScore: 0,
			wantTier:  extraction.TierBaixo,
			wantIssues: []string{
				extraction.IssueShortEnunciado,
				"5 alternativa(s) ausente(s)",
				extraction.IssueInvalidAnswer,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extraction.Validate(tt.candidate)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTier, got.Tier)
			if tt.wantIssues == nil {
				assert.Empty(t, got.Issues)
			} else {
				assert.Equal(t, tt.wantIssues, got.Issues)
			}
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	c := extraction.Candidate{Enunciado: "Qual a alternativa correta?", Alternatives: fullAlternatives, Answer: "?"}
	assert.Equal(t, extraction.Validate(c), extraction.Validate(c))
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, extraction.TierAlto, extraction.TierFor(100))
	assert.Equal(t, extraction.TierAlto, extraction.TierFor(70))
	assert.Equal(t, extraction.TierMedio, extraction.TierFor(69))
	assert.Equal(t, extraction.TierMedio, extraction.TierFor(45))
	assert.Equal(t, extraction.TierBaixo, extraction.TierFor(44))
	assert.Equal(t, extraction.TierBaixo, extraction.TierFor(0))
}
