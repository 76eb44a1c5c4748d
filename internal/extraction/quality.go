// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"fmt"
	"strings"
)

const (
	maxScore = 100

	minEnunciadoRunes = 15

	shortEnunciadoPenalty = 30
	missingOptionPenalty  = 12
	unknownAnswerPenalty  = 10
	invalidAnswerPenalty  = 25

	highConfidenceScore   = 70
	mediumConfidenceScore = 45
)

// Issue messages reported by Validate.
const (
	IssueShortEnunciado = "enunciado curto"
	IssueUnknownAnswer  = "gabarito não identificado"
	IssueInvalidAnswer  = "resposta inválida"
)

// Validate scores c from 0 to 100 and assigns a confidence tier.
func Validate(c Candidate) ValidationResult {
	score := maxScore
	issues := []string{}

	if runeLen(strings.TrimSpace(c.Enunciado)) < minEnunciadoRunes {
		score -= shortEnunciadoPenalty
		issues = append(issues, IssueShortEnunciado)
	}

	if missing := len(c.Alternatives) - c.Alternatives.Count(); missing > 0 {
		score -= missing * missingOptionPenalty
		issues = append(issues, fmt.Sprintf("%d alternativa(s) ausente(s)", missing))
	}

	switch {
	case IsValidAnswer(c.Answer):
	case c.Answer == UnknownAnswer:
		score -= unknownAnswerPenalty
		issues = append(issues, IssueUnknownAnswer)
	default:
		score -= invalidAnswerPenalty
		issues = append(issues, IssueInvalidAnswer)
	}

	score = max(0, min(maxScore, score))
	return ValidationResult{Score: score, Tier: TierFor(score), Issues: issues}
}

// TierFor maps a score to its confidence tier.
func TierFor(score int) ConfidenceTier {
	switch {
	case score >= highConfidenceScore:
		return TierAlto
	case score >= mediumConfidenceScore:
		return TierMedio
	default:
		return TierBaixo
	}
}
