// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"strings"
	"unicode"
)

const (
	dedupKeyRunes    = 60
	minDedupKeyRunes = 15
)

// DedupKey is the lower-cased, whitespace-collapsed first 60 characters of
// an enunciado, without trailing punctuation or spaces.
func DedupKey(enunciado string) string {
	key := headRunes(collapseSpace(strings.ToLower(enunciado)), dedupKeyRunes)
	return strings.TrimRightFunc(key, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// Deduplicate keeps one question per DedupKey: the highest scoring one, or
// the first seen on a tie. Questions whose key is shorter than 15
// characters are dropped. Output follows first-seen order of the keys.
//
// Two different questions sharing their first 60 characters collapse into
// one; this is a known limitation of the key.
func Deduplicate(questions []ExtractedQuestion) []ExtractedQuestion {
	index := make(map[string]int, len(questions))
	out := make([]ExtractedQuestion, 0, len(questions))
	for _, q := range questions {
		key := DedupKey(q.Enunciado)
		if runeLen(key) < minDedupKeyRunes {
			continue
		}
		if i, ok := index[key]; ok {
			if q.Score > out[i].Score {
				out[i] = q
			}
			continue
		}
		index[key] = len(out)
		out = append(out, q)
	}
	return out
}
