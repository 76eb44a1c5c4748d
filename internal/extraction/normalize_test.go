// SPDX-License-Identifier: Apache-2.0

package extraction_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "windows line endings",
			in:   "linha um\r\nlinha dois\rlinha três",
			want: "linha um\nlinha dois\nlinha três",
		},
		{
			name: "tabs and non-breaking spaces become single spaces",
			in:   "Qual\to\u00a0valor\u202fde   x?",
			want: "Qual o valor de x?",
		},
		{
			name: "byte order mark and control characters are dropped",
			in:   "\ufeffQUESTÃO 1\x00\x07",
			want: "QUESTÃO 1",
		},
		{
			name: "decomposed accents are composed",
			in:   "QUESTA\u0303O 1\nEXPLICAC\u0327A\u0303O: ok",
			want: "QUEST\u00c3O 1\nEXPLICA\u00c7\u00c3O: ok",
		},
		{
			name: "lines are trimmed but blank lines kept",
			in:   "  (A) um  \n\n   (B) dois",
			want: "(A) um\n\n(B) dois",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extraction.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := "QUESTÃO\t1\r\n  Enunciado:   Qual\u00a0é o valor?  \r\n(A)  10"
	once := extraction.Normalize(in)
	assert.Equal(t, once, extraction.Normalize(once))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "prova 2018.txt", extraction.SanitizeFileName("prova 2018.txt"))
	assert.Equal(t, "ProvaFCC2019-v2.txt", extraction.SanitizeFileName("Prova_FCC/2019<>-v2.txt"))
	assert.Equal(t, "simulado", extraction.SanitizeFileName("  simulado  "))
	assert.Equal(t, "", extraction.SanitizeFileName("<>/\x00"))

	long := extraction.SanitizeFileName(strings.Repeat("ã", 300))
	assert.Equal(t, 255, utf8.RuneCountInString(long))
}
