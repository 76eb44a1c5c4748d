// SPDX-License-Identifier: Apache-2.0

package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

func TestResolveGabarito(t *testing.T) {
	tests := []struct {
		name string
		text string
		want extraction.GabaritoMap
	}{
		{
			name: "key section below header",
			text: "1. Pergunta\n\nGABARITO\n\n1-A 2-b 3) C\n4. D",
			want: extraction.GabaritoMap{1: "A", 2: "B", 3: "C", 4: "D"},
		},
		{
			name: "key on the header line",
			text: "Gabarito: 1-A, 2-B, 3-E",
			want: extraction.GabaritoMap{1: "A", 2: "B", 3: "E"},
		},
		{
			name: "key section ends at blank line",
			text: "RESPOSTAS\n1-A 2-B\n\n3. Questão seguinte com 10 - C no meio",
			want: extraction.GabaritoMap{1: "A", 2: "B"},
		},
		{
			name: "inline question references",
			text: "Resolução: questão 7: C; Questão 8 - D.",
			want: extraction.GabaritoMap{7: "C", 8: "D"},
		},
		{
			name: "bare key lines",
			text: "Folha de respostas da prova\n12 - C\n13 - A\n",
			want: extraction.GabaritoMap{12: "C", 13: "A"},
		},
		{
			name: "first answer for a number wins",
			text: "GABARITO\n1-A\n\nquestão 1: B",
			want: extraction.GabaritoMap{1: "A"},
		},
		{
			name: "qualified heading",
			text: "GABARITO OFICIAL\n1-A 2-B",
			want: extraction.GabaritoMap{1: "A", 2: "B"},
		},
		{
			name: "per-question answer line is not a key section",
			text: "GABARITO: C\n---\nQUESTÃO 2\nEnunciado: Sobre a Selic:\n1. a meta é definida pelo Copom\n2. a taxa influencia o crédito",
			want: extraction.GabaritoMap{},
		},
		{
			name: "lowercase letter followed by text is not a pair",
			text: "GABARITO\n1-a 2. a taxa sobe 3-c",
			want: extraction.GabaritoMap{1: "A", 3: "C"},
		},
		{
			name: "no key",
			text: "Texto sem qualquer gabarito associado às questões.",
			want: extraction.GabaritoMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extraction.ResolveGabarito(tt.text))
		})
	}
}

func TestGabaritoMap_Apply(t *testing.T) {
	g := extraction.GabaritoMap{1: "B", 2: "D", 3: "E"}
	in := []extraction.Candidate{
		{Enunciado: "inline answer wins", Answer: "A", SequenceNumber: 1},
		{Enunciado: "unresolved is filled", Answer: extraction.UnknownAnswer, SequenceNumber: 2},
		{Enunciado: "empty is filled", SequenceNumber: 3},
		{Enunciado: "unnumbered stays unknown"},
		{Enunciado: "number without key", SequenceNumber: 9},
	}

	out := g.Apply(in)
	require.Len(t, out, len(in))
	assert.Equal(t, "A", out[0].Answer)
	assert.Equal(t, "D", out[1].Answer)
	assert.Equal(t, "E", out[2].Answer)
	assert.Equal(t, extraction.UnknownAnswer, out[3].Answer)
	assert.Equal(t, extraction.UnknownAnswer, out[4].Answer)

	// The input is not modified.
	assert.Equal(t, "", in[2].Answer)
}
