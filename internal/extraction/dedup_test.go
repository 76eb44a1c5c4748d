// SPDX-License-Identifier: Apache-2.0

package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

func question(id, enunciado string, score int) extraction.ExtractedQuestion {
	return extraction.ExtractedQuestion{ID: id, Enunciado: enunciado, Score: score}
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "qual o valor de x", extraction.DedupKey("  Qual   o VALOR\nde x?  "))
	assert.Equal(t, extraction.DedupKey("Qual é o valor de x?"), extraction.DedupKey("Qual é o valor de x ?"))

	long := "Considere um capital aplicado a juros compostos durante dois anos a uma taxa anual"
	assert.Equal(t, 60, len([]rune(extraction.DedupKey(long))))
}

func TestDeduplicate(t *testing.T) {
	t.Run("near duplicates keep the higher score", func(t *testing.T) {
		out := extraction.Deduplicate([]extraction.ExtractedQuestion{
			question("1", "Qual é o valor de x na equação?", 60),
			question("2", "Qual é o valor de x na equação ?", 90),
			question("3", "Quanto vale a soma dos ângulos internos?", 80),
		})
		require.Len(t, out, 2)
		assert.Equal(t, "2", out[0].ID)
		assert.Equal(t, "3", out[1].ID)
	})

	t.Run("ties keep the first seen", func(t *testing.T) {
		out := extraction.Deduplicate([]extraction.ExtractedQuestion{
			question("1", "Qual é o valor de x na equação?", 90),
			question("2", "qual é o valor de x na equação", 90),
		})
		require.Len(t, out, 1)
		assert.Equal(t, "1", out[0].ID)
	})

	t.Run("short keys are dropped", func(t *testing.T) {
		out := extraction.Deduplicate([]extraction.ExtractedQuestion{
			question("1", "Quanto é 2+2?", 100),
			question("2", "Quanto é dois mais dois, em unidades?", 100),
		})
		require.Len(t, out, 1)
		assert.Equal(t, "2", out[0].ID)
	})

	t.Run("shared 60 character prefix collapses distinct questions", func(t *testing.T) {
		prefix := "Com base no texto apresentado acima, assinale a alternativa "
		require.Len(t, []rune(prefix), 60)
		out := extraction.Deduplicate([]extraction.ExtractedQuestion{
			question("1", prefix+"correta.", 80),
			question("2", prefix+"incorreta.", 70),
		})
		require.Len(t, out, 1)
		assert.Equal(t, "1", out[0].ID)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []extraction.ExtractedQuestion{
			question("1", "Qual é o valor de x na equação?", 60),
			question("2", "Qual é o valor de x na equação?", 70),
			question("3", "Quanto vale a soma dos ângulos internos?", 80),
			question("4", "Curta?", 100),
		}
		once := extraction.Deduplicate(in)
		assert.Equal(t, once, extraction.Deduplicate(once))
	})
}
