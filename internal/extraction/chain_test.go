// SPDX-License-Identifier: Apache-2.0

package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

type stubExtractor struct {
	name   string
	result []extraction.Candidate
	calls  int
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) TryExtract(string) []extraction.Candidate {
	s.calls++
	return s.result
}

func TestChain_Extract(t *testing.T) {
	miss := &stubExtractor{name: "miss"}
	hit := &stubExtractor{name: "hit", result: []extraction.Candidate{{Enunciado: "primeira"}}}
	later := &stubExtractor{name: "later", result: []extraction.Candidate{{Enunciado: "segunda"}}}

	chain := extraction.NewChain(miss, hit, later)
	got, name := chain.Extract("texto")

	assert.Equal(t, "hit", name)
	assert.Equal(t, []extraction.Candidate{{Enunciado: "primeira"}}, got)
	assert.Equal(t, 1, miss.calls)
	assert.Equal(t, 1, hit.calls)
	assert.Equal(t, 0, later.calls, "extractors after the first hit must not run")
	assert.Equal(t, []string{"miss", "hit", "later"}, chain.Names())
}

func TestChain_AllMiss(t *testing.T) {
	chain := extraction.NewChain(&stubExtractor{name: "a"}, &stubExtractor{name: "b"})
	got, name := chain.Extract("texto")
	assert.Empty(t, got)
	assert.Empty(t, name)
}
