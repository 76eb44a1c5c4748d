// SPDX-License-Identifier: Apache-2.0

package extraction

// Chain runs extractors in registration order and keeps the result of the
// first one that yields any candidate. Later extractors are not run.
type Chain struct {
	extractors []Extractor
}

// NewChain creates a Chain with the provided extractors.
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// Extract returns the candidates of the first productive extractor and its
// name. Both are empty when every extractor misses.
func (c *Chain) Extract(text string) ([]Candidate, string) {
	for _, ex := range c.extractors {
		if candidates := ex.TryExtract(text); len(candidates) > 0 {
			return candidates, ex.Name()
		}
	}
	return nil, ""
}

// Names returns the names of the registered extractors, in order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.extractors))
	for i, ex := range c.extractors {
		names[i] = ex.Name()
	}
	return names
}
