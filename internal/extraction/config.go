// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/bancoquestoes/qextract/internal/classify"
)

const (
	DefaultMinTextLength = 50
	DefaultMaxTextLength = 2_000_000
	DefaultMinScore      = 20
)

// Config configures the pipeline.
type Config struct {
	// MinTextLength and MaxTextLength bound the input text, in characters.
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`
	MaxTextLength int `json:"max_text_length" yaml:"max_text_length"`

	// MinScore is the lowest quality score a question may have to be returned.
	MinScore int `json:"min_score" yaml:"min_score"`

	// Taxonomy feeds the discipline, theme and metadata classifiers.
	Taxonomy *classify.Taxonomy `json:"-" yaml:"-"`

	// NewID generates question identifiers (default: UUIDv7).
	NewID func() string `json:"-" yaml:"-"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MinTextLength <= 0 {
		c.MinTextLength = DefaultMinTextLength
	}
	if c.MaxTextLength <= 0 {
		c.MaxTextLength = DefaultMaxTextLength
	}
	if c.MinScore <= 0 {
		c.MinScore = DefaultMinScore
	}
	if c.Taxonomy == nil {
		c.Taxonomy = classify.DefaultTaxonomy()
	}
	if c.NewID == nil {
		c.NewID = func() string {
			return uuid.Must(uuid.NewV7()).String()
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
