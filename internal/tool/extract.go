// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the extraction pipeline as MCP tools.
package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bancoquestoes/qextract/internal/extraction"
	"github.com/bancoquestoes/qextract/internal/extraction/extractors"
)

// MetadataExtractQuestions describes the extract_questions tool.
var MetadataExtractQuestions = &mcp.Tool{
	Name: "extract_questions",
	Description: "Extract multiple-choice exam questions (enunciado, alternatives A-E, answer key) " +
		"from the plain text of a Brazilian exam document. " +
		"Each question is classified by discipline, theme and exam board, and carries a quality " +
		"score (0-100) with a confidence tier: alto (>=70), medio (>=45) or baixo. " +
		"Answers that cannot be resolved from the text or its gabarito are reported as \"?\". " +
		"Binary formats (PDF, DOCX) must be converted to plain text first.",
	InputSchema: map[string]any{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "Plain text of the exam document (50 to 2,000,000 characters)",
			},
			"file_name": map[string]any{
				"type":        "string",
				"description": "Optional original file name. Used as a hint for exam board, year and discipline.",
			},
		},
	},
}

// InputExtractQuestions is the input for the ExtractQuestions tool.
type InputExtractQuestions struct {
	Text     string `json:"text"`
	FileName string `json:"file_name"`
}

// OutputExtractQuestions is the output for the ExtractQuestions tool.
type OutputExtractQuestions struct {
	// Questions is the list of accepted questions in document order.
	Questions []extraction.ExtractedQuestion `json:"questions"`
	// Stats summarizes the result set and names the strategy that produced it.
	Stats extraction.Stats `json:"stats"`
}

// defaultPipeline builds a Pipeline with the embedded taxonomy and every
// extraction strategy registered in chain order.
func defaultPipeline() *extraction.Pipeline {
	return extractors.NewPipeline(extraction.Config{})
}

// ExtractQuestions runs the default pipeline over the provided text.
func ExtractQuestions(ctx context.Context, req *mcp.CallToolRequest, input InputExtractQuestions) (*mcp.CallToolResult, OutputExtractQuestions, error) {
	return NewExtractQuestionsHandler(defaultPipeline())(ctx, req, input)
}

// NewExtractQuestionsHandler returns an extract_questions handler bound to p.
func NewExtractQuestionsHandler(p *extraction.Pipeline) mcp.ToolHandlerFor[InputExtractQuestions, OutputExtractQuestions] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputExtractQuestions) (*mcp.CallToolResult, OutputExtractQuestions, error) {
		if input.Text == "" {
			return nil, OutputExtractQuestions{}, fmt.Errorf("text is required")
		}

		result, err := p.Run(ctx, extraction.RawDocument{Text: input.Text, FileName: input.FileName})
		if errors.Is(err, extraction.ErrNoValidQuestions) {
			return nil, OutputExtractQuestions{}, fmt.Errorf("%w: convert the source document to plain text and retry", err)
		}
		if err != nil {
			return nil, OutputExtractQuestions{}, err
		}

		return nil, OutputExtractQuestions{
			Questions: result.Questions,
			Stats:     result.Stats,
		}, nil
	}
}

// Register adds every tool of this package to srv, bound to p.
func Register(srv *mcp.Server, p *extraction.Pipeline) {
	mcp.AddTool(srv, MetadataExtractQuestions, NewExtractQuestionsHandler(p))
}
