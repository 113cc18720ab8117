// Package driving provides interfaces for primary/inbound ports.
package driving

import (
	"context"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

// CorpusDocument pairs a document with its detected heading
// boundaries. An empty boundary list is valid input.
type CorpusDocument struct {
	Document   domain.Document
	Boundaries []domain.Boundary
}

// AnalysisRequest is the caller-facing input for one run.
type AnalysisRequest struct {
	// Role is the reader persona. Empty falls back to a default.
	Role string

	// Task is the objective. Empty falls back to a default.
	Task string

	// QueryVector, when set, bypasses query text composition.
	QueryVector []float32

	// Corpus is the document batch, in caller order. That order is
	// the final tie-break for equal ranking scores.
	Corpus []CorpusDocument
}

// AnalysisService runs the segmentation-and-ranking pipeline.
type AnalysisService interface {
	// Analyze segments the corpus, ranks sections against the
	// role/task query, then ranks chunks within the top sections.
	Analyze(ctx context.Context, req AnalysisRequest) (*domain.RunResult, error)
}
