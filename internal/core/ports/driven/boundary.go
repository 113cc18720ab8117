package driven

import (
	"context"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

// BoundaryProvider detects heading boundaries for a document.
// Returning an empty list is valid: the segmenter then falls back to
// one section per page.
type BoundaryProvider interface {
	// Name returns the provider name for logging and configuration.
	Name() string

	// Boundaries returns the ordered heading boundaries for doc.
	Boundaries(ctx context.Context, doc *domain.Document) ([]domain.Boundary, error)
}
