package driven

import (
	"context"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

// PageSource loads a document's page texts from a file.
type PageSource interface {
	// Name returns the source name for logging and configuration.
	Name() string

	// Extensions returns the file extensions this source handles,
	// lowercase and including the leading dot (".pdf").
	Extensions() []string

	// Load reads the file at path into a Document with ordered pages.
	Load(ctx context.Context, path string) (*domain.Document, error)
}
