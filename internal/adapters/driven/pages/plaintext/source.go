// Package plaintext loads document pages from plain text and
// Markdown files. Form feeds act as page separators; a file without
// any is a single page.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source loads text files as documents.
type Source struct{}

// New creates a plain text page source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "plaintext"
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".txt", ".md", ".markdown"}
}

// Load reads the file at path, splitting on form feeds into pages.
func (s *Source) Load(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidInput, path, err)
	}

	parts := strings.Split(string(data), "\f")
	pages := make([]domain.Page, len(parts))
	for i, part := range parts {
		pages[i] = domain.Page{Number: i + 1, Text: part}
	}

	return &domain.Document{
		ID:    filepath.Base(path),
		Pages: pages,
	}, nil
}
