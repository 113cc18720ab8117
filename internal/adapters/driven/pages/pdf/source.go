// Package pdf loads document pages from PDF files.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source extracts per-page plain text from PDF files.
type Source struct{}

// New creates a PDF page source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "pdf"
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".pdf"}
}

// Load extracts the page texts of the PDF at path. Pages whose text
// cannot be extracted are kept as empty pages so page numbering stays
// aligned with the source document.
func (s *Source) Load(_ context.Context, path string) (*domain.Document, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf %s: %v", domain.ErrInvalidInput, path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]domain.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)

		var text string
		if !page.V.IsNull() {
			text, err = page.GetPlainText(nil)
			if err != nil {
				logger.Warn("PDF %s: page %d text extraction failed: %v", path, i, err)
				text = ""
			}
		}

		pages = append(pages, domain.Page{Number: i, Text: strings.TrimRight(text, "\n")})
	}

	return &domain.Document{
		ID:    filepath.Base(path),
		Pages: pages,
	}, nil
}
