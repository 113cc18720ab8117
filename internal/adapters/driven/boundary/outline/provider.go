// Package outline provides heading boundaries from sidecar outline
// JSON files, as produced by upstream document structure detectors.
//
// An outline file is named after the document (sample.pdf ->
// sample.json) and has the shape:
//
//	{"title": "...", "outline": [{"level": "H1", "text": "...", "page": 1}, ...]}
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.BoundaryProvider = (*Provider)(nil)

// Provider reads outline JSON files from a directory.
type Provider struct {
	dir string
}

// New creates an outline boundary provider reading from dir.
func New(dir string) *Provider {
	return &Provider{dir: dir}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "outline"
}

type outlineFile struct {
	Title   string         `json:"title"`
	Outline []outlineEntry `json:"outline"`
}

type outlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Boundaries loads the outline for doc and resolves each heading to
// an in-page offset by locating its text on the stated page. Entries
// whose heading cannot be located are skipped; a missing outline file
// yields an empty boundary list, which triggers per-page fallback
// segmentation downstream.
func (p *Provider) Boundaries(_ context.Context, doc *domain.Document) ([]domain.Boundary, error) {
	path := p.outlinePath(doc.ID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No outline for %s, falling back to per-page sections", doc.ID)
			return nil, nil
		}
		return nil, fmt.Errorf("read outline %s: %w", path, err)
	}

	var parsed outlineFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse outline %s: %v", domain.ErrInvalidInput, path, err)
	}

	pages := make(map[int]string, len(doc.Pages))
	for _, pg := range doc.Pages {
		pages[pg.Number] = pg.Text
	}

	boundaries := make([]domain.Boundary, 0, len(parsed.Outline))
	for _, entry := range parsed.Outline {
		text, ok := pages[entry.Page]
		if !ok {
			logger.Warn("Outline %s: heading %q on unknown page %d, skipped", doc.ID, entry.Text, entry.Page)
			continue
		}

		offset := strings.Index(text, entry.Text)
		if offset < 0 {
			logger.Debug("Outline %s: heading %q not found on page %d, skipped", doc.ID, entry.Text, entry.Page)
			continue
		}

		boundaries = append(boundaries, domain.Boundary{
			Level:   domain.BoundaryLevel(entry.Level),
			Heading: entry.Text,
			Page:    entry.Page,
			Offset:  offset,
		})
	}

	logger.Debug("Outline %s: %d of %d headings resolved", doc.ID, len(boundaries), len(parsed.Outline))

	return boundaries, nil
}

// outlinePath maps a document ID to its sidecar outline file.
func (p *Provider) outlinePath(docID string) string {
	base := strings.TrimSuffix(docID, filepath.Ext(docID))
	return filepath.Join(p.dir, base+".json")
}
