package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/boundary/markdown"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/boundary/outline"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/pages/pdf"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/pages/plaintext"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// pageSources maps file extensions to the source that handles them.
func pageSources() map[string]driven.PageSource {
	sources := []driven.PageSource{pdf.New(), plaintext.New()}

	byExt := make(map[string]driven.PageSource)
	for _, src := range sources {
		for _, ext := range src.Extensions() {
			byExt[ext] = src
		}
	}
	return byExt
}

// buildCorpus loads every supported document under inputDir, in
// lexical file order. That order is the corpus order used for
// ranking tie-breaks, so it must be stable across runs.
//
// Per-document load failures are logged and the document skipped;
// corpus loading fails only when the directory itself is unreadable.
func buildCorpus(ctx context.Context, inputDir, outlineDir string) ([]driving.CorpusDocument, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	byExt := pageSources()
	mdProvider := markdown.New()

	var outlineProvider driven.BoundaryProvider
	if outlineDir != "" {
		outlineProvider = outline.New(outlineDir)
	}

	var corpus []driving.CorpusDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		src, ok := byExt[ext]
		if !ok {
			continue
		}

		path := filepath.Join(inputDir, entry.Name())
		doc, err := src.Load(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Name(), err)
			continue
		}

		provider := boundaryProviderFor(ext, outlineProvider, mdProvider)

		cd := driving.CorpusDocument{Document: *doc}
		if provider != nil {
			bs, err := provider.Boundaries(ctx, doc)
			if err != nil {
				logger.Warn("Boundary detection failed for %s: %v (using per-page fallback)", doc.ID, err)
			} else {
				cd.Boundaries = bs
			}
		}

		corpus = append(corpus, cd)
		logger.Debug("Loaded %s: %d pages, %d boundaries", doc.ID, len(doc.Pages), len(cd.Boundaries))
	}

	if len(corpus) == 0 {
		logger.Warn("No supported documents found in %s", inputDir)
	}

	return corpus, nil
}

// boundaryProviderFor picks the boundary provider for a file type.
// An explicit outline directory wins; Markdown files can derive
// boundaries from their own structure; everything else falls back to
// per-page segmentation.
func boundaryProviderFor(ext string, outlineProvider, mdProvider driven.BoundaryProvider) driven.BoundaryProvider {
	if outlineProvider != nil {
		return outlineProvider
	}
	if ext == ".md" || ext == ".markdown" {
		return mdProvider
	}
	return nil
}
