package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// Segmenter turns a document's page texts plus an ordered boundary
// list into a gap-free, overlap-free sequence of sections.
//
// Sections are spans of the document's linear text (pages joined by a
// newline). For each span, the heading line is recorded on the
// Section and the remainder becomes the body, so heading plus body
// together reconstruct the document exactly once.
type Segmenter struct{}

// NewSegmenter creates a new segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment produces the ordered sections for doc. With an empty
// boundary list it falls back to one heading-less section per page.
// Empty sections are still emitted; length filtering happens in the
// ranking stage, not here.
func (s *Segmenter) Segment(doc *domain.Document, boundaries []domain.Boundary) ([]domain.Section, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	if len(boundaries) == 0 {
		logger.Debug("Segment %s: no boundaries, one section per page", doc.ID)
		return perPageSections(doc), nil
	}

	pageIndex := make(map[int]int, len(doc.Pages))
	pageStarts := make([]int, len(doc.Pages))
	offset := 0
	for i, p := range doc.Pages {
		pageIndex[p.Number] = i
		pageStarts[i] = offset
		offset += len(p.Text) + 1 // joining newline
	}

	ordered, err := orderBoundaries(doc, boundaries, pageIndex)
	if err != nil {
		return nil, err
	}

	full := doc.Text()

	// Absolute positions of each boundary within the linear text.
	positions := make([]int, len(ordered))
	for i, b := range ordered {
		positions[i] = pageStarts[pageIndex[b.Page]] + b.Offset
	}

	sections := make([]domain.Section, 0, len(ordered)+1)

	// Leading text before the first boundary. Emitted even when
	// empty so that spans partition the document.
	lead := full[:positions[0]]
	sections = append(sections, domain.Section{
		DocumentID: doc.ID,
		StartPage:  firstPageNumber(doc),
		EndPage:    pageForOffset(doc, pageStarts, max(positions[0]-1, 0)),
		Text:       lead,
	})

	for i, b := range ordered {
		start := positions[i]
		end := len(full)
		if i+1 < len(ordered) {
			end = positions[i+1]
		}

		span := full[start:end]

		// The heading line opens the span; record it on the section
		// and keep only the remainder as the body.
		body := span
		if n := len(b.Heading); n <= len(span) && span[:n] == b.Heading {
			body = span[n:]
		}

		endPage := b.Page
		if end > start {
			endPage = pageForOffset(doc, pageStarts, end-1)
		}

		sections = append(sections, domain.Section{
			DocumentID: doc.ID,
			Heading:    b.Heading,
			Level:      b.Level,
			StartPage:  b.Page,
			EndPage:    endPage,
			Text:       body,
		})
	}

	logger.Debug("Segment %s: %d boundaries, %d sections", doc.ID, len(ordered), len(sections))

	return sections, nil
}

// orderBoundaries validates, sorts by (page, offset) and collapses
// duplicates at identical positions, keeping the first.
func orderBoundaries(doc *domain.Document, boundaries []domain.Boundary, pageIndex map[int]int) ([]domain.Boundary, error) {
	for _, b := range boundaries {
		idx, ok := pageIndex[b.Page]
		if !ok {
			return nil, fmt.Errorf("%w: document %s has no page %d", domain.ErrInvalidBoundary, doc.ID, b.Page)
		}
		if b.Offset < 0 || b.Offset > len(doc.Pages[idx].Text) {
			return nil, fmt.Errorf("%w: offset %d beyond end of page %d in document %s",
				domain.ErrInvalidBoundary, b.Offset, b.Page, doc.ID)
		}
	}

	ordered := make([]domain.Boundary, len(boundaries))
	copy(ordered, boundaries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Page != ordered[j].Page {
			return ordered[i].Page < ordered[j].Page
		}
		return ordered[i].Offset < ordered[j].Offset
	})

	deduped := ordered[:0]
	for _, b := range ordered {
		if len(deduped) > 0 {
			last := deduped[len(deduped)-1]
			if last.Page == b.Page && last.Offset == b.Offset {
				continue
			}
		}
		deduped = append(deduped, b)
	}

	return deduped, nil
}

// perPageSections is the fallback strategy for documents without any
// detected headings.
func perPageSections(doc *domain.Document) []domain.Section {
	sections := make([]domain.Section, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		sections = append(sections, domain.Section{
			DocumentID: doc.ID,
			StartPage:  p.Number,
			EndPage:    p.Number,
			Text:       p.Text,
		})
	}
	return sections
}

// pageForOffset returns the page number containing the given absolute
// offset into the document's linear text.
func pageForOffset(doc *domain.Document, pageStarts []int, offset int) int {
	i := sort.Search(len(pageStarts), func(i int) bool {
		return pageStarts[i] > offset
	})
	if i == 0 {
		return firstPageNumber(doc)
	}
	return doc.Pages[i-1].Number
}

func firstPageNumber(doc *domain.Document) int {
	if len(doc.Pages) == 0 {
		return 0
	}
	return doc.Pages[0].Number
}
