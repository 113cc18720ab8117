package domain

import (
	"strings"
	"unicode/utf8"
)

// Section is a heading-bounded span of a document's text.
// Sections for a document are contiguous and ordered; heading plus
// body together partition the document text exactly once.
type Section struct {
	// DocumentID links to the owning Document.
	DocumentID string

	// Heading is the heading line text, or empty for a heading-less
	// section (leading text, or per-page fallback segmentation).
	Heading string

	// Level is the heading level, empty when Heading is empty.
	Level BoundaryLevel

	// StartPage and EndPage are the 1-based pages the section spans.
	StartPage int
	EndPage   int

	// Text is the section body. The heading line is not repeated here.
	Text string

	// Ordinal is the global corpus position (document order, page,
	// offset). It is the deterministic tie-break key for ranking.
	Ordinal int
}

// Length returns the number of characters in the trimmed section body.
func (s Section) Length() int {
	return utf8.RuneCountInString(strings.TrimSpace(s.Text))
}
