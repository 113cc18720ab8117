package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

func twoPageDoc() *domain.Document {
	return &domain.Document{
		ID: "report.pdf",
		Pages: []domain.Page{
			{Number: 1, Text: "intro text\nAlpha\nalpha body"},
			{Number: 2, Text: "Beta\nbeta body"},
		},
	}
}

func TestSegmenter_Segment(t *testing.T) {
	seg := NewSegmenter()
	doc := twoPageDoc()
	boundaries := []domain.Boundary{
		{Level: domain.LevelTop, Heading: "Alpha", Page: 1, Offset: 11},
		{Level: domain.LevelTop, Heading: "Beta", Page: 2, Offset: 0},
	}

	sections, err := seg.Segment(doc, boundaries)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	// Leading heading-less section.
	assert.Empty(t, sections[0].Heading)
	assert.Equal(t, "intro text\n", sections[0].Text)
	assert.Equal(t, 1, sections[0].StartPage)
	assert.Equal(t, 1, sections[0].EndPage)

	assert.Equal(t, "Alpha", sections[1].Heading)
	assert.Equal(t, "\nalpha body\n", sections[1].Text)
	assert.Equal(t, 1, sections[1].StartPage)
	assert.Equal(t, 1, sections[1].EndPage)

	assert.Equal(t, "Beta", sections[2].Heading)
	assert.Equal(t, "\nbeta body", sections[2].Text)
	assert.Equal(t, 2, sections[2].StartPage)
	assert.Equal(t, 2, sections[2].EndPage)

	for _, s := range sections {
		assert.Equal(t, doc.ID, s.DocumentID)
	}
}

func TestSegmenter_Segment_Reconstruction(t *testing.T) {
	seg := NewSegmenter()
	doc := twoPageDoc()
	boundaries := []domain.Boundary{
		{Heading: "Alpha", Page: 1, Offset: 11},
		{Heading: "Beta", Page: 2, Offset: 0},
	}

	sections, err := seg.Segment(doc, boundaries)
	require.NoError(t, err)

	// Headings plus bodies partition the linear text exactly.
	var rebuilt string
	for _, s := range sections {
		rebuilt += s.Heading + s.Text
	}
	assert.Equal(t, doc.Text(), rebuilt)
}

func TestSegmenter_Segment_BoundaryAtStart(t *testing.T) {
	seg := NewSegmenter()
	doc := &domain.Document{
		ID:    "doc.txt",
		Pages: []domain.Page{{Number: 1, Text: "Title\nbody text"}},
	}

	sections, err := seg.Segment(doc, []domain.Boundary{
		{Heading: "Title", Page: 1, Offset: 0},
	})
	require.NoError(t, err)
	require.Len(t, sections, 2)

	// The leading section is still emitted, just empty.
	assert.Empty(t, sections[0].Heading)
	assert.Empty(t, sections[0].Text)
	assert.Equal(t, "Title", sections[1].Heading)
	assert.Equal(t, "\nbody text", sections[1].Text)
}

func TestSegmenter_Segment_SpanAcrossPages(t *testing.T) {
	seg := NewSegmenter()
	doc := &domain.Document{
		ID: "doc.pdf",
		Pages: []domain.Page{
			{Number: 1, Text: "Alpha\nstarts here"},
			{Number: 2, Text: "continues here"},
		},
	}

	sections, err := seg.Segment(doc, []domain.Boundary{
		{Heading: "Alpha", Page: 1, Offset: 0},
	})
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, 1, sections[1].StartPage)
	assert.Equal(t, 2, sections[1].EndPage)
	assert.Equal(t, "\nstarts here\ncontinues here", sections[1].Text)
}

func TestSegmenter_Segment_NoBoundaries(t *testing.T) {
	seg := NewSegmenter()
	doc := twoPageDoc()

	sections, err := seg.Segment(doc, nil)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	for i, s := range sections {
		assert.Empty(t, s.Heading)
		assert.Equal(t, doc.Pages[i].Number, s.StartPage)
		assert.Equal(t, doc.Pages[i].Number, s.EndPage)
		assert.Equal(t, doc.Pages[i].Text, s.Text)
	}
}

func TestSegmenter_Segment_UnorderedBoundaries(t *testing.T) {
	seg := NewSegmenter()
	doc := twoPageDoc()

	// Supplied out of order; output must follow document order.
	sections, err := seg.Segment(doc, []domain.Boundary{
		{Heading: "Beta", Page: 2, Offset: 0},
		{Heading: "Alpha", Page: 1, Offset: 11},
	})
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "Alpha", sections[1].Heading)
	assert.Equal(t, "Beta", sections[2].Heading)
}

func TestSegmenter_Segment_DuplicateBoundaries(t *testing.T) {
	seg := NewSegmenter()
	doc := twoPageDoc()

	sections, err := seg.Segment(doc, []domain.Boundary{
		{Heading: "Alpha", Page: 1, Offset: 11},
		{Heading: "Alpha copy", Page: 1, Offset: 11},
	})
	require.NoError(t, err)
	require.Len(t, sections, 2)

	// The first duplicate wins.
	assert.Equal(t, "Alpha", sections[1].Heading)
}

func TestSegmenter_Segment_InvalidBoundaries(t *testing.T) {
	seg := NewSegmenter()
	doc := twoPageDoc()

	t.Run("unknown page", func(t *testing.T) {
		_, err := seg.Segment(doc, []domain.Boundary{
			{Heading: "Ghost", Page: 7, Offset: 0},
		})
		require.ErrorIs(t, err, domain.ErrInvalidBoundary)
	})

	t.Run("offset beyond page end", func(t *testing.T) {
		_, err := seg.Segment(doc, []domain.Boundary{
			{Heading: "Alpha", Page: 1, Offset: 9999},
		})
		require.ErrorIs(t, err, domain.ErrInvalidBoundary)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, err := seg.Segment(doc, []domain.Boundary{
			{Heading: "Alpha", Page: 1, Offset: -1},
		})
		require.ErrorIs(t, err, domain.ErrInvalidBoundary)
	})
}

func TestSegmenter_Segment_NilDocument(t *testing.T) {
	seg := NewSegmenter()
	_, err := seg.Segment(nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
