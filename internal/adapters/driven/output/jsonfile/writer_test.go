package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

func readReport(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	return parsed
}

func TestWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")

	result := &domain.RunResult{
		Metadata: domain.RunMetadata{
			RunID:     "run-1",
			Role:      "travel planner",
			Task:      "plan a trip",
			Model:     "all-minilm",
			Documents: []string{"a.pdf", "b.pdf"},
			Warnings:  []string{"document c.pdf skipped: boom"},
			Timestamp: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
		},
		Sections: []domain.ScoredSection{
			{
				Section: domain.Section{DocumentID: "a.pdf", Heading: "Cities", StartPage: 3},
				Score:   0.91,
				Rank:    1,
			},
		},
		Chunks: []domain.Chunk{
			{DocumentID: "a.pdf", Page: 3, Text: "refined passage", Score: 0.88, Rank: 1},
		},
	}

	require.NoError(t, New().Write(context.Background(), result, path))
	parsed := readReport(t, path)

	meta := parsed["metadata"].(map[string]any)
	assert.Equal(t, "run-1", meta["run_id"])
	assert.Equal(t, "travel planner", meta["persona"])
	assert.Equal(t, "plan a trip", meta["job_to_be_done"])
	assert.Equal(t, "all-minilm", meta["model"])
	assert.Equal(t, "2025-07-01T12:00:00Z", meta["processing_timestamp"])
	assert.Len(t, meta["input_documents"], 2)
	assert.Len(t, meta["warnings"], 1)

	sections := parsed["extracted_sections"].([]any)
	require.Len(t, sections, 1)
	section := sections[0].(map[string]any)
	assert.Equal(t, "a.pdf", section["document"])
	assert.Equal(t, float64(3), section["page_number"])
	assert.Equal(t, "Cities", section["section_title"])
	assert.Equal(t, float64(1), section["importance_rank"])

	chunks := parsed["subsection_analysis"].([]any)
	require.Len(t, chunks, 1)
	chunk := chunks[0].(map[string]any)
	assert.Equal(t, "refined passage", chunk["refined_text"])
	assert.Equal(t, float64(1), chunk["rank"])
}

func TestWriter_Write_EmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")

	// A degenerate run still produces a well-formed report with
	// empty lists, never nulls.
	result := &domain.RunResult{
		Metadata: domain.RunMetadata{RunID: "run-2", Timestamp: time.Now()},
	}
	require.NoError(t, New().Write(context.Background(), result, path))

	parsed := readReport(t, path)
	assert.Equal(t, []any{}, parsed["extracted_sections"])
	assert.Equal(t, []any{}, parsed["subsection_analysis"])
	assert.Equal(t, []any{}, parsed["metadata"].(map[string]any)["input_documents"])
}

func TestWriter_Write_TruncatesRefinedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")

	result := &domain.RunResult{
		Metadata: domain.RunMetadata{Timestamp: time.Now()},
		Chunks: []domain.Chunk{
			{DocumentID: "a.pdf", Text: strings.Repeat("x", 2000), Rank: 1},
		},
	}
	require.NoError(t, New().Write(context.Background(), result, path))

	parsed := readReport(t, path)
	chunk := parsed["subsection_analysis"].([]any)[0].(map[string]any)
	refined := chunk["refined_text"].(string)
	assert.Len(t, refined, maxRefinedChars+3)
	assert.True(t, strings.HasSuffix(refined, "..."))
}

func TestWriter_Write_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "output.json")

	result := &domain.RunResult{
		Metadata: domain.RunMetadata{Timestamp: time.Now()},
	}
	require.NoError(t, New().Write(context.Background(), result, path))
	assert.FileExists(t, path)
}
