// Package jsonfile persists analysis results as a JSON report.
// The schema mirrors the persona/job-to-be-done report format:
// a metadata block, ranked extracted_sections, and a
// subsection_analysis list of refined chunks.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ResultWriter = (*Writer)(nil)

// maxRefinedChars caps the refined text carried into the report.
const maxRefinedChars = 1000

// Writer serialises run results to a JSON file.
type Writer struct{}

// New creates a JSON result writer.
func New() *Writer {
	return &Writer{}
}

type report struct {
	Metadata           metadata         `json:"metadata"`
	ExtractedSections  []sectionRecord  `json:"extracted_sections"`
	SubsectionAnalysis []analysisRecord `json:"subsection_analysis"`
}

type metadata struct {
	RunID          string   `json:"run_id"`
	InputDocuments []string `json:"input_documents"`
	Persona        string   `json:"persona"`
	JobToBeDone    string   `json:"job_to_be_done"`
	Model          string   `json:"model,omitempty"`
	Timestamp      string   `json:"processing_timestamp"`
	Warnings       []string `json:"warnings,omitempty"`
}

type sectionRecord struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	Score          float64 `json:"score"`
}

type analysisRecord struct {
	Document    string  `json:"document"`
	PageNumber  int     `json:"page_number"`
	RefinedText string  `json:"refined_text"`
	Rank        int     `json:"rank"`
	Score       float64 `json:"score"`
}

// Write persists result to path. A degenerate run still produces a
// well-formed report with empty lists.
func (w *Writer) Write(_ context.Context, result *domain.RunResult, path string) error {
	rep := report{
		Metadata: metadata{
			RunID:          result.Metadata.RunID,
			InputDocuments: orEmpty(result.Metadata.Documents),
			Persona:        result.Metadata.Role,
			JobToBeDone:    result.Metadata.Task,
			Model:          result.Metadata.Model,
			Timestamp:      result.Metadata.Timestamp.Format(time.RFC3339),
			Warnings:       result.Metadata.Warnings,
		},
		ExtractedSections:  make([]sectionRecord, 0, len(result.Sections)),
		SubsectionAnalysis: make([]analysisRecord, 0, len(result.Chunks)),
	}

	for _, ss := range result.Sections {
		rep.ExtractedSections = append(rep.ExtractedSections, sectionRecord{
			Document:       ss.Section.DocumentID,
			PageNumber:     ss.Section.StartPage,
			SectionTitle:   ss.Section.Heading,
			ImportanceRank: ss.Rank,
			Score:          ss.Score,
		})
	}

	for _, c := range result.Chunks {
		rep.SubsectionAnalysis = append(rep.SubsectionAnalysis, analysisRecord{
			Document:    c.DocumentID,
			PageNumber:  c.Page,
			RefinedText: truncate(c.Text, maxRefinedChars),
			Rank:        c.Rank,
			Score:       c.Score,
		})
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// truncate limits text to n runes, appending an ellipsis when cut.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
