package domain

import "time"

// ScoredSection is a Section with its Stage A relevance scores.
type ScoredSection struct {
	// Section is the ranked section.
	Section Section

	// Similarity is the raw cosine similarity to the query, in [-1, 1].
	Similarity float64

	// Boost is the additive lexical boost applied on top of Similarity.
	Boost float64

	// Score is Similarity + Boost.
	Score float64

	// Rank is the 1-based dense rank after deterministic tie-breaking.
	Rank int
}

// Chunk is a finer sub-span of a Section's text, ranked in Stage B.
type Chunk struct {
	// DocumentID links to the owning document.
	DocumentID string

	// Page is the page the owning section starts on.
	Page int

	// SectionOrdinal is the owning section's corpus ordinal.
	SectionOrdinal int

	// Position is the chunk's ordinal position within the section.
	Position int

	// Text is the chunk text.
	Text string

	// Embedding is the vector representation of Text.
	Embedding []float32

	// Score is the cosine similarity to the query.
	Score float64

	// Rank is the 1-based dense rank across all surviving chunks.
	Rank int
}

// RunMetadata describes one analysis run.
type RunMetadata struct {
	// RunID uniquely identifies the run.
	RunID string

	// Role and Task are the effective persona and objective.
	Role string
	Task string

	// Model is the embedding model name, when known.
	Model string

	// Documents lists the IDs of documents that were processed.
	Documents []string

	// Warnings records non-fatal per-document failures.
	Warnings []string

	// Timestamp is when the run started.
	Timestamp time.Time
}

// RunResult is the full output of one analysis run. A run over a
// degenerate corpus yields empty Sections and Chunks, never an error.
type RunResult struct {
	Metadata RunMetadata
	Sections []ScoredSection
	Chunks   []Chunk
}
