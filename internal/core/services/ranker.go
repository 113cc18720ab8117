package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// wordPattern extracts letter runs for lexical overlap scoring.
var wordPattern = regexp.MustCompile(`\p{L}+`)

// blankLine splits text into paragraphs for chunking.
var blankLine = regexp.MustCompile(`\n\s*\n`)

// Ranker implements the two-stage relevance ranking: sections first,
// then chunks within the top sections. Both stages are pure functions
// of the embedded inputs plus the deterministic tie-break rule, so
// re-running on identical input reproduces identical output.
type Ranker struct {
	embedder driven.EmbeddingService
	cfg      domain.Config
}

// NewRanker creates a ranker using the given embedding service and
// ranking configuration.
func NewRanker(embedder driven.EmbeddingService, cfg domain.Config) *Ranker {
	return &Ranker{embedder: embedder, cfg: cfg}
}

// RankSections is Stage A: it filters out sections below the minimum
// length, scores the rest by cosine similarity to the query plus an
// additive lexical heading boost, and returns the top sections with
// dense 1-based ranks. Ties resolve to original corpus order.
func (r *Ranker) RankSections(ctx context.Context, query *domain.Query, sections []domain.Section) ([]domain.ScoredSection, error) {
	logger.Section("Stage A: Section Ranking")

	kept := make([]domain.Section, 0, len(sections))
	for _, s := range sections {
		if s.Length() < r.cfg.MinSectionChars {
			continue
		}
		kept = append(kept, s)
	}
	logger.Debug("Length filter: %d of %d sections kept (min %d chars)",
		len(kept), len(sections), r.cfg.MinSectionChars)

	if len(kept) == 0 {
		return []domain.ScoredSection{}, nil
	}

	texts := make([]string, len(kept))
	for i, s := range kept {
		texts[i] = s.Text
	}

	embeddings, err := r.embedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed sections: %w", err)
	}

	queryTokens := tokenSet(query.Text)

	scored := make([]domain.ScoredSection, len(kept))
	for i, s := range kept {
		sim := cosine(query.Embedding, embeddings[i])
		boost := r.cfg.BoostWeight * overlapRatio(s.Heading, queryTokens)
		scored[i] = domain.ScoredSection{
			Section:    s,
			Similarity: sim,
			Boost:      boost,
			Score:      sim + boost,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Section.Ordinal < scored[j].Section.Ordinal
	})

	if len(scored) > r.cfg.TopSections {
		scored = scored[:r.cfg.TopSections]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	logger.Info("Stage A: %d ranked sections", len(scored))

	return scored, nil
}

// RankChunks is Stage B: it re-derives chunks within the top sections
// and ranks them globally by cosine similarity alone. Headings are
// section-level, so no lexical boost applies here. The tie-break is
// the same corpus order used in Stage A.
func (r *Ranker) RankChunks(ctx context.Context, query *domain.Query, ranked []domain.ScoredSection) ([]domain.Chunk, error) {
	logger.Section("Stage B: Chunk Ranking")

	selected := ranked
	if len(selected) > r.cfg.RefineSections {
		selected = selected[:r.cfg.RefineSections]
	}

	chunks := make([]domain.Chunk, 0, len(selected)*4)
	for _, ss := range selected {
		for pos, text := range splitChunks(ss.Section.Text, r.cfg.MinSectionChars) {
			chunks = append(chunks, domain.Chunk{
				DocumentID:     ss.Section.DocumentID,
				Page:           ss.Section.StartPage,
				SectionOrdinal: ss.Section.Ordinal,
				Position:       pos,
				Text:           text,
			})
		}
	}
	logger.Debug("Derived %d candidate chunks from %d sections", len(chunks), len(selected))

	if len(chunks) == 0 {
		return []domain.Chunk{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := r.embedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
		chunks[i].Score = cosine(query.Embedding, embeddings[i])
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Score != chunks[j].Score {
			return chunks[i].Score > chunks[j].Score
		}
		if chunks[i].SectionOrdinal != chunks[j].SectionOrdinal {
			return chunks[i].SectionOrdinal < chunks[j].SectionOrdinal
		}
		return chunks[i].Position < chunks[j].Position
	})

	if len(chunks) > r.cfg.TopChunks {
		chunks = chunks[:r.cfg.TopChunks]
	}
	for i := range chunks {
		chunks[i].Rank = i + 1
	}

	logger.Info("Stage B: %d ranked chunks", len(chunks))

	return chunks, nil
}

// embedBatch calls the embedding service and validates the result
// shape against the input.
func (r *Ranker) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	embeddings, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrDimensionMismatch, len(embeddings), len(texts))
	}

	dims := r.embedder.Dimensions()
	for i, e := range embeddings {
		if dims > 0 && len(e) != dims {
			return nil, fmt.Errorf("%w: embedding %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(e), dims)
		}
	}

	return embeddings, nil
}

// splitChunks splits a section body into candidate chunk texts along
// blank-line paragraph boundaries. When no paragraph survives the
// minimum length on its own, it regroups consecutive non-empty lines
// across paragraph breaks until each group reaches the minimum, so
// fragmented text still yields usable chunks.
func splitChunks(text string, minChars int) []string {
	var valid []string
	for _, p := range blankLine.Split(strings.TrimSpace(text), -1) {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) >= minChars {
			valid = append(valid, p)
		}
	}
	if valid != nil {
		return valid
	}

	var group []string
	size := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		group = append(group, line)
		size += utf8.RuneCountInString(line) + 1
		if size >= minChars {
			valid = append(valid, strings.Join(group, " "))
			group = group[:0]
			size = 0
		}
	}

	return valid
}

// tokenSet lowercases and tokenises text into a set of letter runs.
func tokenSet(text string) map[string]struct{} {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// overlapRatio is the fraction of query tokens present in the heading,
// case-insensitive. Zero when the heading or the query text is empty,
// which disables boosting for vector-only queries.
func overlapRatio(heading string, queryTokens map[string]struct{}) float64 {
	if heading == "" || len(queryTokens) == 0 {
		return 0
	}
	matched := 0
	for t := range tokenSet(heading) {
		if _, ok := queryTokens[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// cosine computes cosine similarity between two vectors, with a zero
// guard for degenerate norms.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	sim := dot / denom
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}
