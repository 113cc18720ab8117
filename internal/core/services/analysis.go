package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService orchestrates the full pipeline: segmentation, query
// composition, Stage A section ranking and Stage B chunk ranking.
type AnalysisService struct {
	embedder  driven.EmbeddingService
	segmenter *Segmenter
	composer  *QueryComposer
	ranker    *Ranker
	cfg       domain.Config
}

// NewAnalysisService creates the analysis service. The embedding
// service is injected here, never reached through global state.
func NewAnalysisService(embedder driven.EmbeddingService, cfg domain.Config) *AnalysisService {
	return &AnalysisService{
		embedder:  embedder,
		segmenter: NewSegmenter(),
		composer:  NewQueryComposer(embedder),
		ranker:    NewRanker(embedder, cfg),
		cfg:       cfg,
	}
}

// Analyze runs one batch analysis over the request corpus.
//
// Per-document segmentation failures are recorded as warnings and the
// document is skipped; the run fails only when the configuration is
// invalid, the embedding provider fails, or every document fails.
// A corpus yielding no rankable sections is a valid empty result.
func (s *AnalysisService) Analyze(ctx context.Context, req driving.AnalysisRequest) (*domain.RunResult, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Analysis Run")
	defer logger.Timing("analysis run", time.Now())

	role, task := EffectiveRoleTask(req.Role, req.Task)
	meta := domain.RunMetadata{
		RunID:     uuid.New().String(),
		Role:      role,
		Task:      task,
		Model:     s.embedder.ModelName(),
		Timestamp: time.Now().UTC(),
	}

	sections, warnings := s.segmentCorpus(req.Corpus)
	meta.Warnings = warnings
	for _, cd := range req.Corpus {
		meta.Documents = append(meta.Documents, cd.Document.ID)
	}

	if len(req.Corpus) > 0 && len(warnings) == len(req.Corpus) {
		return nil, fmt.Errorf("%w: %d of %d documents failed segmentation",
			domain.ErrNoDocuments, len(warnings), len(req.Corpus))
	}

	var query *domain.Query
	if req.QueryVector != nil {
		logger.Debug("Using precomputed query vector (%d dimensions)", len(req.QueryVector))
		query = s.composer.FromVector(req.QueryVector)
	} else {
		q, err := s.composer.Compose(ctx, role, task)
		if err != nil {
			return nil, fmt.Errorf("compose query: %w", err)
		}
		query = q
	}

	ranked, err := s.ranker.RankSections(ctx, query, sections)
	if err != nil {
		return nil, fmt.Errorf("rank sections: %w", err)
	}

	chunks, err := s.ranker.RankChunks(ctx, query, ranked)
	if err != nil {
		return nil, fmt.Errorf("rank chunks: %w", err)
	}

	return &domain.RunResult{
		Metadata: meta,
		Sections: ranked,
		Chunks:   chunks,
	}, nil
}

// segmentCorpus segments every document, in parallel across documents.
// Results are slotted by corpus index and ordinals assigned afterwards
// in corpus order, so parallelism never affects ranking outcomes.
func (s *AnalysisService) segmentCorpus(corpus []driving.CorpusDocument) ([]domain.Section, []string) {
	perDoc := make([][]domain.Section, len(corpus))
	errs := make([]error, len(corpus))

	var wg sync.WaitGroup
	for i := range corpus {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := corpus[i].Document
			perDoc[i], errs[i] = s.segmenter.Segment(&doc, corpus[i].Boundaries)
		}(i)
	}
	wg.Wait()

	var sections []domain.Section
	var warnings []string
	ordinal := 0
	for i := range corpus {
		if errs[i] != nil {
			warning := fmt.Sprintf("document %s skipped: %v", corpus[i].Document.ID, errs[i])
			logger.Warn("%s", warning)
			warnings = append(warnings, warning)
			continue
		}
		for _, sec := range perDoc[i] {
			sec.Ordinal = ordinal
			ordinal++
			sections = append(sections, sec)
		}
	}

	logger.Debug("Segmented corpus: %d sections from %d documents (%d skipped)",
		len(sections), len(corpus), len(warnings))

	return sections, warnings
}
