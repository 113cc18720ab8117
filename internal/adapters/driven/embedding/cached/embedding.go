// Package cached decorates an embedding service with a
// content-addressed vector cache. Keys are hashes of the normalised
// text plus the model name, so a cache hit returns exactly the vector
// the inner service would have produced and ranking outcomes are
// unaffected.
package cached

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService wraps an inner embedding service with a cache.
type EmbeddingService struct {
	inner driven.EmbeddingService
	cache driven.EmbeddingCache
}

// NewEmbeddingService creates the caching decorator. The cache is
// best-effort: read and write failures degrade to the inner service.
func NewEmbeddingService(inner driven.EmbeddingService, cache driven.EmbeddingCache) *EmbeddingService {
	return &EmbeddingService{inner: inner, cache: cache}
}

// Key derives the cache key for a text: SHA-256 over the model name
// and the whitespace-normalised text.
func (s *EmbeddingService) Key(text string) string {
	normalised := strings.Join(strings.Fields(text), " ")
	sum := sha256.Sum256([]byte(s.inner.ModelName() + "\x00" + normalised))
	return hex.EncodeToString(sum[:])
}

// Embed returns the cached vector when present, delegating and
// backfilling otherwise.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := s.Key(text)

	if vec, ok := s.lookup(ctx, key); ok {
		return vec, nil
	}

	vec, err := s.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, vec)

	return vec, nil
}

// EmbedBatch serves cache hits locally and delegates only the misses,
// preserving positional alignment with the input.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))

	var missTexts []string
	var missIdx []int
	for i, text := range texts {
		if vec, ok := s.lookup(ctx, s.Key(text)); ok {
			result[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	logger.Debug("Embedding cache: %d hits, %d misses", len(texts)-len(missTexts), len(missTexts))

	if len(missTexts) == 0 {
		return result, nil
	}

	embeddings, err := s.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, i := range missIdx {
		result[i] = embeddings[j]
		s.store(ctx, s.Key(texts[i]), embeddings[j])
	}

	return result, nil
}

// Dimensions returns the inner service's embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the inner service.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the cache and the inner service.
func (s *EmbeddingService) Close() error {
	if err := s.cache.Close(); err != nil {
		logger.Warn("Closing embedding cache: %v", err)
	}
	return s.inner.Close()
}

func (s *EmbeddingService) lookup(ctx context.Context, key string) ([]float32, bool) {
	vec, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Embedding cache read failed: %v", err)
		return nil, false
	}
	return vec, ok
}

func (s *EmbeddingService) store(ctx context.Context, key string, vec []float32) {
	if err := s.cache.Put(ctx, key, vec); err != nil {
		logger.Warn("Embedding cache write failed: %v", err)
	}
}
