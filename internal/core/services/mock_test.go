package services

import (
	"context"

	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
)

// Ensure the mock implements the interface.
var _ driven.EmbeddingService = (*mockEmbedder)(nil)

// mockEmbedder returns canned vectors per text. Unknown texts get a
// unit vector on the first axis so every call stays deterministic.
type mockEmbedder struct {
	vectors    map[string][]float32
	dims       int
	embedErr   error
	batchErr   error
	shortBatch bool

	embedCalls int
	batchCalls int
}

func newMockEmbedder(vectors map[string][]float32) *mockEmbedder {
	return &mockEmbedder{vectors: vectors, dims: 3}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if vec, ok := m.vectors[text]; ok {
		return vec
	}
	vec := make([]float32, m.dims)
	vec[0] = 1
	return vec
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	result := make([][]float32, 0, len(texts))
	for _, text := range texts {
		result = append(result, m.vectorFor(text))
	}
	if m.shortBatch && len(result) > 0 {
		result = result[:len(result)-1]
	}
	return result, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }

func (m *mockEmbedder) ModelName() string { return "mock-model" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }
