package driven

import "context"

// EmbeddingCache is an optional content-addressed vector cache
// consulted by embedding adapters. Keys are hashes of normalised
// text, so a hit must never change ranking outcomes.
type EmbeddingCache interface {
	// Get returns the cached vector for key, if present.
	Get(ctx context.Context, key string) ([]float32, bool, error)

	// Put stores a vector under key, overwriting any previous value.
	Put(ctx context.Context, key string, embedding []float32) error

	// Close releases resources.
	Close() error
}
