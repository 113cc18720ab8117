package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates an unreadable or malformed document.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidBoundary indicates a boundary list inconsistent with
	// its document, e.g. an offset beyond the end of a page.
	ErrInvalidBoundary = errors.New("invalid boundary")

	// ErrInvalidConfig indicates an invalid ranking parameter.
	// Detected before any processing starts; never partial.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or not reachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates an embedding with an unexpected
	// vector size, usually a model misconfiguration.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrNoDocuments indicates that every document in the corpus
	// failed to load or segment. A run with some failures is fine;
	// a run where nothing succeeded is not.
	ErrNoDocuments = errors.New("no documents could be processed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
