package domain

// Default role and task used when the caller supplies neither.
// Falling back to these is normal behaviour, not an error.
const (
	DefaultRole = "generic analyst"
	DefaultTask = "extract relevant information"
)

// Query is the composed role-plus-task query for a run. It is
// immutable once constructed.
type Query struct {
	// Text is the composed query text. Empty when the query was
	// supplied as a precomputed vector.
	Text string

	// Embedding is the query vector.
	Embedding []float32
}
