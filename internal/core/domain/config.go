package domain

import "fmt"

// Default ranking parameters. These are tunable, not semantic: any
// valid configuration must satisfy the same ranking invariants.
const (
	DefaultMinSectionChars = 50
	DefaultBoostWeight     = 0.1
	DefaultTopSections     = 20
	DefaultRefineSections  = 10
	DefaultTopChunks       = 10
)

// Config holds the ranking parameters for a run. The core consumes
// it but never parses it; loading is an adapter concern.
type Config struct {
	// MinSectionChars is the minimum trimmed length for a section or
	// chunk to participate in ranking at all.
	MinSectionChars int

	// BoostWeight scales the lexical heading/query overlap added to
	// the raw similarity in Stage A.
	BoostWeight float64

	// TopSections is the number of sections Stage A returns.
	TopSections int

	// RefineSections is the number of top sections carried into
	// Stage B. Must not exceed TopSections.
	RefineSections int

	// TopChunks is the number of chunks Stage B returns.
	TopChunks int
}

// DefaultConfig returns the default ranking configuration.
func DefaultConfig() Config {
	return Config{
		MinSectionChars: DefaultMinSectionChars,
		BoostWeight:     DefaultBoostWeight,
		TopSections:     DefaultTopSections,
		RefineSections:  DefaultRefineSections,
		TopChunks:       DefaultTopChunks,
	}
}

// Validate checks the configuration before any processing starts.
func (c Config) Validate() error {
	if c.MinSectionChars <= 0 {
		return fmt.Errorf("%w: min section chars must be positive, got %d", ErrInvalidConfig, c.MinSectionChars)
	}
	if c.BoostWeight < 0 || c.BoostWeight > 1 {
		return fmt.Errorf("%w: boost weight must be in [0, 1], got %g", ErrInvalidConfig, c.BoostWeight)
	}
	if c.TopSections <= 0 {
		return fmt.Errorf("%w: top sections must be positive, got %d", ErrInvalidConfig, c.TopSections)
	}
	if c.RefineSections <= 0 || c.RefineSections > c.TopSections {
		return fmt.Errorf("%w: refine sections must be in [1, %d], got %d", ErrInvalidConfig, c.TopSections, c.RefineSections)
	}
	if c.TopChunks <= 0 {
		return fmt.Errorf("%w: top chunks must be positive, got %d", ErrInvalidConfig, c.TopChunks)
	}
	return nil
}
