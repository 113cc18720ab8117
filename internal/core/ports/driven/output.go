package driven

import (
	"context"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

// ResultWriter persists a run result. The core is agnostic to the
// persisted representation; a degenerate run must still produce a
// well-formed (empty) output.
type ResultWriter interface {
	// Write persists result to path.
	Write(ctx context.Context, result *domain.RunResult, path string) error
}
