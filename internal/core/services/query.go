package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// QueryComposer builds the run query from a reader role and a task
// description, or wraps a precomputed query vector.
type QueryComposer struct {
	embedder driven.EmbeddingService
}

// NewQueryComposer creates a new query composer.
func NewQueryComposer(embedder driven.EmbeddingService) *QueryComposer {
	return &QueryComposer{embedder: embedder}
}

// EffectiveRoleTask applies the documented defaults for missing role
// or task values. Falling back is normal behaviour, not an error.
func EffectiveRoleTask(role, task string) (string, string) {
	role = strings.TrimSpace(role)
	task = strings.TrimSpace(task)
	if role == "" {
		role = domain.DefaultRole
	}
	if task == "" {
		task = domain.DefaultTask
	}
	return role, task
}

// ComposeText merges role and task into the single query text.
func ComposeText(role, task string) string {
	role, task = EffectiveRoleTask(role, task)
	return fmt.Sprintf("As a %s, my primary objective is to %s.", role, task)
}

// Compose builds and embeds the query for the given role and task.
func (c *QueryComposer) Compose(ctx context.Context, role, task string) (*domain.Query, error) {
	if c.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	text := ComposeText(role, task)
	logger.Debug("Query text: %q", text)

	embedding, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return &domain.Query{Text: text, Embedding: embedding}, nil
}

// FromVector wraps a precomputed query vector, bypassing composition.
// Lexical boosting is disabled for such queries because there is no
// query text to tokenise.
func (c *QueryComposer) FromVector(embedding []float32) *domain.Query {
	return &domain.Query{Embedding: embedding}
}
