package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, domain.DefaultMinSectionChars, cfg.Ranking.MinSectionChars)
	assert.Equal(t, domain.DefaultBoostWeight, cfg.Ranking.BoostWeight)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.True(t, cfg.Cache.Enabled)

	// Defaults must pass core validation as-is.
	require.NoError(t, cfg.RankingDomain().Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Ranking, cfg.Ranking)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsense.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ranking]
min_section_chars = 80
top_sections = 5
refine_sections = 3
top_chunks = 4

[embedding]
provider = "openai"
model = "text-embedding-3-small"

[cache]
enabled = false
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Ranking.MinSectionChars)
	assert.Equal(t, 5, cfg.Ranking.TopSections)
	assert.Equal(t, 3, cfg.Ranking.RefineSections)
	assert.Equal(t, 4, cfg.Ranking.TopChunks)
	// Untouched values keep their defaults.
	assert.Equal(t, domain.DefaultBoostWeight, cfg.Ranking.BoostWeight)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsense.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ranking\nbroken"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	path := filepath.Join(t.TempDir(), "docsense.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[embedding]
api_key = "sk-from-file"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Embedding.APIKey)
}

func TestRankingDomain(t *testing.T) {
	cfg := Default()
	cfg.Ranking.MinSectionChars = 42

	ranking := cfg.RankingDomain()
	assert.Equal(t, 42, ranking.MinSectionChars)
	assert.Equal(t, domain.DefaultTopSections, ranking.TopSections)
}
