// Package file loads docsense configuration from a TOML file.
// Configuration is layered: built-in defaults, then the file, then
// environment variables for secrets.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

// Config is the full on-disk configuration.
type Config struct {
	Ranking   RankingConfig   `toml:"ranking"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Cache     CacheConfig     `toml:"cache"`
}

// RankingConfig holds the ranking parameters consumed by the core.
type RankingConfig struct {
	MinSectionChars int     `toml:"min_section_chars"`
	BoostWeight     float64 `toml:"boost_weight"`
	TopSections     int     `toml:"top_sections"`
	RefineSections  int     `toml:"refine_sections"`
	TopChunks       int     `toml:"top_chunks"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// Dimensions overrides the model's default vector size.
	Dimensions int `toml:"dimensions"`

	// APIKey for hosted providers. The OPENAI_API_KEY environment
	// variable takes precedence so keys can stay out of the file.
	APIKey string `toml:"api_key"`
}

// CacheConfig configures the content-addressed embedding cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Ranking: RankingConfig{
			MinSectionChars: domain.DefaultMinSectionChars,
			BoostWeight:     domain.DefaultBoostWeight,
			TopSections:     domain.DefaultTopSections,
			RefineSections:  domain.DefaultRefineSections,
			TopChunks:       domain.DefaultTopChunks,
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Load reads the configuration at path, applying defaults for any
// missing values. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, nil
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Embedding.APIKey = key
	}

	return cfg, nil
}

// RankingDomain converts the file representation into the core's
// Config. Validation happens in the core, before any processing.
func (c *Config) RankingDomain() domain.Config {
	return domain.Config{
		MinSectionChars: c.Ranking.MinSectionChars,
		BoostWeight:     c.Ranking.BoostWeight,
		TopSections:     c.Ranking.TopSections,
		RefineSections:  c.Ranking.RefineSections,
		TopChunks:       c.Ranking.TopChunks,
	}
}
