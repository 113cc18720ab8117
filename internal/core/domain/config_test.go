package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMinSectionChars, cfg.MinSectionChars)
	assert.Equal(t, DefaultTopSections, cfg.TopSections)
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min section chars", func(c *Config) { c.MinSectionChars = 0 }},
		{"negative min section chars", func(c *Config) { c.MinSectionChars = -1 }},
		{"negative boost weight", func(c *Config) { c.BoostWeight = -0.1 }},
		{"boost weight above one", func(c *Config) { c.BoostWeight = 1.5 }},
		{"zero top sections", func(c *Config) { c.TopSections = 0 }},
		{"zero refine sections", func(c *Config) { c.RefineSections = 0 }},
		{"refine exceeds top sections", func(c *Config) { c.RefineSections = c.TopSections + 1 }},
		{"zero top chunks", func(c *Config) { c.TopChunks = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("boundary values pass", func(t *testing.T) {
		cfg := valid
		cfg.BoostWeight = 0
		require.NoError(t, cfg.Validate())
		cfg.BoostWeight = 1
		require.NoError(t, cfg.Validate())
		cfg.RefineSections = cfg.TopSections
		require.NoError(t, cfg.Validate())
	})
}
