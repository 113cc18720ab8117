package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/docsense-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/embedding/cached"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/output/jsonfile"
	"github.com/custodia-labs/docsense-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docsense-cli/internal/core/services"
	"github.com/custodia-labs/docsense-cli/internal/logger"
)

var (
	analyzeRole        string
	analyzeTask        string
	analyzeInputDir    string
	analyzeOutlineDir  string
	analyzeOutput      string
	analyzeQueryVector string
	analyzeJSON        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank document sections and chunks for a role and task",
	Long: `Segments every document in the input directory, ranks sections by
relevance to the role/task query, then ranks chunks within the top
sections. Results are written as a JSON report and printed to stdout.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "reader role description (default: "+domain.DefaultRole+")")
	analyzeCmd.Flags().StringVarP(&analyzeTask, "task", "t", "", "task description (default: "+domain.DefaultTask+")")
	analyzeCmd.Flags().StringVarP(&analyzeInputDir, "input-dir", "i", "input", "directory containing the document corpus")
	analyzeCmd.Flags().StringVar(&analyzeOutlineDir, "outlines", "", "directory containing sidecar outline JSON files")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "output.json", "path of the JSON report")
	analyzeCmd.Flags().StringVar(&analyzeQueryVector, "query-vector", "", "path to a JSON file with a precomputed query vector")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report JSON to stdout instead of the summary")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	return analyzeOnce(ctx, cmd)
}

// analyzeOnce runs one full analysis pass. Shared with watch mode.
func analyzeOnce(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := configfile.Load(flagConfig)
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	corpus, err := buildCorpus(ctx, analyzeInputDir, analyzeOutlineDir)
	if err != nil {
		return err
	}

	req := driving.AnalysisRequest{
		Role:   analyzeRole,
		Task:   analyzeTask,
		Corpus: corpus,
	}

	if analyzeQueryVector != "" {
		vec, err := loadQueryVector(analyzeQueryVector)
		if err != nil {
			return err
		}
		req.QueryVector = vec
	}

	service := services.NewAnalysisService(embedder, cfg.RankingDomain())

	result, err := service.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := jsonfile.New().Write(ctx, result, analyzeOutput); err != nil {
		return err
	}
	logger.Info("Report written to %s", analyzeOutput)

	if analyzeJSON {
		return printResultJSON(cmd, result)
	}

	cmd.Print(renderReport(result))
	return nil
}

// buildEmbedder constructs the configured embedding provider and
// wraps it with the content-addressed cache when enabled.
func buildEmbedder(cfg *configfile.Config) (driven.EmbeddingService, error) {
	var (
		embedder driven.EmbeddingService
		err      error
	)

	switch cfg.Embedding.Provider {
	case "", "ollama":
		embedder = ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	case "openai":
		embedder, err = openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}

	if !cfg.Cache.Enabled {
		return embedder, nil
	}

	cache, err := sqlite.NewCache(cfg.Cache.Dir)
	if err != nil {
		logger.Warn("Embedding cache unavailable: %v", err)
		return embedder, nil
	}

	return cached.NewEmbeddingService(embedder, cache), nil
}

// loadQueryVector reads a precomputed query vector from a JSON file
// containing a flat array of numbers.
func loadQueryVector(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query vector: %w", err)
	}

	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, fmt.Errorf("parse query vector %s: %w", path, err)
	}
	if len(vec) == 0 {
		return nil, errors.New("query vector is empty")
	}
	return vec, nil
}

func printResultJSON(cmd *cobra.Command, result *domain.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
