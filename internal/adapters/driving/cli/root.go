// Package cli implements the docsense command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsense-cli/internal/logger"
)

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "docsense",
	Short: "Persona-driven document intelligence",
	Long: `Docsense extracts the content most relevant to a reader role and task
from a small collection of documents. It segments each document into
heading-bounded sections, ranks them against the role/task query, then
ranks fine-grained chunks within the top sections.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (TOML)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
