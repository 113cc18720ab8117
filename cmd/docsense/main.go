// Command docsense ranks document sections and chunks by relevance
// to a reader role and task.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docsense-cli/internal/adapters/driving/cli"
)

func main() {
	// Best effort; secrets may also come from the real environment.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
