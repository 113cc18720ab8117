package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsense-cli/internal/logger"
)

// debounce window for filesystem event bursts (editors and copies
// emit several events per file).
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis whenever the input directory changes",
	Long: `Runs one analysis, then watches the input directory and re-runs the
pipeline whenever a supported document is added or modified.
Interrupt with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().AddFlagSet(analyzeCmd.Flags())
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := analyzeOnce(ctx, cmd); err != nil {
		// Keep watching; the next change may fix the input.
		logger.Warn("Initial analysis failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(analyzeInputDir); err != nil {
		return err
	}

	logger.Info("Watching %s", analyzeInputDir)

	supported := pageSources()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if _, ok := supported[ext]; !ok {
				continue
			}
			logger.Debug("Change detected: %s", event)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-pending:
			if err := analyzeOnce(ctx, cmd); err != nil {
				logger.Warn("Analysis failed: %v", err)
			}
		}
	}
}
