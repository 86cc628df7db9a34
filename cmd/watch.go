package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/astralhq/polaris/internal/config"
	"github.com/astralhq/polaris/internal/rank"
	"github.com/astralhq/polaris/internal/telemetry"
	"github.com/astralhq/polaris/internal/ui"
	"github.com/astralhq/polaris/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <tasks-file>",
	Short: "Re-analyze a task file every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	path := args[0]

	emitter, err := openEmitter(cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()

	renderOnce(cfg, path)

	w, err := watch.New(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-w.Reloads:
			_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindWatchReload, Detail: path})
			fmt.Fprintf(os.Stdout, "\n— %s changed —\n", path)
			renderOnce(cfg, path)
		case <-sig:
			return nil
		}
	}
}

// renderOnce analyzes the file and renders the result. A broken file is
// reported but keeps the watch alive; the next save gets another chance.
func renderOnce(cfg config.Config, path string) {
	tasks, err := loadTasks(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "polaris: %v\n", err)
		return
	}
	analysis, err := rank.AnalyzeWeighted(tasks, time.Now().UTC(), cfg.Weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "polaris: %v\n", err)
		return
	}
	ui.RenderAnalysis(os.Stdout, analysis)
}
