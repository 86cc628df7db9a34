package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/astralhq/polaris/internal/config"
	"github.com/astralhq/polaris/internal/rank"
	"github.com/astralhq/polaris/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <tasks-file>",
	Short: "Browse a scored task file interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	tasks, err := loadTasks(args[0])
	if err != nil {
		return err
	}

	analysis, err := rank.AnalyzeWeighted(tasks, time.Now().UTC(), cfg.Weights)
	if err != nil {
		return err
	}

	return tui.Run(analysis)
}
