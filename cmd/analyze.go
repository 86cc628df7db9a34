package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/astralhq/polaris/internal/config"
	"github.com/astralhq/polaris/internal/rank"
	"github.com/astralhq/polaris/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <tasks-file>",
	Short: "Score every task in a file and report dependency cycles",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "emit the raw JSON response instead of styled output")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	tasks, err := loadTasks(args[0])
	if err != nil {
		return err
	}

	analysis, err := rank.AnalyzeWeighted(tasks, time.Now().UTC(), cfg.Weights)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	ui.RenderAnalysis(os.Stdout, analysis)
	return nil
}
