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

var suggestCmd = &cobra.Command{
	Use:   "suggest <tasks-file>",
	Short: "Rank a task file and print the top three tasks to do next",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().Bool("json", false, "emit the raw JSON response instead of styled output")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	tasks, err := loadTasks(args[0])
	if err != nil {
		return err
	}

	suggestion, err := rank.SuggestWeighted(tasks, time.Now().UTC(), cfg.Weights)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestion)
	}

	ui.RenderSuggestion(os.Stdout, suggestion)
	return nil
}
