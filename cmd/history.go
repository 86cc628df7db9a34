package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/astralhq/polaris/internal/config"
	"github.com/astralhq/polaris/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analyze/suggest runs from the run log",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if _, err := os.Stat(cfg.HistoryPath); err != nil {
		return fmt.Errorf("no run history at %s (enable history_enabled and run the server)", cfg.HistoryPath)
	}

	ctx := context.Background()
	store, err := history.Open(ctx, cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tOP\tTASKS\tCYCLES\tTOP\tSCORE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%.4f\n",
			r.At.UTC().Format(time.RFC3339), r.Op, r.TaskCount, r.CycleCount, r.TopID, r.TopScore)
	}
	return tw.Flush()
}
