package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astralhq/polaris/internal/graph"
	"github.com/astralhq/polaris/internal/ui"
)

var planCmd = &cobra.Command{
	Use:   "plan <tasks-file>",
	Short: "Print a dependency-respecting execution order with impact scores",
	Long: `Plan topologically sorts the task graph so every task appears after its
dependencies, and annotates each task with its structural impact: how much
of the graph it unblocks directly and transitively.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	tasks, err := loadTasks(args[0])
	if err != nil {
		return err
	}

	g, err := graph.Build(tasks)
	if err != nil {
		return err
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		if errors.Is(err, graph.ErrCycle) {
			ui.RenderCycles(os.Stderr, g.Cycles())
			return fmt.Errorf("cannot plan: the dependency graph has cycles")
		}
		return err
	}

	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	impact := g.Impact()
	for i, id := range order {
		fmt.Fprintf(os.Stdout, "%2d. [impact %.3f] %s  %s\n", i+1, impact[id], id, titles[id])
	}
	return nil
}
