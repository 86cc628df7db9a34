// Package ui renders analysis results for the terminal. Scores are colored
// by display band so high-priority work jumps out the same way it does in
// the browser client.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/astralhq/polaris/internal/rank"
	"github.com/astralhq/polaris/internal/score"
)

var (
	styleHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // red: act now
	styleMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow: soon
	styleLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // green: can wait
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleCycle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// scoreStyle picks the band style for a score using the documented display
// thresholds.
func scoreStyle(s float64) lipgloss.Style {
	switch {
	case s >= score.BandHigh:
		return styleHigh
	case s >= score.BandMedium:
		return styleMedium
	default:
		return styleLow
	}
}

// RenderAnalysis writes every scored task in input order, one block per
// task, followed by any cycle warnings.
func RenderAnalysis(w io.Writer, analysis *rank.Analysis) {
	if len(analysis.Results) == 0 {
		fmt.Fprintln(w, styleDim.Render("No tasks to analyze."))
		return
	}
	for _, st := range analysis.Results {
		renderTask(w, st)
	}
	RenderCycles(w, analysis.Cycles)
}

// RenderSuggestion writes the ranked top picks with their standing, then
// any cycle warnings.
func RenderSuggestion(w io.Writer, suggestion *rank.Suggestion) {
	if len(suggestion.Top3) == 0 {
		fmt.Fprintln(w, styleDim.Render("No tasks to suggest."))
		RenderCycles(w, suggestion.Cycles)
		return
	}
	fmt.Fprintln(w, styleTitle.Render("Next up:"))
	for i, st := range suggestion.Top3 {
		fmt.Fprintf(w, "%d. ", i+1)
		renderTask(w, st)
	}
	RenderCycles(w, suggestion.Cycles)
}

// RenderCycles writes a warning block naming each dependency loop. Silent
// when there are none.
func RenderCycles(w io.Writer, cycles [][]string) {
	if len(cycles) == 0 {
		return
	}
	fmt.Fprintln(w, styleCycle.Render("Dependency cycles detected:"))
	for _, cycle := range cycles {
		loop := strings.Join(cycle, " -> ")
		if len(cycle) > 0 {
			loop += " -> " + cycle[0]
		}
		fmt.Fprintf(w, "  %s\n", styleCycle.Render(loop))
	}
}

func renderTask(w io.Writer, st score.ScoredTask) {
	fmt.Fprintf(w, "%s  %s\n", scoreStyle(st.Score).Render(fmt.Sprintf("%.2f", st.Score)), styleTitle.Render(st.Title))
	fmt.Fprintf(w, "      %s\n", styleDim.Render(st.Explanation))
}
