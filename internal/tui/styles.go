package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/astralhq/polaris/internal/score"
)

var (
	colorMuted  = lipgloss.Color("8")
	colorHigh   = lipgloss.Color("9")
	colorMedium = lipgloss.Color("11")
	colorLow    = lipgloss.Color("10")

	styleTitle     = lipgloss.NewStyle().Bold(true)
	styleHint      = lipgloss.NewStyle().Foreground(colorMuted)
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleScoreHigh = lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
	styleScoreMed  = lipgloss.NewStyle().Foreground(colorMedium)
	styleScoreLow  = lipgloss.NewStyle().Foreground(colorLow)
	styleCycleWarn = lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
	styleDetailSep = lipgloss.NewStyle().Foreground(colorMuted)
)

func scoreStyle(s float64) lipgloss.Style {
	switch {
	case s >= score.BandHigh:
		return styleScoreHigh
	case s >= score.BandMedium:
		return styleScoreMed
	default:
		return styleScoreLow
	}
}
